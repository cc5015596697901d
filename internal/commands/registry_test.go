package commands_test

import (
	"testing"

	"mytasks/internal/commands"
)

func TestRegistry_FindByAlias(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"list", "ls"} {
		cmd, ok := r.Find(name)
		if !ok || cmd.Name() != "list" {
			t.Errorf("Find(%q) = %v, %v", name, cmd, ok)
		}
	}
	if _, ok := r.Find("lst"); ok {
		t.Error("expected no match for lst")
	}
}

func TestRegistry_RejectsDuplicateAlias(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.RmCmd{}); err != nil {
		t.Fatal(err)
	}

	err := r.Register(&commands.RmCmd{})
	if err == nil || err.Error() != "command already registered: rm" {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestRegistry_AllSortedWithoutAliases(t *testing.T) {
	r := commands.NewRegistry()
	for _, c := range []commands.Command{&commands.RmCmd{}, &commands.AddCmd{}, &commands.ListCmd{}} {
		if err := r.Register(c); err != nil {
			t.Fatal(err)
		}
	}

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Name())
	}
	if len(names) != 3 || names[0] != "add" || names[1] != "list" || names[2] != "rm" {
		t.Errorf("expected [add list rm], got %v", names)
	}
}
