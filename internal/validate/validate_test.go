package validate_test

import (
	"errors"
	"testing"
	"time"

	"mytasks/internal/service"
	"mytasks/internal/validate"
)

func validRegistration() service.Registration {
	return service.Registration{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "engine-01",
	}
}

func TestRegistration_Valid(t *testing.T) {
	if err := validate.Registration(validRegistration()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegistration_Errors(t *testing.T) {
	cases := []struct {
		name   string
		modify func(r *service.Registration)
		want   string
	}{
		{"missing first name", func(r *service.Registration) { r.FirstName = "" }, "All fields are required."},
		{"missing password", func(r *service.Registration) { r.Password = "" }, "All fields are required."},
		{"no at sign", func(r *service.Registration) { r.Email = "ada.example.com" }, "Please enter a valid email."},
		{"short tld", func(r *service.Registration) { r.Email = "ada@example.c" }, "Please enter a valid email."},
		{"short password", func(r *service.Registration) { r.Password = "1234567" }, "Password must be at least 8 characters long."},
		// Required-field check wins over the email check.
		{"missing and malformed", func(r *service.Registration) { r.LastName = ""; r.Email = "bad" }, "All fields are required."},
	}

	for _, tc := range cases {
		reg := validRegistration()
		tc.modify(&reg)
		err := validate.Registration(reg)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		var ve *service.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %T", tc.name, err)
			continue
		}
		if ve.Message != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, ve.Message)
		}
	}
}

func TestCredentials(t *testing.T) {
	if err := validate.Credentials(service.Credentials{Email: "a@b.io", Password: "x"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validate.Credentials(service.Credentials{Email: " ", Password: "x"}); err == nil {
		t.Error("expected error for blank email")
	}
	if err := validate.Credentials(service.Credentials{Email: "a@b.io"}); err == nil {
		t.Error("expected error for missing password")
	}
}

func TestNewTask_DefaultsPriority(t *testing.T) {
	task := service.NewTask{
		Title:       "Water plants",
		Description: "Balcony",
		DueDate:     service.NewDate(2025, time.June, 1),
	}
	if err := validate.NewTask(&task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Priority != service.PriorityMedium {
		t.Errorf("expected default priority Medium, got %q", task.Priority)
	}
}

func TestNewTask_Errors(t *testing.T) {
	due := service.NewDate(2025, time.June, 1)
	cases := []struct {
		name  string
		task  service.NewTask
		field string
	}{
		{"no title", service.NewTask{Title: "  ", Description: "d", DueDate: due}, "title"},
		{"no description", service.NewTask{Title: "t", DueDate: due}, "description"},
		{"no due date", service.NewTask{Title: "t", Description: "d"}, "due_date"},
		{"bad priority", service.NewTask{Title: "t", Description: "d", DueDate: due, Priority: "Urgent"}, "priority"},
	}

	for _, tc := range cases {
		err := validate.NewTask(&tc.task)
		var ve *service.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
			continue
		}
		if ve.Field != tc.field {
			t.Errorf("%s: expected field %q, got %q", tc.name, tc.field, ve.Field)
		}
	}
}
