package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
)

// WireTask is a task as the backend stores and returns it.
type WireTask struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
}

type wireUser struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// FakeBackend emulates the task server's REST API over httptest.
type FakeBackend struct {
	Server *httptest.Server

	mu     sync.Mutex
	users  map[string]wireUser
	tasks  []WireTask
	nextID int

	// Requests records "METHOD path" for every request received.
	Requests []string
	// Headers records the headers of the last request received.
	Headers http.Header

	// RawStatus, when non-zero, makes every route answer with it and RawBody.
	RawStatus int
	RawBody   string
	// Delay is slept before handling each request.
	Delay time.Duration
	// BareAdd makes the add route return the task alone, without a message envelope.
	BareAdd bool
	// MessageOnlyAdd makes the add route store the task but answer with the message alone.
	MessageOnlyAdd bool
}

// NewFakeBackend starts a fake backend; it is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{users: make(map[string]wireUser)}

	r := chi.NewRouter()
	r.Use(b.record)
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", b.register)
		r.Post("/login", b.login)
	})
	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(b.authenticate)
		r.Get("/mytasks", b.listTasks)
		r.Post("/add", b.addTask)
		r.Delete("/deletetask/{id}", b.deleteTask)
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the base URL of the server.
func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// AddUser seeds an account.
func (b *FakeBackend) AddUser(email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = wireUser{Email: email, Password: password}
}

// AddTask seeds a task, generating an ID when t.ID is empty.
func (b *FakeBackend) AddTask(t WireTask) WireTask {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t.ID == "" {
		t.ID = b.newID()
	}
	b.tasks = append(b.tasks, t)
	return t
}

// Tasks returns a copy of the stored tasks.
func (b *FakeBackend) Tasks() []WireTask {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]WireTask, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Token mints a token the backend accepts.
func (b *FakeBackend) Token(t *testing.T) string {
	return MintToken(t, "user-1", "ada@example.com", time.Now().Add(time.Hour))
}

func (b *FakeBackend) newID() string {
	b.nextID++
	return fmt.Sprintf("65f0%020d", b.nextID)
}

func (b *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.Requests = append(b.Requests, r.Method+" "+r.URL.EscapedPath())
		b.Headers = r.Header.Clone()
		delay, status, body := b.Delay, b.RawStatus, b.RawBody
		b.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token, authorization denied"})
			return
		}
		_, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return SigningKey, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token is not valid"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var u wireUser
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[u.Email]; ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User already exists"})
		return
	}
	b.users[u.Email] = u
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (b *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var c struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	b.mu.Lock()
	u, ok := b.users[c.Email]
	b.mu.Unlock()
	if !ok || u.Password != c.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}
	token, err := signToken("user-1", c.Email, time.Now().Add(time.Hour))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (b *FakeBackend) listTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Tasks())
}

func (b *FakeBackend) addTask(w http.ResponseWriter, r *http.Request) {
	var t WireTask
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	if t.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Title is required"})
		return
	}
	t.ID = ""
	t = b.AddTask(t)

	b.mu.Lock()
	bare, messageOnly := b.BareAdd, b.MessageOnlyAdd
	b.mu.Unlock()
	if messageOnly {
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Task added successfully"})
		return
	}
	if bare {
		writeJSON(w, http.StatusCreated, t)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Task added successfully", "task": t})
}

func (b *FakeBackend) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, t := range b.tasks {
		if t.ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
