// Package validate checks form input before anything is sent to the backend.
package validate

import (
	"regexp"
	"strings"

	"mytasks/internal/service"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Registration checks the sign-up form. Rules apply in order and the first
// failure is returned.
func Registration(reg service.Registration) error {
	if reg.FirstName == "" || reg.LastName == "" || reg.Email == "" || reg.Password == "" {
		return &service.ValidationError{Message: "All fields are required."}
	}
	if !emailPattern.MatchString(reg.Email) {
		return &service.ValidationError{Field: "email", Message: "Please enter a valid email."}
	}
	if len(reg.Password) < MinPasswordLength {
		return &service.ValidationError{Field: "password", Message: "Password must be at least 8 characters long."}
	}
	return nil
}

// Credentials checks the login form.
func Credentials(creds service.Credentials) error {
	if strings.TrimSpace(creds.Email) == "" {
		return &service.ValidationError{Field: "email", Message: "Email is required."}
	}
	if creds.Password == "" {
		return &service.ValidationError{Field: "password", Message: "Password is required."}
	}
	return nil
}

// NewTask checks the add-task form. An empty priority is filled in as Medium.
func NewTask(task *service.NewTask) error {
	if strings.TrimSpace(task.Title) == "" {
		return &service.ValidationError{Field: "title", Message: "Title is required."}
	}
	if strings.TrimSpace(task.Description) == "" {
		return &service.ValidationError{Field: "description", Message: "Description is required."}
	}
	if task.DueDate.IsZero() {
		return &service.ValidationError{Field: "due_date", Message: "Due date is required."}
	}
	if task.Priority == "" {
		task.Priority = service.PriorityMedium
	}
	if !task.Priority.Valid() {
		return &service.ValidationError{Field: "priority", Message: "Priority must be High, Medium or Low."}
	}
	return nil
}
