// Package service defines the backend-agnostic types and interfaces for task operations.
package service

import "context"

// Repository is the task collection as seen by the client.
// All task API calls go through this interface; commands and views
// never know the transport.
type Repository interface {
	// List returns the caller's tasks in backend order.
	List(ctx context.Context) ([]Task, error)

	// Add creates a task and returns it with its backend-assigned ID,
	// together with the backend's confirmation message (may be empty).
	Add(ctx context.Context, task NewTask) (Task, string, error)

	// Remove deletes the task with the given ID.
	Remove(ctx context.Context, id string) error
}

// Accounts covers the unauthenticated user endpoints.
type Accounts interface {
	// Register creates a user account and returns the backend's confirmation.
	Register(ctx context.Context, reg Registration) (string, error)

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds Credentials) (string, error)
}

// Service is the full backend surface used by the CLI.
type Service interface {
	Repository
	Accounts
}
