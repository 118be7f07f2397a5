package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/taskhive-dev/taskhive/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist. For tasks it
	// also covers a lookup under the wrong parent project.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when creating a user with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already in use")
)

// UserStore holds user credentials. Emails are expected to arrive already
// lowercased and trimmed.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ProjectStore interface {
	CreateProject(ctx context.Context, project *models.Project) error
	// ProjectsByOwner returns the owner's projects, newest-created first.
	ProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	ProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	SaveProject(ctx context.Context, project *models.Project) error
	// DeleteProject removes the project and every task bound to it in a
	// single operation.
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	// TasksByProject returns the project's tasks, newest-created first.
	TasksByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
	// TaskByID looks a task up scoped to its parent project; a task
	// requested under the wrong project is ErrNotFound.
	TaskByID(ctx context.Context, projectID, taskID uuid.UUID) (*models.Task, error)
	SaveTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, projectID, taskID uuid.UUID) error
}

// Store bundles the three stores behind one implementation.
type Store interface {
	UserStore
	ProjectStore
	TaskStore
}
