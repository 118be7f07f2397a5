package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
)

// Store is a map-backed store.Store used by tests. It mirrors the database
// implementation's semantics: unique emails, newest-first listings,
// project-scoped task lookups and cascading project deletes.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]models.User
	projects map[uuid.UUID]models.Project
	tasks    map[uuid.UUID]models.Task
	seq      map[uuid.UUID]int64
	nextSeq  int64
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]models.User),
		projects: make(map[uuid.UUID]models.Project),
		tasks:    make(map[uuid.UUID]models.Task),
		seq:      make(map[uuid.UUID]int64),
	}
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailTaken
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	s.projects[project.ID] = *project
	s.stamp(project.ID)
	return nil
}

func (s *Store) ProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var projects []models.Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return s.seq[projects[i].ID] > s.seq[projects[j].ID]
	})
	return projects, nil
}

func (s *Store) ProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &project, nil
}

func (s *Store) SaveProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[project.ID]; !ok {
		return store.ErrNotFound
	}
	project.UpdatedAt = time.Now()
	s.projects[project.ID] = *project
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return store.ErrNotFound
	}
	for taskID, task := range s.tasks {
		if task.ProjectID == id {
			delete(s.tasks, taskID)
		}
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[task.ProjectID]; !ok {
		return store.ErrNotFound
	}
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks[task.ID] = *task
	s.stamp(task.ID)
	return nil
}

func (s *Store) TasksByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return s.seq[tasks[i].ID] > s.seq[tasks[j].ID]
	})
	return tasks, nil
}

func (s *Store) TaskByID(ctx context.Context, projectID, taskID uuid.UUID) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.ProjectID != projectID {
		return nil, store.ErrNotFound
	}
	return &task, nil
}

func (s *Store) SaveTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return store.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	s.tasks[task.ID] = *task
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, projectID, taskID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.ProjectID != projectID {
		return store.ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

// stamp records insertion order; wall-clock timestamps can collide within a
// test run, the sequence keeps newest-first listings deterministic.
func (s *Store) stamp(id uuid.UUID) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}
