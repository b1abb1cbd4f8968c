package project

import (
	"errors"
	"fmt"
	"sync"

	"github.com/josephgoksu/horizon/internal/task"
	"github.com/josephgoksu/horizon/internal/util"
)

// Errors returned by the store.
var (
	ErrNotFound    = errors.New("project not found")
	ErrDuplicateID = errors.New("duplicate project id")
)

// Patch carries the fields to merge into a project. Nil fields are left
// untouched. ID and CreatedAt cannot be patched.
type Patch struct {
	Title       *string
	Description *string
	Tags        []string
	Status      *Status
	Tasks       []task.Task
	ImageURL    *string
	Notes       *string
}

// Store is the in-memory project collection of one session, most recent first.
// All mutation is whole-value replacement keyed by id.
type Store struct {
	mu       sync.RWMutex
	projects []Project
}

// NewStore returns a store seeded with the given projects, in the given order.
func NewStore(initial ...Project) *Store {
	s := &Store{projects: make([]Project, 0, len(initial))}
	for _, p := range initial {
		s.projects = append(s.projects, p.Clone())
	}
	return s
}

// Insert adds a project at the front of the list.
func (s *Store) Insert(p Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.projects {
		if existing.ID == p.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
	}
	s.projects = append([]Project{p.Clone()}, s.projects...)
	return nil
}

// List returns copies of all projects, most recently created first.
func (s *Store) List() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out
}

// Len returns the number of projects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// Get returns a copy of the project with the given id.
func (s *Store) Get(id string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Resolve resolves a full id or a unique id prefix.
func (s *Store) Resolve(idOrPrefix string) (Project, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.projects))
	for _, p := range s.projects {
		ids = append(ids, p.ID)
	}
	s.mu.RUnlock()

	id, err := util.ResolvePrefix(idOrPrefix, ids, "project")
	if err != nil {
		return Project{}, err
	}
	return s.Get(id)
}

// Update merges patch into the project with the given id and returns the
// result. An unknown id is a no-op and reports false.
func (s *Store) Update(id string, patch Patch) (Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID != id {
			continue
		}
		next := apply(p.Clone(), patch)
		s.projects[i] = next
		return next.Clone(), true
	}
	return Project{}, false
}

// Modify runs fn against the current project under the write lock and merges
// the patch it returns when fn reports true. It reports whether the id was
// found and whether a patch was applied.
func (s *Store) Modify(id string, fn func(Project) (Patch, bool)) (Project, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID != id {
			continue
		}
		patch, ok := fn(p.Clone())
		if !ok {
			return p.Clone(), true, false
		}
		next := apply(p.Clone(), patch)
		s.projects[i] = next
		return next.Clone(), true, true
	}
	return Project{}, false, false
}

func apply(p Project, patch Patch) Project {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Tasks != nil {
		p.Tasks = append([]task.Task(nil), patch.Tasks...)
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	return p
}
