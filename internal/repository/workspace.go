package repository

import (
	"errors"
	"sync"
	"time"

	"neurowatch/internal/models"
	"neurowatch/internal/uploads"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

var ErrRoleAlreadySelected = errors.New("role already selected")

// Workspace is the in-memory state behind one browser page: the chosen role,
// the selected patient and the upload history. A full page load starts a new one.
type Workspace struct {
	ID        string
	CreatedAt time.Time
	Uploads   *uploads.Tracker

	mu                sync.RWMutex
	role              models.Role
	selectedPatientID string
}

func (w *Workspace) Role() models.Role {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.role
}

// SelectRole sets the role once. Choosing a different role afterwards
// returns ErrRoleAlreadySelected and keeps the first choice.
func (w *Workspace) SelectRole(role models.Role) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.role != models.RoleNone && w.role != role {
		return ErrRoleAlreadySelected
	}
	w.role = role
	return nil
}

// SelectedPatient resolves the selected patient against roster, defaulting
// to the first patient when nothing has been picked yet.
func (w *Workspace) SelectedPatient(roster *models.Roster) (models.Patient, bool) {
	w.mu.RLock()
	id := w.selectedPatientID
	w.mu.RUnlock()

	if id != "" {
		if p, err := roster.Find(id); err == nil {
			return p, true
		}
	}
	return roster.First()
}

// SelectPatient records the clinician's choice after checking it exists.
func (w *Workspace) SelectPatient(roster *models.Roster, id string) (models.Patient, error) {
	p, err := roster.Find(id)
	if err != nil {
		return models.Patient{}, err
	}
	w.mu.Lock()
	w.selectedPatientID = p.ID
	w.mu.Unlock()
	return p, nil
}

// TrackerFactory builds the upload tracker of a new workspace.
type TrackerFactory func() *uploads.Tracker

// WorkspaceStore keeps a bounded number of workspaces, each expiring after ttl.
type WorkspaceStore struct {
	cache      *expirable.LRU[string, *Workspace]
	newTracker TrackerFactory
	now        func() time.Time
}

func NewWorkspaceStore(size int, ttl time.Duration, newTracker TrackerFactory) *WorkspaceStore {
	if size <= 0 {
		size = 1000
	}
	return &WorkspaceStore{
		cache:      expirable.NewLRU[string, *Workspace](size, nil, ttl),
		newTracker: newTracker,
		now:        time.Now,
	}
}

// Create starts a fresh workspace with no role and the seed upload history.
func (s *WorkspaceStore) Create() *Workspace {
	ws := &Workspace{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Uploads:   s.newTracker(),
	}
	s.cache.Add(ws.ID, ws)
	return ws
}

func (s *WorkspaceStore) Get(id string) (*Workspace, bool) {
	if id == "" {
		return nil, false
	}
	return s.cache.Get(id)
}

// Discard drops a workspace. Pending upload completions still fire but
// update a history nobody can reach anymore.
func (s *WorkspaceStore) Discard(id string) {
	s.cache.Remove(id)
}

func (s *WorkspaceStore) Len() int {
	return s.cache.Len()
}
