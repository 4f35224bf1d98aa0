// internal/store/memory/memory.go

// Package memory is an in-memory implementation of the store
// interfaces. It backs the test suites so handler behavior can be
// exercised without a running MongoDB.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
)

// NewStores returns an empty in-memory store bundle.
func NewStores() store.Stores {
	return store.Stores{
		Users:     &UserStore{users: map[primitive.ObjectID]models.User{}},
		Donations: &DonationStore{donations: map[primitive.ObjectID]models.Donation{}},
		Projects:  &ProjectStore{projects: map[primitive.ObjectID]models.Project{}},
		Events:    &EventStore{events: map[primitive.ObjectID]models.Event{}},
	}
}

type UserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) FindAll(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *UserStore) Update(_ context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) Delete(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.users, id)
	return &u, nil
}

type DonationStore struct {
	mu        sync.RWMutex
	donations map[primitive.ObjectID]models.Donation
}

func (s *DonationStore) Create(_ context.Context, d *models.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	stored := *d
	stored.Donor = nil
	s.donations[d.ID] = stored
	return nil
}

func (s *DonationStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (s *DonationStore) FindAll(_ context.Context) ([]models.Donation, error) {
	return s.filter(func(models.Donation) bool { return true })
}

func (s *DonationStore) FindByDonor(_ context.Context, donorID primitive.ObjectID) ([]models.Donation, error) {
	return s.filter(func(d models.Donation) bool { return d.DonorID == donorID })
}

func (s *DonationStore) filter(keep func(models.Donation) bool) ([]models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	donations := []models.Donation{}
	for _, d := range s.donations {
		if keep(d) {
			donations = append(donations, d)
		}
	}
	sort.Slice(donations, func(i, j int) bool {
		return donations[i].CreatedAt.After(donations[j].CreatedAt)
	})
	return donations, nil
}

func (s *DonationStore) Update(_ context.Context, d *models.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.donations[d.ID]; !ok {
		return store.ErrNotFound
	}
	stored := *d
	stored.Donor = nil
	s.donations[d.ID] = stored
	return nil
}

func (s *DonationStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.donations, id)
	return &d, nil
}

type ProjectStore struct {
	mu       sync.RWMutex
	projects map[primitive.ObjectID]models.Project
}

func (s *ProjectStore) Create(_ context.Context, p *models.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	stored := *p
	stored.Manager = nil
	s.projects[p.ID] = stored
	return nil
}

func (s *ProjectStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *ProjectStore) FindAll(_ context.Context) ([]models.Project, error) {
	return s.filter(func(models.Project) bool { return true })
}

func (s *ProjectStore) FindByManager(_ context.Context, managerID primitive.ObjectID) ([]models.Project, error) {
	return s.filter(func(p models.Project) bool { return p.ManagerID == managerID })
}

func (s *ProjectStore) filter(keep func(models.Project) bool) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := []models.Project{}
	for _, p := range s.projects {
		if keep(p) {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *ProjectStore) Update(_ context.Context, p *models.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return store.ErrNotFound
	}
	stored := *p
	stored.Manager = nil
	s.projects[p.ID] = stored
	return nil
}

func (s *ProjectStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.projects, id)
	return &p, nil
}

type EventStore struct {
	mu     sync.RWMutex
	events map[primitive.ObjectID]models.Event
}

func (s *EventStore) Create(_ context.Context, e *models.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	stored := *e
	stored.Organizer = nil
	s.events[e.ID] = stored
	return nil
}

func (s *EventStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (s *EventStore) FindAll(_ context.Context) ([]models.Event, error) {
	return s.filter(func(models.Event) bool { return true })
}

func (s *EventStore) FindByOrganizer(_ context.Context, organizerID primitive.ObjectID) ([]models.Event, error) {
	return s.filter(func(e models.Event) bool { return e.OrganizerID == organizerID })
}

func (s *EventStore) filter(keep func(models.Event) bool) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := []models.Event{}
	for _, e := range s.events {
		if keep(e) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (s *EventStore) Update(_ context.Context, e *models.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; !ok {
		return store.ErrNotFound
	}
	stored := *e
	stored.Organizer = nil
	s.events[e.ID] = stored
	return nil
}

func (s *EventStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.events, id)
	return &e, nil
}
