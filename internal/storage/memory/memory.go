// Package memory provides an in-memory implementation of storage.Store.
//
// It keeps unit tests and local development lightweight; it intentionally
// favors clarity over performance.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"crashlog/internal/models"
	"crashlog/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with maps guarded by a RWMutex.
// Records are copied on the way in and out so callers never share memory
// with the store.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]models.User
	persons    map[string]models.Person
	insurances map[string]models.Insurance
	accidents  map[string]models.Accident

	// creation order for list operations
	insuranceOrder []string
	accidentOrder  []string
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]models.User),
		persons:    make(map[string]models.Person),
		insurances: make(map[string]models.Insurance),
		accidents:  make(map[string]models.Accident),
	}
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// CreateUser stores a new user, enforcing email uniqueness.
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return storage.ErrDuplicateEmail
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
	s.users[user.ID] = *user
	return nil
}

// GetUserByEmail retrieves a user by email.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetUserByID retrieves a user by ID.
func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, ok := s.users[id]; ok {
		return &user, nil
	}
	return nil, storage.ErrNotFound
}

// CreatePerson stores a new person.
func (s *MemoryStore) CreatePerson(_ context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	s.persons[person.ID] = *person
	return nil
}

// GetPerson retrieves a person by ID.
func (s *MemoryStore) GetPerson(_ context.Context, id string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if person, ok := s.persons[id]; ok {
		return &person, nil
	}
	return nil, storage.ErrNotFound
}

// UpdatePerson overwrites an existing person.
func (s *MemoryStore) UpdatePerson(_ context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[person.ID]; !ok {
		return storage.ErrNotFound
	}
	s.persons[person.ID] = *person
	return nil
}

// DeletePerson removes a person by ID.
func (s *MemoryStore) DeletePerson(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.persons, id)
	return nil
}

// CreateInsurance stores a new insurance record.
func (s *MemoryStore) CreateInsurance(_ context.Context, ins *models.Insurance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ins.ID == "" {
		ins.ID = uuid.New().String()
	}
	s.insurances[ins.ID] = *ins
	s.insuranceOrder = append(s.insuranceOrder, ins.ID)
	return nil
}

// GetInsurance retrieves an insurance record by ID.
func (s *MemoryStore) GetInsurance(_ context.Context, id string) (*models.Insurance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ins, ok := s.insurances[id]; ok {
		return &ins, nil
	}
	return nil, storage.ErrNotFound
}

// UpdateInsurance overwrites an existing insurance record.
func (s *MemoryStore) UpdateInsurance(_ context.Context, ins *models.Insurance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.insurances[ins.ID]; !ok {
		return storage.ErrNotFound
	}
	s.insurances[ins.ID] = *ins
	return nil
}

// DeleteInsurance removes an insurance record by ID.
func (s *MemoryStore) DeleteInsurance(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.insurances[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.insurances, id)
	return nil
}

// ListInsurances returns every insurance record in creation order.
func (s *MemoryStore) ListInsurances(_ context.Context) ([]*models.Insurance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Insurance
	for _, id := range s.insuranceOrder {
		if ins, ok := s.insurances[id]; ok {
			i := ins
			result = append(result, &i)
		}
	}
	return result, nil
}

// ListInsurancesByOwner returns the records owned by the given aggregate.
func (s *MemoryStore) ListInsurancesByOwner(_ context.Context, kind models.OwnerKind, ownerID string) ([]*models.Insurance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Insurance
	for _, id := range s.insuranceOrder {
		if ins, ok := s.insurances[id]; ok && ins.OwnerKind == kind && ins.OwnerID == ownerID {
			i := ins
			result = append(result, &i)
		}
	}
	return result, nil
}

// DeleteAllInsurances wipes the insurance ledger.
func (s *MemoryStore) DeleteAllInsurances(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insurances = make(map[string]models.Insurance)
	s.insuranceOrder = nil
	return nil
}

// CreateAccident stores a new accident report.
func (s *MemoryStore) CreateAccident(_ context.Context, acc *models.Accident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc.ID == "" {
		acc.ID = uuid.New().String()
	}
	if acc.Date.IsZero() {
		acc.Date = time.Now().UTC()
	}
	s.accidents[acc.ID] = copyAccident(acc)
	s.accidentOrder = append(s.accidentOrder, acc.ID)
	return nil
}

// GetAccident retrieves an accident report by ID.
func (s *MemoryStore) GetAccident(_ context.Context, id string) (*models.Accident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if acc, ok := s.accidents[id]; ok {
		a := copyAccident(&acc)
		return &a, nil
	}
	return nil, storage.ErrNotFound
}

// UpdateAccident overwrites an existing accident report.
func (s *MemoryStore) UpdateAccident(_ context.Context, acc *models.Accident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accidents[acc.ID]; !ok {
		return storage.ErrNotFound
	}
	s.accidents[acc.ID] = copyAccident(acc)
	return nil
}

// DeleteAccident removes an accident report by ID.
func (s *MemoryStore) DeleteAccident(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accidents[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.accidents, id)
	return nil
}

// ListAccidents returns every accident report in creation order.
func (s *MemoryStore) ListAccidents(_ context.Context) ([]*models.Accident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Accident
	for _, id := range s.accidentOrder {
		if acc, ok := s.accidents[id]; ok {
			a := copyAccident(&acc)
			result = append(result, &a)
		}
	}
	return result, nil
}

// ListAccidentsByUser returns the reports filed by the given user.
func (s *MemoryStore) ListAccidentsByUser(_ context.Context, userID string) ([]*models.Accident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Accident
	for _, id := range s.accidentOrder {
		if acc, ok := s.accidents[id]; ok && acc.UserID == userID {
			a := copyAccident(&acc)
			result = append(result, &a)
		}
	}
	return result, nil
}

// copyAccident deep-copies the embedded collections so the stored record
// never aliases caller-held slices.
func copyAccident(acc *models.Accident) models.Accident {
	out := *acc
	out.Photos = append([]models.Photo(nil), acc.Photos...)
	out.Witnesses = append([]models.Witness(nil), acc.Witnesses...)
	out.OtherVehicles = append([]models.Vehicle(nil), acc.OtherVehicles...)
	return out
}
