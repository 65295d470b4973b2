package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type MemStore struct {
	cost int

	mu         sync.RWMutex
	byUsername map[string][]byte

	// compared against when the username is unknown so both paths cost a bcrypt run
	dummy []byte
}

func NewMemStore(cost int) *MemStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &MemStore{
		cost:       cost,
		byUsername: make(map[string][]byte),
		dummy:      dummy,
	}
}

func (s *MemStore) Create(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.byUsername[username] = hash
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byUsername[username]
	return ok
}

func (s *MemStore) Verify(username, password string) bool {
	s.mu.RLock()
	hash, ok := s.byUsername[username]
	s.mu.RUnlock()

	if !ok {
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
