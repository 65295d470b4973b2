package catalog

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const DefaultCreateDelay = 5 * time.Second

type MemStoreConfig struct {
	Pool Submitter
	// Delay is slept by the worker before each commit.
	Delay time.Duration
	Log   *zap.Logger
}

type MemStore struct {
	pool  Submitter
	delay time.Duration
	log   *zap.Logger

	lastID atomic.Int64

	mu    sync.RWMutex
	m     map[int64]Product
	names map[string]int // lowercased name -> committed copies
}

func NewMemStore(cfg MemStoreConfig) *MemStore {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &MemStore{
		pool:  cfg.Pool,
		delay: cfg.Delay,
		log:   log,
		m:     make(map[int64]Product),
		names: make(map[string]int),
	}
}

func (s *MemStore) All() []Product {
	s.mu.RLock()
	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemStore) Find(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

func (s *MemStore) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[id]
	if !ok {
		return
	}
	delete(s.m, id)

	key := nameKey(p.Name)
	if s.names[key] <= 1 {
		delete(s.names, key)
	} else {
		s.names[key]--
	}
}

// ExistsByName sees committed products only, never queued ones.
func (s *MemStore) ExistsByName(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names[nameKey(name)] > 0
}

// SubmitCreate queues the insert and returns the enqueue outcome. A refused
// task is logged here and never retried.
func (s *MemStore) SubmitCreate(name string) error {
	s.log.Info("starting product async creation", zap.String("name", name))

	err := s.pool.Submit(func() {
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
		p := s.commit(name)
		s.log.Info("product created", zap.String("name", p.Name), zap.Int64("id", p.ID))
	})
	if err != nil {
		s.log.Error("product creation rejected", zap.String("name", name), zap.Error(err))
		return err
	}
	return nil
}

func (s *MemStore) commit(name string) Product {
	p := Product{ID: s.lastID.Add(1), Name: name}

	s.mu.Lock()
	s.m[p.ID] = p
	s.names[nameKey(name)]++
	s.mu.Unlock()

	return p
}

func nameKey(name string) string {
	return strings.ToLower(name)
}
