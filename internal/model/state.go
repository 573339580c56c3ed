package model

import "sync"

// ProviderState holds the record count a paged provider established on its
// first page and the generation used to drop responses that outlive a reset.
type ProviderState struct {
	count    int64
	hasCount bool
	gen      uint64
	mx       sync.Mutex
}

// Count returns the cached record count, if any.
func (s *ProviderState) Count() (int64, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.count, s.hasCount
}

// Generation returns the current state generation.
func (s *ProviderState) Generation() uint64 {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.gen
}

// Reset forgets the cached count. Requests issued before the reset are stale.
func (s *ProviderState) Reset() {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.count, s.hasCount = 0, false
	s.gen++
}

func (s *ProviderState) needsCount() bool {
	s.mx.Lock()
	defer s.mx.Unlock()

	return !s.hasCount
}

func (s *ProviderState) current(gen uint64) bool {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.gen == gen
}

// commit stores n as the count when it is the first one of generation gen.
// It returns the count to report, and false if gen is stale.
func (s *ProviderState) commit(gen uint64, hasN bool, n int64) (*int64, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.gen != gen {
		return nil, false
	}
	if hasN && !s.hasCount {
		s.count, s.hasCount = n, true
	}
	if !s.hasCount {
		return nil, true
	}
	total := s.count

	return &total, true
}
