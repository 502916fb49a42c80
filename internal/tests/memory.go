// Package tests contains in-memory stores for testing services and routes without Redis or Postgres.
package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/lk16/reversi/internal/repository"
)

// MemoryMatchStore keeps matches as JSON, like the Redis repository does.
type MemoryMatchStore struct {
	data      map[string][]byte
	dataMutex sync.Mutex
}

func NewMemoryMatchStore() *MemoryMatchStore {
	return &MemoryMatchStore{data: make(map[string][]byte)}
}

func (s *MemoryMatchStore) Create(_ context.Context, record repository.MatchRecord) error {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	if _, ok := s.data[record.ID]; ok {
		return fmt.Errorf("match %s already exists", record.ID)
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.data[record.ID] = jsonData
	return nil
}

// Put stores a record, replacing any existing one.
func (s *MemoryMatchStore) Put(record repository.MatchRecord) error {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	jsonData, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.data[record.ID] = jsonData
	return nil
}

func (s *MemoryMatchStore) get(id string) (repository.MatchRecord, error) {
	jsonData, ok := s.data[id]
	if !ok {
		return repository.MatchRecord{}, fmt.Errorf("%w: %s", repository.ErrMatchNotFound, id)
	}

	var record repository.MatchRecord
	err := json.Unmarshal(jsonData, &record)
	return record, err
}

func (s *MemoryMatchStore) Get(_ context.Context, id string) (repository.MatchRecord, error) {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	return s.get(id)
}

func (s *MemoryMatchStore) Update(
	_ context.Context,
	id string,
	update func(*repository.MatchRecord) error,
) (repository.MatchRecord, error) {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	record, err := s.get(id)
	if err != nil {
		return repository.MatchRecord{}, err
	}

	if err = update(&record); err != nil {
		return repository.MatchRecord{}, err
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return repository.MatchRecord{}, err
	}

	s.data[id] = jsonData
	return record, nil
}

func (s *MemoryMatchStore) Delete(_ context.Context, id string) error {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	if _, ok := s.data[id]; !ok {
		return fmt.Errorf("%w: %s", repository.ErrMatchNotFound, id)
	}

	delete(s.data, id)
	return nil
}

// MemoryResultStore keeps results in a slice.
type MemoryResultStore struct {
	Results []repository.MatchResult
	SaveErr error
	mutex   sync.Mutex
}

func (s *MemoryResultStore) Save(_ context.Context, result repository.MatchResult) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}

	for _, found := range s.Results {
		if found.ID == result.ID {
			return nil
		}
	}

	s.Results = append(s.Results, result)
	return nil
}

func (s *MemoryResultStore) List(_ context.Context, limit int) ([]repository.MatchResult, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	results := append([]repository.MatchResult{}, s.Results...)
	sort.Slice(results, func(i, j int) bool {
		return results[i].FinishedAt.After(results[j].FinishedAt)
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (s *MemoryResultStore) Stats(_ context.Context) (map[string]int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := map[string]int{"black": 0, "white": 0, "draw": 0}
	for _, result := range s.Results {
		stats[result.Winner]++
	}

	return stats, nil
}
