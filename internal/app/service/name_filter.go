package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	defaultNameCapacity = 100_000
	defaultNameFPRate   = 0.01
)

// NameFilter remembers gif names seen by this process. A negative answer from
// MayContain lets CreateGif skip the existence query; the unique index on
// gifs.name still rejects names added by other replicas.
type NameFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewNameFilter sizes the filter for capacity names at the given false-positive rate.
func NewNameFilter(capacity uint, fpRate float64) *NameFilter {
	if capacity == 0 {
		capacity = defaultNameCapacity
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = defaultNameFPRate
	}
	return &NameFilter{filter: bloom.NewWithEstimates(capacity, fpRate)}
}

// Add records name as taken.
func (f *NameFilter) Add(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(name)
}

// MayContain reports whether name might already be taken.
func (f *NameFilter) MayContain(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(name)
}

// NameLister is the subset of the repository needed to seed the filter.
type NameLister interface {
	ListNames(ctx context.Context) ([]string, error)
}

// Warm loads every stored name into the filter.
func (f *NameFilter) Warm(ctx context.Context, lister NameLister) (int, error) {
	names, err := lister.ListNames(ctx)
	if err != nil {
		return 0, fmt.Errorf("warm name filter: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range names {
		f.filter.AddString(name)
	}
	return len(names), nil
}
