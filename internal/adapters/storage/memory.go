package storage

import (
	"context"
	"sync"

	"serverless-blog-api/internal/models"
)

// MemoryTable is an in-memory implementation of Table for tests and
// throwaway local runs
type MemoryTable struct {
	mu      sync.RWMutex
	records map[string]models.Record
	closed  bool
}

// NewMemoryTable creates a new MemoryTable instance
func NewMemoryTable() *MemoryTable {
	return &MemoryTable{
		records: make(map[string]models.Record),
	}
}

// Scan implements Table.Scan
func (m *MemoryTable) Scan(ctx context.Context) ([]models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, NewStorageError("Scan", "", ErrTableClosed)
	}

	records := make([]models.Record, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, record.Clone())
	}
	return records, nil
}

// Put implements Table.Put
func (m *MemoryTable) Put(ctx context.Context, record models.Record) error {
	if !record.HasID() {
		return NewStorageError("Put", "", ErrMissingKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return NewStorageError("Put", record.ID(), ErrTableClosed)
	}

	m.records[record.ID()] = record.Clone()
	return nil
}

// Get implements Table.Get
func (m *MemoryTable) Get(ctx context.Context, id string) (models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, NewStorageError("Get", id, ErrTableClosed)
	}

	record, exists := m.records[id]
	if !exists {
		return nil, NewStorageError("Get", id, ErrItemNotFound)
	}
	return record.Clone(), nil
}

// Delete implements Table.Delete
func (m *MemoryTable) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return NewStorageError("Delete", id, ErrTableClosed)
	}

	delete(m.records, id)
	return nil
}

// Close implements Table.Close
func (m *MemoryTable) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make(map[string]models.Record)
	m.closed = true
	return nil
}

// Reset clears all stored records
func (m *MemoryTable) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]models.Record)
}

// Len returns the number of stored records
func (m *MemoryTable) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
