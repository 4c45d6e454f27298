package store

import (
	"sort"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
)

// RecordStore is an in-memory, mutually exclusive map of identifier to Record.
//
// Every operation runs under mu, so callers observe the operations in some serial
// order. Create holds the write lock across id allocation and insertion, which is
// what keeps the id sequence free of gaps and duplicates. Reads share the lock and
// hand back copies, never references into the map.
type RecordStore struct {
	mu      sync.RWMutex
	records map[uint64]Record
	ids     *IDAllocator
	clock   func() time.Time

	instanceID ksuid.KSUID
	startedAt  time.Time

	creates uint64
	updates uint64
	deletes uint64
}

// NewRecordStore creates an empty record store
func NewRecordStore(config RecordStoreConfig) *RecordStore {
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	return &RecordStore{
		records:    make(map[uint64]Record),
		ids:        NewIDAllocator(),
		clock:      clock,
		instanceID: ksuid.New(),
		startedAt:  clock(),
	}
}

// Create allocates an identifier, stamps the creation time and inserts the record.
func (s *RecordStore) Create(title, content string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := Record{
		ID:        s.ids.Next(),
		Title:     title,
		Content:   content,
		CreatedAt: s.clock(),
	}
	s.records[record.ID] = record
	s.creates++

	return record
}

// List returns a snapshot of every record, ordered by identifier
func (s *RecordStore) List() []Record {
	s.mu.RLock()
	out := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the record with the given identifier or ErrNotFound
func (s *RecordStore) Get(id uint64) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// Update replaces title and content together. ID and CreatedAt are kept.
func (s *RecordStore) Update(id uint64, title, content string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[id]
	if !exists {
		return Record{}, ErrNotFound
	}
	record.Title = title
	record.Content = content
	s.records[id] = record
	s.updates++

	return record, nil
}

// Delete removes the record. The identifier is retired, not returned to the allocator.
func (s *RecordStore) Delete(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return ErrNotFound
	}
	delete(s.records, id)
	s.deletes++

	return nil
}

// Len returns the number of records currently present
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// InstanceID identifies this store for the life of the process.
// Identifiers restart at 0 in a new instance, so clients compare this value
// to tell a restarted server apart from the one that issued their ids.
func (s *RecordStore) InstanceID() string {
	return s.instanceID.String()
}

// Stats returns a consistent snapshot of the store counters
func (s *RecordStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		InstanceID: s.instanceID.String(),
		StartedAt:  s.startedAt,
		Records:    len(s.records),
		NextID:     s.ids.Peek(),
		Creates:    s.creates,
		Updates:    s.updates,
		Deletes:    s.deletes,
	}
}
