package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *RecordStore {
	t.Helper()
	return NewRecordStore(RecordStoreConfig{})
}

func TestRecordStore_BasicOperations(t *testing.T) {
	s := newTestStore(t)

	start := time.Now()
	created := s.Create("groceries", "milk, eggs")

	if created.ID != 0 {
		t.Errorf("Expected first id to be 0, got %d", created.ID)
	}
	if created.CreatedAt.Before(start) {
		t.Errorf("CreatedAt %v is earlier than call start %v", created.CreatedAt, start)
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if got != created {
		t.Errorf("Retrieved record mismatch: got %+v, want %+v", got, created)
	}
}

func TestRecordStore_Scenario(t *testing.T) {
	s := newTestStore(t)

	a := s.Create("A", "1")
	b := s.Create("B", "2")
	if a.ID != 0 || b.ID != 1 {
		t.Fatalf("Expected ids 0 and 1, got %d and %d", a.ID, b.ID)
	}

	updated, err := s.Update(0, "A2", "1b")
	if err != nil {
		t.Fatalf("Failed to update record: %v", err)
	}
	if updated.ID != 0 || updated.Title != "A2" || updated.Content != "1b" {
		t.Errorf("Unexpected updated record: %+v", updated)
	}

	if err := s.Delete(1); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}

	if _, err := s.Get(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	records := s.List()
	if len(records) != 1 {
		t.Fatalf("Expected exactly one record, got %d", len(records))
	}
	if records[0].ID != 0 || records[0].Title != "A2" {
		t.Errorf("Unexpected remaining record: %+v", records[0])
	}
}

func TestRecordStore_UpdatePreservesIdentity(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := created
	s := NewRecordStore(RecordStoreConfig{Clock: func() time.Time {
		now := tick
		tick = tick.Add(time.Hour)
		return now
	}})

	original := s.Create("title", "content")

	updated, err := s.Update(original.ID, "new title", "new content")
	if err != nil {
		t.Fatalf("Failed to update record: %v", err)
	}

	got, err := s.Get(original.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}

	if got != updated {
		t.Errorf("Get after update mismatch: got %+v, want %+v", got, updated)
	}
	if got.ID != original.ID {
		t.Errorf("ID changed: got %d, want %d", got.ID, original.ID)
	}
	if !got.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt changed: got %v, want %v", got.CreatedAt, original.CreatedAt)
	}
	if got.Title != "new title" || got.Content != "new content" {
		t.Errorf("Fields not replaced: %+v", got)
	}
}

func TestRecordStore_NotFound(t *testing.T) {
	s := newTestStore(t)
	s.Create("keep", "me")

	tests := []struct {
		name string
		op   func() error
	}{
		{
			name: "get never existed",
			op: func() error {
				_, err := s.Get(42)
				return err
			},
		},
		{
			name: "update never existed",
			op: func() error {
				_, err := s.Update(42, "t", "c")
				return err
			},
		},
		{
			name: "delete never existed",
			op: func() error {
				return s.Delete(42)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}

	// Failed operations leave the store untouched
	if s.Len() != 1 {
		t.Errorf("Expected 1 record, got %d", s.Len())
	}
	stats := s.Stats()
	if stats.Updates != 0 || stats.Deletes != 0 {
		t.Errorf("Expected no update/delete counters, got %+v", stats)
	}
}

func TestRecordStore_DeleteTwice(t *testing.T) {
	s := newTestStore(t)
	r := s.Create("once", "")

	if err := s.Delete(r.ID); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}
	if err := s.Delete(r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.Update(r.ID, "back", "again"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on update after delete, got %v", err)
	}
}

func TestRecordStore_IdentifiersNotReused(t *testing.T) {
	s := newTestStore(t)

	first := s.Create("a", "")
	if err := s.Delete(first.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	second := s.Create("b", "")
	if second.ID != first.ID+1 {
		t.Errorf("Expected id %d after delete, got %d", first.ID+1, second.ID)
	}
}

func TestRecordStore_EmptyFieldsAllowed(t *testing.T) {
	s := newTestStore(t)

	r := s.Create("", "")
	got, err := s.Get(r.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if got.Title != "" || got.Content != "" {
		t.Errorf("Expected empty fields, got %+v", got)
	}
}

func TestRecordStore_ListIsSnapshot(t *testing.T) {
	s := newTestStore(t)
	s.Create("one", "1")
	s.Create("two", "2")

	records := s.List()
	records[0].Title = "mutated"

	got, err := s.Get(0)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if got.Title != "one" {
		t.Errorf("List result aliases store internals: title is %q", got.Title)
	}

	for i, r := range s.List() {
		if r.ID != uint64(i) {
			t.Errorf("Expected list ordered by id, position %d has id %d", i, r.ID)
		}
	}
}

func TestRecordStore_Stats(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		s.Create("memo", "")
	}
	if _, err := s.Update(0, "memo", "x"); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	if err := s.Delete(2); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	stats := s.Stats()
	if stats.Records != 2 {
		t.Errorf("Expected 2 records, got %d", stats.Records)
	}
	if stats.NextID != 3 {
		t.Errorf("Expected next id 3, got %d", stats.NextID)
	}
	if stats.Creates != 3 || stats.Updates != 1 || stats.Deletes != 1 {
		t.Errorf("Unexpected counters: %+v", stats)
	}
	if stats.InstanceID == "" || stats.InstanceID != s.InstanceID() {
		t.Errorf("Unexpected instance id %q", stats.InstanceID)
	}
}

func TestRecordStore_InstanceIDsDiffer(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	if a.InstanceID() == b.InstanceID() {
		t.Errorf("Expected distinct instance ids, both were %s", a.InstanceID())
	}
}

func TestStoreError(t *testing.T) {
	if ErrNotFound.Error() != "record not found" {
		t.Errorf("Unexpected error message: %s", ErrNotFound.Error())
	}
}
