package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAllocator_Sequential(t *testing.T) {
	a := NewIDAllocator()

	assert.Equal(t, uint64(0), a.Peek())
	for want := uint64(0); want < 5; want++ {
		assert.Equal(t, want, a.Next())
	}
	assert.Equal(t, uint64(5), a.Peek())
}

func TestIDAllocator_Concurrent(t *testing.T) {
	a := NewIDAllocator()
	const callers = 50
	const perCaller = 200

	var wg sync.WaitGroup
	results := make(chan uint64, callers*perCaller)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perCaller; j++ {
				results <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]struct{}, callers*perCaller)
	for id := range results {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, callers*perCaller)
	for id := uint64(0); id < callers*perCaller; id++ {
		assert.Contains(t, seen, id)
	}
}

func TestRecordStore_ConcurrentCreate(t *testing.T) {
	s := NewRecordStore(RecordStoreConfig{})
	const n = 100

	var wg sync.WaitGroup
	ids := make([]uint64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := s.Create(fmt.Sprintf("title-%d", i), fmt.Sprintf("content-%d", i))
			ids[i] = r.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for _, id := range ids {
		require.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
	for id := uint64(0); id < n; id++ {
		assert.True(t, seen[id], "id %d missing", id)
	}
	assert.Equal(t, n, s.Len())
}

func TestRecordStore_ConcurrentCreateVisibleImmediately(t *testing.T) {
	s := NewRecordStore(RecordStoreConfig{})
	const n = 64

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := fmt.Sprintf("t%d", i)
			r := s.Create(title, "c")
			got, err := s.Get(r.ID)
			if err != nil {
				errs <- err
				return
			}
			if got.Title != title {
				errs <- fmt.Errorf("id %d: got title %q, want %q", r.ID, got.Title, title)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestRecordStore_UpdatesNeverTorn(t *testing.T) {
	s := NewRecordStore(RecordStoreConfig{})
	r := s.Create("v0", "v0")

	const writers = 8
	const rounds = 500

	var wg sync.WaitGroup
	stop := make(chan struct{})
	torn := make(chan Record, 1)

	// Readers check that title and content always come from the same update.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				got, err := s.Get(r.ID)
				if err != nil {
					continue
				}
				if got.Title != got.Content {
					select {
					case torn <- got:
					default:
					}
					return
				}
				for _, listed := range s.List() {
					if listed.Title != listed.Content {
						select {
						case torn <- listed:
						default:
						}
						return
					}
				}
			}
		}()
	}

	var writersWG sync.WaitGroup
	for w := 0; w < writers; w++ {
		writersWG.Add(1)
		go func(w int) {
			defer writersWG.Done()
			for i := 0; i < rounds; i++ {
				v := fmt.Sprintf("w%d-%d", w, i)
				_, err := s.Update(r.ID, v, v)
				assert.NoError(t, err)
			}
		}(w)
	}
	writersWG.Wait()
	close(stop)
	wg.Wait()

	select {
	case got := <-torn:
		t.Fatalf("observed partially updated record: %+v", got)
	default:
	}

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.CreatedAt, got.CreatedAt)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, uint64(writers*rounds), s.Stats().Updates)
}

func TestRecordStore_ConcurrentCreateDelete(t *testing.T) {
	s := NewRecordStore(RecordStoreConfig{})
	const n = 200

	var wg sync.WaitGroup
	var mu sync.Mutex
	deleted := 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := s.Create("memo", "")
			if i%2 == 0 {
				return
			}
			if err := s.Delete(r.ID); err == nil {
				mu.Lock()
				deleted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n/2, deleted)
	assert.Len(t, s.List(), n-deleted)
	assert.Equal(t, uint64(n), s.Stats().NextID)
}

func TestRecordStore_ConcurrentDeleteSameID(t *testing.T) {
	s := NewRecordStore(RecordStoreConfig{})
	r := s.Create("contended", "")

	const callers = 32
	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Delete(r.ID)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, ErrNotFound), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
}
