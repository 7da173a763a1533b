package utils

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestStringSetNoDuplicates(t *testing.T) {
	s := NewStringSet()

	added := s.Add("Toyota")
	if !added {
		t.Error("first Add should return true")
	}

	added = s.Add("Toyota")
	if added {
		t.Error("second Add of same value should return false")
	}

	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestStringSetSeedValues(t *testing.T) {
	s := NewStringSet("Honda", "Suzuki", "Honda")

	if s.Size() != 2 {
		t.Errorf("size: got %d, want 2", s.Size())
	}
	if !s.Contains("Suzuki") {
		t.Error("expected Suzuki to be present")
	}
	if s.Contains("Toyota") {
		t.Error("Toyota should not be present")
	}
}

func TestStringSetValuesSorted(t *testing.T) {
	s := NewStringSet("Suzuki", "Honda", "Toyota")

	got := s.Values()
	want := []string{"Honda", "Suzuki", "Toyota"}
	if len(got) != len(want) {
		t.Fatalf("values len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStringSetConcurrency(t *testing.T) {
	s := NewStringSet()
	var added int64
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Add("same") {
				atomic.AddInt64(&added, 1)
			}
		}()
	}
	wg.Wait()

	if added != 1 {
		t.Errorf("expected exactly 1 successful add, got %d", added)
	}
}
