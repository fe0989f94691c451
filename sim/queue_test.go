package sim

import (
	"testing"
)

func TestWaitQueue_Dequeue_FIFO(t *testing.T) {
	// GIVEN clients enqueued in order 3, 1, 2
	wq := &WaitQueue{}
	for _, id := range []int{3, 1, 2} {
		wq.Enqueue(id)
	}

	// WHEN dequeued until empty
	var got []int
	for wq.Len() > 0 {
		got = append(got, wq.Dequeue())
	}

	// THEN order of entry is preserved, not id order
	want := []int{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dequeue order = %v, want %v", got, want)
		}
	}
	if id := wq.Dequeue(); id != 0 {
		t.Errorf("Dequeue on empty queue: got %d, want 0", id)
	}
}

func TestWaitQueue_Enqueue_InvalidID_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on Enqueue(0)")
		}
	}()
	wq := &WaitQueue{}
	wq.Enqueue(0)
}

func TestWaitQueue_StringAndItems(t *testing.T) {
	wq := &WaitQueue{}
	if s := wq.String(); s != "[]" {
		t.Errorf("String() on empty = %q, want []", s)
	}
	wq.Enqueue(4)
	wq.Enqueue(7)
	if s := wq.String(); s != "[4 7]" {
		t.Errorf("String() = %q, want [4 7]", s)
	}
	if items := wq.Items(); len(items) != 2 || items[0] != 4 {
		t.Errorf("Items() = %v, want [4 7]", items)
	}
}
