package notification

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSink struct {
	sent []Message
	err  error
}

func (f *fakeSink) Send(_ context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeStore struct {
	claimed map[string]bool
	queue   [][]byte
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{claimed: map[string]bool{}}
}

func (f *fakeStore) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.claimed[key] {
		return false, nil
	}
	f.claimed[key] = true
	return true, nil
}

func (f *fakeStore) PushQueue(_ context.Context, _ string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.queue = append(f.queue, payload)
	return nil
}

func (f *fakeStore) PopQueue(_ context.Context, _ string) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if len(f.queue) == 0 {
		return nil, false, nil
	}
	b := f.queue[0]
	f.queue = f.queue[1:]
	return b, true, nil
}

func TestDispatchSendsOncePerKey(t *testing.T) {
	sink := &fakeSink{}
	store := newFakeStore()
	d := NewDispatcher(sink, store, nil)

	msg := NewSubmissionAck("Alice", "alice@example.com")

	if err := d.Dispatch(context.Background(), msg, "notify:1:submitted"); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if err := d.Dispatch(context.Background(), msg, "notify:1:submitted"); err != nil {
		t.Fatalf("Dispatch() second call error = %v", err)
	}

	if len(sink.sent) != 1 {
		t.Errorf("sent %d messages, want 1", len(sink.sent))
	}
}

func TestDispatchEmptyKeySkipsIdempotency(t *testing.T) {
	sink := &fakeSink{}
	d := NewDispatcher(sink, newFakeStore(), nil)

	msg := NewOTP("alice@example.com", "123456")
	_ = d.Dispatch(context.Background(), msg, "")
	_ = d.Dispatch(context.Background(), msg, "")

	if len(sink.sent) != 2 {
		t.Errorf("sent %d messages, want 2", len(sink.sent))
	}
}

func TestDispatchStoreDownStillSends(t *testing.T) {
	sink := &fakeSink{}
	store := newFakeStore()
	store.err = errors.New("redis down")
	d := NewDispatcher(sink, store, nil)

	if err := d.Dispatch(context.Background(), NewSubmissionAck("A", "a@b.co"), "k"); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(sink.sent) != 1 {
		t.Errorf("sent %d messages, want 1", len(sink.sent))
	}
}

func TestDispatchFailureEnqueuesRetry(t *testing.T) {
	sink := &fakeSink{err: errors.New("smtp broken")}
	store := newFakeStore()
	d := NewDispatcher(sink, store, nil)

	err := d.Dispatch(context.Background(), NewSubmissionAck("A", "a@b.co"), "")
	if err == nil {
		t.Fatal("Dispatch() error = nil, want send failure")
	}
	if len(store.queue) != 1 {
		t.Errorf("queue length = %d, want 1", len(store.queue))
	}
}

func TestDrainRetries(t *testing.T) {
	sink := &fakeSink{err: errors.New("smtp broken")}
	store := newFakeStore()
	d := NewDispatcher(sink, store, nil)

	_ = d.Dispatch(context.Background(), NewSubmissionAck("A", "a@b.co"), "")
	_ = d.Dispatch(context.Background(), NewSubmissionAck("B", "b@b.co"), "")
	if len(store.queue) != 2 {
		t.Fatalf("queue length = %d, want 2", len(store.queue))
	}

	sink.err = nil
	sent, err := d.DrainRetries(context.Background())
	if err != nil {
		t.Fatalf("DrainRetries() error = %v", err)
	}
	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}
	if len(store.queue) != 0 {
		t.Errorf("queue length = %d, want 0", len(store.queue))
	}
}

func TestDrainRetriesStopsOnFailure(t *testing.T) {
	store := newFakeStore()
	failing := &fakeSink{err: errors.New("down")}
	d := NewDispatcher(failing, store, nil)

	_ = d.Dispatch(context.Background(), NewSubmissionAck("A", "a@b.co"), "")

	sent, err := d.DrainRetries(context.Background())
	if err == nil {
		t.Fatal("DrainRetries() error = nil, want failure")
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0", sent)
	}
	// The failed message goes back to the queue.
	if len(store.queue) != 1 {
		t.Errorf("queue length = %d, want 1", len(store.queue))
	}
}

func TestDrainRetriesDropsMalformedEntry(t *testing.T) {
	sink := &fakeSink{}
	store := newFakeStore()
	store.queue = append(store.queue, []byte("{not json"))
	d := NewDispatcher(sink, store, nil)

	sent, err := d.DrainRetries(context.Background())
	if err != nil {
		t.Fatalf("DrainRetries() error = %v", err)
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0", sent)
	}
	if len(store.queue) != 0 {
		t.Errorf("queue length = %d, want 0", len(store.queue))
	}
}
