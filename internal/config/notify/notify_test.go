package notify

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_WithAsync(t *testing.T) {
	n := New(WithAsync(100))
	defer n.Close()
	if !n.async {
		t.Error("expected async = true")
	}

	sync0 := New(WithAsync(0))
	defer sync0.Close()
	if sync0.async {
		t.Error("zero buffer should stay synchronous")
	}
}

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeLoad, "load"},
		{ChangeReload, "reload"},
		{ChangeFailed, "failed"},
		{ChangeType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var received atomic.Bool
	sub := n.Subscribe(func(change Change) {
		received.Store(true)
	})

	n.Notify(Change{Type: ChangeLoad, Snapshot: "a"})
	if !received.Load() {
		t.Error("observer did not receive notification")
	}

	sub.Unsubscribe()
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}

	received.Store(false)
	n.Notify(Change{Type: ChangeLoad, Snapshot: "b"})
	if received.Load() {
		t.Error("unsubscribed observer received notification")
	}
}

func TestNotifier_SubscriptionOrder(t *testing.T) {
	n := New()
	defer n.Close()

	var order []int
	for i := range 5 {
		n.Subscribe(func(Change) { order = append(order, i) })
	}

	n.Notify(Change{Type: ChangeReload})

	for i, got := range order {
		if got != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("len(order) = %d, want 5", len(order))
	}
}

func TestNotifier_FailedChangeCarriesError(t *testing.T) {
	n := New()
	defer n.Close()

	boom := errors.New("boom")
	var got Change
	n.Subscribe(func(c Change) { got = c })

	n.Notify(Change{Type: ChangeFailed, Snapshot: "old", Source: "keys.toml", Err: boom})

	if !errors.Is(got.Err, boom) {
		t.Errorf("Err = %v, want %v", got.Err, boom)
	}
	if got.Source != "keys.toml" {
		t.Errorf("Source = %q", got.Source)
	}
}

func TestNotifier_Async(t *testing.T) {
	n := New(WithAsync(10))

	var count atomic.Int32
	var wg sync.WaitGroup
	wg.Add(3)
	n.Subscribe(func(Change) {
		count.Add(1)
		wg.Done()
	})

	for range 3 {
		n.Notify(Change{Type: ChangeReload})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async delivery")
	}

	n.Close()
	if got := count.Load(); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
}

func TestNotifier_NotifyAfterClose(t *testing.T) {
	n := New()
	var called atomic.Bool
	n.Subscribe(func(Change) { called.Store(true) })

	n.Close()
	n.Close()
	n.Notify(Change{Type: ChangeLoad})

	if called.Load() {
		t.Error("observer called after Close")
	}
}

func TestNotifier_ConcurrentAccess(t *testing.T) {
	n := New(WithAsync(64))
	defer n.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := n.Subscribe(func(Change) {})
			sub.Unsubscribe()
		}()
		go func() {
			defer wg.Done()
			n.Notify(Change{Type: ChangeLoad})
		}()
	}
	wg.Wait()
}
