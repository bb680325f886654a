package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-sequence/pkg/sequence"
)

// Interface compliance check
var _ sequence.Sequence[string] = (*Bridge[string])(nil)

// =============================================================================
// Ordering Tests
// =============================================================================

func TestBridge_OrderPreservation(t *testing.T) {
	b := New[int]()
	const n = 1000

	go func() {
		for i := 0; i < n; i++ {
			b.Add(i)
		}
		b.Close()
	}()

	got, err := sequence.Collect(context.Background(), b)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != n {
		t.Fatalf("received %d values, want %d", len(got), n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestBridge_CloseDeliveredAfterAllValues(t *testing.T) {
	b := New[int]()
	b.Add(1)
	b.Close()
	b.Add(2) // after Close but before drain: still delivered

	got, err := sequence.Collect(context.Background(), b)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Collect() = %v, want [1 2]", got)
	}
}

func TestBridge_AddAfterTerminationIsDropped(t *testing.T) {
	b := New[int]()
	b.Close()

	if _, ok, err := b.TryAdvance(context.Background()); ok || err != nil {
		t.Fatalf("TryAdvance() = (_, %v, %v), want end-of-input", ok, err)
	}

	b.Add(1)
	if _, ok, err := b.TryAdvance(context.Background()); ok || err != nil {
		t.Errorf("TryAdvance() after termination = (_, %v, %v), want end-of-input", ok, err)
	}
}

// =============================================================================
// Concurrent Producer Tests
// =============================================================================

func TestBridge_ConcurrentProducers(t *testing.T) {
	const (
		producers = 8
		perThread = 500
	)

	b := New[string]()

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		p := p
		g.Go(func() error {
			for i := 0; i < perThread; i++ {
				b.Add(fmt.Sprintf("%d-%d", p, i))
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		b.Close()
	}()

	got, err := sequence.Collect(context.Background(), b)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != producers*perThread {
		t.Fatalf("received %d values, want %d", len(got), producers*perThread)
	}

	// No loss, no duplication; each producer's subsequence in original order.
	seen := make(map[string]bool, len(got))
	lastIdx := make([]int, producers)
	for i := range lastIdx {
		lastIdx[i] = -1
	}
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate value %q", v)
		}
		seen[v] = true

		var p, i int
		if _, err := fmt.Sscanf(v, "%d-%d", &p, &i); err != nil {
			t.Fatalf("bad value %q", v)
		}
		if i <= lastIdx[p] {
			t.Fatalf("producer %d out of order: %d after %d", p, i, lastIdx[p])
		}
		lastIdx[p] = i
	}
}

// =============================================================================
// Close Hook Tests
// =============================================================================

func TestBridge_HookFiresOnce(t *testing.T) {
	b := New[int]()
	var fired atomic.Int32
	b.AddCloseHook(func() { fired.Add(1) })

	b.Add(1)
	b.Close()

	ctx := context.Background()
	for {
		if _, ok, _ := b.TryAdvance(ctx); !ok {
			break
		}
	}
	// Pull past end-of-input repeatedly; the hook must not re-fire.
	for i := 0; i < 3; i++ {
		if _, ok, err := b.TryAdvance(ctx); ok || err != nil {
			t.Fatalf("TryAdvance() past end = (_, %v, %v)", ok, err)
		}
	}

	if got := fired.Load(); got != 1 {
		t.Errorf("hook fired %d times, want 1", got)
	}
}

func TestBridge_HooksFireInRegistrationOrder(t *testing.T) {
	b := New[int]()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		b.AddCloseHook(func() { order = append(order, i) })
	}

	b.Close()
	if _, ok, _ := b.TryAdvance(context.Background()); ok {
		t.Fatal("expected end-of-input")
	}

	for i, v := range order {
		if v != i {
			t.Fatalf("hook order = %v", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("fired %d hooks, want 5", len(order))
	}
}

func TestBridge_LateHookRunsImmediately(t *testing.T) {
	b := New[int]()
	b.Close()
	if _, ok, _ := b.TryAdvance(context.Background()); ok {
		t.Fatal("expected end-of-input")
	}

	ran := false
	b.AddCloseHook(func() { ran = true })
	if !ran {
		t.Error("hook registered after termination should run immediately")
	}
}

// =============================================================================
// Close Semantics Tests
// =============================================================================

func TestBridge_DoubleCloseIsNoop(t *testing.T) {
	b := New[int]()
	b.Close()
	b.Close()

	var fired atomic.Int32
	b.AddCloseHook(func() { fired.Add(1) })

	if _, ok, _ := b.TryAdvance(context.Background()); ok {
		t.Fatal("expected end-of-input")
	}
	if got := fired.Load(); got != 1 {
		t.Errorf("hook fired %d times, want 1", got)
	}
}

// =============================================================================
// Cancellation Tests
// =============================================================================

func TestBridge_CancellationIsNotEndOfInput(t *testing.T) {
	b := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok, err := b.TryAdvance(ctx)
	if ok {
		t.Fatal("TryAdvance() returned a value from an empty bridge")
	}
	if err == nil {
		t.Fatal("cancelled pull must surface an error, not end-of-input")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}

	// The bridge is still usable after a cancelled pull.
	b.Add(7)
	v, ok, err := b.TryAdvance(context.Background())
	if !ok || err != nil || v != 7 {
		t.Errorf("TryAdvance() = (%d, %v, %v), want (7, true, nil)", v, ok, err)
	}
}

// =============================================================================
// Protocol Tests
// =============================================================================

func TestBridge_NeverSplits(t *testing.T) {
	b := New[int]()
	if b.TrySplit() != nil {
		t.Error("TrySplit() should return nil")
	}
	if b.EstimateSize() != 0 {
		t.Errorf("EstimateSize() = %d, want 0", b.EstimateSize())
	}
}

func TestBridge_Len(t *testing.T) {
	b := New[int]()
	b.Add(1)
	b.Add(2)
	if got := b.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkBridge_AddAdvance(b *testing.B) {
	br := New[int]()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		br.Add(i)
		br.TryAdvance(ctx)
	}
}
