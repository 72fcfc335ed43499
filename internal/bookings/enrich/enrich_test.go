package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

type mockFetcher struct {
	competingFunc func(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error)
}

func (m *mockFetcher) CompetingBookings(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error) {
	return m.competingFunc(ctx, placeID, slots)
}

func pendingAt(id, placeID string, status model.Status) *model.Booking {
	return &model.Booking{
		ID:        id,
		Status:    status,
		Place:     &model.Place{ID: placeID},
		TimeSlots: []model.TimeSlot{{Date: "2026-05-01", StartTime: "09:00", EndTime: "10:00"}},
	}
}

func TestCompeting_OnlyAwaitingDecision(t *testing.T) {
	var calls []string
	var mu sync.Mutex
	fetcher := &mockFetcher{
		competingFunc: func(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error) {
			mu.Lock()
			calls = append(calls, placeID)
			mu.Unlock()
			return []*model.Booking{{ID: "rival-" + placeID, Status: model.StatusPending}}, nil
		},
	}

	bookings := []*model.Booking{
		pendingAt("b1", "p1", model.StatusPending),
		pendingAt("b2", "p2", model.StatusSelected),
		pendingAt("b3", "p3", model.StatusApproved),
		pendingAt("b4", "p4", model.StatusRejected),
		{ID: "b5", Status: model.StatusPending},
		nil,
	}

	got, err := New(fetcher, 2, time.Second, logger.NewNop()).Competing(context.Background(), bookings)
	if err != nil {
		t.Fatalf("Competing() error = %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 fetches, got %d (%v)", len(calls), calls)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got["b1"][0].ID != "rival-p1" || got["b2"][0].ID != "rival-p2" {
		t.Errorf("unexpected competitors %+v", got)
	}
}

func TestCompeting_ExcludesSelf(t *testing.T) {
	fetcher := &mockFetcher{
		competingFunc: func(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "b1", Status: model.StatusPending},
				{ID: "b9", Status: model.StatusSelected},
			}, nil
		},
	}

	got, err := New(fetcher, 1, 0, logger.NewNop()).Competing(context.Background(), []*model.Booking{pendingAt("b1", "p1", model.StatusPending)})
	if err != nil {
		t.Fatalf("Competing() error = %v", err)
	}
	if len(got["b1"]) != 1 || got["b1"][0].ID != "b9" {
		t.Errorf("expected only b9, got %+v", got["b1"])
	}
}

func TestCompeting_BoundedConcurrency(t *testing.T) {
	const limit = 3
	var inFlight, peak int32

	fetcher := &mockFetcher{
		competingFunc: func(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil, nil
		},
	}

	var bookings []*model.Booking
	for i := 0; i < 20; i++ {
		bookings = append(bookings, pendingAt(fmt.Sprintf("b%d", i), "p", model.StatusPending))
	}

	got, err := New(fetcher, limit, time.Second, logger.NewNop()).Competing(context.Background(), bookings)
	if err != nil {
		t.Fatalf("Competing() error = %v", err)
	}
	if len(got) != 20 {
		t.Errorf("expected 20 entries, got %d", len(got))
	}
	if peak > limit {
		t.Errorf("peak in-flight = %d, limit %d", peak, limit)
	}
}

func TestCompeting_FailureDoesNotBlockOthers(t *testing.T) {
	fetcher := &mockFetcher{
		competingFunc: func(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error) {
			if placeID == "broken" {
				return nil, errors.New("bookings API returned 500")
			}
			return []*model.Booking{{ID: "rival"}}, nil
		},
	}

	bookings := []*model.Booking{
		pendingAt("b1", "broken", model.StatusPending),
		pendingAt("b2", "ok", model.StatusPending),
		pendingAt("b3", "ok", model.StatusSelected),
	}

	got, err := New(fetcher, 1, time.Second, logger.NewNop()).Competing(context.Background(), bookings)
	if err != nil {
		t.Fatalf("Competing() error = %v", err)
	}
	if _, ok := got["b1"]; ok {
		t.Error("failed booking should have no entry")
	}
	if len(got["b2"]) != 1 || len(got["b3"]) != 1 {
		t.Errorf("other bookings should still be enriched, got %+v", got)
	}
}

func TestCompeting_PerItemTimeout(t *testing.T) {
	fetcher := &mockFetcher{
		competingFunc: func(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error) {
			if placeID == "slow" {
				<-ctx.Done()
				return nil, ctx.Err()
			}
			return []*model.Booking{{ID: "rival"}}, nil
		},
	}

	bookings := []*model.Booking{
		pendingAt("b1", "slow", model.StatusPending),
		pendingAt("b2", "fast", model.StatusPending),
	}

	got, err := New(fetcher, 2, 20*time.Millisecond, logger.NewNop()).Competing(context.Background(), bookings)
	if err != nil {
		t.Fatalf("a per-item timeout must not fail the batch: %v", err)
	}
	if _, ok := got["b1"]; ok {
		t.Error("timed out booking should have no entry")
	}
	if len(got["b2"]) != 1 {
		t.Error("fast booking should be enriched")
	}
}

func TestCompeting_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var started int32

	fetcher := &mockFetcher{
		competingFunc: func(fctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error) {
			if atomic.AddInt32(&started, 1) == 1 {
				cancel()
			}
			<-fctx.Done()
			return nil, fctx.Err()
		},
	}

	var bookings []*model.Booking
	for i := 0; i < 10; i++ {
		bookings = append(bookings, pendingAt(fmt.Sprintf("b%d", i), "p", model.StatusPending))
	}

	done := make(chan struct{})
	var got map[string][]*model.Booking
	var err error
	go func() {
		got, err = New(fetcher, 2, 0, logger.NewNop()).Competing(ctx, bookings)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Competing() did not return after cancellation")
	}

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if got != nil {
		t.Errorf("results must not be applied after cancellation, got %+v", got)
	}
	if n := atomic.LoadInt32(&started); n > 2 {
		t.Errorf("no new fetches should start after cancellation, started %d", n)
	}
}
