// Package enrich attaches competing bookings to the bookings that still
// await a host decision.
package enrich

import (
	"context"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type CompetingFetcher interface {
	CompetingBookings(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error)
}

type Enricher struct {
	fetcher     CompetingFetcher
	concurrency int
	timeout     time.Duration
	log         *logger.Logger
}

// New returns an Enricher running at most concurrency fetches at a time.
// A zero timeout leaves each fetch bounded only by the caller's context.
func New(fetcher CompetingFetcher, concurrency int, timeout time.Duration, log *logger.Logger) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Enricher{
		fetcher:     fetcher,
		concurrency: concurrency,
		timeout:     timeout,
		log:         log,
	}
}

// Competing fetches competitors for every pending or selected booking and
// returns them keyed by booking ID. A failed fetch is logged and leaves that
// booking without competitors. If ctx ends first the partial results are
// discarded and ctx's error is returned.
func (e *Enricher) Competing(ctx context.Context, bookings []*model.Booking) (map[string][]*model.Booking, error) {
	result := make(map[string][]*model.Booking)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, b := range bookings {
		if !needsCompetitors(b) {
			continue
		}
		if gctx.Err() != nil {
			break
		}

		b := b
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			competitors, err := e.fetchOne(gctx, b)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				e.log.Warn("Failed to fetch competing bookings",
					"booking_id", b.ID,
					"place_id", b.PlaceID(),
					"error", err,
				)
				return nil
			}

			mu.Lock()
			result[b.ID] = competitors
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Enricher) fetchOne(ctx context.Context, b *model.Booking) ([]*model.Booking, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	fetched, err := e.fetcher.CompetingBookings(ctx, b.PlaceID(), b.TimeSlots)
	if err != nil {
		return nil, err
	}

	competitors := make([]*model.Booking, 0, len(fetched))
	for _, c := range fetched {
		if c == nil || c.ID == b.ID {
			continue
		}
		competitors = append(competitors, c)
	}
	return competitors, nil
}

func needsCompetitors(b *model.Booking) bool {
	return b != nil && b.Status.IsAwaitingDecision() && b.PlaceID() != ""
}
