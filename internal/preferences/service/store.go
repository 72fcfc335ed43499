package service

import (
	"context"
	"errors"
	"fmt"
	prefserrors "spacebook/internal/preferences/errors"
	"spacebook/internal/preferences/repository"
	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/kafka"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
	"sync"
	"time"
)

type EventPublisher interface {
	Publish(ctx context.Context, topic, key, eventType string, payload any) error
}

type PreferencesValidator interface {
	ValidatePreferences(prefs *model.Preferences) error
}

// Store is the single owner of user preferences. Readers get immutable
// values; every change goes through Update or ApplyRemote and is fanned out
// to subscribers.
type Store interface {
	Get(ctx context.Context, userID string) (model.Preferences, error)
	Update(ctx context.Context, userID string, fn func(model.Preferences) model.Preferences) (model.Preferences, error)
	ApplyRemote(ctx context.Context, change model.PreferencesChange) error
	Subscribe(buffer int) (<-chan model.PreferencesChange, func())
	Source() string
}

type subscriber struct {
	ch   chan model.PreferencesChange
	done chan struct{}
}

type preferencesStore struct {
	repo      repository.PreferencesRepository
	publisher EventPublisher
	validator PreferencesValidator
	defaults  model.Preferences
	topic     string
	source    string
	log       *logger.Logger

	mu    sync.RWMutex
	cache map[string]model.Preferences

	// writeMu serializes read-modify-write cycles so concurrent updates for
	// the same user cannot lose each other's changes.
	writeMu sync.Mutex

	subsMu sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

type Options struct {
	Defaults model.Preferences
	Topic    string
	Source   string
}

func NewStore(repo repository.PreferencesRepository, publisher EventPublisher, validator PreferencesValidator, opts Options, log *logger.Logger) Store {
	return &preferencesStore{
		repo:      repo,
		publisher: publisher,
		validator: validator,
		defaults:  opts.Defaults.Normalize(),
		topic:     opts.Topic,
		source:    opts.Source,
		log:       log,
		cache:     make(map[string]model.Preferences),
		subs:      make(map[int]*subscriber),
	}
}

func (s *preferencesStore) Source() string {
	return s.source
}

// Get never fails for a user without stored preferences; they get defaults.
func (s *preferencesStore) Get(ctx context.Context, userID string) (model.Preferences, error) {
	s.mu.RLock()
	prefs, ok := s.cache[userID]
	s.mu.RUnlock()
	if ok {
		return prefs, nil
	}

	stored, err := s.repo.Find(ctx, userID)
	switch {
	case errors.Is(err, prefserrors.ErrNotFound):
		return s.defaults, nil
	case err != nil:
		return model.Preferences{}, apperrors.Internal("Failed to load preferences", err)
	}

	prefs = stored.Normalize()
	s.mu.Lock()
	s.cache[userID] = prefs
	s.mu.Unlock()
	return prefs, nil
}

func (s *preferencesStore) Update(ctx context.Context, userID string, fn func(model.Preferences) model.Preferences) (model.Preferences, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.Get(ctx, userID)
	if err != nil {
		return model.Preferences{}, err
	}

	next := fn(current).Normalize()
	if err := s.validator.ValidatePreferences(&next); err != nil {
		return model.Preferences{}, validationError(err)
	}
	if next == current {
		return current, nil
	}

	if err := s.repo.Save(ctx, userID, next); err != nil {
		return model.Preferences{}, apperrors.Internal("Failed to save preferences", err)
	}

	s.mu.Lock()
	s.cache[userID] = next
	s.mu.Unlock()

	change := model.PreferencesChange{
		UserID:      userID,
		Previous:    current,
		Preferences: next,
		Source:      s.source,
		ChangedAt:   time.Now().UTC(),
	}
	s.notify(ctx, change)

	if err := s.publisher.Publish(ctx, s.topic, userID, kafka.EventPreferencesChanged, change); err != nil {
		s.log.Warn("Failed to publish preferences change",
			"user_id", userID,
			"error", err,
		)
	}

	return next, nil
}

// ApplyRemote installs a change made by another instance. Changes this
// instance published itself are ignored.
func (s *preferencesStore) ApplyRemote(ctx context.Context, change model.PreferencesChange) error {
	if change.Source == s.source {
		return nil
	}
	if change.UserID == "" {
		return kafka.NewPermanentError("preferences change without user", nil)
	}

	next := change.Preferences.Normalize()
	if err := s.validator.ValidatePreferences(&next); err != nil {
		return kafka.NewPermanentError("invalid preferences change", err)
	}

	s.mu.Lock()
	previous, known := s.cache[change.UserID]
	s.cache[change.UserID] = next
	s.mu.Unlock()

	if known && previous == next {
		return nil
	}

	change.Preferences = next
	s.notify(ctx, change)
	return nil
}

// Subscribe returns a channel receiving every change after the call. The
// returned cancel stops delivery; the channel is not closed.
func (s *preferencesStore) Subscribe(buffer int) (<-chan model.PreferencesChange, func()) {
	sub := &subscriber{
		ch:   make(chan model.PreferencesChange, max(buffer, 0)),
		done: make(chan struct{}),
	}

	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(sub.done)
		})
	}
	return sub.ch, cancel
}

func (s *preferencesStore) notify(ctx context.Context, change model.PreferencesChange) {
	s.subsMu.Lock()
	subs := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subsMu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- change:
		case <-sub.done:
		case <-ctx.Done():
			s.log.Warn("Preferences change not delivered to subscriber",
				"user_id", change.UserID,
				"error", fmt.Errorf("notify: %w", ctx.Err()),
			)
			return
		}
	}
}

func validationError(err error) error {
	var detailed interface{ Details() map[string]any }
	if errors.As(err, &detailed) {
		return apperrors.Validation("Invalid preferences", detailed.Details())
	}
	return apperrors.Validation("Invalid preferences", map[string]any{"error": err.Error()})
}
