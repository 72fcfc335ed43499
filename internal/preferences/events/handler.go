// Package events keeps the preferences cache of this instance in step with
// changes made on other instances.
package events

import (
	"context"
	"spacebook/pkg/kafka"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

type RemoteApplier interface {
	ApplyRemote(ctx context.Context, change model.PreferencesChange) error
	Source() string
}

// NewChangeHandler returns the consumer handler for the preferences topic.
// Messages of other event types are skipped.
func NewChangeHandler(store RemoteApplier, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		if eventType := msg.GetEventType(); eventType != "" && eventType != kafka.EventPreferencesChanged {
			log.Debug("Skipping unrelated event",
				"event_type", eventType,
				"topic", msg.Topic,
			)
			return nil
		}
		if msg.GetSource() == store.Source() {
			return nil
		}

		var change model.PreferencesChange
		if err := msg.DecodeValue(&change); err != nil {
			return err
		}
		if change.UserID == "" {
			change.UserID = msg.Key
		}

		if err := store.ApplyRemote(ctx, change); err != nil {
			return err
		}
		log.Debug("Applied remote preferences change",
			"user_id", change.UserID,
			"source", change.Source,
		)
		return nil
	}
}
