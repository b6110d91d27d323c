// Package event consumes title change events and triggers catalog reloads.
package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/jaumet/avook-catalog/pkg/kafka"
)

// Topics the storefront CMS publishes when titles change.
var (
	TopicTitleCreated = pkgkafka.Topic("title", "created")
	TopicTitleUpdated = pkgkafka.Topic("title", "updated")
	TopicTitleDeleted = pkgkafka.Topic("title", "deleted")
)

// Reloader rebuilds the catalog index from its source.
type Reloader interface {
	Load(ctx context.Context) error
}

// Consumer maps any title change event to one full index reload. A reload
// is idempotent, so redelivered or coalesced events are harmless.
type Consumer struct {
	catalog Reloader
	logger  *slog.Logger
}

// NewConsumer builds the consumer.
func NewConsumer(catalog Reloader, logger *slog.Logger) *Consumer {
	return &Consumer{catalog: catalog, logger: logger}
}

// Topics lists the topics the consumer subscribes to.
func Topics() []string {
	return []string{TopicTitleCreated, TopicTitleUpdated, TopicTitleDeleted}
}

// Handle processes one event by reloading the whole catalog. The index is
// never patched in place; each reload publishes a fresh immutable index.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	c.logger.InfoContext(ctx, "title change event received",
		slog.String("event_type", event.EventType),
		slog.String("aggregate_id", event.AggregateID),
	)

	if err := c.catalog.Load(ctx); err != nil {
		return fmt.Errorf("reload catalog for %s: %w", event.EventType, err)
	}
	return nil
}
