package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"
	pkgkafka "github.com/jaumet/avook-catalog/pkg/kafka"
)

// linkTTL bounds how long a cached payment link is reused. Checkout
// sessions expire provider-side, so the cache must expire first.
const linkTTL = 20 * time.Minute

// TopicLinkCreated carries one event per freshly created payment link.
var TopicLinkCreated = pkgkafka.Topic("checkout", "link_created")

// Publisher is the slice of the Kafka producer the service uses.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Service creates payment links through a provider, caching them per title
// in Redis and announcing fresh ones on Kafka. Both the cache and the
// producer are optional; without them every request hits the provider.
type Service struct {
	provider Provider
	cache    *redis.Client
	producer Publisher
	logger   *slog.Logger
}

// NewService wires the checkout service.
func NewService(provider Provider, cache *redis.Client, producer Publisher, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// PaymentLink returns a hosted payment page for the request, from cache
// when a live link exists.
func (s *Service) PaymentLink(ctx context.Context, req *LinkRequest) (*Link, error) {
	cacheKey := fmt.Sprintf("checkout:link:%s:%s", s.provider.Name(), req.MachineName)

	if link := s.cached(ctx, cacheKey); link != nil {
		return link, nil
	}

	link, err := s.provider.PaymentLink(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "payment link creation failed",
			slog.String("provider", s.provider.Name()),
			slog.String("machine_name", req.MachineName),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.CheckoutFailed("could not create payment link")
	}

	s.store(ctx, cacheKey, link)
	s.announce(ctx, req, link)

	return link, nil
}

func (s *Service) cached(ctx context.Context, key string) *Link {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "link cache read failed", slog.String("error", err.Error()))
		}
		return nil
	}
	var link Link
	if err := json.Unmarshal(raw, &link); err != nil {
		return nil
	}
	return &link
}

func (s *Service) store(ctx context.Context, key string, link *Link) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(link)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, linkTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "link cache write failed", slog.String("error", err.Error()))
	}
}

// announce publishes the link event. A publish failure is logged, not
// returned: the buyer already has their link.
func (s *Service) announce(ctx context.Context, req *LinkRequest, link *Link) {
	if s.producer == nil {
		return
	}
	event, err := pkgkafka.NewEvent("checkout.link_created", req.MachineName, "title", "catalog-service", link)
	if err != nil {
		return
	}
	if err := s.producer.Publish(ctx, TopicLinkCreated, event); err != nil {
		s.logger.WarnContext(ctx, "link event publish failed", slog.String("error", err.Error()))
	}
}
