package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codedrill/codedrill/internal/apperror"
)

// Redis key layout. The names set indexes which counters exist so the
// summary does not need to SCAN the keyspace.
const (
	eventNamesKey   = "analytics:events"
	eventKeyPrefix  = "analytics:event:"
	dailyKeySuffix  = ":daily:"
	dailyCounterTTL = 90 * 24 * time.Hour
)

// eventNameRe constrains event names to the "resource.verb" shape the
// client sends. Anything else is rejected before touching Redis.
var eventNameRe = regexp.MustCompile(`^[a-z0-9_-]+(\.[a-z0-9_-]+)*$`)

// maxEventNameLength bounds the per-event key size.
const maxEventNameLength = 64

// AnalyticsService defines the business logic contract for usage tracking.
type AnalyticsService interface {
	// Track records one occurrence of an event. Returns a validation
	// error for malformed event names; Redis failures are logged and
	// swallowed so tracking never breaks the calling request.
	Track(ctx context.Context, req TrackRequest) error

	// Summarize returns total counts for every event seen so far.
	Summarize(ctx context.Context) (*Summary, error)
}

// analyticsService implements AnalyticsService on Redis counters.
type analyticsService struct {
	redis *redis.Client

	// now is the clock source for daily bucket keys, replaceable in tests.
	now func() time.Time
}

// NewAnalyticsService creates a new analytics service using the given
// Redis client.
func NewAnalyticsService(rdb *redis.Client) AnalyticsService {
	return &analyticsService{
		redis: rdb,
		now:   time.Now,
	}
}

// Track validates the event name and increments the total and daily
// counters in one pipeline round trip.
func (s *analyticsService) Track(ctx context.Context, req TrackRequest) error {
	name := req.Event
	if name == "" || len(name) > maxEventNameLength || !eventNameRe.MatchString(name) {
		return apperror.NewBadRequest("invalid event name")
	}

	day := s.now().UTC().Format("2006-01-02")
	totalKey := eventKeyPrefix + name
	dailyKey := totalKey + dailyKeySuffix + day

	pipe := s.redis.Pipeline()
	pipe.SAdd(ctx, eventNamesKey, name)
	pipe.Incr(ctx, totalKey)
	pipe.Incr(ctx, dailyKey)
	pipe.Expire(ctx, dailyKey, dailyCounterTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		// Fire-and-forget: losing a counter tick is preferable to
		// failing the request that carried it.
		slog.Warn("analytics track failed",
			slog.String("event", name),
			slog.Any("error", err),
		)
	}

	return nil
}

// Summarize reads the total counter for every known event name.
func (s *analyticsService) Summarize(ctx context.Context) (*Summary, error) {
	names, err := s.redis.SMembers(ctx, eventNamesKey).Result()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading event names: %w", err))
	}

	summary := &Summary{Events: make(map[string]int64, len(names))}
	if len(names) == 0 {
		return summary, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = eventKeyPrefix + name
	}

	values, err := s.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading event counters: %w", err))
	}

	for i, v := range values {
		var count int64
		if str, ok := v.(string); ok {
			fmt.Sscan(str, &count)
		}
		summary.Events[names[i]] = count
	}

	return summary, nil
}
