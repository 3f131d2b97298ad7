package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store records which webhook deliveries have already been handled and
// keeps an optional durable journal of verified events.
type Store interface {
	// MarkProcessed records eventID and reports whether this is its first
	// appearance. A false result means the delivery is a duplicate.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	// JournalEvent persists a verified event when a journal backend is
	// configured; otherwise it is a no-op.
	JournalEvent(ctx context.Context, ev Event) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// HybridStore is Redis-first for dedup keys with an optional Postgres
// journal.
type HybridStore struct {
	redis  *redis.Client
	pg     *pgxpool.Pool
	logger *zap.Logger
}

// NewHybrid connects Redis and, when pgURL is non-empty, Postgres.
func NewHybrid(ctx context.Context, redisAddr string, redisDB int, redisPass, pgURL string, logger *zap.Logger) (*HybridStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		DB:       redisDB,
		Password: redisPass,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	st := &HybridStore{redis: rdb, logger: logger}

	if pgURL != "" {
		pool, err := pgxpool.New(ctx, pgURL)
		if err != nil {
			return nil, fmt.Errorf("pg pool: %w", err)
		}
		st.pg = pool
	}

	return st, nil
}

func dedupKey(eventID string) string {
	return "paypal:webhook:seen:" + eventID
}

// MarkProcessed is an atomic SET NX with TTL, so concurrent deliveries of
// the same event resolve to exactly one first-seen winner.
func (s *HybridStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	first, err := s.redis.SetNX(ctx, dedupKey(eventID), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup setnx: %w", err)
	}
	return first, nil
}

// JournalEvent inserts into the webhook_events journal. Conflicting ids are
// ignored; the dedup key already decided first-seen.
func (s *HybridStore) JournalEvent(ctx context.Context, ev Event) error {
	if s.pg == nil {
		return nil
	}

	const q = `
		INSERT INTO webhook_events (event_id, event_type, resource_type, correlation_id, received_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING`

	_, err := s.pg.Exec(ctx, q,
		ev.ID, ev.EventType, ev.ResourceType, ev.CorrelationID.String(), ev.ReceivedAt, []byte(ev.Payload))
	if err != nil {
		s.logger.Warn("store.journal_failed",
			zap.Error(err),
			zap.String("event_id", ev.ID))
		return fmt.Errorf("journal insert: %w", err)
	}
	return nil
}

func (s *HybridStore) HealthCheck(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if s.pg != nil {
		if err := s.pg.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}

func (s *HybridStore) Close() error {
	if s.pg != nil {
		s.pg.Close()
	}
	return s.redis.Close()
}
