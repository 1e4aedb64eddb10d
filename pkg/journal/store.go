// Package journal persists mood journal entries in Redis.
//
// Entries for a user live in a sorted set keyed by user id and scored by
// creation time, so history reads are a single reverse range.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mindmate/pkg/metrics"
	"mindmate/pkg/models"
)

const entriesKeyPrefix = "journal:entries:"

// MoodRating bounds, inclusive.
const (
	MinMoodRating = 1
	MaxMoodRating = 10
)

type Store struct {
	rdb     *redis.Client
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

func NewStore(rdb *redis.Client, logger *logrus.Logger, m *metrics.Metrics) *Store {
	return &Store{
		rdb:     rdb,
		logger:  logger,
		metrics: m,
	}
}

// Connect dials Redis with production connection settings and verifies the
// connection before returning.
func Connect(url string, logger *logrus.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.MaxRetries = 3
	opt.MinRetryBackoff = 8 * time.Millisecond
	opt.MaxRetryBackoff = 512 * time.Millisecond
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.PoolSize = 10
	opt.MinIdleConns = 5

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return rdb, nil
}

// Add validates and stores a new journal entry, returning it with its
// generated id and timestamp.
func (s *Store) Add(ctx context.Context, userID string, moodRating int, journalText string) (models.JournalEntry, error) {
	start := time.Now()
	defer func() {
		s.metrics.RedisOperationDuration.WithLabelValues("journal_add").Observe(time.Since(start).Seconds())
	}()

	entry := models.JournalEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		MoodRating:  moodRating,
		JournalText: journalText,
		CreatedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to encode journal entry: %w", err)
	}

	err = s.rdb.ZAdd(ctx, entriesKey(userID), &redis.Z{
		Score:  float64(entry.CreatedAt.UnixMilli()),
		Member: payload,
	}).Err()
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to save journal entry")
		return models.JournalEntry{}, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.metrics.JournalEntriesWritten.Inc()

	s.logger.WithFields(logrus.Fields{
		"user_id":     userID,
		"entry_id":    entry.ID,
		"mood_rating": moodRating,
	}).Debug("Saved journal entry")

	return entry, nil
}

// History returns all entries for a user, newest first.
func (s *Store) History(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	start := time.Now()
	defer func() {
		s.metrics.RedisOperationDuration.WithLabelValues("journal_history").Observe(time.Since(start).Seconds())
	}()

	raw, err := s.rdb.ZRevRange(ctx, entriesKey(userID), 0, -1).Result()
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to load journal history")
		return nil, fmt.Errorf("failed to load journal history: %w", err)
	}

	entries := make([]models.JournalEntry, 0, len(raw))
	for _, member := range raw {
		var entry models.JournalEntry
		if err := json.Unmarshal([]byte(member), &entry); err != nil {
			// A corrupt member should not take the whole history down.
			s.logger.WithError(err).WithField("user_id", userID).Warn("Skipping undecodable journal entry")
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Ping reports whether the backing Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func entriesKey(userID string) string {
	return entriesKeyPrefix + userID
}
