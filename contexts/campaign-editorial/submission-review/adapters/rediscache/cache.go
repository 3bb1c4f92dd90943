// Package rediscache shares the submission cache between API replicas.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "reviewdesk:submission:"

var errMiss = errors.New("cache miss")

// Fetcher loads the authoritative copy of a submission.
type Fetcher interface {
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
}

// KeyValue is the slice of redis the cache needs.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisKV struct {
	client *redis.Client
}

// NewRedisKV returns a KeyValue that reports redis.Nil as a miss.
func NewRedisKV(client *redis.Client) KeyValue {
	return redisKV{client: client}
}

func (r redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMiss
	}
	return value, err
}

func (r redisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

type Cache struct {
	kv      KeyValue
	fetcher Fetcher
	ttl     time.Duration
}

func New(kv KeyValue, fetcher Fetcher, ttl time.Duration) *Cache {
	return &Cache{kv: kv, fetcher: fetcher, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, submissionID string) (entities.Submission, error) {
	submissionID = strings.TrimSpace(submissionID)
	raw, err := c.kv.Get(ctx, key(submissionID))
	switch {
	case err == nil:
		var item entities.Submission
		if err := json.Unmarshal(raw, &item); err == nil {
			return item, nil
		}
		// Unreadable entries are treated as a miss and overwritten.
	case !errors.Is(err, errMiss):
		return entities.Submission{}, fmt.Errorf("read submission cache: %w", err)
	}
	return c.load(ctx, submissionID)
}

// Mutate writes the placeholder with the regular TTL; the next revalidation
// replaces it with the server copy.
func (c *Cache) Mutate(ctx context.Context, submissionID string, update func(entities.Submission) entities.Submission) error {
	current, err := c.Get(ctx, submissionID)
	if err != nil {
		return err
	}
	next := update(current)
	next.ID = current.ID
	return c.store(ctx, next)
}

func (c *Cache) Revalidate(ctx context.Context, submissionID string) error {
	_, err := c.load(ctx, strings.TrimSpace(submissionID))
	return err
}

func (c *Cache) load(ctx context.Context, submissionID string) (entities.Submission, error) {
	if c.fetcher == nil {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	item, err := c.fetcher.GetSubmission(ctx, submissionID)
	if err != nil {
		return entities.Submission{}, err
	}
	if err := c.store(ctx, item); err != nil {
		return entities.Submission{}, err
	}
	return item, nil
}

func (c *Cache) store(ctx context.Context, item entities.Submission) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	if err := c.kv.Set(ctx, key(item.ID), raw, c.ttl); err != nil {
		return fmt.Errorf("write submission cache: %w", err)
	}
	return nil
}

func key(submissionID string) string {
	return keyPrefix + submissionID
}
