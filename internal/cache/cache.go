package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/aerohub/internal/models"
)

// Cache holds list pages. Invalidate drops every cached page at once.
type Cache interface {
	Get(ctx context.Context, q models.ListQuery) (models.Page, bool)
	Set(ctx context.Context, q models.ListQuery, page models.Page) error
	Invalidate(ctx context.Context) error
	Close() error
}

const generationKey = "airports:generation"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: "localhost:6379",
		DB:   0,
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

// generation is bumped on every create; page keys embed it so stale pages are never read.
func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Get(ctx context.Context, q models.ListQuery) (models.Page, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		return models.Page{}, false
	}

	data, err := c.client.Get(ctx, generateKey(gen, q)).Bytes()
	if err != nil {
		return models.Page{}, false
	}

	var page models.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return models.Page{}, false
	}

	return page, true
}

func (c *RedisCache) Set(ctx context.Context, q models.ListQuery, page models.Page) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(page)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(gen, q), data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, q models.ListQuery) (models.Page, bool) {
	return models.Page{}, false
}

func (c *NoOpCache) Set(ctx context.Context, q models.ListQuery, page models.Page) error {
	return nil
}

func (c *NoOpCache) Invalidate(ctx context.Context) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(gen int64, q models.ListQuery) string {
	keyData := struct {
		PageSize      int
		PageNumber    int
		SortField     string
		SortDirection string
		Search        string
		State         string
	}{
		PageSize:      q.PageSize,
		PageNumber:    q.PageNumber,
		SortField:     string(q.SortField),
		SortDirection: string(q.SortDirection),
		Search:        q.Search,
		State:         q.State,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "airports:page:" + strconv.FormatInt(gen, 10) + ":" + hex.EncodeToString(hash[:])
}
