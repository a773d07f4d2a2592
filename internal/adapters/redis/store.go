package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/observability"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

// Fixed keys of the persisted state layout. The hotels key holds JSON-array
// text; the currency key a plain code string.
const (
	keyHotels           = "hotels"
	keyLastUsedCurrency = "lastUsedCurrency"
)

// KV backs both the entry store and the rankings cache with one Redis client.
type KV struct{ c *redis.Client }

func New(addr, pass string, db int) *KV {
	return &KV{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// ---- domain.EntryStore ----

// Load returns the raw list text, or nil when the key is absent.
func (r *KV) Load(ctx context.Context) ([]byte, error) {
	v, err := r.c.Get(ctx, keyHotels).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *KV) Save(ctx context.Context, raw []byte) error {
	return r.c.Set(ctx, keyHotels, raw, 0).Err()
}

func (r *KV) Clear(ctx context.Context) error {
	return r.c.Del(ctx, keyHotels).Err()
}

func (r *KV) LoadCurrencyPreference(ctx context.Context) (string, error) {
	v, err := r.c.Get(ctx, keyLastUsedCurrency).Result()
	if err == redis.Nil {
		return domain.DefaultCurrency, nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *KV) SaveCurrencyPreference(ctx context.Context, code string) error {
	return r.c.Set(ctx, keyLastUsedCurrency, code, 0).Err()
}

// ---- domain.Cache ----

func (r *KV) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *KV) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, _ := json.Marshal(v)
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *KV) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, key).Err()
}
