package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// unlockScript удаляет ключ, только если он принадлежит владельцу блокировки.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock распределенная блокировка на основе SET NX с TTL.
type Lock struct {
	db    *redis.Client
	key   string
	ttl   time.Duration
	token string
}

// NewLock создает блокировку для ключа key.
func (c *Cache) NewLock(key string, ttl time.Duration) *Lock {
	return &Lock{db: c.Db, key: key, ttl: ttl}
}

// TryAcquire пытается захватить блокировку без ожидания.
// Возвращает false, если блокировка уже занята.
func (l *Lock) TryAcquire(ctx context.Context) (bool, error) {
	const op = "cache.Lock.TryAcquire"
	token := uuid.NewString()
	ok, err := l.db.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Release освобождает блокировку, если она принадлежит этому экземпляру.
func (l *Lock) Release(ctx context.Context) error {
	const op = "cache.Lock.Release"
	if l.token == "" {
		return nil
	}
	if err := unlockScript.Run(ctx, l.db, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	l.token = ""
	return nil
}
