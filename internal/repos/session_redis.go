package repos

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"storeadmin/internal/domain"
)

// RedisSessionRepo keeps sessions as hashes under "storeadmin:session:<sid>".
type RedisSessionRepo struct {
	client *redis.Client
	ttl    time.Duration // 0 means no expiry
}

// NewRedisSessionRepo connects and pings the server at redisURL.
func NewRedisSessionRepo(redisURL string, ttl time.Duration) (*RedisSessionRepo, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisSessionRepo{client: client, ttl: ttl}, nil
}

func (r *RedisSessionRepo) key(sid string) string { return "storeadmin:session:" + sid }

func (r *RedisSessionRepo) Save(ctx context.Context, s domain.Session) error {
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, r.key(s.ID), map[string]interface{}{
		"user_name":     s.UserName,
		"token":         s.Token,
		"authenticated": strconv.FormatBool(s.Authenticated),
		"last_seen":     time.Now().Unix(),
	})
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key(s.ID), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepo) Get(ctx context.Context, sid string) (domain.Session, error) {
	res, err := r.client.HGetAll(ctx, r.key(sid)).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	if len(res) == 0 {
		return domain.Session{}, ErrSessionNotFound
	}
	auth, _ := strconv.ParseBool(res["authenticated"])
	return domain.Session{ID: sid, UserName: res["user_name"], Token: res["token"], Authenticated: auth}, nil
}

func (r *RedisSessionRepo) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepo) Close() error { return r.client.Close() }
