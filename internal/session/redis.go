package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	contentKeyFmt  = "sitechat:sess:%s:content"
	messagesKeyFmt = "sitechat:sess:%s:messages"
)

// Redis backs session state with go-redis, so chat state survives a
// process restart for the lifetime of the TTL. Selected when a redis
// address is configured.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Append(ctx context.Context, id string, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal session message: %w", err)
	}
	key := fmt.Sprintf(messagesKeyFmt, id)
	if err := r.rdb.RPush(ctx, key, raw).Err(); err != nil {
		return err
	}
	return r.rdb.Expire(ctx, key, r.ttl).Err()
}

func (r *Redis) History(ctx context.Context, id string) ([]Message, error) {
	key := fmt.Sprintf(messagesKeyFmt, id)
	raw, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal session message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *Redis) SetContent(ctx context.Context, id, content string) error {
	key := fmt.Sprintf(contentKeyFmt, id)
	return r.rdb.Set(ctx, key, content, r.ttl).Err()
}

func (r *Redis) Content(ctx context.Context, id string) (string, error) {
	key := fmt.Sprintf(contentKeyFmt, id)
	content, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNoContent
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

func (r *Redis) Clear(ctx context.Context, id string) error {
	return r.rdb.Del(ctx,
		fmt.Sprintf(contentKeyFmt, id),
		fmt.Sprintf(messagesKeyFmt, id),
	).Err()
}
