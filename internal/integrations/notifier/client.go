package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khan47650/central-kitchen/internal/domain"
)

// RedisNotifier публикует подтверждения бронирований в Redis Stream.
// Доставку (email и т.п.) выполняют потребители потока.
type RedisNotifier struct {
	client *redis.Client
	stream string
	maxLen int64
	log    Logger
}

// NewRedisNotifier создает публикатор в поток stream. maxLen ограничивает длину потока (0 - без ограничения).
func NewRedisNotifier(client *redis.Client, stream string, maxLen int64, log Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		stream: stream,
		maxLen: maxLen,
		log:    log,
	}
}

// NotifyBooked публикует событие о забронированном или заблокированном слоте
func (n *RedisNotifier) NotifyBooked(ctx context.Context, slot *domain.Slot) error {
	event := NewEvent(slot, time.Now())

	args := &redis.XAddArgs{
		Stream: n.stream,
		Values: event.values(),
	}
	if n.maxLen > 0 {
		args.MaxLen = n.maxLen
		args.Approx = true
	}

	id, err := n.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("%w: stream=%s slot=%s: %w", ErrPublish, n.stream, slot.ID, err)
	}

	n.log.Info("NotifyBooked: published %s for slot=%s as %s", event.Type, slot.ID, id)
	return nil
}

// Noop ничего не публикует (Redis не настроен)
type Noop struct{}

func (Noop) NotifyBooked(context.Context, *domain.Slot) error { return nil }
