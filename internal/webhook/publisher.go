package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
)

const (
	webhookQueueKey = "dispatch_events"
)

// StatusEvent - событие перехода состояния экстренного вызова
type StatusEvent struct {
	EmergencyID int64                  `json:"emergency_id"`
	From        models.EmergencyStatus `json:"from"`
	To          models.EmergencyStatus `json:"to"`
	Severity    *models.Severity       `json:"severity,omitempty"`
	HospitalID  *string                `json:"hospital_id,omitempty"`
	Reason      *string                `json:"reason,omitempty"` // причина при переходе в FAILED
	Timestamp   time.Time              `json:"timestamp"`
}

// Publisher - интерфейс для публикации событий диспетчеризации
type Publisher interface {
	Publish(ctx context.Context, event StatusEvent) error
}

// RedisPublisher - реализация Publisher, использующая Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие перехода состояния в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event StatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish status event to Redis: %w", err)
	}
	return nil
}
