package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyspot-backend/internal/models"
)

// Change-feed event types.
const (
	EventCheckInOpened = "checkin_opened"
	EventCheckInClosed = "checkin_closed"
	EventStatsUpdated  = "stats_updated"
)

// EventPublisher fans change-feed events out over Redis pub/sub. The
// websocket hub subscribes on the other end. Outputs stay consistent with
// point reads: events are emitted only after the store write succeeds.
type EventPublisher struct {
	redis *redis.Client
}

func NewEventPublisher(redisClient *redis.Client) *EventPublisher {
	return &EventPublisher{redis: redisClient}
}

// PublishUser sends a message to one user's private channel.
func (p *EventPublisher) PublishUser(ctx context.Context, userID uuid.UUID, msg models.WSMessage) {
	if p == nil || p.redis == nil {
		return
	}
	data, _ := json.Marshal(msg)
	p.redis.Publish(ctx, fmt.Sprintf("user_updates:%s", userID.String()), string(data))
}

// PublishSpot sends a message to everyone watching a spot.
func (p *EventPublisher) PublishSpot(ctx context.Context, spotID string, msg models.WSMessage) {
	if p == nil || p.redis == nil {
		return
	}
	data, _ := json.Marshal(msg)
	p.redis.Publish(ctx, fmt.Sprintf("spot_updates:%s", spotID), string(data))
}
