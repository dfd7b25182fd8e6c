// Package broadcaster fans assignment outcomes out to Redis Pub/Sub for
// dashboard consumers outside this process. It never participates in the
// transactional commit path — publishing happens strictly after commit,
// and a publish failure is logged, never retried into the engine.
package broadcaster

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/leadrouter/internal/domain/assignment"
	"github.com/orris-inc/leadrouter/internal/domain/shared/events"
	"github.com/orris-inc/leadrouter/internal/shared/config"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// NewRedisClient connects to Redis and verifies the connection with a
// ping before returning, so startup fails fast on a bad configuration.
func NewRedisClient(cfg *config.RedisConfig, log logger.Interface) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established")
	return client
}

// AssignmentEvent is the wire shape published to the assignment channel.
type AssignmentEvent struct {
	LeadID     uint      `json:"lead_id"`
	CallerID   *uint     `json:"caller_id,omitempty"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason"`
	Instant    time.Time `json:"instant"`
	InstanceID string    `json:"instance_id"`
}

// AssignmentBroadcaster publishes assigned/reassigned outcomes to Redis.
// It implements events.EventHandler so it can be registered directly on
// the shared in-memory dispatcher that the assignment engine publishes to.
type AssignmentBroadcaster struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

func NewAssignmentBroadcaster(client *redis.Client, channel string, log logger.Interface) *AssignmentBroadcaster {
	return &AssignmentBroadcaster{
		client:     client,
		channel:    channel,
		logger:     log,
		instanceID: uuid.NewString(),
	}
}

// CanHandle reports whether this broadcaster handles the given event type.
func (b *AssignmentBroadcaster) CanHandle(eventType string) bool {
	return eventType == "assignment.assigned"
}

// Handle publishes the event to Redis. The dispatcher invokes it
// asynchronously after commit, so an error returned here never unwinds
// into the engine; a publish failure is logged and returned to the
// dispatcher, which prints it.
func (b *AssignmentBroadcaster) Handle(event events.DomainEvent) error {
	assigned, ok := event.(assignment.AssignedEvent)
	if !ok {
		return nil
	}
	return b.PublishAssignmentEvent(context.Background(), assigned)
}

// PublishAssignmentEvent marshals and publishes a single outcome.
func (b *AssignmentBroadcaster) PublishAssignmentEvent(ctx context.Context, assigned assignment.AssignedEvent) error {
	payload := AssignmentEvent{
		LeadID:     assigned.LeadID,
		CallerID:   assigned.CallerID,
		Status:     string(assigned.Status),
		Reason:     string(assigned.Reason),
		Instant:    assigned.Instant,
		InstanceID: b.instanceID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal assignment event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish assignment event",
			"lead_id", assigned.LeadID,
			"channel", b.channel,
			"error", err,
		)
		return fmt.Errorf("failed to publish assignment event: %w", err)
	}

	b.logger.Debugw("assignment event published to redis",
		"lead_id", assigned.LeadID,
		"channel", b.channel,
	)
	return nil
}

// Subscribe listens for assignment events published by other instances,
// reconnecting with exponential backoff on disconnect. Events this
// instance published itself are filtered out.
func (b *AssignmentBroadcaster) Subscribe(ctx context.Context, handler func(AssignmentEvent)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribeOnce(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("assignment event subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *AssignmentBroadcaster) subscribeOnce(ctx context.Context, handler func(AssignmentEvent)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to assignment event channel", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event AssignmentEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal assignment event", "error", err)
				continue
			}
			if event.InstanceID == b.instanceID {
				continue
			}
			handler(event)
		}
	}
}
