// Package notifications provides real-time notification delivery to connected users.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"recipebox/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	userChannelPrefix  = "notifications:user:"
	userChannelPattern = userChannelPrefix + "*"
)

// Event types pushed to clients.
const (
	EventPointsAwarded = "points_awarded"
)

// Event is the JSON envelope delivered over the websocket.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// PointsAwarded is the payload of an EventPointsAwarded event.
type PointsAwarded struct {
	RecipeID uint   `json:"recipe_id"`
	Rater    string `json:"rater"`
	Rating   int    `json:"rating"`
	Points   int    `json:"points"`
}

// UserChannel returns the pub/sub channel for a user's notifications.
func UserChannel(username string) string {
	return userChannelPrefix + username
}

// Notifier provides helpers to publish notifications into Redis channels.
type Notifier struct {
	rdb   *redis.Client
	local func(username, payload string)
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// SetLocalFallback delivers payloads in-process when Redis is not configured.
func (n *Notifier) SetLocalFallback(deliver func(username, payload string)) {
	n.local = deliver
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, username, payload string) error {
	if n.rdb == nil {
		if n.local != nil {
			n.local(username, payload)
		}
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(username), payload).Err()
}

// PublishPointsAwarded tells a recipe owner that a rating credited them points.
func (n *Notifier) PublishPointsAwarded(ctx context.Context, owner string, ev PointsAwarded) error {
	payload, err := json.Marshal(Event{Type: EventPointsAwarded, Payload: ev, Timestamp: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.PublishUser(ctx, owner, string(payload))
}

// StartPatternSubscriber subscribes to every user channel and calls onMessage
// with the username and payload of each message until ctx is cancelled.
func (n *Notifier) StartPatternSubscriber(ctx context.Context, onMessage func(username, payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPattern)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", userChannelPattern, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				username := strings.TrimPrefix(msg.Channel, userChannelPrefix)
				if username == "" || username == msg.Channel {
					middleware.Logger.Warn("invalid notification channel", slog.String("channel", msg.Channel))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in notification subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage(username, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
