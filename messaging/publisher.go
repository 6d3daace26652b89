package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys for domain events.
const (
	KeyEventLiked          = "event.liked"
	KeyEventUnliked        = "event.unliked"
	KeyPostLiked           = "post.liked"
	KeyPostUnliked         = "post.unliked"
	KeyCommentCreated      = "comment.created"
	KeyRegistrationCreated = "registration.created"
	KeyRunSubmitted        = "run.submitted"
)

// Publisher emits domain events. Publishing is best effort: callers log
// failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

// AMQPPublisher publishes JSON messages to a topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, key string, payload any) error {
	body, err := Encode(payload)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Encode is the wire format shared by every publisher.
func Encode(payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return b, nil
}

// NoopPublisher drops messages. Used when AMQP_URL is unset.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                               { return nil }

// Connect returns an AMQP publisher for url, or a NoopPublisher when url is
// empty or the broker is unreachable.
func Connect(url, exchange string) Publisher {
	if url == "" {
		return NoopPublisher{}
	}
	p, err := NewAMQPPublisher(url, exchange)
	if err != nil {
		log.Printf("Warning: event publishing disabled: %v", err)
		return NoopPublisher{}
	}
	return p
}

// Message payloads.

type LikeMessage struct {
	TargetKind string    `json:"target_kind"`
	TargetID   string    `json:"target_id"`
	UserID     string    `json:"user_id"`
	At         time.Time `json:"at"`
}

type CommentMessage struct {
	CommentID  string    `json:"comment_id"`
	TargetKind string    `json:"target_kind"`
	TargetID   string    `json:"target_id"`
	UserID     string    `json:"user_id"`
	At         time.Time `json:"at"`
}

type RegistrationMessage struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	At             time.Time `json:"at"`
}

type RunMessage struct {
	RunID         string    `json:"run_id"`
	UserID        string    `json:"user_id"`
	ClubID        string    `json:"club_id,omitempty"`
	DistanceMiles float64   `json:"distance_miles"`
	At            time.Time `json:"at"`
}
