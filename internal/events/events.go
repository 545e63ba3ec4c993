// Package events publishes catalog changes to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const UploadedQueue = "video.uploaded"

// VideoUploaded is published after a video row has been committed.
type VideoUploaded struct {
	VideoID     string    `json:"video_id"`
	ChannelID   string    `json:"channel_id"`
	ChannelSlug string    `json:"channel_slug"`
	Title       string    `json:"title"`
	VideoURL    string    `json:"video_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type Publisher interface {
	PublishUploaded(ctx context.Context, ev VideoUploaded) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishUploaded(context.Context, VideoUploaded) error { return nil }
func (Nop) Close() error                                         { return nil }

type AMQPPublisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// DialAMQP connects to the broker at addr and declares the durable upload queue.
func DialAMQP(addr string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(UploadedQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, queue: UploadedQueue}, nil
}

func (p *AMQPPublisher) PublishUploaded(ctx context.Context, ev VideoUploaded) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
