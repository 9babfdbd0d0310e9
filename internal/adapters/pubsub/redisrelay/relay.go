package redisrelay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-care-tracker/internal/domain/notify"
	"pet-care-tracker/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "petcare:notifications"

type Config struct {
	Addr     string
	Password string
	Channel  string
}

// Relay reparte notificaciones entre instancias: Publish va al canal Redis y
// Run (en cada instancia) reenvía lo recibido a su hub local.
// Igual que el hub, no hay entrega garantizada.
type Relay struct {
	client  *redis.Client
	channel string
	hub     notify.Broadcaster
	log     logger.Logger
}

func New(cfg Config, hub notify.Broadcaster, log logger.Logger) (*Relay, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr required")
	}
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Relay{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Password,
		}),
		channel: channel,
		hub:     hub,
		log:     log.With(map[string]any{"module": "redisrelay", "channel": channel}),
	}, nil
}

// Ping verifica la conexión (al arrancar).
func (r *Relay) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Relay) Publish(ctx context.Context, msg notify.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Run se suscribe al canal y bloquea hasta que ctx se cancela.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	// espera la confirmación de la suscripción
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}
	r.log.Info("relay subscribed", nil)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg notify.Message
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				r.log.Warn("relay: bad payload", map[string]any{"error": err})
				continue
			}
			n := r.hub.Broadcast(msg)
			r.log.Debug("relay delivered", map[string]any{"event": msg.Event, "clients": n})
		}
	}
}

func (r *Relay) Close() error {
	return r.client.Close()
}
