package notify

import "context"

// Publisher entrega un mensaje a todos los clientes conectados.
// Fire-and-forget: no hay ack ni reintento.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Broadcaster es lo que un relay necesita para entregar localmente.
type Broadcaster interface {
	Broadcast(msg Message) int
}

// LocalPublisher publica directo en el hub del proceso (una sola instancia).
type LocalPublisher struct {
	hub Broadcaster
}

func NewLocalPublisher(hub Broadcaster) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

func (p *LocalPublisher) Publish(_ context.Context, msg Message) error {
	p.hub.Broadcast(msg)
	return nil
}
