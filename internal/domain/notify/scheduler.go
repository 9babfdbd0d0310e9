package notify

import (
	"context"
	"fmt"
	"strings"

	"pet-care-tracker/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler dispara el recordatorio de comida según una expresión cron
// de 5 campos (por defecto "0 8 * * *", todos los días a las 8:00).
type Scheduler struct {
	cron    *cron.Cron
	pub     Publisher
	message string
	log     logger.Logger
}

func NewScheduler(spec, message string, pub Publisher, log logger.Logger) (*Scheduler, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Scheduler{
		cron:    cron.New(),
		pub:     pub,
		message: strings.TrimSpace(message),
		log:     log.With(map[string]any{"module": "scheduler"}),
	}
	if _, err := s.cron.AddFunc(spec, s.fire); err != nil {
		return nil, fmt.Errorf("invalid reminder cron %q: %w", spec, err)
	}
	return s, nil
}

// Run arranca el cron y bloquea hasta que ctx se cancela; espera al job en curso.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("reminder scheduler started", nil)

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("reminder scheduler stopped", nil)
	return nil
}

func (s *Scheduler) fire() {
	err := s.pub.Publish(context.Background(), Message{Event: EventFeedingReminder, Data: s.message})
	if err != nil {
		s.log.Warn("reminder not published", map[string]any{"error": err})
		return
	}
	s.log.Info("reminder published", nil)
}
