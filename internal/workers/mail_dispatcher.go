// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/Z3ron7/server/internal/adapter"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
)

// drainTimeout bounds delivery of messages still queued at shutdown.
const drainTimeout = 5 * time.Second

// MailDispatcher delivers fire-and-forget notifications in the background.
// The queue is bounded; Notify never blocks and drops the message with a
// warning when the queue is full.
type MailDispatcher struct {
	mailer adapter.Mailer
	queue  chan models.MailMessage
	logger *logger.Logger

	once sync.Once
	done chan struct{}
}

// NewMailDispatcher creates a dispatcher with room for size queued
// messages. size below 1 is treated as 1.
func NewMailDispatcher(mailer adapter.Mailer, size int, logger *logger.Logger) *MailDispatcher {
	if size < 1 {
		size = 1
	}

	return &MailDispatcher{
		mailer: mailer,
		queue:  make(chan models.MailMessage, size),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Notify queues msg for delivery and reports whether it was accepted.
func (d *MailDispatcher) Notify(ctx context.Context, msg models.MailMessage) bool {
	select {
	case d.queue <- msg:
		return true
	default:
		logger.FromContext(ctx).Warn().
			Str("func", "*MailDispatcher.Notify").
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("mail queue is full, notification dropped")
		return false
	}
}

// Run starts the delivery loop. It is safe to call more than once; only
// the first call starts a loop.
func (d *MailDispatcher) Run(ctx context.Context) {
	d.once.Do(func() {
		go d.loop(ctx)
	})
}

// Wait blocks until the delivery loop has exited.
func (d *MailDispatcher) Wait() {
	<-d.done
}

func (d *MailDispatcher) loop(ctx context.Context) {
	defer close(d.done)
	d.logger.Info().Str("func", "*MailDispatcher.loop").Msg("mail dispatcher started")

	for {
		select {
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		case <-ctx.Done():
			d.drain(ctx)
			d.logger.Info().Str("func", "*MailDispatcher.loop").Msg("mail dispatcher stopped")
			return
		}
	}
}

// drain delivers what is already queued, bounded by drainTimeout.
func (d *MailDispatcher) drain(parent context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), drainTimeout)
	defer cancel()

	for {
		select {
		case msg := <-d.queue:
			if ctx.Err() != nil {
				d.logger.Warn().Str("func", "*MailDispatcher.drain").Str("to", msg.To).Msg("shutdown deadline passed, notification dropped")
				continue
			}
			d.deliver(ctx, msg)
		default:
			return
		}
	}
}

func (d *MailDispatcher) deliver(ctx context.Context, msg models.MailMessage) {
	if err := d.mailer.Send(d.logger.WithContext(ctx), msg); err != nil {
		d.logger.Err(err).
			Str("func", "*MailDispatcher.deliver").
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("error delivering notification")
	}
}
