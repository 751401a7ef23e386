package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/SpiritForge_Go/internal/logger"
)

// ResilientPublisher publishes to a Bus and retries failed deliveries in the
// background with exponential backoff. Events that exhaust their retries are
// written to a dead-letter file.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	// mu orders wg.Add against Shutdown's wg.Wait
	mu       sync.Mutex
	closed   bool
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// NewResilientPublisher wraps bus. deadLetterPath is opened immediately.
func NewResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ResilientPublisher{
		inner:      bus,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		shutdown:   make(chan struct{}),
	}, nil
}

// PublishWithRetry publishes synchronously once. On failure the event is
// retried in the background and the caller is not blocked. When the inner
// bus reports which subscribers failed, only those are retried.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.inner.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)

	redeliver := func(ctx context.Context) error { return p.inner.Publish(ctx, evt) }
	var delivery *DeliveryError
	if errors.As(err, &delivery) {
		pending := delivery.Failed
		redeliver = func(ctx context.Context) error {
			err := deliver(ctx, evt, pending)
			if errors.As(err, &delivery) {
				pending = delivery.Failed
			}
			return err
		}
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.writeDeadLetter(evt, 1, err)
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go p.retry(evt, redeliver, err)
}

func (p *ResilientPublisher) retry(evt Event, redeliver func(context.Context) error, lastErr error) {
	defer p.wg.Done()

	// The request context may already be gone; retries run detached.
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.baseDelay, attempt))
		select {
		case <-p.shutdown:
			timer.Stop()
			log.Warn(LogMsgEventDroppedShutdown, "event_type", evt.Type, "attempt", attempt)
			p.writeDeadLetter(evt, attempt, lastErr)
			return
		case <-timer.C:
		}

		if err := redeliver(ctx); err != nil {
			lastErr = err
			log.Warn(LogMsgEventRetryFailed, "event_type", evt.Type, "attempt", attempt, "error", err)
			continue
		}
		log.Info(LogMsgEventRetrySucceeded, "event_type", evt.Type, "attempt", attempt)
		return
	}

	log.Error(LogMsgEventDeadLettered, "event_type", evt.Type, "attempts", p.maxRetries+1)
	p.writeDeadLetter(evt, p.maxRetries+1, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, lastErr error) {
	if err := p.deadLetter.Write(evt, attempts, lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterFailed, "event_type", evt.Type, "error", err)
	}
}

// Publish satisfies Bus. Delivery failures are handled by the retry path,
// so it always returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops pending retries, dead-lettering their events, and waits
// for them to finish or for ctx to expire.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.shutdown)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		return ctx.Err()
	}
}
