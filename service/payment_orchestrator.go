package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"wealth-agent/domain"
	"wealth-agent/scheduler"
)

// PaymentBackend prepares the two artifacts a payment needs. An empty link
// with a nil error means the provider is not done yet.
type PaymentBackend interface {
	SubscriptionLink(ctx context.Context, token string) (string, error)
	PaymentLink(ctx context.Context, token string) (string, error)
}

// PaymentOrchestrator polls the provider until both the subscription 2FA link
// and the payment page are available.
//
// States move Idle -> Polling on Start, Polling -> Ready once both artifacts
// are held, and Polling -> Idle on Cancel or Close. Nothing moves out of Ready
// except an explicit Start, which clears the artifacts first.
type PaymentOrchestrator struct {
	id        string
	token     string
	backend   PaymentBackend
	scheduler scheduler.Scheduler
	interval  time.Duration
	timeout   time.Duration
	logger    *logrus.Entry

	mu               sync.Mutex
	state            domain.PaymentState
	subscriptionLink string
	paymentLink      string
	stopTimer        func()
	// generation is bumped on every Start and on Close; ticks and responses
	// carrying an older generation are dropped.
	generation uint64
	closed     bool
}

func NewPaymentOrchestrator(
	id string,
	token string,
	backend PaymentBackend,
	sched scheduler.Scheduler,
	interval time.Duration,
	timeout time.Duration,
	logger *logrus.Logger,
) *PaymentOrchestrator {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &PaymentOrchestrator{
		id:        id,
		token:     token,
		backend:   backend,
		scheduler: sched,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.WithField("payment_session", id),
		state:     domain.PaymentIdle,
	}
}

// Start clears any previous artifacts and begins polling. Starting while
// already polling is a no-op.
func (o *PaymentOrchestrator) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrSessionClosed
	}
	if o.state == domain.PaymentPolling {
		return nil
	}

	gen := o.generation + 1
	stop, err := o.scheduler.Every(o.interval, func() { o.tick(gen) })
	if err != nil {
		return fmt.Errorf("start polling: %w", err)
	}

	o.generation = gen
	o.subscriptionLink = ""
	o.paymentLink = ""
	o.stopTimer = stop
	o.state = domain.PaymentPolling
	o.logger.WithField("interval", o.interval.String()).Info("payment polling started")
	return nil
}

// Cancel stops polling and returns to Idle. Artifacts already received are
// kept. It does nothing outside Polling.
func (o *PaymentOrchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != domain.PaymentPolling {
		return
	}
	o.stopLocked()
	o.state = domain.PaymentIdle
	o.logger.Info("payment polling cancelled")
}

// Close tears the session down: the timer is always cancelled and late
// responses are ignored from here on.
func (o *PaymentOrchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	o.stopLocked()
	o.closed = true
	o.generation++
	if o.state == domain.PaymentPolling {
		o.state = domain.PaymentIdle
	}
	o.logger.Debug("payment session closed")
}

func (o *PaymentOrchestrator) Snapshot() domain.PaymentSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	return domain.PaymentSnapshot{
		ID:               o.id,
		State:            o.state,
		Polling:          o.state == domain.PaymentPolling,
		SubscriptionLink: o.subscriptionLink,
		PaymentLink:      o.paymentLink,
	}
}

func (o *PaymentOrchestrator) stopLocked() {
	if o.stopTimer != nil {
		o.stopTimer()
		o.stopTimer = nil
	}
}

// tick issues both checks concurrently, skipping any artifact already held,
// and returns once both have finished.
func (o *PaymentOrchestrator) tick(gen uint64) {
	o.mu.Lock()
	if gen != o.generation || o.state != domain.PaymentPolling {
		o.mu.Unlock()
		return
	}
	needSubscription := o.subscriptionLink == ""
	needPayment := o.paymentLink == ""
	o.mu.Unlock()

	var wg sync.WaitGroup
	if needSubscription {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.check(gen, "subscription", o.backend.SubscriptionLink, func(link string) {
				if o.subscriptionLink == "" {
					o.subscriptionLink = link
				}
			})
		}()
	}
	if needPayment {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.check(gen, "payment", o.backend.PaymentLink, func(link string) {
				if o.paymentLink == "" {
					o.paymentLink = link
				}
			})
		}()
	}
	wg.Wait()
}

// check runs one artifact request. Failures are logged and read as "not ready";
// the next tick is the retry.
func (o *PaymentOrchestrator) check(
	gen uint64,
	artifact string,
	fetch func(context.Context, string) (string, error),
	assign func(string),
) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	link, err := fetch(ctx, o.token)
	if err != nil {
		o.logger.WithError(err).WithField("artifact", artifact).Warn("payment artifact check failed")
		return
	}
	if link == "" {
		o.logger.WithField("artifact", artifact).Debug("payment artifact not ready")
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		return
	}
	assign(link)
	o.logger.WithField("artifact", artifact).Info("payment artifact received")

	if o.state == domain.PaymentPolling && o.subscriptionLink != "" && o.paymentLink != "" {
		o.stopLocked()
		o.state = domain.PaymentReady
		o.logger.Info("payment session ready")
	}
}
