package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"wealth-agent/domain"
	"wealth-agent/scheduler"
)

type fakePaymentBackend struct {
	mu           sync.Mutex
	subscription string
	payment      string
	subErr       error
	payErr       error
	subCalls     int
	payCalls     int
	tokens       []string
}

func (f *fakePaymentBackend) SubscriptionLink(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subCalls++
	f.tokens = append(f.tokens, token)
	return f.subscription, f.subErr
}

func (f *fakePaymentBackend) PaymentLink(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payCalls++
	f.tokens = append(f.tokens, token)
	return f.payment, f.payErr
}

func (f *fakePaymentBackend) set(subscription, payment string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscription, f.payment = subscription, payment
}

func (f *fakePaymentBackend) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subCalls, f.payCalls
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestOrchestrator(backend PaymentBackend) (*PaymentOrchestrator, *scheduler.ManualScheduler) {
	sched := scheduler.NewManualScheduler()
	o := NewPaymentOrchestrator("session-1", "tok", backend, sched, time.Minute, time.Second, quietLogger())
	return o, sched
}

func TestPaymentOrchestrator_StartsIdle(t *testing.T) {
	o, sched := newTestOrchestrator(&fakePaymentBackend{})

	snap := o.Snapshot()
	if snap.State != domain.PaymentIdle || snap.Polling {
		t.Errorf("expected idle, got %+v", snap)
	}
	if sched.Active() != 0 {
		t.Errorf("no timer should run before Start")
	}
}

func TestPaymentOrchestrator_StartTwiceIsNoop(t *testing.T) {
	o, sched := newTestOrchestrator(&fakePaymentBackend{})

	if err := o.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sched.Active() != 1 {
		t.Errorf("expected exactly one timer, got %d", sched.Active())
	}
	if o.Snapshot().State != domain.PaymentPolling {
		t.Errorf("expected polling")
	}
}

func TestPaymentOrchestrator_PollsUntilBothArtifactsArrive(t *testing.T) {
	backend := &fakePaymentBackend{}
	o, sched := newTestOrchestrator(backend)
	o.Start()

	sched.Advance(30 * time.Second)
	if sub, pay := backend.calls(); sub != 0 || pay != 0 {
		t.Fatalf("no checks expected before the first tick, got %d/%d", sub, pay)
	}

	sched.Advance(30 * time.Second)
	if sub, pay := backend.calls(); sub != 1 || pay != 1 {
		t.Fatalf("expected one check each, got %d/%d", sub, pay)
	}

	backend.set("https://bse.example/sub", "")
	sched.Advance(time.Minute)
	snap := o.Snapshot()
	if snap.SubscriptionLink != "https://bse.example/sub" || snap.State != domain.PaymentPolling {
		t.Fatalf("expected subscription link while still polling, got %+v", snap)
	}

	backend.set("https://bse.example/other", "<html>pay</html>")
	sched.Advance(time.Minute)

	sub, pay := backend.calls()
	if sub != 2 {
		t.Errorf("subscription must not be re-fetched once held, got %d calls", sub)
	}
	if pay != 3 {
		t.Errorf("expected 3 payment checks, got %d", pay)
	}

	snap = o.Snapshot()
	if snap.State != domain.PaymentReady || snap.Polling {
		t.Fatalf("expected ready, got %+v", snap)
	}
	if snap.SubscriptionLink != "https://bse.example/sub" || snap.PaymentLink != "<html>pay</html>" {
		t.Errorf("unexpected artifacts %+v", snap)
	}
	if sched.Active() != 0 {
		t.Errorf("timer must stop once ready")
	}

	sched.Advance(10 * time.Minute)
	if s, p := backend.calls(); s != sub || p != pay {
		t.Errorf("no ticks expected after ready, got %d/%d", s, p)
	}
}

func TestPaymentOrchestrator_ReadyInOneTick(t *testing.T) {
	backend := &fakePaymentBackend{subscription: "sub", payment: "pay"}
	o, sched := newTestOrchestrator(backend)
	o.Start()

	sched.Advance(time.Minute)

	if o.Snapshot().State != domain.PaymentReady {
		t.Errorf("expected ready after a single tick")
	}
	for _, tok := range backend.tokens {
		if tok != "tok" {
			t.Errorf("expected session token to be forwarded, got %q", tok)
		}
	}
}

func TestPaymentOrchestrator_FailureDoesNotAffectOtherCheck(t *testing.T) {
	backend := &fakePaymentBackend{subErr: errors.New("boom"), payment: "pay"}
	o, sched := newTestOrchestrator(backend)
	o.Start()

	sched.Advance(time.Minute)

	snap := o.Snapshot()
	if snap.PaymentLink != "pay" {
		t.Errorf("payment check must succeed despite subscription failure")
	}
	if snap.State != domain.PaymentPolling {
		t.Errorf("a failed check reads as not ready; expected polling, got %s", snap.State)
	}

	sched.Advance(5 * time.Minute)
	if sub, _ := backend.calls(); sub != 6 {
		t.Errorf("failing check must be retried every tick, got %d calls", sub)
	}
}

func TestPaymentOrchestrator_CancelReturnsToIdle(t *testing.T) {
	backend := &fakePaymentBackend{}
	o, sched := newTestOrchestrator(backend)
	o.Start()
	sched.Advance(time.Minute)

	o.Cancel()

	snap := o.Snapshot()
	if snap.State != domain.PaymentIdle || snap.Polling {
		t.Errorf("expected idle, got %+v", snap)
	}
	if sched.Active() != 0 {
		t.Errorf("timer must stop on cancel")
	}

	sched.Advance(10 * time.Minute)
	if sub, pay := backend.calls(); sub != 1 || pay != 1 {
		t.Errorf("no stale ticks expected after cancel, got %d/%d", sub, pay)
	}
}

func TestPaymentOrchestrator_StartClearsStaleArtifacts(t *testing.T) {
	backend := &fakePaymentBackend{subscription: "sub-1", payment: "pay-1"}
	o, sched := newTestOrchestrator(backend)
	o.Start()
	sched.Advance(time.Minute)
	if o.Snapshot().State != domain.PaymentReady {
		t.Fatalf("expected ready")
	}

	backend.set("", "")
	if err := o.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := o.Snapshot()
	if snap.State != domain.PaymentPolling || snap.SubscriptionLink != "" || snap.PaymentLink != "" {
		t.Errorf("restart must clear artifacts, got %+v", snap)
	}
}

func TestPaymentOrchestrator_CloseIsTerminal(t *testing.T) {
	o, sched := newTestOrchestrator(&fakePaymentBackend{})
	o.Start()

	o.Close()
	o.Close()

	if sched.Active() != 0 {
		t.Errorf("close must cancel the timer")
	}
	if err := o.Start(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

type blockingPaymentBackend struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingPaymentBackend) SubscriptionLink(context.Context, string) (string, error) {
	b.entered <- struct{}{}
	<-b.release
	return "late-sub", nil
}

func (b *blockingPaymentBackend) PaymentLink(context.Context, string) (string, error) {
	return "", nil
}

func TestPaymentOrchestrator_LateResponseDoesNotRestartPolling(t *testing.T) {
	backend := &blockingPaymentBackend{entered: make(chan struct{}), release: make(chan struct{})}
	o, sched := newTestOrchestrator(backend)
	o.Start()

	done := make(chan struct{})
	go func() {
		sched.Advance(time.Minute)
		close(done)
	}()

	<-backend.entered
	o.Cancel()
	close(backend.release)
	<-done

	snap := o.Snapshot()
	if snap.State != domain.PaymentIdle || snap.Polling {
		t.Errorf("late response must not resume polling, got %+v", snap)
	}
	if snap.SubscriptionLink != "late-sub" {
		t.Errorf("late response may still record its artifact, got %q", snap.SubscriptionLink)
	}
	if sched.Active() != 0 {
		t.Errorf("no timer expected after cancel")
	}
}
