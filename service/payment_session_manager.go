package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wealth-agent/domain"
	"wealth-agent/scheduler"
)

type paymentSession struct {
	token        string
	orchestrator *PaymentOrchestrator
	lastAccess   time.Time
}

// PaymentSessionManager owns one PaymentOrchestrator per open payment screen.
// A session is only visible to the token that created it.
type PaymentSessionManager struct {
	backend   PaymentBackend
	scheduler scheduler.Scheduler
	interval  time.Duration
	timeout   time.Duration
	logger    *logrus.Logger
	now       func() time.Time

	mu          sync.Mutex
	sessions    map[string]*paymentSession
	stopSweeper func()
}

func NewPaymentSessionManager(
	backend PaymentBackend,
	sched scheduler.Scheduler,
	interval time.Duration,
	timeout time.Duration,
	logger *logrus.Logger,
) *PaymentSessionManager {
	return &PaymentSessionManager{
		backend:   backend,
		scheduler: sched,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*paymentSession),
	}
}

// Open creates an Idle session for token.
func (m *PaymentSessionManager) Open(token string) domain.PaymentSnapshot {
	id := uuid.NewString()
	o := NewPaymentOrchestrator(id, token, m.backend, m.scheduler, m.interval, m.timeout, m.logger)

	m.mu.Lock()
	m.sessions[id] = &paymentSession{token: token, orchestrator: o, lastAccess: m.now()}
	m.mu.Unlock()

	return o.Snapshot()
}

func (m *PaymentSessionManager) Start(id, token string) (domain.PaymentSnapshot, error) {
	o, err := m.lookup(id, token)
	if err != nil {
		return domain.PaymentSnapshot{}, err
	}
	if err := o.Start(); err != nil {
		return domain.PaymentSnapshot{}, err
	}
	return o.Snapshot(), nil
}

func (m *PaymentSessionManager) Cancel(id, token string) (domain.PaymentSnapshot, error) {
	o, err := m.lookup(id, token)
	if err != nil {
		return domain.PaymentSnapshot{}, err
	}
	o.Cancel()
	return o.Snapshot(), nil
}

func (m *PaymentSessionManager) Snapshot(id, token string) (domain.PaymentSnapshot, error) {
	o, err := m.lookup(id, token)
	if err != nil {
		return domain.PaymentSnapshot{}, err
	}
	return o.Snapshot(), nil
}

// Close tears a session down and forgets it.
func (m *PaymentSessionManager) Close(id, token string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok || s.token != token {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	s.orchestrator.Close()
	return nil
}

// StartSweeper closes sessions nobody has touched for idleTTL, checking every
// interval. Calling it again replaces the previous sweeper.
func (m *PaymentSessionManager) StartSweeper(idleTTL, interval time.Duration) error {
	if idleTTL <= 0 {
		return fmt.Errorf("invalid session idle ttl %v", idleTTL)
	}
	stop, err := m.scheduler.Every(interval, func() { m.sweep(idleTTL) })
	if err != nil {
		return fmt.Errorf("start session sweeper: %w", err)
	}

	m.mu.Lock()
	previous := m.stopSweeper
	m.stopSweeper = stop
	m.mu.Unlock()

	if previous != nil {
		previous()
	}
	m.logger.WithFields(logrus.Fields{
		"idle_ttl": idleTTL.String(),
		"interval": interval.String(),
	}).Info("payment session sweeper started")
	return nil
}

func (m *PaymentSessionManager) sweep(idleTTL time.Duration) {
	now := m.now()

	m.mu.Lock()
	var idle []*PaymentOrchestrator
	for id, s := range m.sessions {
		if now.Sub(s.lastAccess) >= idleTTL {
			idle = append(idle, s.orchestrator)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, o := range idle {
		o.Close()
	}
	if len(idle) > 0 {
		m.logger.WithField("sessions", len(idle)).Info("idle payment sessions closed")
	}
}

// CloseAll stops the sweeper and tears down every open session, used on
// shutdown.
func (m *PaymentSessionManager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*paymentSession)
	stop := m.stopSweeper
	m.stopSweeper = nil
	m.mu.Unlock()

	if stop != nil {
		stop()
	}
	for _, s := range sessions {
		s.orchestrator.Close()
	}
	m.logger.WithField("sessions", len(sessions)).Info("payment sessions closed")
}

func (m *PaymentSessionManager) lookup(id, token string) (*PaymentOrchestrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.token != token {
		return nil, ErrSessionNotFound
	}
	s.lastAccess = m.now()
	return s.orchestrator, nil
}
