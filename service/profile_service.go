package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"wealth-agent/backend"
	"wealth-agent/domain"
)

// ProfileBackend is the part of the provider API the profile flow needs.
type ProfileBackend interface {
	FetchProfile(ctx context.Context, token string) (domain.ProfileStatus, error)
	Nominee2FA(ctx context.Context, token string) (backend.Nominee2FAResponse, error)
}

type ProfileService struct {
	backend ProfileBackend
	logger  *logrus.Logger
}

func NewProfileService(backend ProfileBackend, logger *logrus.Logger) *ProfileService {
	return &ProfileService{backend: backend, logger: logger}
}

// Overview fetches a fresh flag snapshot and derives the routing view of it.
func (s *ProfileService) Overview(ctx context.Context, token string) (domain.ProfileOverview, error) {
	status, err := s.backend.FetchProfile(ctx, token)
	if err != nil {
		return domain.ProfileOverview{}, fmt.Errorf("fetch profile: %w", err)
	}
	return Overview(status), nil
}

func (s *ProfileService) NextAction(ctx context.Context, token string) (domain.NextAction, error) {
	status, err := s.backend.FetchProfile(ctx, token)
	if err != nil {
		return domain.NextAction{}, fmt.Errorf("fetch profile: %w", err)
	}
	return NextStep(status), nil
}

// CheckNominee2FA runs the nominee 2FA step once the nominee is saved but not
// yet authenticated. An "already authenticated" reply triggers a profile
// refresh; a "2FA link generated" reply hands back the link to open.
func (s *ProfileService) CheckNominee2FA(ctx context.Context, token string) (domain.Nominee2FAResult, error) {
	status, err := s.backend.FetchProfile(ctx, token)
	if err != nil {
		return domain.Nominee2FAResult{}, fmt.Errorf("fetch profile: %w", err)
	}
	if !status.NomineeDetails || status.NomineeAuthenticated {
		return domain.Nominee2FAResult{Outcome: domain.Nominee2FASkipped}, nil
	}

	resp, err := s.backend.Nominee2FA(ctx, token)
	if err != nil {
		s.logger.WithError(err).Warn("nominee 2FA request failed")
		return domain.Nominee2FAResult{}, fmt.Errorf("nominee 2FA: %w", err)
	}

	message := strings.ToLower(resp.Message)
	switch {
	case strings.Contains(message, "already authenticated"):
		refreshed, err := s.backend.FetchProfile(ctx, token)
		if err != nil {
			return domain.Nominee2FAResult{}, fmt.Errorf("refresh profile: %w", err)
		}
		return domain.Nominee2FAResult{
			Outcome: domain.Nominee2FAAlreadyAuthenticated,
			Profile: &refreshed,
		}, nil
	case strings.Contains(message, "2fa link generated"):
		return domain.Nominee2FAResult{
			Outcome: domain.Nominee2FALinkGenerated,
			Link:    resp.ReturnURL,
		}, nil
	}

	s.logger.WithField("message", resp.Message).Info("unrecognised nominee 2FA reply")
	return domain.Nominee2FAResult{Outcome: domain.Nominee2FAUnrecognised}, nil
}
