package service

import (
	"context"
	"errors"
	"testing"

	"wealth-agent/backend"
	"wealth-agent/domain"
)

type fakeProfileBackend struct {
	statuses    []domain.ProfileStatus
	fetchCalls  int
	fetchErr    error
	nominee     backend.Nominee2FAResponse
	nomineeErr  error
	nomineeHits int
}

func (f *fakeProfileBackend) FetchProfile(context.Context, string) (domain.ProfileStatus, error) {
	if f.fetchErr != nil {
		return domain.ProfileStatus{}, f.fetchErr
	}
	i := f.fetchCalls
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.fetchCalls++
	return f.statuses[i], nil
}

func (f *fakeProfileBackend) Nominee2FA(context.Context, string) (backend.Nominee2FAResponse, error) {
	f.nomineeHits++
	return f.nominee, f.nomineeErr
}

var nomineePending = domain.ProfileStatus{
	CKYC: true, BasicDetails: true, Address: true, AccountDetails: true, NomineeDetails: true,
}

func TestProfileService_Overview(t *testing.T) {
	svc := NewProfileService(&fakeProfileBackend{statuses: []domain.ProfileStatus{{CKYC: true}}}, quietLogger())

	overview, err := svc.Overview(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.CompletionPercent != 0.2 {
		t.Errorf("expected 0.2, got %.2f", overview.CompletionPercent)
	}
	if overview.Next.Step != domain.StepBasicDetails {
		t.Errorf("expected basic details next, got %+v", overview.Next)
	}
}

func TestProfileService_FetchError(t *testing.T) {
	svc := NewProfileService(&fakeProfileBackend{fetchErr: errors.New("down")}, quietLogger())

	if _, err := svc.NextAction(context.Background(), "tok"); err == nil {
		t.Error("expected error")
	}
}

func TestProfileService_Nominee2FASkippedWhenNotApplicable(t *testing.T) {
	cases := []domain.ProfileStatus{
		{CKYC: true},
		func() domain.ProfileStatus { s := nomineePending; s.NomineeAuthenticated = true; return s }(),
	}

	for _, status := range cases {
		fake := &fakeProfileBackend{statuses: []domain.ProfileStatus{status}}
		svc := NewProfileService(fake, quietLogger())

		result, err := svc.CheckNominee2FA(context.Background(), "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome != domain.Nominee2FASkipped || fake.nomineeHits != 0 {
			t.Errorf("expected skip without calling provider, got %+v (%d calls)", result, fake.nomineeHits)
		}
	}
}

func TestProfileService_Nominee2FALinkGenerated(t *testing.T) {
	fake := &fakeProfileBackend{
		statuses: []domain.ProfileStatus{nomineePending},
		nominee:  backend.Nominee2FAResponse{Message: "2FA Link Generated successfully", ReturnURL: "https://bse.example/n"},
	}
	svc := NewProfileService(fake, quietLogger())

	result, err := svc.CheckNominee2FA(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != domain.Nominee2FALinkGenerated || result.Link != "https://bse.example/n" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestProfileService_Nominee2FAAlreadyAuthenticatedRefreshes(t *testing.T) {
	authenticated := nomineePending
	authenticated.NomineeAuthenticated = true
	fake := &fakeProfileBackend{
		statuses: []domain.ProfileStatus{nomineePending, authenticated},
		nominee:  backend.Nominee2FAResponse{Message: "Nominee Already Authenticated"},
	}
	svc := NewProfileService(fake, quietLogger())

	result, err := svc.CheckNominee2FA(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != domain.Nominee2FAAlreadyAuthenticated {
		t.Fatalf("unexpected outcome %s", result.Outcome)
	}
	if fake.fetchCalls != 2 || result.Profile == nil || !result.Profile.NomineeAuthenticated {
		t.Errorf("expected refreshed profile, got %+v after %d fetches", result.Profile, fake.fetchCalls)
	}
}

func TestProfileService_Nominee2FAUnrecognisedAndErrors(t *testing.T) {
	fake := &fakeProfileBackend{
		statuses: []domain.ProfileStatus{nomineePending},
		nominee:  backend.Nominee2FAResponse{Message: "try later"},
	}
	svc := NewProfileService(fake, quietLogger())

	result, err := svc.CheckNominee2FA(context.Background(), "tok")
	if err != nil || result.Outcome != domain.Nominee2FAUnrecognised {
		t.Errorf("expected unrecognised, got %+v %v", result, err)
	}

	fake.nomineeErr = &backend.APIError{StatusCode: 500}
	if _, err := svc.CheckNominee2FA(context.Background(), "tok"); err == nil {
		t.Error("expected provider error")
	}
}
