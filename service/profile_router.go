package service

import "wealth-agent/domain"

type stepRoute struct {
	step domain.ProfileStep
	form string // screen that collects the step
	view string // screen that shows a completed step
}

// profileSteps is scanned top to bottom; the first incomplete step wins.
var profileSteps = []stepRoute{
	{step: domain.StepCKYC, form: "CKYCForm", view: "CKYC"},
	{step: domain.StepBasicDetails, form: "BasicDetailsForm", view: "BasicDetails"},
	{step: domain.StepAddress, form: "AddressDetailsForm", view: "Address"},
	{step: domain.StepAccountDetails, form: "AccountDetailsForm", view: "AccountDetails"},
	{step: domain.StepNomineeDetails, form: "NomineeDetailsForm", view: "NomineeDetails"},
}

// NextStep returns the single next action for a profile snapshot. It has no
// side effects, so every entry point gets the same answer for the same flags.
func NextStep(status domain.ProfileStatus) domain.NextAction {
	for _, route := range profileSteps {
		if !status.Completed(route.step) {
			return domain.NextAction{
				Kind:   domain.ActionCompleteStep,
				Step:   route.step,
				Screen: route.form,
			}
		}
	}

	if !status.NomineeAuthenticated {
		return domain.NextAction{Kind: domain.ActionAwaitNominee2FA, Screen: ScreenHome}
	}
	return domain.NextAction{Kind: domain.ActionInvest, Screen: ScreenInvest}
}

// CompletionPercent is the share of the five steps already completed, in [0, 1].
func CompletionPercent(status domain.ProfileStatus) float64 {
	done := 0
	for _, route := range profileSteps {
		if status.Completed(route.step) {
			done++
		}
	}
	return float64(done) / float64(len(profileSteps))
}

// StepDestinations lists, in order, where each step leads: the view screen
// once complete, the form otherwise.
func StepDestinations(status domain.ProfileStatus) []domain.StepDestination {
	out := make([]domain.StepDestination, 0, len(profileSteps))
	for _, route := range profileSteps {
		completed := status.Completed(route.step)
		screen := route.form
		if completed {
			screen = route.view
		}
		out = append(out, domain.StepDestination{
			Step:      route.step,
			Completed: completed,
			Screen:    screen,
		})
	}
	return out
}

func Overview(status domain.ProfileStatus) domain.ProfileOverview {
	return domain.ProfileOverview{
		Status:            status,
		CompletionPercent: CompletionPercent(status),
		Steps:             StepDestinations(status),
		Next:              NextStep(status),
	}
}
