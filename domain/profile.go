package domain

// ProfileStatus is the completion snapshot returned by GET /v1/profile.
// A missing flag decodes as false.
type ProfileStatus struct {
	CKYC                 bool `json:"CKYC"`
	BasicDetails         bool `json:"BasicDetails"`
	Address              bool `json:"Address"`
	AccountDetails       bool `json:"AccountDetails"`
	NomineeDetails       bool `json:"NomineeDetails"`
	NomineeAuthenticated bool `json:"NomineeAuthenticated"`
	IsMinor              bool `json:"isMinor"`
}

// ProfileStep is one of the five ordered profile completion steps.
type ProfileStep string

const (
	StepCKYC           ProfileStep = "CKYC"
	StepBasicDetails   ProfileStep = "BasicDetails"
	StepAddress        ProfileStep = "Address"
	StepAccountDetails ProfileStep = "AccountDetails"
	StepNomineeDetails ProfileStep = "NomineeDetails"
)

// Completed reports the flag for step.
func (s ProfileStatus) Completed(step ProfileStep) bool {
	switch step {
	case StepCKYC:
		return s.CKYC
	case StepBasicDetails:
		return s.BasicDetails
	case StepAddress:
		return s.Address
	case StepAccountDetails:
		return s.AccountDetails
	case StepNomineeDetails:
		return s.NomineeDetails
	}
	return false
}

type NextActionKind string

const (
	// ActionCompleteStep sends the user to the form of the first incomplete step.
	ActionCompleteStep NextActionKind = "complete_step"
	// ActionAwaitNominee2FA sends the user home until the nominee 2FA succeeds.
	ActionAwaitNominee2FA NextActionKind = "await_nominee_2fa"
	// ActionInvest lets the user continue to the investable screen.
	ActionInvest NextActionKind = "invest"
)

type NextAction struct {
	Kind   NextActionKind `json:"kind"`
	Step   ProfileStep    `json:"step,omitempty"`
	Screen string         `json:"screen"`
}

// StepDestination is where tapping a step in the profile tab leads.
type StepDestination struct {
	Step      ProfileStep `json:"step"`
	Completed bool        `json:"completed"`
	Screen    string      `json:"screen"`
}

type ProfileOverview struct {
	Status            ProfileStatus     `json:"status"`
	CompletionPercent float64           `json:"completion_percent"`
	Steps             []StepDestination `json:"steps"`
	Next              NextAction        `json:"next"`
}

type Nominee2FAOutcome string

const (
	Nominee2FASkipped              Nominee2FAOutcome = "skipped"
	Nominee2FAAlreadyAuthenticated Nominee2FAOutcome = "already_authenticated"
	Nominee2FALinkGenerated        Nominee2FAOutcome = "link_generated"
	Nominee2FAUnrecognised         Nominee2FAOutcome = "unrecognised"
)

type Nominee2FAResult struct {
	Outcome Nominee2FAOutcome `json:"outcome"`
	Link    string            `json:"link,omitempty"`
	Profile *ProfileStatus    `json:"profile,omitempty"`
}
