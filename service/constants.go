package service

import "time"

const (
	// calculator results are pure, so cached entries only age out to bound memory
	CalculationCacheTTL = 24 * time.Hour

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200

	DefaultPollInterval   = 60 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	SessionSweepInterval  = time.Minute
)

// Screens the profile router can send a user to.
const (
	ScreenHome   = "Home"
	ScreenInvest = "Invest"
)
