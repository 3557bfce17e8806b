package domain

import "errors"

// Sentinel errors used throughout the application.
// Both abort the run: a reminder computed from corrupt data is worse
// than no reminder at all.
var (
	ErrInvalidAmount = errors.New("payment amount is not numeric")
	ErrDataIntegrity = errors.New("payment has no doctor record")
)
