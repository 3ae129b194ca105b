package token

import (
	"fmt"
	"time"
)

// CurrentID keys the singleton credential row the sync job reads.
const CurrentID = "current"

// Pair is the stored OAuth access/refresh credential for the provider.
type Pair struct {
	ID           string
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	UpdatedAt    time.Time
}

func (p Pair) Validate() error {
	if p.AccessToken == "" {
		return fmt.Errorf("access token is required")
	}
	if p.RefreshToken == "" {
		return fmt.Errorf("refresh token is required")
	}

	return nil
}

// Expired reports whether the access token is past its expiry at now.
func (p Pair) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}
