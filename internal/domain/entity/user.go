package entity

import (
	"time"
)

const (
	ReputationVeryBad  = "VERY_BAD"
	ReputationBad      = "BAD"
	ReputationNeutral  = "NEUTRAL"
	ReputationGood     = "GOOD"
	ReputationVeryGood = "VERY_GOOD"
)

type User struct {
	ID         string `json:"id" db:"id"`
	Email      string `json:"email" db:"email"`
	Username   string `json:"username" db:"username"`
	Nickname   string `json:"nickname,omitempty" db:"nickname"`
	AvatarURL  string `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio        string `json:"bio,omitempty" db:"bio"`
	City       string `json:"city,omitempty" db:"city"`
	Verified   bool   `json:"verified" db:"verified"`
	Banned     bool   `json:"banned" db:"banned"`
	Admin      bool   `json:"admin" db:"admin"`
	Reputation string `json:"reputation" db:"reputation"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Principal is the authenticated caller as asserted by the auth layer. It is
// passed explicitly into use cases instead of reading loose session fields.
type Principal struct {
	ID       string `json:"id"`
	IsAdmin  bool   `json:"is_admin"`
	IsBanned bool   `json:"is_banned"`
}
