package domain

import "time"

type SessionMode string

const (
	SessionGuest SessionMode = "guest"
	SessionUser  SessionMode = "user"
)

// Session is the opaque blob persisted in the key-value store.
type Session struct {
	Mode           SessionMode `json:"mode"`
	UserID         string      `json:"user_id,omitempty"`
	ReferralCount  int         `json:"referral_count"`
	ReferralVolume float64     `json:"referral_volume"`
	CreatedAt      time.Time   `json:"created_at"`
}

type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// TierFor derives the referral tier. Both the referral count and the
// referral volume threshold must be met for a tier.
func TierFor(referrals int, volume float64) Tier {
	switch {
	case referrals >= 101 && volume >= 1000000:
		return TierPlatinum
	case referrals >= 26 && volume >= 250000:
		return TierGold
	case referrals >= 6 && volume >= 50000:
		return TierSilver
	default:
		return TierBronze
	}
}
