package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

const (
	maxEmailLen    = 100
	minUsernameLen = 3
	maxUsernameLen = 30
)

// User is the account entity. Email is normalized to lowercase on creation.
type User struct {
	id           string
	email        string
	username     string
	profile      values.UserProfile
	isPremium    bool
	premiumSince *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser validates and creates a user account.
func NewUser(email, username string, profile values.UserProfile) (*User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.NewString(),
		email:     email,
		username:  username,
		profile:   profile,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.NewValidationError("email", "is required")
	}
	if len(email) > maxEmailLen {
		return "", domain.NewValidationError("email", "must be at most 100 characters")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "", domain.NewValidationError("email", "must be a valid email address")
	}
	return email, nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return domain.NewValidationError("username", "must be between 3 and 30 characters")
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return domain.NewValidationError("username", "may only contain letters, digits, underscores and hyphens")
		}
	}
	return nil
}

// UpdateProfile replaces the display profile.
func (u *User) UpdateProfile(profile values.UserProfile) {
	u.profile = profile
	u.touch()
}

// UpgradeToPremium marks the account premium, recording when.
func (u *User) UpgradeToPremium() error {
	if u.isPremium {
		return domain.NewStateConflictError("user is already premium")
	}
	now := time.Now().UTC()
	u.isPremium = true
	u.premiumSince = &now
	u.touch()
	return nil
}

// DowngradeFromPremium clears the premium status.
func (u *User) DowngradeFromPremium() error {
	if !u.isPremium {
		return domain.NewStateConflictError("user is not premium")
	}
	u.isPremium = false
	u.premiumSince = nil
	u.touch()
	return nil
}

func (u *User) touch() { u.updatedAt = time.Now().UTC() }

func (u *User) ID() string                  { return u.id }
func (u *User) Email() string               { return u.email }
func (u *User) Username() string            { return u.username }
func (u *User) Profile() values.UserProfile { return u.profile }
func (u *User) IsPremium() bool             { return u.isPremium }
func (u *User) CreatedAt() time.Time        { return u.createdAt }
func (u *User) UpdatedAt() time.Time        { return u.updatedAt }

// PremiumSince returns when the account became premium, or nil.
func (u *User) PremiumSince() *time.Time {
	if u.premiumSince == nil {
		return nil
	}
	t := *u.premiumSince
	return &t
}

// UserRecord is the persistence mapping for User.
type UserRecord struct {
	ID           string
	Email        string
	Username     string
	Profile      values.UserProfile
	IsPremium    bool
	PremiumSince *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreUser rehydrates a user from the store.
func RestoreUser(rec UserRecord) *User {
	return &User{
		id:           rec.ID,
		email:        rec.Email,
		username:     rec.Username,
		profile:      rec.Profile,
		isPremium:    rec.IsPremium,
		premiumSince: rec.PremiumSince,
		createdAt:    rec.CreatedAt,
		updatedAt:    rec.UpdatedAt,
	}
}

// Record exports the user for persistence.
func (u *User) Record() UserRecord {
	return UserRecord{
		ID:           u.id,
		Email:        u.email,
		Username:     u.username,
		Profile:      u.profile,
		IsPremium:    u.isPremium,
		PremiumSince: u.PremiumSince(),
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
	}
}
