package values

import (
	"strings"

	"github.com/oceantrail/divelog-api/internal/domain"
)

const (
	maxNameLen      = 50
	maxBioLen       = 1000
	maxAvatarURLLen = 500
)

// UserProfile is a validated tuple of display data, compared by value.
type UserProfile struct {
	firstName string
	lastName  string
	bio       string
	avatarURL *string
}

// NewUserProfile trims and validates profile data. First and last name are
// required; bio and avatar URL are optional.
func NewUserProfile(firstName, lastName, bio string, avatarURL *string) (UserProfile, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	bio = strings.TrimSpace(bio)

	if firstName == "" {
		return UserProfile{}, domain.NewValidationError("firstName", "is required")
	}
	if len(firstName) > maxNameLen {
		return UserProfile{}, domain.NewValidationError("firstName", "must be at most 50 characters")
	}
	if lastName == "" {
		return UserProfile{}, domain.NewValidationError("lastName", "is required")
	}
	if len(lastName) > maxNameLen {
		return UserProfile{}, domain.NewValidationError("lastName", "must be at most 50 characters")
	}
	if len(bio) > maxBioLen {
		return UserProfile{}, domain.NewValidationError("bio", "must be at most 1000 characters")
	}

	var avatar *string
	if avatarURL != nil {
		u := strings.TrimSpace(*avatarURL)
		if len(u) > maxAvatarURLLen {
			return UserProfile{}, domain.NewValidationError("avatarUrl", "must be at most 500 characters")
		}
		if u != "" {
			avatar = &u
		}
	}

	return UserProfile{firstName: firstName, lastName: lastName, bio: bio, avatarURL: avatar}, nil
}

func (p UserProfile) FirstName() string { return p.firstName }
func (p UserProfile) LastName() string  { return p.lastName }
func (p UserProfile) Bio() string       { return p.bio }

// AvatarURL returns the avatar URL or nil when unset.
func (p UserProfile) AvatarURL() *string {
	if p.avatarURL == nil {
		return nil
	}
	u := *p.avatarURL
	return &u
}

// FullName joins first and last name for display.
func (p UserProfile) FullName() string {
	return p.firstName + " " + p.lastName
}

// Equal compares two profiles by value.
func (p UserProfile) Equal(other UserProfile) bool {
	if p.firstName != other.firstName || p.lastName != other.lastName || p.bio != other.bio {
		return false
	}
	if (p.avatarURL == nil) != (other.avatarURL == nil) {
		return false
	}
	return p.avatarURL == nil || *p.avatarURL == *other.avatarURL
}
