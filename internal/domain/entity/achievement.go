package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceantrail/divelog-api/internal/domain"
)

// AchievementType distinguishes one-shot milestones from progressive ones.
type AchievementType string

const (
	AchievementMilestone   AchievementType = "milestone"
	AchievementProgressive AchievementType = "progressive"
)

// AchievementCategory groups catalog entries for display.
type AchievementCategory string

const (
	CategoryDiving      AchievementCategory = "diving"
	CategoryExploration AchievementCategory = "exploration"
	CategoryCommunity   AchievementCategory = "community"
	CategoryTraining    AchievementCategory = "training"
)

const (
	minAchievementTitleLen       = 3
	maxAchievementTitleLen       = 100
	minAchievementDescriptionLen = 10
	maxAchievementDescriptionLen = 500
	maxAchievementPoints         = 10000
	maxAchievementIconURLLen     = 500
	maxRequiredValue             = 1000000
)

// Achievement is a catalog entry divers can unlock.
type Achievement struct {
	id              string
	title           string
	description     string
	achievementType AchievementType
	category        AchievementCategory
	points          int
	iconURL         *string
	requiredValue   *int
	isSecret        bool
	createdAt       time.Time
	updatedAt       time.Time
}

// NewAchievementInput carries the arguments for NewAchievement.
// RequiredValue applies to progressive achievements only.
type NewAchievementInput struct {
	Title         string
	Description   string
	Type          AchievementType
	Category      AchievementCategory
	Points        int
	IconURL       *string
	RequiredValue *int
	IsSecret      bool
}

// NewAchievement validates and creates a catalog entry.
func NewAchievement(in NewAchievementInput) (*Achievement, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if len(title) < minAchievementTitleLen || len(title) > maxAchievementTitleLen {
		return nil, domain.NewValidationError("title", "must be between 3 and 100 characters")
	}
	if len(description) < minAchievementDescriptionLen || len(description) > maxAchievementDescriptionLen {
		return nil, domain.NewValidationError("description", "must be between 10 and 500 characters")
	}
	if in.Type == "" {
		return nil, domain.NewValidationError("type", "is required")
	}
	if in.Category == "" {
		return nil, domain.NewValidationError("category", "is required")
	}
	if in.Points < 0 || in.Points > maxAchievementPoints {
		return nil, domain.NewValidationError("points", "must be between 0 and 10000")
	}
	icon := trimOptional(in.IconURL)
	if icon != nil && len(*icon) > maxAchievementIconURLLen {
		return nil, domain.NewValidationError("iconUrl", "must be at most 500 characters")
	}
	if in.RequiredValue != nil && (*in.RequiredValue < 1 || *in.RequiredValue > maxRequiredValue) {
		return nil, domain.NewValidationError("requiredValue", "must be between 1 and 1000000")
	}

	now := time.Now().UTC()
	return &Achievement{
		id:              uuid.NewString(),
		title:           title,
		description:     description,
		achievementType: in.Type,
		category:        in.Category,
		points:          in.Points,
		iconURL:         icon,
		requiredValue:   copyOptionalInt(in.RequiredValue),
		isSecret:        in.IsSecret,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ToggleSecret flips the secret flag. No precondition.
func (a *Achievement) ToggleSecret() {
	a.isSecret = !a.isSecret
	a.updatedAt = time.Now().UTC()
}

func (a *Achievement) ID() string                     { return a.id }
func (a *Achievement) Title() string                  { return a.title }
func (a *Achievement) Description() string            { return a.description }
func (a *Achievement) Type() AchievementType          { return a.achievementType }
func (a *Achievement) Category() AchievementCategory  { return a.category }
func (a *Achievement) Points() int                    { return a.points }
func (a *Achievement) IconURL() *string               { return copyOptional(a.iconURL) }
func (a *Achievement) RequiredValue() *int            { return copyOptionalInt(a.requiredValue) }
func (a *Achievement) IsSecret() bool                 { return a.isSecret }
func (a *Achievement) CreatedAt() time.Time           { return a.createdAt }
func (a *Achievement) UpdatedAt() time.Time           { return a.updatedAt }

// AchievementRecord is the persistence mapping for Achievement.
type AchievementRecord struct {
	ID            string
	Title         string
	Description   string
	Type          AchievementType
	Category      AchievementCategory
	Points        int
	IconURL       *string
	RequiredValue *int
	IsSecret      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreAchievement rehydrates a catalog entry from the store.
func RestoreAchievement(rec AchievementRecord) *Achievement {
	return &Achievement{
		id:              rec.ID,
		title:           rec.Title,
		description:     rec.Description,
		achievementType: rec.Type,
		category:        rec.Category,
		points:          rec.Points,
		iconURL:         rec.IconURL,
		requiredValue:   rec.RequiredValue,
		isSecret:        rec.IsSecret,
		createdAt:       rec.CreatedAt,
		updatedAt:       rec.UpdatedAt,
	}
}

// Record exports the achievement for persistence.
func (a *Achievement) Record() AchievementRecord {
	return AchievementRecord{
		ID:            a.id,
		Title:         a.title,
		Description:   a.description,
		Type:          a.achievementType,
		Category:      a.category,
		Points:        a.points,
		IconURL:       a.iconURL,
		RequiredValue: a.requiredValue,
		IsSecret:      a.isSecret,
		CreatedAt:     a.createdAt,
		UpdatedAt:     a.updatedAt,
	}
}

// UserAchievement joins a user with an unlocked achievement. Progress is
// freely updatable in either direction.
type UserAchievement struct {
	id            string
	userID        string
	achievementID string
	progress      *int
	unlockedAt    time.Time
}

// NewUserAchievement records an unlock for a user.
func NewUserAchievement(userID, achievementID string, progress *int) (*UserAchievement, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("userId", "is required")
	}
	if strings.TrimSpace(achievementID) == "" {
		return nil, domain.NewValidationError("achievementId", "is required")
	}
	if err := validateProgress(progress); err != nil {
		return nil, err
	}
	return &UserAchievement{
		id:            uuid.NewString(),
		userID:        userID,
		achievementID: achievementID,
		progress:      copyOptionalInt(progress),
		unlockedAt:    time.Now().UTC(),
	}, nil
}

func validateProgress(progress *int) error {
	if progress != nil && (*progress < 0 || *progress > maxRequiredValue) {
		return domain.NewValidationError("progress", "must be between 0 and 1000000")
	}
	return nil
}

// UpdateProgress replaces recorded progress; no monotonicity is required.
func (ua *UserAchievement) UpdateProgress(progress *int) error {
	if err := validateProgress(progress); err != nil {
		return err
	}
	ua.progress = copyOptionalInt(progress)
	return nil
}

func (ua *UserAchievement) ID() string            { return ua.id }
func (ua *UserAchievement) UserID() string        { return ua.userID }
func (ua *UserAchievement) AchievementID() string { return ua.achievementID }
func (ua *UserAchievement) Progress() *int        { return copyOptionalInt(ua.progress) }
func (ua *UserAchievement) UnlockedAt() time.Time { return ua.unlockedAt }

// UserAchievementRecord is the persistence mapping for UserAchievement.
type UserAchievementRecord struct {
	ID            string
	UserID        string
	AchievementID string
	Progress      *int
	UnlockedAt    time.Time
}

// RestoreUserAchievement rehydrates an unlock from the store.
func RestoreUserAchievement(rec UserAchievementRecord) *UserAchievement {
	return &UserAchievement{
		id:            rec.ID,
		userID:        rec.UserID,
		achievementID: rec.AchievementID,
		progress:      rec.Progress,
		unlockedAt:    rec.UnlockedAt,
	}
}

// Record exports the unlock for persistence.
func (ua *UserAchievement) Record() UserAchievementRecord {
	return UserAchievementRecord{
		ID:            ua.id,
		UserID:        ua.userID,
		AchievementID: ua.achievementID,
		Progress:      ua.progress,
		UnlockedAt:    ua.unlockedAt,
	}
}
