package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

const (
	minSpotNameLen        = 3
	maxSpotNameLen        = 100
	minSpotDescriptionLen = 10
	maxSpotDescriptionLen = 2000
	maxPhotoURLLen        = 500
	maxPhotoCaptionLen    = 200
	minRatingScore        = 1
	maxRatingScore        = 5
	maxRatingCommentLen   = 1000
)

// Photo is a child of DivingSpot.
type Photo struct {
	id         string
	url        string
	caption    *string
	uploadedBy string
	uploadedAt time.Time
}

func (p Photo) ID() string            { return p.id }
func (p Photo) URL() string           { return p.url }
func (p Photo) Caption() *string      { return copyOptional(p.caption) }
func (p Photo) UploadedBy() string    { return p.uploadedBy }
func (p Photo) UploadedAt() time.Time { return p.uploadedAt }

// Rating is a child of DivingSpot, unique per rating user.
type Rating struct {
	id        string
	userID    string
	score     int
	comment   *string
	createdAt time.Time
	updatedAt time.Time
}

func (r Rating) ID() string           { return r.id }
func (r Rating) UserID() string       { return r.userID }
func (r Rating) Score() int           { return r.score }
func (r Rating) Comment() *string     { return copyOptional(r.comment) }
func (r Rating) CreatedAt() time.Time { return r.createdAt }
func (r Rating) UpdatedAt() time.Time { return r.updatedAt }

// DivingSpot is the aggregate root owning photos and ratings.
type DivingSpot struct {
	id                 string
	name               string
	description        string
	location           values.Coordinates
	maximumDepth       *values.Depth
	currentTemperature *values.WaterTemperature
	currentVisibility  *values.Visibility
	createdBy          string
	photos             []Photo
	ratings            []Rating
	createdAt          time.Time
	updatedAt          time.Time
}

// NewDivingSpot validates and creates a diving spot.
func NewDivingSpot(name, description string, location values.Coordinates, createdBy string, maximumDepth *values.Depth) (*DivingSpot, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateSpotInfo(name, description); err != nil {
		return nil, err
	}
	if strings.TrimSpace(createdBy) == "" {
		return nil, domain.NewValidationError("createdBy", "is required")
	}

	now := time.Now().UTC()
	return &DivingSpot{
		id:           uuid.NewString(),
		name:         name,
		description:  description,
		location:     location,
		maximumDepth: maximumDepth,
		createdBy:    createdBy,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func validateSpotInfo(name, description string) error {
	if len(name) < minSpotNameLen || len(name) > maxSpotNameLen {
		return domain.NewValidationError("name", "must be between 3 and 100 characters")
	}
	if len(description) < minSpotDescriptionLen || len(description) > maxSpotDescriptionLen {
		return domain.NewValidationError("description", "must be between 10 and 2000 characters")
	}
	return nil
}

// UpdateInformation replaces name, description and location.
func (s *DivingSpot) UpdateInformation(name, description string, location values.Coordinates) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateSpotInfo(name, description); err != nil {
		return err
	}
	s.name = name
	s.description = description
	s.location = location
	s.touch()
	return nil
}

// UpdateConditions records the latest observed water conditions.
func (s *DivingSpot) UpdateConditions(temp *values.WaterTemperature, visibility *values.Visibility) {
	s.currentTemperature = temp
	s.currentVisibility = visibility
	s.touch()
}

// UpdateMaximumDepth replaces the advertised maximum depth.
func (s *DivingSpot) UpdateMaximumDepth(depth *values.Depth) {
	s.maximumDepth = depth
	s.touch()
}

// AddPhoto appends a new photo and returns it.
func (s *DivingSpot) AddPhoto(url string, caption *string, uploadedBy string) (Photo, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Photo{}, domain.NewValidationError("url", "is required")
	}
	if len(url) > maxPhotoURLLen {
		return Photo{}, domain.NewValidationError("url", "must be at most 500 characters")
	}
	caption = trimOptional(caption)
	if caption != nil && len(*caption) > maxPhotoCaptionLen {
		return Photo{}, domain.NewValidationError("caption", "must be at most 200 characters")
	}
	if strings.TrimSpace(uploadedBy) == "" {
		return Photo{}, domain.NewValidationError("uploadedBy", "is required")
	}

	photo := Photo{
		id:         uuid.NewString(),
		url:        url,
		caption:    caption,
		uploadedBy: uploadedBy,
		uploadedAt: time.Now().UTC(),
	}
	s.photos = append(s.photos, photo)
	s.touch()
	return photo, nil
}

// RemovePhoto deletes a photo by id.
func (s *DivingSpot) RemovePhoto(photoID string) error {
	for i, p := range s.photos {
		if p.id == photoID {
			s.photos = append(s.photos[:i], s.photos[i+1:]...)
			s.touch()
			return nil
		}
	}
	return domain.NewNotFoundError("photo", photoID)
}

// Rate records a score for the given user. A user who already rated gets
// their existing rating updated in place; identity and createdAt survive.
func (s *DivingSpot) Rate(userID string, score int, comment *string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.NewValidationError("userId", "is required")
	}
	if score < minRatingScore || score > maxRatingScore {
		return domain.NewValidationError("score", "must be between 1 and 5")
	}
	comment = trimOptional(comment)
	if comment != nil && len(*comment) > maxRatingCommentLen {
		return domain.NewValidationError("comment", "must be at most 1000 characters")
	}

	now := time.Now().UTC()
	for i := range s.ratings {
		if s.ratings[i].userID == userID {
			s.ratings[i].score = score
			s.ratings[i].comment = comment
			s.ratings[i].updatedAt = now
			s.touch()
			return nil
		}
	}
	s.ratings = append(s.ratings, Rating{
		id:        uuid.NewString(),
		userID:    userID,
		score:     score,
		comment:   comment,
		createdAt: now,
		updatedAt: now,
	})
	s.touch()
	return nil
}

// RemoveRating deletes the rating left by the given user.
func (s *DivingSpot) RemoveRating(userID string) error {
	for i, r := range s.ratings {
		if r.userID == userID {
			s.ratings = append(s.ratings[:i], s.ratings[i+1:]...)
			s.touch()
			return nil
		}
	}
	return domain.NewNotFoundError("rating", userID)
}

// AverageRating is the arithmetic mean of all scores, 0 when there are none.
// Recomputed from the live collection on every call.
func (s *DivingSpot) AverageRating() float64 {
	if len(s.ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range s.ratings {
		sum += r.score
	}
	return float64(sum) / float64(len(s.ratings))
}

// TotalRatings is the number of users who rated this spot.
func (s *DivingSpot) TotalRatings() int { return len(s.ratings) }

// Photos returns a copy of the photo collection.
func (s *DivingSpot) Photos() []Photo {
	out := make([]Photo, len(s.photos))
	copy(out, s.photos)
	return out
}

// Ratings returns a copy of the rating collection.
func (s *DivingSpot) Ratings() []Rating {
	out := make([]Rating, len(s.ratings))
	copy(out, s.ratings)
	return out
}

// RatingBy returns the rating left by a user, if any.
func (s *DivingSpot) RatingBy(userID string) (Rating, bool) {
	for _, r := range s.ratings {
		if r.userID == userID {
			return r, true
		}
	}
	return Rating{}, false
}

func (s *DivingSpot) touch() { s.updatedAt = time.Now().UTC() }

func (s *DivingSpot) ID() string                                    { return s.id }
func (s *DivingSpot) Name() string                                  { return s.name }
func (s *DivingSpot) Description() string                           { return s.description }
func (s *DivingSpot) Location() values.Coordinates                  { return s.location }
func (s *DivingSpot) MaximumDepth() *values.Depth                   { return s.maximumDepth }
func (s *DivingSpot) CurrentTemperature() *values.WaterTemperature  { return s.currentTemperature }
func (s *DivingSpot) CurrentVisibility() *values.Visibility         { return s.currentVisibility }
func (s *DivingSpot) CreatedBy() string                             { return s.createdBy }
func (s *DivingSpot) CreatedAt() time.Time                          { return s.createdAt }
func (s *DivingSpot) UpdatedAt() time.Time                          { return s.updatedAt }

// PhotoRecord is the persistence mapping for Photo.
type PhotoRecord struct {
	ID         string
	URL        string
	Caption    *string
	UploadedBy string
	UploadedAt time.Time
}

// RatingRecord is the persistence mapping for Rating.
type RatingRecord struct {
	ID        string
	UserID    string
	Score     int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DivingSpotRecord is the persistence mapping for DivingSpot.
type DivingSpotRecord struct {
	ID                 string
	Name               string
	Description        string
	Location           values.Coordinates
	MaximumDepth       *values.Depth
	CurrentTemperature *values.WaterTemperature
	CurrentVisibility  *values.Visibility
	CreatedBy          string
	Photos             []PhotoRecord
	Ratings            []RatingRecord
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreDivingSpot rehydrates a spot and its child collections.
func RestoreDivingSpot(rec DivingSpotRecord) *DivingSpot {
	s := &DivingSpot{
		id:                 rec.ID,
		name:               rec.Name,
		description:        rec.Description,
		location:           rec.Location,
		maximumDepth:       rec.MaximumDepth,
		currentTemperature: rec.CurrentTemperature,
		currentVisibility:  rec.CurrentVisibility,
		createdBy:          rec.CreatedBy,
		createdAt:          rec.CreatedAt,
		updatedAt:          rec.UpdatedAt,
	}
	for _, p := range rec.Photos {
		s.photos = append(s.photos, Photo{
			id:         p.ID,
			url:        p.URL,
			caption:    p.Caption,
			uploadedBy: p.UploadedBy,
			uploadedAt: p.UploadedAt,
		})
	}
	for _, r := range rec.Ratings {
		s.ratings = append(s.ratings, Rating{
			id:        r.ID,
			userID:    r.UserID,
			score:     r.Score,
			comment:   r.Comment,
			createdAt: r.CreatedAt,
			updatedAt: r.UpdatedAt,
		})
	}
	return s
}

// Record exports the spot and its children for persistence.
func (s *DivingSpot) Record() DivingSpotRecord {
	rec := DivingSpotRecord{
		ID:                 s.id,
		Name:               s.name,
		Description:        s.description,
		Location:           s.location,
		MaximumDepth:       s.maximumDepth,
		CurrentTemperature: s.currentTemperature,
		CurrentVisibility:  s.currentVisibility,
		CreatedBy:          s.createdBy,
		CreatedAt:          s.createdAt,
		UpdatedAt:          s.updatedAt,
	}
	for _, p := range s.photos {
		rec.Photos = append(rec.Photos, PhotoRecord{ID: p.id, URL: p.url, Caption: p.caption, UploadedBy: p.uploadedBy, UploadedAt: p.uploadedAt})
	}
	for _, r := range s.ratings {
		rec.Ratings = append(rec.Ratings, RatingRecord{ID: r.id, UserID: r.userID, Score: r.score, Comment: r.comment, CreatedAt: r.createdAt, UpdatedAt: r.updatedAt})
	}
	return rec
}
