package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/repository"
	"github.com/oceantrail/divelog-api/internal/domain/values"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

type SpotService struct {
	Repo         repository.DivingSpotRepository
	GCS          *storage.Client
	GCSBucket    string
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESSpotsIndex string
}

func NewSpotService(repo repository.DivingSpotRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, es *elasticsearch.Client, esSpotsIndex string) *SpotService {
	return &SpotService{Repo: repo, GCS: gcs, GCSBucket: gcsBucket, Logger: logger, ES: es, ESSpotsIndex: esSpotsIndex}
}

type CreateSpotInput struct {
	Name           string
	Description    string
	Latitude       float64
	Longitude      float64
	MaxDepthMeters *float64
}

func (s *SpotService) Create(ctx context.Context, createdBy string, in CreateSpotInput) (*entity.DivingSpot, error) {
	location, err := values.NewCoordinates(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}
	var maxDepth *values.Depth
	if in.MaxDepthMeters != nil {
		d, err := values.DepthFromMeters(*in.MaxDepthMeters)
		if err != nil {
			return nil, err
		}
		maxDepth = &d
	}
	spot, err := entity.NewDivingSpot(in.Name, in.Description, location, createdBy, maxDepth)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, spot); err != nil {
		return nil, err
	}
	_ = s.indexSpot(ctx, spot)
	return spot, nil
}

func (s *SpotService) Get(ctx context.Context, id string) (*entity.DivingSpot, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *SpotService) List(ctx context.Context, limit, offset int) ([]*entity.DivingSpot, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(ctx, limit, offset)
}

func (s *SpotService) UpdateInformation(ctx context.Context, id string, in CreateSpotInput) (*entity.DivingSpot, error) {
	spot, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	location, err := values.NewCoordinates(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}
	if err := spot.UpdateInformation(in.Name, in.Description, location); err != nil {
		return nil, err
	}
	if in.MaxDepthMeters != nil {
		d, err := values.DepthFromMeters(*in.MaxDepthMeters)
		if err != nil {
			return nil, err
		}
		spot.UpdateMaximumDepth(&d)
	}
	if err := s.Repo.Update(ctx, spot); err != nil {
		return nil, err
	}
	_ = s.indexSpot(ctx, spot)
	return spot, nil
}

type SpotConditionsInput struct {
	WaterTemperatureC *float64
	VisibilityMeters  *float64
}

func (s *SpotService) UpdateConditions(ctx context.Context, id string, in SpotConditionsInput) (*entity.DivingSpot, error) {
	spot, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var temp *values.WaterTemperature
	if in.WaterTemperatureC != nil {
		t, err := values.TemperatureFromCelsius(*in.WaterTemperatureC)
		if err != nil {
			return nil, err
		}
		temp = &t
	}
	var vis *values.Visibility
	if in.VisibilityMeters != nil {
		v, err := values.VisibilityFromMeters(*in.VisibilityMeters)
		if err != nil {
			return nil, err
		}
		vis = &v
	}
	spot.UpdateConditions(temp, vis)
	if err := s.Repo.Update(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

// UploadPhoto stores the image in GCS and attaches it to the spot.
func (s *SpotService) UploadPhoto(ctx context.Context, spotID, uploadedBy string, r io.Reader, filename, contentType string, caption *string) (entity.Photo, error) {
	spot, err := s.Repo.GetByID(ctx, spotID)
	if err != nil {
		return entity.Photo{}, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return entity.Photo{}, errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("spots", spotID, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return entity.Photo{}, err
	}
	photo, err := spot.AddPhoto(url, caption, uploadedBy)
	if err != nil {
		return entity.Photo{}, err
	}
	if err := s.Repo.Update(ctx, spot); err != nil {
		return entity.Photo{}, err
	}
	return photo, nil
}

func (s *SpotService) RemovePhoto(ctx context.Context, spotID, photoID string) error {
	spot, err := s.Repo.GetByID(ctx, spotID)
	if err != nil {
		return err
	}
	if err := spot.RemovePhoto(photoID); err != nil {
		return err
	}
	return s.Repo.Update(ctx, spot)
}

// Rate adds or replaces the caller's rating.
func (s *SpotService) Rate(ctx context.Context, spotID, userID string, score int, comment *string) (*entity.DivingSpot, error) {
	spot, err := s.Repo.GetByID(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if err := spot.Rate(userID, score, comment); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, spot); err != nil {
		return nil, err
	}
	_ = s.indexSpot(ctx, spot)
	return spot, nil
}

func (s *SpotService) RemoveRating(ctx context.Context, spotID, userID string) (*entity.DivingSpot, error) {
	spot, err := s.Repo.GetByID(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if err := spot.RemoveRating(userID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, spot); err != nil {
		return nil, err
	}
	_ = s.indexSpot(ctx, spot)
	return spot, nil
}

func (s *SpotService) indexSpot(ctx context.Context, spot *entity.DivingSpot) error {
	if s.ES == nil || s.ESSpotsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          spot.ID(),
		"name":        spot.Name(),
		"description": spot.Description(),
		"location": map[string]float64{
			"lat": spot.Location().Latitude(),
			"lon": spot.Location().Longitude(),
		},
		"average_rating": spot.AverageRating(),
		"total_ratings":  spot.TotalRatings(),
		"created_at":     spot.CreatedAt().Format(time.RFC3339Nano),
		"updated_at":     spot.UpdatedAt().Format(time.RFC3339Nano),
	}
	if d := spot.MaximumDepth(); d != nil {
		doc["max_depth_m"] = d.Meters()
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESSpotsIndex, DocumentID: spot.ID(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("spot_id", spot.ID()).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("spot_id", spot.ID()).Warn("es index response error")
	}
	return nil
}

// Search performs a multi_match search on spot name and description.
func (s *SpotService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESSpotsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	return searchDocs(ctx, s.ES, s.ESSpotsIndex, query)
}
