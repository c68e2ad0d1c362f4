package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

type DivingSpotRepository struct {
	pool *pgxpool.Pool
}

func NewDivingSpotRepository(pool *pgxpool.Pool) *DivingSpotRepository {
	return &DivingSpotRepository{pool: pool}
}

const spotColumns = `id, name, description, latitude, longitude,
	max_depth_value, max_depth_unit, water_temp_value, water_temp_unit, visibility_m,
	created_by, created_at, updated_at`

func scanSpotRow(row pgx.Row) (entity.DivingSpotRecord, error) {
	var rec entity.DivingSpotRecord
	var lat, lon float64
	var maxDepthValue *float64
	var maxDepthUnit *string
	var tempValue *float64
	var tempUnit *string
	var visibilityM *float64

	if err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &lat, &lon,
		&maxDepthValue, &maxDepthUnit, &tempValue, &tempUnit, &visibilityM,
		&rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return rec, err
	}

	rec.Location = values.RestoreCoordinates(lat, lon)
	if maxDepthValue != nil && maxDepthUnit != nil {
		d := values.RestoreDepth(*maxDepthValue, values.DepthUnit(*maxDepthUnit))
		rec.MaximumDepth = &d
	}
	if tempValue != nil && tempUnit != nil {
		t := values.RestoreTemperature(*tempValue, values.TemperatureUnit(*tempUnit))
		rec.CurrentTemperature = &t
	}
	if visibilityM != nil {
		v := values.RestoreVisibility(*visibilityM)
		rec.CurrentVisibility = &v
	}
	return rec, nil
}

func (r *DivingSpotRepository) loadChildren(ctx context.Context, rec *entity.DivingSpotRecord) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, url, caption, uploaded_by, uploaded_at
		FROM spot_photos
		WHERE spot_id = $1
		ORDER BY uploaded_at
	`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.PhotoRecord
		if err := rows.Scan(&p.ID, &p.URL, &p.Caption, &p.UploadedBy, &p.UploadedAt); err != nil {
			return err
		}
		rec.Photos = append(rec.Photos, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT id, user_id, score, comment, created_at, updated_at
		FROM spot_ratings
		WHERE spot_id = $1
		ORDER BY created_at
	`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rt entity.RatingRecord
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.Score, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return err
		}
		rec.Ratings = append(rec.Ratings, rt)
	}
	return rows.Err()
}

func spotArgs(rec entity.DivingSpotRecord) []any {
	var maxDepthValue *float64
	var maxDepthUnit *string
	if rec.MaximumDepth != nil {
		v, u := rec.MaximumDepth.Value(), string(rec.MaximumDepth.Unit())
		maxDepthValue, maxDepthUnit = &v, &u
	}
	var tempValue *float64
	var tempUnit *string
	if rec.CurrentTemperature != nil {
		v, u := rec.CurrentTemperature.Value(), string(rec.CurrentTemperature.Unit())
		tempValue, tempUnit = &v, &u
	}
	var visibilityM *float64
	if rec.CurrentVisibility != nil {
		v := rec.CurrentVisibility.Meters()
		visibilityM = &v
	}
	return []any{
		rec.ID, rec.Name, rec.Description, rec.Location.Latitude(), rec.Location.Longitude(),
		maxDepthValue, maxDepthUnit, tempValue, tempUnit, visibilityM,
		rec.CreatedBy, rec.CreatedAt, rec.UpdatedAt,
	}
}

func (r *DivingSpotRepository) Create(ctx context.Context, s *entity.DivingSpot) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO diving_spots (`+spotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, spotArgs(s.Record())...)
	return err
}

func (r *DivingSpotRepository) GetByID(ctx context.Context, id string) (*entity.DivingSpot, error) {
	rec, err := scanSpotRow(r.pool.QueryRow(ctx, `
		SELECT `+spotColumns+`
		FROM diving_spots
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("diving spot", id)
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, &rec); err != nil {
		return nil, err
	}
	return entity.RestoreDivingSpot(rec), nil
}

func (r *DivingSpotRepository) List(ctx context.Context, limit, offset int) ([]*entity.DivingSpot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+spotColumns+`
		FROM diving_spots
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]entity.DivingSpotRecord, 0)
	for rows.Next() {
		rec, err := scanSpotRow(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	spots := make([]*entity.DivingSpot, 0, len(recs))
	for i := range recs {
		if err := r.loadChildren(ctx, &recs[i]); err != nil {
			return nil, err
		}
		spots = append(spots, entity.RestoreDivingSpot(recs[i]))
	}
	return spots, nil
}

// Update rewrites the spot row and its child collections in one transaction.
func (r *DivingSpotRepository) Update(ctx context.Context, s *entity.DivingSpot) error {
	rec := s.Record()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
		UPDATE diving_spots
		SET name = $2, description = $3, latitude = $4, longitude = $5,
			max_depth_value = $6, max_depth_unit = $7, water_temp_value = $8,
			water_temp_unit = $9, visibility_m = $10, created_by = $11,
			created_at = $12, updated_at = $13
		WHERE id = $1
	`, spotArgs(rec)...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("diving spot", rec.ID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM spot_photos WHERE spot_id = $1`, rec.ID); err != nil {
		return err
	}
	for _, p := range rec.Photos {
		if _, err := tx.Exec(ctx, `
			INSERT INTO spot_photos (id, spot_id, url, caption, uploaded_by, uploaded_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, rec.ID, p.URL, p.Caption, p.UploadedBy, p.UploadedAt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM spot_ratings WHERE spot_id = $1`, rec.ID); err != nil {
		return err
	}
	for _, rt := range rec.Ratings {
		if _, err := tx.Exec(ctx, `
			INSERT INTO spot_ratings (id, spot_id, user_id, score, comment, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, rt.ID, rec.ID, rt.UserID, rt.Score, rt.Comment, rt.CreatedAt, rt.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
