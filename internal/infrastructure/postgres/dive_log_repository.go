package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

type DiveLogRepository struct {
	pool *pgxpool.Pool
}

func NewDiveLogRepository(pool *pgxpool.Pool) *DiveLogRepository {
	return &DiveLogRepository{pool: pool}
}

const diveLogColumns = `id, user_id, diving_spot_id, buddy_user_id, dive_date, duration_seconds,
	max_depth_value, max_depth_unit, avg_depth_value, avg_depth_unit,
	water_temp_value, water_temp_unit, visibility_m,
	start_pressure, end_pressure, tank_volume, gas_type, oxygen_percentage, notes,
	created_at, updated_at`

func scanDiveLog(row pgx.Row) (*entity.DiveLog, error) {
	var rec entity.DiveLogRecord
	var durationSec int64
	var maxDepthValue float64
	var maxDepthUnit string
	var avgDepthValue *float64
	var avgDepthUnit *string
	var tempValue *float64
	var tempUnit *string
	var visibilityM *float64
	var gasType string

	if err := row.Scan(&rec.ID, &rec.UserID, &rec.DivingSpotID, &rec.BuddyUserID,
		&rec.DiveDate, &durationSec,
		&maxDepthValue, &maxDepthUnit, &avgDepthValue, &avgDepthUnit,
		&tempValue, &tempUnit, &visibilityM,
		&rec.StartPressure, &rec.EndPressure, &rec.TankVolume, &gasType, &rec.OxygenPercentage,
		&rec.Notes, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}

	rec.Duration = time.Duration(durationSec) * time.Second
	rec.MaxDepth = values.RestoreDepth(maxDepthValue, values.DepthUnit(maxDepthUnit))
	if avgDepthValue != nil && avgDepthUnit != nil {
		d := values.RestoreDepth(*avgDepthValue, values.DepthUnit(*avgDepthUnit))
		rec.AverageDepth = &d
	}
	if tempValue != nil && tempUnit != nil {
		t := values.RestoreTemperature(*tempValue, values.TemperatureUnit(*tempUnit))
		rec.WaterTemperature = &t
	}
	if visibilityM != nil {
		v := values.RestoreVisibility(*visibilityM)
		rec.Visibility = &v
	}
	rec.GasType = entity.GasType(gasType)
	return entity.RestoreDiveLog(rec), nil
}

func diveLogArgs(rec entity.DiveLogRecord) []any {
	var avgDepthValue *float64
	var avgDepthUnit *string
	if rec.AverageDepth != nil {
		v, u := rec.AverageDepth.Value(), string(rec.AverageDepth.Unit())
		avgDepthValue, avgDepthUnit = &v, &u
	}
	var tempValue *float64
	var tempUnit *string
	if rec.WaterTemperature != nil {
		v, u := rec.WaterTemperature.Value(), string(rec.WaterTemperature.Unit())
		tempValue, tempUnit = &v, &u
	}
	var visibilityM *float64
	if rec.Visibility != nil {
		v := rec.Visibility.Meters()
		visibilityM = &v
	}
	return []any{
		rec.ID, rec.UserID, rec.DivingSpotID, rec.BuddyUserID, rec.DiveDate,
		int64(rec.Duration / time.Second),
		rec.MaxDepth.Value(), string(rec.MaxDepth.Unit()), avgDepthValue, avgDepthUnit,
		tempValue, tempUnit, visibilityM,
		rec.StartPressure, rec.EndPressure, rec.TankVolume, string(rec.GasType),
		rec.OxygenPercentage, rec.Notes, rec.CreatedAt, rec.UpdatedAt,
	}
}

func (r *DiveLogRepository) Create(ctx context.Context, d *entity.DiveLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO dive_logs (`+diveLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`, diveLogArgs(d.Record())...)
	return err
}

func (r *DiveLogRepository) GetByID(ctx context.Context, id string) (*entity.DiveLog, error) {
	d, err := scanDiveLog(r.pool.QueryRow(ctx, `
		SELECT `+diveLogColumns+`
		FROM dive_logs
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("dive log", id)
		}
		return nil, err
	}
	return d, nil
}

func (r *DiveLogRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.DiveLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+diveLogColumns+`
		FROM dive_logs
		WHERE user_id = $1
		ORDER BY dive_date DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*entity.DiveLog, 0)
	for rows.Next() {
		d, err := scanDiveLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, d)
	}
	return logs, rows.Err()
}

func (r *DiveLogRepository) Update(ctx context.Context, d *entity.DiveLog) error {
	rec := d.Record()
	args := diveLogArgs(rec)
	res, err := r.pool.Exec(ctx, `
		UPDATE dive_logs
		SET user_id = $2, diving_spot_id = $3, buddy_user_id = $4, dive_date = $5,
			duration_seconds = $6, max_depth_value = $7, max_depth_unit = $8,
			avg_depth_value = $9, avg_depth_unit = $10, water_temp_value = $11,
			water_temp_unit = $12, visibility_m = $13, start_pressure = $14,
			end_pressure = $15, tank_volume = $16, gas_type = $17,
			oxygen_percentage = $18, notes = $19, created_at = $20, updated_at = $21
		WHERE id = $1
	`, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("dive log", rec.ID)
	}
	return nil
}

func (r *DiveLogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM dive_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("dive log", id)
	}
	return nil
}
