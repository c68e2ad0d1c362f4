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

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, description, event_date, location_name, latitude, longitude,
	diving_spot_id, organizer_id, max_participants, status, created_at, updated_at`

func scanEventRow(row pgx.Row) (entity.EventRecord, error) {
	var rec entity.EventRecord
	var lat, lon *float64
	var status string
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.EventDate,
		&rec.LocationName, &lat, &lon, &rec.DivingSpotID, &rec.OrganizerID,
		&rec.MaxParticipants, &status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return rec, err
	}
	if lat != nil && lon != nil {
		c := values.RestoreCoordinates(*lat, *lon)
		rec.Location = &c
	}
	rec.Status = entity.EventStatus(status)
	return rec, nil
}

func (r *EventRepository) loadParticipants(ctx context.Context, rec *entity.EventRecord) error {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, comment, registered_at
		FROM event_participants
		WHERE event_id = $1
		ORDER BY registered_at
	`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.ParticipantRecord
		if err := rows.Scan(&p.UserID, &p.Comment, &p.RegisteredAt); err != nil {
			return err
		}
		rec.Participants = append(rec.Participants, p)
	}
	return rows.Err()
}

func eventArgs(rec entity.EventRecord) []any {
	var lat, lon *float64
	if rec.Location != nil {
		la, lo := rec.Location.Latitude(), rec.Location.Longitude()
		lat, lon = &la, &lo
	}
	return []any{
		rec.ID, rec.Title, rec.Description, rec.EventDate, rec.LocationName, lat, lon,
		rec.DivingSpotID, rec.OrganizerID, rec.MaxParticipants, string(rec.Status),
		rec.CreatedAt, rec.UpdatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, eventArgs(e.Record())...)
	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	rec, err := scanEventRow(r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("event", id)
		}
		return nil, err
	}
	if err := r.loadParticipants(ctx, &rec); err != nil {
		return nil, err
	}
	return entity.RestoreEvent(rec), nil
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]entity.EventRecord, 0)
	for rows.Next() {
		rec, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	events := make([]*entity.Event, 0, len(recs))
	for i := range recs {
		if err := r.loadParticipants(ctx, &recs[i]); err != nil {
			return nil, err
		}
		events = append(events, entity.RestoreEvent(recs[i]))
	}
	return events, nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	return r.list(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE status = 'scheduled' AND event_date >= now()
		ORDER BY event_date
		LIMIT $1 OFFSET $2
	`, limit, offset)
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID string, limit, offset int) ([]*entity.Event, error) {
	return r.list(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE organizer_id = $1
		ORDER BY event_date DESC
		LIMIT $2 OFFSET $3
	`, organizerID, limit, offset)
}

// Update rewrites the event row and its registrations in one transaction.
func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	rec := e.Record()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
		UPDATE events
		SET title = $2, description = $3, event_date = $4, location_name = $5,
			latitude = $6, longitude = $7, diving_spot_id = $8, organizer_id = $9,
			max_participants = $10, status = $11, created_at = $12, updated_at = $13
		WHERE id = $1
	`, eventArgs(rec)...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("event", rec.ID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM event_participants WHERE event_id = $1`, rec.ID); err != nil {
		return err
	}
	for _, p := range rec.Participants {
		if _, err := tx.Exec(ctx, `
			INSERT INTO event_participants (event_id, user_id, comment, registered_at)
			VALUES ($1, $2, $3, $4)
		`, rec.ID, p.UserID, p.Comment, p.RegisteredAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
