package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/database"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"
	"travel-ticket-api/modules/event/entity"
)

const eventColumns = `id, title, place, gradient, icon, date, time, status, qr_code_path, photo_path, created_at`

type EventRepository struct {
	db database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{db: db}
}

// List returns upcoming (today or later, oldest first) or previous
// (before today, newest first) events.
func (r *EventRepository) List(ctx context.Context, filter string) ([]entity.Event, error) {
	var query string
	switch filter {
	case constants.FilterUpcoming:
		query = `SELECT ` + eventColumns + ` FROM events WHERE date >= CURRENT_DATE ORDER BY date ASC, id ASC`
	case constants.FilterPrevious:
		query = `SELECT ` + eventColumns + ` FROM events WHERE date < CURRENT_DATE ORDER BY date DESC, id DESC`
	default:
		return nil, errors.Validation("Invalid filter parameter")
	}

	events := []entity.Event{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		logger.Error("EventRepository:List:Error", "filter", filter, "error", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := r.db.Rebind(`SELECT ` + eventColumns + ` FROM events WHERE id = ?`)

	var event entity.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("Event not found")
		}
		logger.Error("EventRepository:GetByID:Error", "id", id, "error", err)
		return nil, err
	}
	return &event, nil
}

// Create inserts the event with status pending and returns the new id.
func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (int64, error) {
	query := `INSERT INTO events (title, place, gradient, icon, date, time, status, qr_code_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		event.Title,
		event.Place,
		event.Gradient,
		event.Icon,
		event.Date,
		event.Time,
		entity.EventStatusPending,
		event.QRCodePath,
	}

	if r.db.DriverName() == constants.DriverMySQL {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			logger.Error("EventRepository:Create:Exec", "error", err)
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read insert id: %w", err)
		}
		event.ID = id
		event.Status = entity.EventStatusPending
		return id, nil
	}

	row := r.db.QueryRowContext(ctx, r.db.Rebind(query+` RETURNING id`), args...)
	if err := row.Scan(&event.ID); err != nil {
		logger.Error("EventRepository:Create:Scan", "error", err)
		return 0, err
	}
	event.Status = entity.EventStatusPending
	return event.ID, nil
}

// UpdateStatus sets the status. Zero affected rows is not an error.
func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, status entity.EventStatus) error {
	return r.exec(ctx, "UpdateStatus", `UPDATE events SET status = ? WHERE id = ?`, status, id)
}

func (r *EventRepository) UpdatePhotoPath(ctx context.Context, id int64, path string) error {
	return r.exec(ctx, "UpdatePhotoPath", `UPDATE events SET photo_path = ? WHERE id = ?`, path, id)
}

func (r *EventRepository) UpdateQRCodePath(ctx context.Context, id int64, path string) error {
	return r.exec(ctx, "UpdateQRCodePath", `UPDATE events SET qr_code_path = ? WHERE id = ?`, path, id)
}

func (r *EventRepository) ListPhotos(ctx context.Context) ([]entity.Photo, error) {
	query := `SELECT id, photo_path, title, date FROM events
		WHERE photo_path IS NOT NULL
		ORDER BY date DESC, id DESC`

	photos := []entity.Photo{}
	if err := r.db.SelectContext(ctx, &photos, query); err != nil {
		logger.Error("EventRepository:ListPhotos:Error", "error", err)
		return nil, err
	}
	return photos, nil
}

func (r *EventRepository) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		logger.Error("EventRepository:"+op+":Error", "error", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		logger.Warn("EventRepository:"+op+":NoRows", "args", args)
	}
	return nil
}
