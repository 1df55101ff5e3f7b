package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"checkin-backend/models"
)

const uniqueViolation = "23505"

// PostgresStore persists events and check-ins in Postgres through a pgx
// connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tables and the (event_id, employee_id) unique
// index if they do not exist yet. The index closes the duplicate-submission
// race that the check-then-insert admission flow leaves open.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS events (
			id VARCHAR PRIMARY KEY,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			password_protected BOOLEAN NOT NULL DEFAULT FALSE,
			admin_password TEXT,
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS checkins (
			id VARCHAR PRIMARY KEY,
			event_id VARCHAR NOT NULL REFERENCES events(id),
			employee_id TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS checkins_event_employee_idx
			ON checkins (event_id, employee_id);
	`
	_, err := s.db.Exec(ctx, schema)
	return err
}

func (s *PostgresStore) CreateEvent(ctx context.Context, event *models.Event) error {
	event.ID = uuid.NewString()

	query := `
		INSERT INTO events (id, name, date, password_protected, admin_password, archived)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return s.db.QueryRow(ctx, query,
		event.ID,
		event.Name,
		event.Date,
		event.PasswordProtected,
		event.AdminPassword,
		event.Archived,
	).Scan(&event.CreatedAt)
}

func (s *PostgresStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.getEvent(ctx, "SELECT id, name, date, password_protected, admin_password, archived, created_at FROM events WHERE id = $1", id)
}

func (s *PostgresStore) GetEventByName(ctx context.Context, name string) (*models.Event, error) {
	return s.getEvent(ctx, "SELECT id, name, date, password_protected, admin_password, archived, created_at FROM events WHERE name = $1 LIMIT 1", name)
}

func (s *PostgresStore) getEvent(ctx context.Context, query string, arg any) (*models.Event, error) {
	var event models.Event
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.PasswordProtected,
		&event.AdminPassword,
		&event.Archived,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *PostgresStore) GetAllEvents(ctx context.Context) ([]*models.Event, error) {
	rows, err := s.db.Query(ctx, "SELECT id, name, date, password_protected, admin_password, archived, created_at FROM events")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Date,
			&event.PasswordProtected,
			&event.AdminPassword,
			&event.Archived,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}

func (s *PostgresStore) UpdateEvent(ctx context.Context, id string, name, date *string) (*models.Event, error) {
	query := `
		UPDATE events
		SET name = COALESCE($2, name), date = COALESCE($3, date)
		WHERE id = $1
		RETURNING id, name, date, password_protected, admin_password, archived, created_at
	`
	return s.scanUpdatedEvent(s.db.QueryRow(ctx, query, id, name, date))
}

func (s *PostgresStore) UpdateEventArchiveStatus(ctx context.Context, id string, archived bool) (*models.Event, error) {
	query := `
		UPDATE events
		SET archived = $2
		WHERE id = $1
		RETURNING id, name, date, password_protected, admin_password, archived, created_at
	`
	return s.scanUpdatedEvent(s.db.QueryRow(ctx, query, id, archived))
}

func (s *PostgresStore) scanUpdatedEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.PasswordProtected,
		&event.AdminPassword,
		&event.Archived,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *PostgresStore) DeleteEvent(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM checkins WHERE event_id = $1", id); err != nil {
		return false, err
	}

	result, err := tx.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	return true, tx.Commit(ctx)
}

func (s *PostgresStore) CreateCheckin(ctx context.Context, checkin *models.Checkin) error {
	checkin.ID = uuid.NewString()
	checkin.Timestamp = time.Now().UTC()

	query := `
		INSERT INTO checkins (id, event_id, employee_id, timestamp)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.Exec(ctx, query, checkin.ID, checkin.EventID, checkin.EmployeeID, checkin.Timestamp)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateCheckin
		}
		return err
	}
	return nil
}

func (s *PostgresStore) GetCheckinsByEvent(ctx context.Context, eventID string) ([]*models.Checkin, error) {
	rows, err := s.db.Query(ctx, "SELECT id, event_id, employee_id, timestamp FROM checkins WHERE event_id = $1", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkins := []*models.Checkin{}
	for rows.Next() {
		var checkin models.Checkin
		if err := rows.Scan(&checkin.ID, &checkin.EventID, &checkin.EmployeeID, &checkin.Timestamp); err != nil {
			return nil, err
		}
		checkins = append(checkins, &checkin)
	}
	return checkins, rows.Err()
}

func (s *PostgresStore) GetCheckinsWithEvent(ctx context.Context, eventID string) ([]*models.CheckinWithEvent, error) {
	query := `
		SELECT
			c.id, c.event_id, c.employee_id, c.timestamp,
			e.id, e.name, e.date, e.password_protected, e.admin_password, e.archived, e.created_at
		FROM checkins c
		JOIN events e ON c.event_id = e.id
		WHERE c.event_id = $1
	`
	rows, err := s.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	joined := []*models.CheckinWithEvent{}
	for rows.Next() {
		var row models.CheckinWithEvent
		if err := rows.Scan(
			&row.ID,
			&row.EventID,
			&row.EmployeeID,
			&row.Timestamp,
			&row.Event.ID,
			&row.Event.Name,
			&row.Event.Date,
			&row.Event.PasswordProtected,
			&row.Event.AdminPassword,
			&row.Event.Archived,
			&row.Event.CreatedAt,
		); err != nil {
			return nil, err
		}
		joined = append(joined, &row)
	}
	return joined, rows.Err()
}

func (s *PostgresStore) GetCheckinByEventAndEmployee(ctx context.Context, eventID, employeeID string) (*models.Checkin, error) {
	var checkin models.Checkin
	err := s.db.QueryRow(ctx,
		"SELECT id, event_id, employee_id, timestamp FROM checkins WHERE event_id = $1 AND employee_id = $2",
		eventID, employeeID,
	).Scan(&checkin.ID, &checkin.EventID, &checkin.EmployeeID, &checkin.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &checkin, nil
}
