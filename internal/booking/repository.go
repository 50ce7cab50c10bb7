package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetyard/rental-backend/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	ListForVehicle(ctx context.Context, vehicleID string) ([]*Booking, error)
	Update(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id string, status schedule.Status) error
	Delete(ctx context.Context, id string) error

	// FindOverlap returns the first blocking booking of either kind on the
	// vehicle whose inclusive day range intersects [start, end], ordered by
	// kind then start date. excludeBookingID ignores the booking itself
	// during updates and reactivations. Returns nil when the range is free.
	FindOverlap(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (*Booking, error)
}

const selectColumns = `
	b.id, b.vehicle_id, v.plate, b.kind, b.client_id, c.name, b.label,
	b.start_date, b.end_date, b.status, b.created_at, b.updated_at`

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	const query = `
		INSERT INTO public.bookings (vehicle_id, kind, client_id, label, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		b.VehicleID, b.Kind, b.ClientID, b.Label, b.StartDate, b.EndDate, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			// The no-overlap GiST constraint fired: a concurrent writer
			// claimed the window between our check and this insert.
			return ErrRangeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT` + selectColumns + `
		FROM public.bookings b
		JOIN public.vehicles v ON b.vehicle_id = v.id
		LEFT JOIN public.clients c ON b.client_id = c.id
		WHERE b.id = $1
	`
	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.vehicle_id", "v.plate", "b.kind", "b.client_id", "c.name", "b.label",
		"b.start_date", "b.end_date", "b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.vehicles v ON b.vehicle_id = v.id").
		LeftJoin("public.clients c ON b.client_id = c.id")

	if filter.VehicleID != "" {
		query = query.Where(squirrel.Eq{"b.vehicle_id": filter.VehicleID})
	}
	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"b.client_id": filter.ClientID})
	}
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"b.kind": filter.Kind})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date window filtering (intersection logic).
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_date": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_date": *filter.To})
	}

	query = query.OrderBy("b.start_date DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.VehicleID, &b.VehiclePlate, &b.Kind, &b.ClientID, &b.ClientName, &b.Label,
			&b.StartDate, &b.EndDate, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListForVehicle(ctx context.Context, vehicleID string) ([]*Booking, error) {
	query := `
		SELECT` + selectColumns + `
		FROM public.bookings b
		JOIN public.vehicles v ON b.vehicle_id = v.id
		LEFT JOIN public.clients c ON b.client_id = c.id
		WHERE b.vehicle_id = $1
		ORDER BY b.kind, b.start_date
	`
	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	const query = `
		UPDATE public.bookings
		SET client_id = $1, label = $2, start_date = $3, end_date = $4, updated_at = now()
		WHERE id = $5
	`
	ct, err := r.pool.Exec(ctx, query, b.ClientID, b.Label, b.StartDate, b.EndDate, b.ID)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrRangeConflict
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status schedule.Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`
	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		if isExclusionViolation(err) {
			// Reactivation collided with a booking created while this one
			// was completed.
			return ErrRangeConflict
		}
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.bookings WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) FindOverlap(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.vehicle_id", "v.plate", "b.kind", "b.client_id", "c.name", "b.label",
		"b.start_date", "b.end_date", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.vehicles v ON b.vehicle_id = v.id").
		LeftJoin("public.clients c ON b.client_id = c.id").
		Where(squirrel.Eq{"b.vehicle_id": vehicleID}).
		Where(squirrel.Eq{"b.status": []string{string(schedule.StatusPending), string(schedule.StatusActive)}}).
		// Inclusive-inclusive intersection: touching boundary days conflict.
		Where(squirrel.LtOrEq{"b.start_date": end}).
		Where(squirrel.GtOrEq{"b.end_date": start}).
		OrderBy("b.kind", "b.start_date").
		Limit(1)

	if excludeBookingID != "" {
		query = query.Where(squirrel.NotEq{"b.id": excludeBookingID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("check overlap failed: %w", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.VehicleID, &b.VehiclePlate, &b.Kind, &b.ClientID, &b.ClientName, &b.Label,
		&b.StartDate, &b.EndDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation
}
