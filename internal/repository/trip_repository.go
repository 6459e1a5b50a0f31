package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetstack/fleetpoint/internal/domain"
	"github.com/fleetstack/fleetpoint/internal/repository/builder"
)

type tripRepository struct {
	db queryer
}

// NewTripRepository creates a new instance of TripRepository.
func NewTripRepository(db *sql.DB) domain.TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) WithTx(tx *sql.Tx) domain.TripRepository {
	return &tripRepository{db: tx}
}

func (r *tripRepository) Create(ctx context.Context, t *domain.TripRecord) error {
	b := builder.NewSQLBuilder()
	query, args := b.Insert("trips",
		"trip_date", "vehicle", "driver_id", "departure_time", "return_time",
		"km_start", "km_end", "note", "status").
		Values(t.Date, t.Vehicle, t.DriverID, t.DepartureTime, t.ReturnTime,
			nullDecimal(t.KMStart), nullDecimal(t.KMEnd), t.Note, t.Status).
		Returning("id", "created_at").
		Build()

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id int64) (*domain.TripRecord, error) {
	query := `
		SELECT t.id, t.trip_date, t.vehicle, t.driver_id, t.departure_time, t.return_time,
		       t.km_start, t.km_end, t.note, t.status, t.created_at, e.name
		FROM trips t
		INNER JOIN employees e ON t.driver_id = e.id
		WHERE t.id = $1
	`
	t, err := scanTrip(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapScanErr(err)
	}
	return t, nil
}

func (r *tripRepository) Update(ctx context.Context, t *domain.TripRecord) error {
	b := builder.NewSQLBuilder()
	query, args := b.Update("trips").
		Set("trip_date", t.Date).
		Set("vehicle", t.Vehicle).
		Set("driver_id", t.DriverID).
		Set("departure_time", t.DepartureTime).
		Set("return_time", t.ReturnTime).
		Set("km_start", nullDecimal(t.KMStart)).
		Set("km_end", nullDecimal(t.KMEnd)).
		Set("note", t.Note).
		Set("status", t.Status).
		Where("id = ?", t.ID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return requireAffected(res)
}

func (r *tripRepository) UpdateStatus(ctx context.Context, id int64, status domain.TripStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE trips SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update trip status: %w", err)
	}
	return requireAffected(res)
}

func (r *tripRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return requireAffected(res)
}

func (r *tripRepository) List(ctx context.Context, filter domain.TripFilter) ([]domain.TripRecord, error) {
	b := builder.NewSQLBuilder()
	b.Select("t.id", "t.trip_date", "t.vehicle", "t.driver_id", "t.departure_time",
		"t.return_time", "t.km_start", "t.km_end", "t.note", "t.status", "t.created_at", "e.name").
		From("trips t").
		Join("INNER", "employees e", "t.driver_id = e.id").
		OrderBy("t.trip_date DESC, t.id DESC")

	if filter.DriverID != nil {
		b.Where("t.driver_id = ?", *filter.DriverID)
	}
	if filter.Limit > 0 {
		b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b.Offset(filter.Offset)
	}

	query, args := b.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []domain.TripRecord
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return trips, nil
}

func (r *tripRepository) CountOnDate(ctx context.Context, date time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM trips WHERE trip_date = $1", date.Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(row rowScanner) (*domain.TripRecord, error) {
	var (
		t          domain.TripRecord
		dep, ret   sql.NullString
		kmS, kmE   decimal.NullDecimal
		driverName string
	)
	err := row.Scan(&t.ID, &t.Date, &t.Vehicle, &t.DriverID, &dep, &ret,
		&kmS, &kmE, &t.Note, &t.Status, &t.CreatedAt, &driverName)
	if err != nil {
		return nil, err
	}
	if dep.Valid {
		t.DepartureTime = &dep.String
	}
	if ret.Valid {
		t.ReturnTime = &ret.String
	}
	if kmS.Valid {
		t.KMStart = &kmS.Decimal
	}
	if kmE.Valid {
		t.KMEnd = &kmE.Decimal
	}
	t.DriverName = driverName
	return &t, nil
}

// nullDecimal converts an optional decimal to its driver value.
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
