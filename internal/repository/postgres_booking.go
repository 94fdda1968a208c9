package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatbook/api/internal/domain"
)

// PostgresBookingRepository is the reservation ledger. The booking_seats
// composite primary key makes double-booking impossible at the storage
// level; callers translate the resulting unique violation into a precise
// conflict by re-checking occupancy.
type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) FindConflicts(
	ctx context.Context,
	key domain.ScreeningKey,
	seats []string) ([]string, error) {

	key = key.Normalize()

	query := `
		SELECT seat_label
		FROM booking_seats
		WHERE movie_id = $1 AND theater_id = $2 AND screen_name = $3 AND showtime = $4
			AND seat_label = ANY($5)
		ORDER BY seat_label
	`

	rows, err := p.db.Query(ctx, query, key.MovieID, key.TheaterID, key.Screen, key.Showtime, seats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conflicts := make([]string, 0)

	for rows.Next() {
		var seat string

		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}

		conflicts = append(conflicts, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return conflicts, nil
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Screening = booking.Screening.Normalize()

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (id, user_id, movie_id, theater_id, screen_name, showtime, seats)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING status, created_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			booking.ID,
			booking.UserID,
			booking.Screening.MovieID,
			booking.Screening.TheaterID,
			booking.Screening.Screen,
			booking.Screening.Showtime,
			booking.Seats).Scan(&booking.Status, &booking.CreatedAt)

		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(booking.Seats))
		for _, seat := range booking.Seats {
			rows = append(rows, []any{
				booking.ID,
				booking.Screening.MovieID,
				booking.Screening.TheaterID,
				booking.Screening.Screen,
				booking.Screening.Showtime,
				seat,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "movie_id", "theater_id", "screen_name", "showtime", "seat_label"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			// The transaction rolled back because another committed booking
			// holds at least one of the seats. Name the conflicting seats
			// for the caller.
			conflicts, lookupErr := p.FindConflicts(ctx, booking.Screening, booking.Seats)
			if lookupErr != nil {
				return &domain.SeatsUnavailableError{}
			}

			return &domain.SeatsUnavailableError{Seats: conflicts}
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `
		SELECT id, user_id, movie_id, theater_id, screen_name, showtime, seats, status, created_at, cancelled_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Screening.MovieID,
		&booking.Screening.TheaterID,
		&booking.Screening.Screen,
		&booking.Screening.Showtime,
		&booking.Seats,
		&booking.Status,
		&booking.CreatedAt,
		&booking.CancelledAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) Void(ctx context.Context, id uuid.UUID) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE bookings
			SET status = 'cancelled', cancelled_at = now()
			WHERE id = $1 AND status = 'live'
		`

		tag, err := tx.Exec(ctx, query, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			// Already voided. The seat rows are gone, nothing to do.
			return nil
		}

		_, err = tx.Exec(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, id)

		return err
	})
}

func (p *PostgresBookingRepository) GetBookedSeats(ctx context.Context, key domain.ScreeningKey) ([]string, error) {
	key = key.Normalize()

	query := `
		SELECT seat_label
		FROM booking_seats
		WHERE movie_id = $1 AND theater_id = $2 AND screen_name = $3 AND showtime = $4
		ORDER BY seat_label
	`

	rows, err := p.db.Query(ctx, query, key.MovieID, key.TheaterID, key.Screen, key.Showtime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]string, 0)

	for rows.Next() {
		var seat string

		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresBookingRepository) GetBookingsByUserId(
	ctx context.Context,
	userID uuid.UUID,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.user_id,
			m.title,
			t.name,
			b.screen_name,
			b.showtime,
			b.seats,
			b.status,
			b.created_at
		FROM bookings b
		JOIN movies m ON b.movie_id = m.id
		JOIN theaters t ON b.theater_id = t.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	return scanBookingSummaries(rows, pagination)
}

func (p *PostgresBookingRepository) GetAllBookings(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.user_id,
			m.title,
			t.name,
			b.screen_name,
			b.showtime,
			b.seats,
			b.status,
			b.created_at
		FROM bookings b
		JOIN movies m ON b.movie_id = m.id
		JOIN theaters t ON b.theater_id = t.id
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	return scanBookingSummaries(rows, pagination)
}

func scanBookingSummaries(rows pgx.Rows, pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {
	bookings := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&booking.ID,
			&booking.UserID,
			&booking.MovieTitle,
			&booking.TheaterName,
			&booking.Screen,
			&booking.Showtime,
			&booking.Seats,
			&booking.Status,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
