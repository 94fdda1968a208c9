package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatbook/api/internal/domain"
)

type PostgresTheaterRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheaterRepository(db *pgxpool.Pool) *PostgresTheaterRepository {
	return &PostgresTheaterRepository{
		db: db,
	}
}

func (p *PostgresTheaterRepository) GetAll(ctx context.Context) ([]domain.Theater, error) {
	query := `
		SELECT t.id, t.name, t.address, s.name, s.seat_rows, s.seats_per_row
		FROM theaters t
		LEFT JOIN screens s ON s.theater_id = t.id
		ORDER BY t.name, s.name
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	theaters := make([]domain.Theater, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			theater     domain.Theater
			screenName  *string
			seatRows    *int
			seatsPerRow *int
		)

		err := rows.Scan(&theater.ID, &theater.Name, &theater.Address, &screenName, &seatRows, &seatsPerRow)
		if err != nil {
			return nil, err
		}

		i, ok := index[theater.ID]
		if !ok {
			i = len(theaters)
			index[theater.ID] = i
			theaters = append(theaters, theater)
		}

		if screenName != nil {
			theaters[i].Screens = append(theaters[i].Screens, domain.Screen{
				Name:        *screenName,
				Rows:        *seatRows,
				SeatsPerRow: *seatsPerRow,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return theaters, nil
}
