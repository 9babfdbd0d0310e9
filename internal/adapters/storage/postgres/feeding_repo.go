package postgres

import (
	"context"
	"database/sql"

	"pet-care-tracker/internal/domain/feeding"
)

type FeedingRepo struct {
	db *sql.DB
}

func NewFeedingRepo(db *sql.DB) *FeedingRepo {
	return &FeedingRepo{db: db}
}

func (r *FeedingRepo) Create(ctx context.Context, s feeding.Schedule) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO feeding_schedules (pet_id, feeding_time, frequency, food_type, amount, notes, created_at)
		VALUES ($1, $2::time, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		s.PetID,
		s.FeedingTime,
		string(s.Frequency),
		s.FoodType,
		emptyAsNull(s.Amount),
		emptyAsNull(s.Notes),
		s.CreatedAt,
	).Scan(&id)
	return id, err
}

func (r *FeedingRepo) ListByPet(ctx context.Context, petID int64) ([]feeding.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, to_char(feeding_time, 'HH24:MI'), frequency, food_type,
			COALESCE(amount, ''), COALESCE(notes, ''), created_at
		FROM feeding_schedules
		WHERE pet_id = $1
		ORDER BY feeding_time ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feeding.Schedule, 0)
	for rows.Next() {
		var s feeding.Schedule
		var freq string
		if err := rows.Scan(&s.ID, &s.PetID, &s.FeedingTime, &freq, &s.FoodType, &s.Amount, &s.Notes, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Frequency = feeding.Frequency(freq)
		out = append(out, s)
	}
	return out, rows.Err()
}
