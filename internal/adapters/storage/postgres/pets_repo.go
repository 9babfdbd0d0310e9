package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-tracker/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (
			owner_id, name, species, breed,
			birth_date, gender, weight, image_url, last_updated
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		p.OwnerID,
		p.Name,
		p.Species,
		emptyAsNull(p.Breed),
		nullTime(p.BirthDate),
		string(p.Gender),
		nullString(p.Weight),
		emptyAsNull(p.ImageURL),
		p.LastUpdated,
	).Scan(&id)
	return id, err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			birth_date = $5,
			gender = $6,
			weight = $7,
			image_url = $8,
			last_updated = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		emptyAsNull(p.Breed),
		nullTime(p.BirthDate),
		string(p.Gender),
		nullString(p.Weight),
		emptyAsNull(p.ImageURL),
		p.LastUpdated,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// Delete: weight_history, diario, medios y horarios caen por cascada.
func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

const selectPet = `
	SELECT
		id, owner_id, name, species, COALESCE(breed, ''),
		birth_date, gender, weight::text, COALESCE(image_url, ''), last_updated
	FROM pets
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	var gender string
	var weight sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&bd,
		&gender,
		&weight,
		&p.ImageURL,
		&p.LastUpdated,
	); err != nil {
		return pets.Pet{}, err
	}
	if bd.Valid {
		// birth_date es DATE: llega como medianoche UTC
		t := bd.Time
		p.BirthDate = &t
	}
	p.Gender = pets.Gender(gender)
	p.Weight = stringPtr(weight)
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	p, err := scanPet(r.db.QueryRowContext(ctx, selectPet+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID int64) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, selectPet+` WHERE owner_id = $1 ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) AppendWeight(ctx context.Context, w pets.WeightRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weight_history (pet_id, weight, recorded_at) VALUES ($1, $2, $3)
	`, w.PetID, w.Weight, w.RecordedAt)
	return err
}

func (r *PetsRepo) WeightHistory(ctx context.Context, petID int64) ([]pets.WeightRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, weight::text, recorded_at
		FROM weight_history
		WHERE pet_id = $1
		ORDER BY recorded_at DESC, id DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.WeightRecord, 0)
	for rows.Next() {
		var w pets.WeightRecord
		if err := rows.Scan(&w.ID, &w.PetID, &w.Weight, &w.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
