package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-care-tracker/internal/domain/diary"
	"pet-care-tracker/internal/domain/media"
)

type DiaryRepo struct {
	db *sql.DB
}

func NewDiaryRepo(db *sql.DB) *DiaryRepo {
	return &DiaryRepo{db: db}
}

type diaryTx struct {
	tx *sql.Tx
}

func (t diaryTx) InsertEntry(ctx context.Context, e diary.Entry) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO pet_diary_entries (
			pet_id, notes, mood, weight, food_intake, activity_level, health_notes, entry_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		e.PetID,
		emptyAsNull(e.Notes),
		emptyAsNull(string(e.Mood)),
		nullString(e.Weight),
		emptyAsNull(e.FoodIntake),
		emptyAsNull(string(e.ActivityLevel)),
		emptyAsNull(e.HealthNotes),
		e.EntryDate,
	).Scan(&id)
	return id, err
}

func (t diaryTx) InsertMedia(ctx context.Context, m diary.Media) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO pet_media (entry_id, media_type, file_path, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		m.EntryID,
		string(m.MediaType),
		m.FilePath,
		nullString(m.Description),
	).Scan(&id)
	return id, err
}

// WithTx hace commit si fn termina sin error; cualquier otro camino hace rollback.
func (r *DiaryRepo) WithTx(ctx context.Context, fn func(tx diary.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(diaryTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Los medios vienen agregados como JSON, ordenados por id; sin medios => '[]'.
const selectEntries = `
	SELECT
		e.id, e.pet_id, COALESCE(e.notes, ''), COALESCE(e.mood, ''), e.weight::text,
		COALESCE(e.food_intake, ''), COALESCE(e.activity_level, ''), COALESCE(e.health_notes, ''),
		e.entry_date,
		COALESCE(
			json_agg(
				json_build_object(
					'id', m.id,
					'media_type', m.media_type,
					'file_path', m.file_path,
					'description', m.description
				) ORDER BY m.id
			) FILTER (WHERE m.id IS NOT NULL),
			'[]'
		) AS media
	FROM pet_diary_entries e
	LEFT JOIN pet_media m ON m.entry_id = e.id
`

type mediaRow struct {
	ID          int64   `json:"id"`
	MediaType   string  `json:"media_type"`
	FilePath    string  `json:"file_path"`
	Description *string `json:"description"`
}

func scanEntry(row rowScanner) (diary.Entry, error) {
	var e diary.Entry
	var mood, activity string
	var weight sql.NullString
	var raw []byte
	if err := row.Scan(
		&e.ID,
		&e.PetID,
		&e.Notes,
		&mood,
		&weight,
		&e.FoodIntake,
		&activity,
		&e.HealthNotes,
		&e.EntryDate,
		&raw,
	); err != nil {
		return diary.Entry{}, err
	}
	e.Mood = diary.Mood(mood)
	e.ActivityLevel = diary.ActivityLevel(activity)
	e.Weight = stringPtr(weight)

	var rows []mediaRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return diary.Entry{}, fmt.Errorf("decode media: %w", err)
	}
	e.Media = make([]diary.Media, 0, len(rows))
	for _, m := range rows {
		e.Media = append(e.Media, diary.Media{
			ID:          m.ID,
			EntryID:     e.ID,
			MediaType:   media.Kind(m.MediaType),
			FilePath:    m.FilePath,
			Description: m.Description,
		})
	}
	return e, nil
}

func (r *DiaryRepo) GetByID(ctx context.Context, id int64) (diary.Entry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, selectEntries+` WHERE e.id = $1 GROUP BY e.id`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return diary.Entry{}, diary.ErrNotFound
		}
		return diary.Entry{}, err
	}
	return e, nil
}

func (r *DiaryRepo) ListByPet(ctx context.Context, petID int64, f diary.ListFilter) ([]diary.Entry, error) {
	where := []string{"e.pet_id = $1"}
	args := []any{petID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Mood != "" {
		add("e.mood = $%d", string(f.Mood))
	}
	if f.ActivityLevel != "" {
		add("e.activity_level = $%d", string(f.ActivityLevel))
	}
	if f.From != nil {
		add("e.entry_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("e.entry_date <= $%d", *f.To)
	}

	q := selectEntries +
		" WHERE " + strings.Join(where, " AND ") +
		" GROUP BY e.id ORDER BY e.entry_date DESC, e.id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]diary.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete: pet_media cae por cascada.
func (r *DiaryRepo) Delete(ctx context.Context, petID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pet_diary_entries WHERE id = $1 AND pet_id = $2`, id, petID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return diary.ErrNotFound
	}
	return nil
}
