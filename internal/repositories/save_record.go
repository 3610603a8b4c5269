package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/m3ux/internal/models"
	"github.com/desertthunder/m3ux/internal/shared"
)

var _ models.Repository[*models.SaveRecord] = (*SaveRecordRepository)(nil)

const saveRecordColumns = `id, sequence, playlist_file_id, source_path, dest_path, entries_loaded, entries_saved, created_at, updated_at, deleted_at`

// SaveRecordRepository implements models.Repository[*models.SaveRecord] for save history.
type SaveRecordRepository struct {
	db *sql.DB
}

// NewSaveRecordRepository creates a new SaveRecordRepository with the given database connection
func NewSaveRecordRepository(db *sql.DB) *SaveRecordRepository {
	return &SaveRecordRepository{db: db}
}

// Create inserts a new save record with generated ID and sequence
func (r *SaveRecordRepository) Create(rec *models.SaveRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "save_records")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	rec.SetID(id)
	rec.SetSequence(sequence)

	query := `
		INSERT INTO save_records (id, sequence, playlist_file_id, source_path, dest_path, entries_loaded, entries_saved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		rec.PlaylistFileID(),
		rec.SourcePath(),
		rec.DestPath(),
		rec.EntriesLoaded(),
		rec.EntriesSaved(),
		rec.CreatedAt(),
		rec.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert save record: %w", err)
	}

	return nil
}

// Get retrieves a save record by ID, excluding soft-deleted rows
func (r *SaveRecordRepository) Get(id string) (*models.SaveRecord, error) {
	query := `SELECT ` + saveRecordColumns + ` FROM save_records WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// Update rewrites the destination and counts of a save record.
func (r *SaveRecordRepository) Update(rec *models.SaveRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	rec.SetUpdatedAt(now)

	result, err := r.db.Exec(`
		UPDATE save_records
		SET dest_path = ?, entries_loaded = ?, entries_saved = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, rec.DestPath(), rec.EntriesLoaded(), rec.EntriesSaved(), now, rec.ID())
	if err != nil {
		return fmt.Errorf("failed to update save record: %w", err)
	}

	return expectOneRow(result, "save_records", rec.ID())
}

// Delete soft-deletes a save record by ID
func (r *SaveRecordRepository) Delete(id string) error {
	return softDelete(r.db, "save_records", id)
}

// List retrieves save records, newest first.
//
// Supported criteria: "playlist_file_id" (string) and "limit" (int).
func (r *SaveRecordRepository) List(criteria map[string]any) ([]*models.SaveRecord, error) {
	query := `SELECT ` + saveRecordColumns + ` FROM save_records WHERE deleted_at IS NULL`
	args := []any{}

	if fileID, ok := criteria["playlist_file_id"].(string); ok && fileID != "" {
		query += " AND playlist_file_id = ?"
		args = append(args, fileID)
	}

	query += " ORDER BY sequence DESC"
	limit, limitArgs := limitClause(criteria)
	query += limit
	args = append(args, limitArgs...)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query save records: %w", err)
	}
	defer rows.Close()

	var records []*models.SaveRecord
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

func (r *SaveRecordRepository) scan(row rowScanner) (*models.SaveRecord, error) {
	var (
		id             string
		sequence       int
		playlistFileID string
		sourcePath     string
		destPath       string
		entriesLoaded  int
		entriesSaved   int
		createdAt      time.Time
		updatedAt      time.Time
		deletedAt      sql.NullTime
	)

	err := row.Scan(&id, &sequence, &playlistFileID, &sourcePath, &destPath, &entriesLoaded, &entriesSaved, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: save record", shared.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan save record: %w", err)
	}

	rec := models.NewSaveRecord(sequence, playlistFileID, sourcePath, destPath, entriesLoaded, entriesSaved)
	rec.SetID(id)
	rec.SetCreatedAt(createdAt)
	rec.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		rec.SetDeletedAt(&deletedAt.Time)
	}

	return rec, nil
}
