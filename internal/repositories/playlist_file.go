package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/m3ux/internal/models"
	"github.com/desertthunder/m3ux/internal/shared"
)

var _ models.Repository[*models.PlaylistFile] = (*PlaylistFileRepository)(nil)

const playlistFileColumns = `id, sequence, path, name, has_header, entry_count, open_count, last_opened_at, created_at, updated_at, deleted_at`

// PlaylistFileRepository implements models.Repository[*models.PlaylistFile] for the recent-files list.
type PlaylistFileRepository struct {
	db *sql.DB
}

// NewPlaylistFileRepository creates a new PlaylistFileRepository with the given database connection
func NewPlaylistFileRepository(db *sql.DB) *PlaylistFileRepository {
	return &PlaylistFileRepository{db: db}
}

// Create inserts a new playlist file with generated ID and sequence
func (r *PlaylistFileRepository) Create(file *models.PlaylistFile) error {
	if err := file.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "playlist_files")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	file.SetID(id)
	file.SetSequence(sequence)

	query := `
		INSERT INTO playlist_files (id, sequence, path, name, has_header, entry_count, open_count, last_opened_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		file.Path(),
		file.Name(),
		file.HasHeader(),
		file.EntryCount(),
		file.OpenCount(),
		nullTime(file.LastOpenedAt()),
		file.CreatedAt(),
		file.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist file: %w", err)
	}

	return nil
}

// Get retrieves a playlist file by ID, excluding soft-deleted rows
func (r *PlaylistFileRepository) Get(id string) (*models.PlaylistFile, error) {
	query := `SELECT ` + playlistFileColumns + ` FROM playlist_files WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// GetByPath retrieves a playlist file by its path, excluding soft-deleted rows
func (r *PlaylistFileRepository) GetByPath(path string) (*models.PlaylistFile, error) {
	query := `SELECT ` + playlistFileColumns + ` FROM playlist_files WHERE path = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, path))
}

// Restore clears deleted_at on the row for path and returns it.
func (r *PlaylistFileRepository) Restore(path string) (*models.PlaylistFile, error) {
	result, err := r.db.Exec(`UPDATE playlist_files SET deleted_at = NULL, updated_at = ? WHERE path = ?`, time.Now(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to restore playlist file: %w", err)
	}
	if err := expectOneRow(result, "playlist_files", path); err != nil {
		return nil, err
	}
	return r.GetByPath(path)
}

// Update modifies an existing playlist file
func (r *PlaylistFileRepository) Update(file *models.PlaylistFile) error {
	if err := file.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	file.SetUpdatedAt(now)

	query := `
		UPDATE playlist_files
		SET has_header = ?, entry_count = ?, open_count = ?, last_opened_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		file.HasHeader(),
		file.EntryCount(),
		file.OpenCount(),
		nullTime(file.LastOpenedAt()),
		now,
		file.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist file: %w", err)
	}

	return expectOneRow(result, "playlist_files", file.ID())
}

// Delete soft-deletes a playlist file by ID
func (r *PlaylistFileRepository) Delete(id string) error {
	return softDelete(r.db, "playlist_files", id)
}

// List retrieves playlist files, most recently opened first.
//
// Supported criteria: "name" (exact base name) and "limit" (int).
func (r *PlaylistFileRepository) List(criteria map[string]any) ([]*models.PlaylistFile, error) {
	query := `SELECT ` + playlistFileColumns + ` FROM playlist_files WHERE deleted_at IS NULL`
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY last_opened_at DESC, sequence DESC"
	limit, limitArgs := limitClause(criteria)
	query += limit
	args = append(args, limitArgs...)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist files: %w", err)
	}
	defer rows.Close()

	var files []*models.PlaylistFile
	for rows.Next() {
		file, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return files, nil
}

// scan reads one row into a [models.PlaylistFile]
func (r *PlaylistFileRepository) scan(row rowScanner) (*models.PlaylistFile, error) {
	var (
		id           string
		sequence     int
		path         string
		name         string
		hasHeader    bool
		entryCount   int
		openCount    int
		lastOpenedAt sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &path, &name, &hasHeader, &entryCount, &openCount, &lastOpenedAt, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: playlist file", shared.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist file: %w", err)
	}

	file := models.NewPlaylistFile(sequence, path, hasHeader, entryCount)
	file.SetID(id)
	file.SetOpenCount(openCount)
	file.SetCreatedAt(createdAt)
	file.SetUpdatedAt(updatedAt)
	if lastOpenedAt.Valid {
		file.SetLastOpenedAt(lastOpenedAt.Time)
	}
	if deletedAt.Valid {
		file.SetDeletedAt(&deletedAt.Time)
	}

	return file, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
