package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ novelsrc.SourceService = (*SourceService)(nil)

// SourceService implements novelsrc.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

const sourceColumns = "id, config, created_at, updated_at"

// CreateSource validates and stores a new source, assigning its ID and
// timestamps.
func (s *SourceService) CreateSource(ctx context.Context, source *novelsrc.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	if err := s.checkNameFree(ctx, source.Config.Name, ""); err != nil {
		return err
	}

	data, err := json.Marshal(source.Config)
	if err != nil {
		return err
	}

	source.ID = uuid.New().String()
	ts := now()
	source.CreatedAt = ts
	source.UpdatedAt = ts

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sources (id, name, base_url, source_type, language, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, source.ID, source.Config.Name, source.Config.BaseURL, string(source.Config.SourceType),
		source.Config.Language, string(data),
		formatTime(source.CreatedAt), formatTime(source.UpdatedAt))

	return err
}

// FindSourceByID retrieves a source by ID.
func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*novelsrc.Source, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sourceColumns+" FROM sources WHERE id = ?", id)
	return scanSource(row)
}

// FindSourceByName retrieves a source by its configuration name.
func (s *SourceService) FindSourceByName(ctx context.Context, name string) (*novelsrc.Source, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sourceColumns+" FROM sources WHERE name = ?", name)
	return scanSource(row)
}

// FindSources retrieves sources matching the filter, ordered by name.
func (s *SourceService) FindSources(ctx context.Context, filter novelsrc.SourceFilter) ([]*novelsrc.Source, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + sourceColumns + " FROM sources WHERE 1=1")

	appendEquals(&query, &args, "name", filter.Name)
	if filter.SourceType != nil {
		sourceType := string(*filter.SourceType)
		appendEquals(&query, &args, "source_type", &sourceType)
	}
	appendEquals(&query, &args, "language", filter.Language)

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*novelsrc.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	return sources, rows.Err()
}

// UpdateSource replaces the configuration of an existing source.
func (s *SourceService) UpdateSource(ctx context.Context, id string, cfg *novelsrc.SourceConfig) (*novelsrc.Source, error) {
	source, err := s.FindSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	source.Config = cfg
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, cfg.Name, id); err != nil {
		return nil, err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	source.UpdatedAt = now()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sources
		SET name = ?, base_url = ?, source_type = ?, language = ?, config = ?, updated_at = ?
		WHERE id = ?
	`, cfg.Name, cfg.BaseURL, string(cfg.SourceType), cfg.Language, string(data),
		formatTime(source.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return source, nil
}

// DeleteSource permanently removes a source.
func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return novelsrc.Errorf(novelsrc.ENOTFOUND, "source not found")
	}

	return nil
}

// checkNameFree returns ECONFLICT if a source other than exceptID uses name.
func (s *SourceService) checkNameFree(ctx context.Context, name, exceptID string) error {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM sources WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if id != exceptID {
		return novelsrc.Errorf(novelsrc.ECONFLICT, "source %q already exists", name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (*novelsrc.Source, error) {
	var source novelsrc.Source
	var config, createdAt, updatedAt string

	err := row.Scan(&source.ID, &config, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, novelsrc.Errorf(novelsrc.ENOTFOUND, "source not found")
	}
	if err != nil {
		return nil, err
	}

	var cfg novelsrc.SourceConfig
	if err := json.Unmarshal([]byte(config), &cfg); err != nil {
		return nil, novelsrc.Errorf(novelsrc.EINTERNAL, "corrupt config for source %s: %v", source.ID, err)
	}
	source.Config = &cfg

	if source.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if source.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &source, nil
}
