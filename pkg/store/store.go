// Package store persists named shapes in SQLite. A shape is stored as its
// expression graph in VM text form together with its bounding box and
// exactness, so it can be reloaded and meshed without the script that
// built it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chazu/fidgo/pkg/shape"
	"github.com/chazu/fidgo/pkg/store/migrations"
	"github.com/chazu/fidgo/pkg/tree"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no shape has the requested name.
var ErrNotFound = errors.New("shape not found")

// Record is one stored shape.
type Record struct {
	Name      string
	Source    string
	Shape     shape.Shape
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists shapes in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite shape store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts or replaces the shape stored under name. source is the
// script the shape came from and may be empty.
func (s *Store) Save(ctx context.Context, name, source string, sh shape.Shape) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("shape name is required")
	}
	if sh.Expr == nil {
		return fmt.Errorf("shape %s has no expression", name)
	}

	b := sh.Bounds
	now := toMillis(time.Now())
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO shapes (
		   name, source, expr, exactness,
		   x_min, x_max, y_min, y_max, z_min, z_max,
		   created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   source = excluded.source,
		   expr = excluded.expr,
		   exactness = excluded.exactness,
		   x_min = excluded.x_min,
		   x_max = excluded.x_max,
		   y_min = excluded.y_min,
		   y_max = excluded.y_max,
		   z_min = excluded.z_min,
		   z_max = excluded.z_max,
		   updated_at = excluded.updated_at`,
		name, source, tree.FormatVM(sh.Expr), sh.Exactness.String(),
		formatFloat(b.XMin), formatFloat(b.XMax),
		formatFloat(b.YMin), formatFloat(b.YMax),
		formatFloat(b.ZMin), formatFloat(b.ZMax),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("save shape %s: %w", name, err)
	}
	return nil
}

const selectColumns = `name, source, expr, exactness,
	x_min, x_max, y_min, y_max, z_min, z_max,
	created_at, updated_at`

// Load returns the shape stored under name.
func (s *Store) Load(ctx context.Context, name string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Record{}, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM shapes WHERE name = ?`, strings.TrimSpace(name))
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Record{}, fmt.Errorf("load shape %s: %w", name, err)
	}
	return rec, nil
}

// List returns every stored shape ordered by name.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+selectColumns+` FROM shapes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list shapes: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list shapes: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shapes: %w", err)
	}
	return records, nil
}

// Delete removes the shape stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM shapes WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete shape %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete shape %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec                 Record
		expr, exactness     string
		faces               [6]string
		createdAt, updateAt int64
	)
	if err := row.Scan(
		&rec.Name, &rec.Source, &expr, &exactness,
		&faces[0], &faces[1], &faces[2], &faces[3], &faces[4], &faces[5],
		&createdAt, &updateAt,
	); err != nil {
		return Record{}, err
	}

	node, err := tree.ParseVM(expr)
	if err != nil {
		return Record{}, fmt.Errorf("shape %s: %w", rec.Name, err)
	}
	ex, ok := shape.ParseExactness(exactness)
	if !ok {
		return Record{}, fmt.Errorf("shape %s: unknown exactness %q", rec.Name, exactness)
	}
	var f [6]float64
	for i, text := range faces {
		if f[i], err = strconv.ParseFloat(text, 64); err != nil {
			return Record{}, fmt.Errorf("shape %s: bounds: %w", rec.Name, err)
		}
	}

	rec.Shape = shape.New(node, shape.BoundingBox{
		XMin: f[0], XMax: f[1], YMin: f[2], YMax: f[3], ZMin: f[4], ZMax: f[5],
	}, ex)
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updateAt)
	return rec, nil
}

// formatFloat keeps infinite faces round-trippable through TEXT columns.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
