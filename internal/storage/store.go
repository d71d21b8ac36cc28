package storage

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/san-kum/heatsim/internal/heat"
)

// ErrRunNotFound is returned when a run id is not in the catalog.
var ErrRunNotFound = errors.New("storage: run not found")

const catalogFile = "catalog.db"

// Store keeps run metadata in a SQLite catalog and snapshot frames as one
// CSV file per run.
type Store struct {
	baseDir string
	db      *sql.DB
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Scenario      string             `json:"scenario"`
	Dim           int                `json:"dim"`
	Boundary      string             `json:"boundary"`
	Timestamp     time.Time          `json:"timestamp"`
	A             float64            `json:"a"`
	Length        float64            `json:"length"`
	Duration      float64            `json:"duration"`
	Nodes         int                `json:"nodes"`
	Q             float64            `json:"q"`
	Initial       float64            `json:"initial"`
	BoundaryValue float64            `json:"boundary_value"`
	Dt            float64            `json:"dt"`
	Steps         int                `json:"steps"`
	Recorded      int                `json:"recorded"`
	Metrics       Metrics            `json:"metrics"`
}

// Open creates baseDir if needed and opens the catalog inside it.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filepath.Join(baseDir, catalogFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	s := &Store{baseDir: baseDir, db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		dim INTEGER NOT NULL,
		boundary TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		dt REAL NOT NULL,
		steps INTEGER NOT NULL,
		data JSON NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// NewMetadata fills the descriptive fields of a run from its result.
func NewMetadata(scenario string, res *heat.Result, metrics map[string]float64) RunMetadata {
	c := res.Config
	return RunMetadata{
		Scenario:      scenario,
		Dim:           int(c.Dim),
		Boundary:      c.Boundary.String(),
		A:             c.A,
		Length:        c.Length,
		Duration:      c.Duration,
		Nodes:         c.Nodes,
		Q:             c.Q,
		Initial:       c.Initial,
		BoundaryValue: c.BoundaryValue,
		Dt:            res.Dt,
		Steps:         res.Steps,
		Recorded:      len(res.Snapshots),
		Metrics:       metrics,
	}
}

// Save writes the snapshots and catalogs the run, returning its id. On error
// nothing of the run is left behind.
func (s *Store) Save(ctx context.Context, meta RunMetadata, snapshots []heat.Snapshot) (runID string, err error) {
	meta.ID = fmt.Sprintf("%s_%dd_%s", meta.Scenario, meta.Dim, uuid.NewString()[:8])
	meta.Timestamp = time.Now().UTC()
	meta.Recorded = len(snapshots)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	data, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := writeSnapshots(filepath.Join(runDir, "snapshots.csv"), snapshots); err != nil {
		return "", fmt.Errorf("failed to write snapshots: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, dim, boundary, created_at, dt, steps, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Scenario, meta.Dim, meta.Boundary, meta.Timestamp.UnixNano(), meta.Dt, meta.Steps, data)
	if err != nil {
		return "", fmt.Errorf("failed to catalog run: %w", err)
	}

	return meta.ID, nil
}

func writeSnapshots(path string, snapshots []heat.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(snapshots) > 0 {
		header := []string{"step", "time"}
		for i := range snapshots[0].Field {
			header = append(header, fmt.Sprintf("u%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	row := make([]string, 0)
	for _, snap := range snapshots {
		row = row[:0]
		row = append(row, strconv.Itoa(snap.Step), strconv.FormatFloat(snap.Time, 'g', -1, 64))
		for _, v := range snap.Field {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns every cataloged run, oldest first.
func (s *Store) List(ctx context.Context) ([]RunMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

func (s *Store) Load(ctx context.Context, runID string) (*RunMetadata, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM runs WHERE id = ?`, runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Delete removes a run from the catalog and its directory.
func (s *Store) Delete(ctx context.Context, runID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

func (s *Store) LoadSnapshots(runID string) ([]heat.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "snapshots.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.ReuseRecord = true

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return []heat.Snapshot{}, nil
		}
		return nil, err
	}

	snapshots := make([]heat.Snapshot, 0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad step: %w", len(snapshots)+1, err)
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad time: %w", len(snapshots)+1, err)
		}
		field := make(heat.Field, len(record)-2)
		for j, cell := range record[2:] {
			if field[j], err = strconv.ParseFloat(cell, 64); err != nil {
				return nil, fmt.Errorf("row %d: bad value: %w", len(snapshots)+1, err)
			}
		}
		snapshots = append(snapshots, heat.Snapshot{Field: field, Time: t, Step: step})
	}

	return snapshots, nil
}
