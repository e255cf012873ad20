package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"trip-planner-service/internal/adapters/datafile"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// SqliteDatasetRepository serves both datasets from a local SQLite file,
// the default for single-binary runs.
type SqliteDatasetRepository struct {
	DB *sql.DB
}

func NewSqliteDatasetRepository(db *sql.DB) *SqliteDatasetRepository {
	return &SqliteDatasetRepository{DB: db}
}

// Retrieve all POI records of the loaded dataset.
func (r *SqliteDatasetRepository) ListPOIRecords(ctx context.Context) (_ []ports.POIRecord, err error) {
	defer obs.Time("dataset.sqlite.ListPOIRecords")(&err)

	if r.DB == nil {
		return nil, errors.New("sqlite dataset: db is nil")
	}

	q := `
	SELECT identifier, name, city, abstract, description, photo,
	       needed_time, seasons, season_reason, labels, metadata
	FROM pois;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite dataset: query pois: %w", err)
	}
	defer rows.Close()

	var records []ports.POIRecord
	for rows.Next() {
		rec, err := scanPOIRow(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite dataset: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite dataset: row iteration: %w", err)
	}
	return records, nil
}

// Retrieve the full distance matrix of the loaded dataset.
func (r *SqliteDatasetRepository) DistanceMatrix(ctx context.Context) (_ ports.DistanceMatrix, err error) {
	defer obs.Time("dataset.sqlite.DistanceMatrix")(&err)

	if r.DB == nil {
		return nil, errors.New("sqlite dataset: db is nil")
	}

	q := `
	SELECT origin, destination, distance_km, duration_minutes, status
	FROM distances;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite dataset: query distances: %w", err)
	}
	defer rows.Close()

	matrix := ports.DistanceMatrix{}
	for rows.Next() {
		origin, dest, record, err := scanDistanceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite dataset: %w", err)
		}
		if matrix[origin] == nil {
			matrix[origin] = map[string]domain.DistanceRecord{}
		}
		matrix[origin][dest] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite dataset: row iteration: %w", err)
	}
	return matrix, nil
}

// Seed loads both JSON dataset files into the SQLite tables, replacing
// whatever was there.
func (r *SqliteDatasetRepository) Seed(ctx context.Context, poiPath, distancePath string, vocab domain.Vocabulary) (err error) {
	defer obs.Time("dataset.sqlite.Seed")(&err)

	pois, err := datafile.LoadPOIRecords(poiPath, vocab)
	if err != nil {
		return fmt.Errorf("seed sqlite dataset: %w", err)
	}
	matrix, err := datafile.LoadDistanceMatrix(distancePath)
	if err != nil {
		return fmt.Errorf("seed sqlite dataset: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed sqlite dataset: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pois;`); err != nil {
		return fmt.Errorf("seed sqlite dataset: clear pois: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM distances;`); err != nil {
		return fmt.Errorf("seed sqlite dataset: clear distances: %w", err)
	}

	insertPOI := `
	INSERT INTO pois (identifier, name, city, abstract, description, photo,
	                  needed_time, seasons, season_reason, labels, metadata)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	for _, rec := range pois {
		seasons, labels, metadata, err := encodePOIColumns(rec)
		if err != nil {
			return fmt.Errorf("seed sqlite dataset: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertPOI,
			rec.Identifier, rec.Name, rec.City, rec.Abstract, rec.Description,
			rec.Photo, rec.NeededTime, seasons, rec.SeasonReason, labels, metadata,
		); err != nil {
			return fmt.Errorf("seed sqlite dataset: insert poi %q: %w", rec.Identifier, err)
		}
	}

	insertDistance := `
	INSERT INTO distances (origin, destination, distance_km, duration_minutes, status)
	VALUES (?, ?, ?, ?, ?);
	`
	for origin, destinations := range matrix {
		for dest, record := range destinations {
			if _, err := tx.ExecContext(ctx, insertDistance,
				origin, dest, nullableWeight(record.DistanceKM), nullableWeight(record.DurationMinutes), record.Status,
			); err != nil {
				return fmt.Errorf("seed sqlite dataset: insert distance %q -> %q: %w", origin, dest, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed sqlite dataset: commit tx: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Rows; it keeps the scan helpers shared
// between the SQLite and Postgres repositories.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPOIRow(rows rowScanner) (ports.POIRecord, error) {
	var rec ports.POIRecord
	var seasons, labels, metadata string
	if err := rows.Scan(
		&rec.Identifier, &rec.Name, &rec.City, &rec.Abstract, &rec.Description,
		&rec.Photo, &rec.NeededTime, &seasons, &rec.SeasonReason, &labels, &metadata,
	); err != nil {
		return ports.POIRecord{}, fmt.Errorf("scan poi row: %w", err)
	}
	if err := json.Unmarshal([]byte(seasons), &rec.Seasons); err != nil {
		return ports.POIRecord{}, fmt.Errorf("decode poi %q seasons: %w", rec.Identifier, err)
	}
	if err := json.Unmarshal([]byte(labels), &rec.Labels); err != nil {
		return ports.POIRecord{}, fmt.Errorf("decode poi %q labels: %w", rec.Identifier, err)
	}
	if err := json.Unmarshal([]byte(metadata), &rec.Metadata); err != nil {
		return ports.POIRecord{}, fmt.Errorf("decode poi %q metadata: %w", rec.Identifier, err)
	}
	return rec, nil
}

func scanDistanceRow(rows rowScanner) (string, string, domain.DistanceRecord, error) {
	var origin, dest, status string
	var km, minutes sql.NullFloat64
	if err := rows.Scan(&origin, &dest, &km, &minutes, &status); err != nil {
		return "", "", domain.DistanceRecord{}, fmt.Errorf("scan distance row: %w", err)
	}
	record := domain.DistanceRecord{
		DistanceKM:      math.Inf(1),
		DurationMinutes: math.Inf(1),
		Status:          status,
	}
	if km.Valid {
		record.DistanceKM = km.Float64
	}
	if minutes.Valid {
		record.DurationMinutes = minutes.Float64
	}
	return origin, dest, record, nil
}

func encodePOIColumns(rec ports.POIRecord) (seasons, labels, metadata string, err error) {
	s, err := json.Marshal(emptyIfNilSlice(rec.Seasons))
	if err != nil {
		return "", "", "", fmt.Errorf("encode poi %q seasons: %w", rec.Identifier, err)
	}
	l, err := json.Marshal(rec.Labels)
	if err != nil {
		return "", "", "", fmt.Errorf("encode poi %q labels: %w", rec.Identifier, err)
	}
	m, err := json.Marshal(rec.Metadata)
	if err != nil {
		return "", "", "", fmt.Errorf("encode poi %q metadata: %w", rec.Identifier, err)
	}
	return string(s), string(l), string(m), nil
}

func emptyIfNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// nullableWeight stores +Inf weights as SQL NULL.
func nullableWeight(v float64) any {
	if math.IsInf(v, 1) {
		return nil
	}
	return v
}
