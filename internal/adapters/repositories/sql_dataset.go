package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-planner-service/internal/adapters/datafile"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// SQLDatasetRepository is the Postgres counterpart of the SQLite
// repository, used when a shared database backs several instances.
type SQLDatasetRepository struct {
	DB *sql.DB
}

func NewSQLDatasetRepository(db *sql.DB) *SQLDatasetRepository {
	return &SQLDatasetRepository{DB: db}
}

func (r *SQLDatasetRepository) ListPOIRecords(ctx context.Context) (_ []ports.POIRecord, err error) {
	defer obs.Time("dataset.sql.ListPOIRecords")(&err)

	if r.DB == nil {
		return nil, errors.New("sql dataset: db is nil")
	}

	q := `
	SELECT identifier, name, city, abstract, description, photo,
	       needed_time, seasons, season_reason, labels, metadata
	FROM pois;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sql dataset: query pois: %w", err)
	}
	defer rows.Close()

	var records []ports.POIRecord
	for rows.Next() {
		rec, err := scanPOIRow(rows)
		if err != nil {
			return nil, fmt.Errorf("sql dataset: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sql dataset: row iteration: %w", err)
	}
	return records, nil
}

func (r *SQLDatasetRepository) DistanceMatrix(ctx context.Context) (_ ports.DistanceMatrix, err error) {
	defer obs.Time("dataset.sql.DistanceMatrix")(&err)

	if r.DB == nil {
		return nil, errors.New("sql dataset: db is nil")
	}

	q := `
	SELECT origin, destination, distance_km, duration_minutes, status
	FROM distances;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sql dataset: query distances: %w", err)
	}
	defer rows.Close()

	matrix := ports.DistanceMatrix{}
	for rows.Next() {
		origin, dest, record, err := scanDistanceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("sql dataset: %w", err)
		}
		if matrix[origin] == nil {
			matrix[origin] = map[string]domain.DistanceRecord{}
		}
		matrix[origin][dest] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sql dataset: row iteration: %w", err)
	}
	return matrix, nil
}

func (r *SQLDatasetRepository) Seed(ctx context.Context, poiPath, distancePath string, vocab domain.Vocabulary) (err error) {
	defer obs.Time("dataset.sql.Seed")(&err)

	pois, err := datafile.LoadPOIRecords(poiPath, vocab)
	if err != nil {
		return fmt.Errorf("seed sql dataset: %w", err)
	}
	matrix, err := datafile.LoadDistanceMatrix(distancePath)
	if err != nil {
		return fmt.Errorf("seed sql dataset: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed sql dataset: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pois;`); err != nil {
		return fmt.Errorf("seed sql dataset: clear pois: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM distances;`); err != nil {
		return fmt.Errorf("seed sql dataset: clear distances: %w", err)
	}

	insertPOI := `
	INSERT INTO pois (identifier, name, city, abstract, description, photo,
	                  needed_time, seasons, season_reason, labels, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, rec := range pois {
		seasons, labels, metadata, err := encodePOIColumns(rec)
		if err != nil {
			return fmt.Errorf("seed sql dataset: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertPOI,
			rec.Identifier, rec.Name, rec.City, rec.Abstract, rec.Description,
			rec.Photo, rec.NeededTime, seasons, rec.SeasonReason, labels, metadata,
		); err != nil {
			return fmt.Errorf("seed sql dataset: insert poi %q: %w", rec.Identifier, err)
		}
	}

	insertDistance := `
	INSERT INTO distances (origin, destination, distance_km, duration_minutes, status)
	VALUES ($1, $2, $3, $4, $5);
	`
	for origin, destinations := range matrix {
		for dest, record := range destinations {
			if _, err := tx.ExecContext(ctx, insertDistance,
				origin, dest, nullableWeight(record.DistanceKM), nullableWeight(record.DurationMinutes), record.Status,
			); err != nil {
				return fmt.Errorf("seed sql dataset: insert distance %q -> %q: %w", origin, dest, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed sql dataset: commit tx: %w", err)
	}
	return nil
}
