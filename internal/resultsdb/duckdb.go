// Package resultsdb persists classified motifs and gene lists into a
// DuckDB database for downstream ad-hoc querying.
package resultsdb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/alexsuw/drosophila-dna-analysis/internal/classify"
)

// DB is a DuckDB-backed store of classification results.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) a DuckDB database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &DB{db: db, path: path}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// CreateSchema creates the result tables, dropping any previous run's data.
func (d *DB) CreateSchema() error {
	stmts := []string{
		`DROP TABLE IF EXISTS classifications`,
		`DROP TABLE IF EXISTS gene_lists`,
		`CREATE TABLE classifications (
			kind VARCHAR NOT NULL,
			chrom VARCHAR NOT NULL,
			start BIGINT NOT NULL,
			end_ BIGINT NOT NULL,
			score DOUBLE NOT NULL,
			context VARCHAR NOT NULL,
			sequence VARCHAR,
			genes VARCHAR,
			promoter_genes VARCHAR
		)`,
		`CREATE TABLE gene_lists (
			list_name VARCHAR NOT NULL,
			gene_id VARCHAR NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// InsertResults writes a batch of classification results in one
// transaction. Gene sets are stored as JSON arrays.
func (d *DB) InsertResults(results []classify.Result) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO classifications
			(kind, chrom, start, end_, score, context, sequence, genes, promoter_genes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		genesJSON, err := json.Marshal(r.Genes)
		if err != nil {
			return fmt.Errorf("marshal genes: %w", err)
		}
		promJSON, err := json.Marshal(r.PromoterGenes)
		if err != nil {
			return fmt.Errorf("marshal promoter genes: %w", err)
		}

		_, err = stmt.Exec(
			r.Motif.Kind.String(),
			r.Motif.Interval.Chrom,
			r.Motif.Interval.Start,
			r.Motif.Interval.End,
			r.Motif.Score,
			r.Context.String(),
			r.Motif.Sequence,
			string(genesJSON),
			string(promJSON),
		)
		if err != nil {
			return fmt.Errorf("insert classification: %w", err)
		}
	}

	return tx.Commit()
}

// InsertGeneList writes one named gene list.
func (d *DB) InsertGeneList(name string, genes []string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO gene_lists (list_name, gene_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range genes {
		if _, err := stmt.Exec(name, id); err != nil {
			return fmt.Errorf("insert gene list row: %w", err)
		}
	}
	return tx.Commit()
}

// ResultCount returns the number of stored classifications.
func (d *DB) ResultCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM classifications`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count classifications: %w", err)
	}
	return count, nil
}

// CountByContext returns the number of stored classifications per context
// for one motif kind.
func (d *DB) CountByContext(kind string) (map[string]int, error) {
	rows, err := d.db.Query(`
		SELECT context, COUNT(*) FROM classifications
		WHERE kind = ?
		GROUP BY context
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("query contexts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var context string
		var count int
		if err := rows.Scan(&context, &count); err != nil {
			return nil, err
		}
		counts[context] = count
	}
	return counts, rows.Err()
}

// GeneList returns a stored gene list in insertion order.
func (d *DB) GeneList(name string) ([]string, error) {
	rows, err := d.db.Query(`SELECT gene_id FROM gene_lists WHERE list_name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("query gene list: %w", err)
	}
	defer rows.Close()

	var genes []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		genes = append(genes, id)
	}
	return genes, rows.Err()
}
