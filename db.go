package snp

import (
	"context"
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS Variant (
	hash INTEGER NOT NULL UNIQUE,
	chromosome TEXT NOT NULL,
	position INTEGER NOT NULL,
	reference TEXT NOT NULL,
	observed TEXT NOT NULL,
	frequency REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS Annotation (
	hash INTEGER NOT NULL,
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (hash, name)
);
CREATE TABLE IF NOT EXISTS Metadata (
	source TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	import_time INTEGER NOT NULL
);
`

// Equal variants share a hash, so a later insert replaces the metadata of an
// earlier one instead of adding a row. Its annotations replace the earlier
// set wholesale.
const upsertVariant = `
INSERT INTO Variant (hash, chromosome, position, reference, observed, frequency)
VALUES (:hash, :chromosome, :position, :reference, :observed, :frequency)
ON CONFLICT(hash) DO UPDATE SET frequency = excluded.frequency
`

const deleteAnnotations = `DELETE FROM Annotation WHERE hash = ?`

const insertAnnotation = `
INSERT INTO Annotation (hash, name, value)
VALUES (:hash, :name, :value)
`

const insertMetadata = `
INSERT INTO Metadata (source, record_count, import_time)
VALUES (:source, :record_count, :import_time)
`

// DB stores variant lists in a SQLite file.
type DB struct {
	DB *sqlx.DB
}

// VariantRow conforms to the rows of the SQLite table "Variant" and can be
// easily parsed with sqlx.
type VariantRow struct {
	Hash       int64
	Chromosome string
	Position   int
	Reference  string
	Observed   string
	Frequency  float64
}

// AnnotationRow conforms to the rows of the SQLite table "Annotation". Values
// are stored verbatim, so separators inside them survive a round trip.
type AnnotationRow struct {
	Hash  int64
	Name  string
	Value string
}

// DBMetadata conforms to the rows of the SQLite table "Metadata". One row is
// added per ImportFile.
type DBMetadata struct {
	Source      string
	RecordCount int  `db:"record_count"`
	ImportTime  Time `db:"import_time"`
}

func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}

// OpenDB opens (creating if needed) the SNP database at path.
func OpenDB(path string) (*DB, error) {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html .
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect(whichSQLiteDriver, path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if err := configureDB(db); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &DB{DB: db}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

// Insert stores records in a single transaction.
func (d *DB) Insert(records []ExtendedVariant) error {
	return d.inTx(func(tx *sqlx.Tx) error {
		return insertVariants(tx, records)
	})
}

// ImportFile parses the SNP file at path (see ParseFileContext), stores its
// records and notes the import in the Metadata table.
func (d *DB) ImportFile(ctx context.Context, path string) (int, error) {
	records, err := ParseFileContext(ctx, path)
	if err != nil {
		return 0, err
	}

	err = d.inTx(func(tx *sqlx.Tx) error {
		if err := insertVariants(tx, records); err != nil {
			return err
		}

		meta := DBMetadata{
			Source:      path,
			RecordCount: len(records),
			ImportTime:  Time(time.Now()),
		}
		if _, err := tx.NamedExec(insertMetadata, meta); err != nil {
			return pfx.Err(err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

// Variants returns every stored variant in ascending order of position, ties
// in insertion order.
func (d *DB) Variants() ([]ExtendedVariant, error) {
	var rows []VariantRow
	if err := d.DB.Select(&rows, "SELECT * FROM Variant ORDER BY position ASC, rowid ASC"); err != nil {
		return nil, pfx.Err(err)
	}

	var annotationRows []AnnotationRow
	if err := d.DB.Select(&annotationRows, "SELECT * FROM Annotation"); err != nil {
		return nil, pfx.Err(err)
	}

	annotations := make(map[int64]map[string]string)
	for _, a := range annotationRows {
		if annotations[a.Hash] == nil {
			annotations[a.Hash] = make(map[string]string)
		}
		annotations[a.Hash][a.Name] = a.Value
	}

	out := make([]ExtendedVariant, 0, len(rows))
	for _, row := range rows {
		v, err := NewExtendedVariant(row.Chromosome, row.Position, row.Reference, row.Observed, row.Frequency, annotations[row.Hash])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// Metadata returns the most recent import record. Databases that were only
// ever filled through Insert have none and return an error.
func (d *DB) Metadata() (*DBMetadata, error) {
	meta := &DBMetadata{}
	if err := d.DB.Get(meta, "SELECT * FROM Metadata ORDER BY rowid DESC LIMIT 1"); err != nil {
		return nil, pfx.Err(err)
	}

	return meta, nil
}

func (d *DB) inTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := d.DB.Beginx()
	if err != nil {
		return pfx.Err(err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func insertVariants(tx *sqlx.Tx, records []ExtendedVariant) error {
	for _, r := range records {
		row := newVariantRow(r)
		if _, err := tx.NamedExec(upsertVariant, row); err != nil {
			return pfx.Err(err)
		}

		if _, err := tx.Exec(deleteAnnotations, row.Hash); err != nil {
			return pfx.Err(err)
		}
		for name, value := range r.annotations {
			if _, err := tx.NamedExec(insertAnnotation, AnnotationRow{Hash: row.Hash, Name: name, Value: value}); err != nil {
				return pfx.Err(err)
			}
		}
	}
	return nil
}

func newVariantRow(r ExtendedVariant) VariantRow {
	return VariantRow{
		// SQLite integers are signed
		Hash:       int64(r.Hash()),
		Chromosome: r.Chromosome(),
		Position:   r.Position(),
		Reference:  r.Reference(),
		Observed:   r.Observed(),
		Frequency:  r.Frequency(),
	}
}
