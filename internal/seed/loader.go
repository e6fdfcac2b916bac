// Package seed imports the static reference datasets the bot reads from.
//
// Datasets are SQL scripts stored as <module>/<dataset>.sql. The first line of
// each script carries a "-- version: N" header; a dataset is only re-imported
// when its file version is newer than the one recorded in dataset_versions.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/dbsmedya/discbot/internal/config"
	"github.com/dbsmedya/discbot/internal/lock"
	"github.com/dbsmedya/discbot/internal/logger"
	"github.com/dbsmedya/discbot/internal/sqlutil"
)

// NanoModule is the module owning the disc and nano reference tables.
const NanoModule = "NANO_MODULE"

// NanoDatasets lists the datasets the disc command needs, in load order.
var NanoDatasets = []string{"nanos", "discs"}

const versionTableDDL = `CREATE TABLE IF NOT EXISTS dataset_versions (
	module VARCHAR(64) NOT NULL,
	dataset VARCHAR(64) NOT NULL,
	version INT NOT NULL,
	PRIMARY KEY (module, dataset)
)`

// Result describes the outcome of loading one dataset.
type Result struct {
	Module     string
	Dataset    string
	Version    int
	Previous   int // -1 when the dataset was never loaded
	Statements int
	Skipped    bool
	Duration   time.Duration
}

// session is satisfied by *sql.DB and *sql.Conn.
type session interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Loader imports datasets from a file system into the store.
type Loader struct {
	db     *sql.DB
	driver string
	fsys   fs.FS
	logger *logger.Logger
}

// NewLoader creates a Loader. A nil log falls back to the default logger.
func NewLoader(db *sql.DB, driver string, fsys fs.FS, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Loader{
		db:     db,
		driver: driver,
		fsys:   fsys,
		logger: log,
	}
}

// LoadAll loads the given datasets of a module in order and stops at the first failure.
func (l *Loader) LoadAll(ctx context.Context, module string, datasets ...string) ([]*Result, error) {
	results := make([]*Result, 0, len(datasets))
	for _, dataset := range datasets {
		res, err := l.Load(ctx, module, dataset)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Load imports one dataset unless the recorded version is already current.
func (l *Loader) Load(ctx context.Context, module, dataset string) (*Result, error) {
	if err := sqlutil.ValidateIdentifier(module); err != nil {
		return nil, fmt.Errorf("module: %w", err)
	}
	if err := sqlutil.ValidateIdentifier(dataset); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	log := l.logger.WithDataset(module, dataset)

	raw, err := fs.ReadFile(l.fsys, path.Join(module, dataset+".sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s/%s: %w", module, dataset, err)
	}
	script := string(raw)
	version, versioned := parseVersion(script)
	if !versioned {
		log.Warn("Dataset has no version header, importing unconditionally")
	}

	if l.driver != config.DriverMySQL {
		return l.load(ctx, l.db, log, module, dataset, script, version, versioned)
	}

	// GET_LOCK belongs to the session, so lock and import share one connection.
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	var res *Result
	advisory := lock.NewAdvisoryLock(conn, lock.SeedLockName(module, dataset))
	err = advisory.WithLock(ctx, lock.TimeoutImport, func() error {
		var loadErr error
		res, loadErr = l.load(ctx, conn, log, module, dataset, script, version, versioned)
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (l *Loader) load(ctx context.Context, s session, log *logger.Logger, module, dataset, script string, version int, versioned bool) (*Result, error) {
	start := time.Now()
	res := &Result{Module: module, Dataset: dataset, Version: version}

	if _, err := s.ExecContext(ctx, versionTableDDL); err != nil {
		return nil, fmt.Errorf("failed to create dataset_versions: %w", err)
	}

	previous, err := loadedVersion(ctx, s, module, dataset)
	if err != nil {
		return nil, err
	}
	res.Previous = previous

	if versioned && previous >= version {
		log.Debugf("Dataset already at version %d, skipping", previous)
		res.Skipped = true
		res.Duration = time.Since(start)
		return res, nil
	}

	stmts := SplitStatements(script)

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			log.Warn("Rolling back dataset import")
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Errorf("Failed to rollback import: %v", rbErr)
			}
		}
	}()

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("%s/%s statement %d: %w", module, dataset, i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM dataset_versions WHERE module = ? AND dataset = ?", module, dataset); err != nil {
		return nil, fmt.Errorf("failed to clear dataset version: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO dataset_versions (module, dataset, version) VALUES (?, ?, ?)", module, dataset, version); err != nil {
		return nil, fmt.Errorf("failed to record dataset version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}
	tx = nil

	res.Statements = len(stmts)
	res.Duration = time.Since(start)
	log.Infof("Imported dataset version %d (%d statements, previous %d) in %s",
		version, res.Statements, previous, res.Duration.Round(time.Millisecond))
	return res, nil
}

// LoadedVersion returns the version recorded for a dataset, or -1 when it was
// never imported.
func (l *Loader) LoadedVersion(ctx context.Context, module, dataset string) (int, error) {
	if _, err := l.db.ExecContext(ctx, versionTableDDL); err != nil {
		return 0, fmt.Errorf("failed to create dataset_versions: %w", err)
	}
	return loadedVersion(ctx, l.db, module, dataset)
}

func loadedVersion(ctx context.Context, s session, module, dataset string) (int, error) {
	var v int
	err := s.QueryRowContext(ctx,
		"SELECT version FROM dataset_versions WHERE module = ? AND dataset = ?", module, dataset).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read dataset version: %w", err)
	}
	return v, nil
}

// Dataset is one embedded dataset file.
type Dataset struct {
	Module    string
	Name      string
	Version   int
	Versioned bool
}

// Datasets lists every <module>/<dataset>.sql file in fsys, sorted by path.
func Datasets(fsys fs.FS) ([]Dataset, error) {
	matches, err := fs.Glob(fsys, "*/*.sql")
	if err != nil {
		return nil, err
	}

	datasets := make([]Dataset, 0, len(matches))
	for _, m := range matches {
		raw, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", m, err)
		}
		version, ok := parseVersion(string(raw))
		datasets = append(datasets, Dataset{
			Module:    path.Dir(m),
			Name:      strings.TrimSuffix(path.Base(m), ".sql"),
			Version:   version,
			Versioned: ok,
		})
	}
	return datasets, nil
}
