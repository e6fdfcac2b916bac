// Package store provides the reference data stores behind the disc command.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dbsmedya/discbot/internal/nano"
	"github.com/dbsmedya/discbot/internal/sqlutil"
)

const discColumns = "disc_id, disc_name, disc_ql, crystal_id, crystal_ql, crystal_name, comment"

const nanoDetailsQuery = `SELECT n.professions, l.name, n.location
FROM nanos n
LEFT JOIN nano_nanolines_ref r ON n.lowid = r.lowid
LEFT JOIN nanolines l ON r.nanolineid = l.id
WHERE n.lowid = ?
LIMIT 1`

// SQLStore reads the discs, nanos and nanoline tables through database/sql.
// The queries are plain enough to run on both MySQL and SQLite.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a store over an open connection pool.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// FindByID implements nano.Store.
func (s *SQLStore) FindByID(ctx context.Context, discID int) (*nano.DiscRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+discColumns+" FROM discs WHERE disc_id = ?", discID)

	disc, err := scanDisc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query disc: %w", err)
	}
	return &disc, nil
}

// FindByName implements nano.Store. Every whitespace separated token of term
// must occur in the disc name, ignoring case.
func (s *SQLStore) FindByName(ctx context.Context, term string) ([]nano.DiscRecord, error) {
	where, args := sqlutil.ContainsAll("disc_name", nano.SearchTokens(term))
	if where == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT "+discColumns+" FROM discs WHERE "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search discs: %w", err)
	}
	defer rows.Close()

	var discs []nano.DiscRecord
	for rows.Next() {
		disc, err := scanDisc(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan disc: %w", err)
		}
		discs = append(discs, disc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate discs: %w", err)
	}
	return discs, nil
}

// FindNanoDetails implements nano.Store. A nano without nanoline still
// yields details, with an empty nanoline name.
func (s *SQLStore) FindNanoDetails(ctx context.Context, crystalID int) (*nano.NanoDetails, error) {
	var profession, nanoline, location sql.NullString

	err := s.db.QueryRowContext(ctx, nanoDetailsQuery, crystalID).Scan(&profession, &nanoline, &location)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query nano details: %w", err)
	}

	return &nano.NanoDetails{
		Profession:   profession.String,
		NanolineName: nanoline.String,
		Location:     location.String,
	}, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDisc(row scanner) (nano.DiscRecord, error) {
	var disc nano.DiscRecord
	var comment sql.NullString
	err := row.Scan(
		&disc.DiscID,
		&disc.DiscName,
		&disc.DiscQuality,
		&disc.CrystalID,
		&disc.CrystalQuality,
		&disc.CrystalName,
		&comment,
	)
	disc.Comment = comment.String
	return disc, err
}
