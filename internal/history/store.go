package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is the number of records kept per instance unless configured
// otherwise.
const DefaultLimit = 50

// Record is one successful evaluation.
type Record struct {
	ID       string
	Instance string
	Expr     string
	Result   string
	Time     time.Time
}

// Store keeps a bounded, newest-first history per calculator instance.
type Store struct {
	db    *sql.DB
	limit int
	now   func() time.Time
}

// NewStore creates a store over a migrated database. A non-positive limit
// means DefaultLimit.
func NewStore(db *sql.DB, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{db: db, limit: limit, now: time.Now}
}

// Limit returns the number of records kept per instance.
func (s *Store) Limit() int { return s.limit }

// InstanceKey derives the stable key under which an instance's history is
// stored from its configured name.
func InstanceKey(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("scicalc:instance:"+name)).String()
}

// Add records an evaluation as the newest entry for instance and drops the
// oldest entries beyond the limit.
func (s *Store) Add(ctx context.Context, instance, expr, result string) (Record, error) {
	rec := Record{
		ID:       uuid.NewString(),
		Instance: instance,
		Expr:     expr,
		Result:   result,
		Time:     s.now().UTC().Truncate(time.Millisecond),
	}
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var seq int64
		row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM history WHERE instance = ?`, instance)
		if err := row.Scan(&seq); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO history(id, instance, expr, result, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?);
		`, rec.ID, rec.Instance, rec.Expr, rec.Result, rec.Time.UnixMilli(), seq)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
		DELETE FROM history WHERE instance = ? AND id NOT IN (
			SELECT id FROM history WHERE instance = ? ORDER BY seq DESC LIMIT ?
		);
		`, instance, instance, s.limit)
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns the history of instance, newest first.
func (s *Store) List(ctx context.Context, instance string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, instance, expr, result, created_at FROM history
	WHERE instance = ? ORDER BY seq DESC LIMIT ?
	`, instance, s.limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var r Record
		var ms int64
		if err := rows.Scan(&r.ID, &r.Instance, &r.Expr, &r.Result, &ms); err != nil {
			return nil, err
		}
		r.Time = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of records stored for instance.
func (s *Store) Count(ctx context.Context, instance string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history WHERE instance = ?`, instance).Scan(&n)
	return n, err
}

// Clear removes the history of instance.
func (s *Store) Clear(ctx context.Context, instance string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE instance = ?`, instance)
	return err
}
