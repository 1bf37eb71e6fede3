package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/botrelay/internal/db"
)

// Store persists chat exchanges.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a new exchange. If ex.ID is empty a UUID is generated and
// a zero Timestamp is replaced with the current time.
func (s *Store) Record(ctx context.Context, ex Exchange) error {
	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	if ex.Timestamp.IsZero() {
		ex.Timestamp = time.Now()
	}

	var errorCode, requestID sql.NullString
	if ex.ErrorCode != "" {
		errorCode = sql.NullString{String: ex.ErrorCode, Valid: true}
	}
	if ex.RequestID != "" {
		requestID = sql.NullString{String: ex.RequestID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_exchanges (
			id, timestamp, session_id, provider, outcome, http_status,
			shape, error_code, request_id, latency_ms, message_chars, reply_chars
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.ID,
		ex.Timestamp.UTC().Format(time.DateTime),
		ex.SessionID,
		ex.Provider,
		string(ex.Outcome),
		ex.HTTPStatus,
		ex.Shape,
		errorCode,
		requestID,
		ex.LatencyMS,
		ex.MessageChars,
		ex.ReplyChars,
	)
	if err != nil {
		return fmt.Errorf("inserting exchange: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, timestamp, session_id, provider, outcome, http_status,
	shape, error_code, request_id, latency_ms, message_chars, reply_chars
	FROM chat_exchanges`

// GetByID retrieves a single exchange.
func (s *Store) GetByID(ctx context.Context, id string) (*Exchange, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	return scanInto(row)
}

// QueryFilter controls which exchanges are returned by Query.
type QueryFilter struct {
	SessionID string
	Outcome   Outcome
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

// Query returns exchanges matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Exchange, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(time.DateTime))
	}

	query := selectColumns
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []Exchange
	for rows.Next() {
		ex, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, *ex)
	}
	return exchanges, rows.Err()
}

// DeleteBefore removes all exchanges older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM chat_exchanges WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old exchanges: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Exchange, error) {
	var (
		ex                   Exchange
		ts, outcome          string
		errorCode, requestID sql.NullString
	)

	err := sc.Scan(
		&ex.ID, &ts, &ex.SessionID, &ex.Provider, &outcome, &ex.HTTPStatus,
		&ex.Shape, &errorCode, &requestID, &ex.LatencyMS, &ex.MessageChars, &ex.ReplyChars,
	)
	if err != nil {
		return nil, err
	}

	ex.Outcome = Outcome(outcome)
	ex.ErrorCode = errorCode.String
	ex.RequestID = requestID.String

	// The driver may hand DATETIME columns back as RFC 3339 text.
	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		ex.Timestamp = t
	} else if t, parseErr := time.Parse(time.RFC3339Nano, ts); parseErr == nil {
		ex.Timestamp = t
	}

	return &ex, nil
}
