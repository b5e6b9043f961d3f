package lead

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"intake-platform/pkg/utils"
)

// NOTE: This repository assumes the following table exists:
//
// CREATE TABLE leads (
//   id               uuid PRIMARY KEY,
//   created_at       timestamptz NOT NULL,
//   caller_phone     text NOT NULL,
//   caller_name      text NOT NULL DEFAULT '',
//   caller_email     text NOT NULL DEFAULT '',
//   summary          text NOT NULL,
//   qualification    jsonb NOT NULL,
//   booking          jsonb NOT NULL,
//   compliance_flags jsonb NOT NULL DEFAULT '[]',
//   transcript_url   text NOT NULL DEFAULT '',
//   recording_url    text NOT NULL DEFAULT ''
// );
//
// The table is INSERT-only; no UPDATE or DELETE statements appear here.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, l Lead) error {
	qual, err := json.Marshal(l.Qualification)
	if err != nil {
		return fmt.Errorf("lead: marshal qualification: %w", err)
	}
	booking, err := json.Marshal(l.Booking)
	if err != nil {
		return fmt.Errorf("lead: marshal booking: %w", err)
	}
	flags := l.ComplianceFlags
	if flags == nil {
		flags = []string{}
	}
	flagsJSON, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("lead: marshal compliance flags: %w", err)
	}

	return utils.WithTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO leads (
  id, created_at, caller_phone, caller_name, caller_email, summary,
  qualification, booking, compliance_flags, transcript_url, recording_url
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
)
`
		_, err := tx.ExecContext(ctx, q,
			l.ID,
			l.CreatedAt,
			l.CallerPhone,
			l.CallerName,
			l.CallerEmail,
			l.Summary,
			qual,
			booking,
			flagsJSON,
			l.TranscriptURL,
			l.RecordingURL,
		)
		return err
	})
}

const leadColumns = `
id, created_at, caller_phone, caller_name, caller_email, summary,
qualification, booking, compliance_flags, transcript_url, recording_url`

func (r *PostgresRepo) ListRecent(ctx context.Context, limit int) ([]Lead, error) {
	q := `SELECT ` + leadColumns + `
FROM leads
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func (r *PostgresRepo) ListBetween(ctx context.Context, from, to time.Time) ([]Lead, error) {
	q := `SELECT ` + leadColumns + `
FROM leads
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at ASC
`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func scanLeads(rows *sql.Rows) ([]Lead, error) {
	var out []Lead
	for rows.Next() {
		var (
			l         Lead
			qual      []byte
			booking   []byte
			flagsJSON []byte
		)
		if err := rows.Scan(
			&l.ID,
			&l.CreatedAt,
			&l.CallerPhone,
			&l.CallerName,
			&l.CallerEmail,
			&l.Summary,
			&qual,
			&booking,
			&flagsJSON,
			&l.TranscriptURL,
			&l.RecordingURL,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(qual, &l.Qualification); err != nil {
			return nil, fmt.Errorf("lead %s: qualification: %w", l.ID, err)
		}
		if err := json.Unmarshal(booking, &l.Booking); err != nil {
			return nil, fmt.Errorf("lead %s: booking: %w", l.ID, err)
		}
		if err := json.Unmarshal(flagsJSON, &l.ComplianceFlags); err != nil {
			return nil, fmt.Errorf("lead %s: compliance flags: %w", l.ID, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
