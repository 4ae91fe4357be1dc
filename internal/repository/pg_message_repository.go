package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure PgMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*PgMessageRepository)(nil)

const submissionColumns = `id, COALESCE(contact_name, ''), COALESCE(contact_email, ''),
	contact_message, ip_address, user_agent, submitted_at, contact_type,
	COALESCE(company_name, ''), COALESCE(industry, ''), is_blocked`

// Upsert writes the submission keyed by id. Re-processing a redelivered
// queue message repeats the write with identical content, so the upsert is a
// no-op overwrite rather than a duplicate insert.
func (r *PgMessageRepository) Upsert(ctx context.Context, sub *model.Submission) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages
		   (id, contact_name, contact_email, contact_message, ip_address,
		    user_agent, submitted_at, contact_type, company_name, industry, is_blocked)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8,
		         NULLIF($9, ''), NULLIF($10, ''), $11)
		 ON CONFLICT (id) DO UPDATE SET
		   contact_name    = EXCLUDED.contact_name,
		   contact_email   = EXCLUDED.contact_email,
		   contact_message = EXCLUDED.contact_message,
		   ip_address      = EXCLUDED.ip_address,
		   user_agent      = EXCLUDED.user_agent,
		   submitted_at    = EXCLUDED.submitted_at,
		   contact_type    = EXCLUDED.contact_type,
		   company_name    = EXCLUDED.company_name,
		   industry        = EXCLUDED.industry,
		   is_blocked      = EXCLUDED.is_blocked`,
		sub.ID, sub.ContactName, sub.ContactEmail, sub.ContactMessage,
		sub.IPAddress, sub.UserAgent, sub.Timestamp, sub.ContactType,
		sub.CompanyName, sub.Industry, sub.IsBlocked,
	)
	return err
}

// Get returns the submission with the given id, or ErrNotFound.
func (r *PgMessageRepository) Get(ctx context.Context, id string) (*model.Submission, error) {
	var s model.Submission
	err := r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM contact_messages WHERE id = $1`, id,
	).Scan(&s.ID, &s.ContactName, &s.ContactEmail, &s.ContactMessage,
		&s.IPAddress, &s.UserAgent, &s.Timestamp, &s.ContactType,
		&s.CompanyName, &s.Industry, &s.IsBlocked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns submissions newest first using keyset pagination over
// (submitted_at DESC, id DESC). The returned cursor is opaque to callers;
// "" means the result set is exhausted.
func (r *PgMessageRepository) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, string, error) {
	var conditions []string
	var args []any

	contactType := strings.TrimSpace(opts.ContactType)
	if contactType != "" && contactType != "all" {
		args = append(args, contactType)
		conditions = append(conditions, fmt.Sprintf("contact_type = $%d", len(args)))
	}

	if opts.Cursor != "" {
		ts, id, err := decodeCursor(opts.Cursor)
		if err != nil {
			return nil, "", err
		}
		args = append(args, ts)
		tsArg := len(args)
		args = append(args, id)
		idArg := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(submitted_at < $%d OR (submitted_at = $%d AND id < $%d))", tsArg, tsArg, idArg))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)

	query := `SELECT ` + submissionColumns + ` FROM contact_messages ` + where +
		fmt.Sprintf(` ORDER BY submitted_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var submissions []*model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.ContactName, &s.ContactEmail, &s.ContactMessage,
			&s.IPAddress, &s.UserAgent, &s.Timestamp, &s.ContactType,
			&s.CompanyName, &s.Industry, &s.IsBlocked); err != nil {
			return nil, "", err
		}
		submissions = append(submissions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(submissions) == limit {
		last := submissions[len(submissions)-1]
		next = encodeCursor(last.Timestamp, last.ID)
	}
	return submissions, next, nil
}

// Cursors encode the keyset position (submitted_at, id) of the last row of a
// page. base64 keeps them opaque and URL-safe.

func encodeCursor(ts int64, id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(ts, 10) + ":" + id))
}

func decodeCursor(cursor string) (int64, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, "", fmt.Errorf("invalid cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid cursor")
	}
	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid cursor: %w", err)
	}
	return ts, parts[1], nil
}
