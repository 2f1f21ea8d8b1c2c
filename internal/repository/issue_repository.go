package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-copilot/internal/domain"
)

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository instantiates the Postgres backed store.
func NewIssueRepository(pool *pgxpool.Pool) IssueStore {
	return &issueRepository{pool: pool}
}

func (r *issueRepository) CountIssues(ctx context.Context, customerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM issues WHERE customer_id=$1`
	var count int
	if err := r.pool.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		return 0, unavailable("count issues", err)
	}
	return count, nil
}

func (r *issueRepository) FindResolved(ctx context.Context, productID string) ([]domain.ResolvedIssue, error) {
	const query = `
        SELECT issue_description, COALESCE(resolution, '')
        FROM issues WHERE product_id=$1 AND status=$2
        ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, productID, domain.IssueStatusResolved)
	if err != nil {
		return nil, unavailable("find resolved", err)
	}
	defer rows.Close()

	result := []domain.ResolvedIssue{}
	for rows.Next() {
		var item domain.ResolvedIssue
		if err := rows.Scan(&item.Description, &item.Resolution); err != nil {
			return nil, unavailable("find resolved", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("find resolved", err)
	}
	return result, nil
}

func (r *issueRepository) CountOpenHighSeverityOlderThan(ctx context.Context, customerID string, cutoff time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM issues
        WHERE customer_id=$1 AND severity=$2 AND status=$3 AND created_at < $4`
	var count int
	if err := r.pool.QueryRow(ctx, query, customerID, domain.SeverityHigh, domain.IssueStatusOpen, cutoff).Scan(&count); err != nil {
		return 0, unavailable("count open high severity", err)
	}
	return count, nil
}

func (r *issueRepository) ListMessages(ctx context.Context, issueID int64) ([]domain.ConversationMessage, error) {
	const query = `
        SELECT id, issue_id, message, sender, timestamp
        FROM conversations WHERE issue_id=$1 ORDER BY timestamp ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, issueID)
	if err != nil {
		return nil, unavailable("list messages", err)
	}
	defer rows.Close()

	result := []domain.ConversationMessage{}
	for rows.Next() {
		var msg domain.ConversationMessage
		if err := rows.Scan(&msg.ID, &msg.IssueID, &msg.Message, &msg.Sender, &msg.Timestamp); err != nil {
			return nil, unavailable("list messages", err)
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list messages", err)
	}
	return result, nil
}

func (r *issueRepository) GetIssue(ctx context.Context, issueID int64) (*domain.Issue, error) {
	const query = `
        SELECT id, customer_id, issue_description, created_at, severity, status, product_id, resolution
        FROM issues WHERE id=$1`
	var issue domain.Issue
	if err := r.pool.QueryRow(ctx, query, issueID).Scan(
		&issue.ID,
		&issue.CustomerID,
		&issue.Description,
		&issue.CreatedAt,
		&issue.Severity,
		&issue.Status,
		&issue.ProductID,
		&issue.Resolution,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIssueNotFound
		}
		return nil, unavailable("get issue", err)
	}
	return &issue, nil
}

const (
	insertIssueSQL = `
        INSERT INTO issues (customer_id, issue_description, created_at, severity, status, product_id, resolution)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	insertMessageSQL = `
        INSERT INTO conversations (issue_id, message, sender, timestamp)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
)

func issueArgs(issue *domain.Issue) []any {
	return []any{
		issue.CustomerID,
		issue.Description,
		issue.CreatedAt,
		issue.Severity,
		issue.Status,
		issue.ProductID,
		issue.Resolution,
	}
}

func (r *issueRepository) InsertIssue(ctx context.Context, issue *domain.Issue) error {
	if err := r.pool.QueryRow(ctx, insertIssueSQL, issueArgs(issue)...).Scan(&issue.ID); err != nil {
		return unavailable("insert issue", err)
	}
	return nil
}

func (r *issueRepository) InsertIssueWithMessage(ctx context.Context, issue *domain.Issue, msg *domain.ConversationMessage) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertIssueSQL, issueArgs(issue)...).Scan(&issue.ID); err != nil {
			return err
		}
		msg.IssueID = issue.ID
		return tx.QueryRow(ctx, insertMessageSQL, msg.IssueID, msg.Message, msg.Sender, msg.Timestamp).Scan(&msg.ID)
	})
	if err != nil {
		// ids handed out inside a rolled back transaction do not exist
		issue.ID, msg.IssueID, msg.ID = 0, 0, 0
		return unavailable("insert issue with message", err)
	}
	return nil
}

func (r *issueRepository) InsertMessage(ctx context.Context, msg *domain.ConversationMessage) error {
	if err := r.pool.QueryRow(ctx, insertMessageSQL, msg.IssueID, msg.Message, msg.Sender, msg.Timestamp).Scan(&msg.ID); err != nil {
		return unavailable("insert message", err)
	}
	return nil
}

func (r *issueRepository) ResolveIssue(ctx context.Context, issueID int64, resolution string) error {
	const query = `UPDATE issues SET status=$1, resolution=$2 WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, domain.IssueStatusResolved, resolution, issueID)
	if err != nil {
		return unavailable("resolve issue", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrIssueNotFound
	}
	return nil
}

func (r *issueRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return unavailable("ping", errors.New("postgres pool not configured"))
	}
	if err := r.pool.Ping(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}
