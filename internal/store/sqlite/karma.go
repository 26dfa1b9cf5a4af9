package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/emotefeed/emote-server/internal/domain"
	"github.com/emotefeed/emote-server/internal/store"
)

// karmaColumns is the ordered list of columns selected in karma vote queries.
// Must match the scan order in scanKarmaVote.
const karmaColumns = `post_id, user_id, is_positive, created_at, updated_at`

// scanKarmaVote scans a sql.Row (or sql.Rows via its Scan method) into a domain.KarmaVote.
func scanKarmaVote(scanner interface{ Scan(dest ...any) error }) (*domain.KarmaVote, error) {
	var v domain.KarmaVote

	var (
		isPositive int
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&v.PostID,
		&v.UserID,
		&isPositive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.IsPositive = isPositive != 0

	// Parse timestamps.
	v.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	v.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// CreateKarmaVote inserts a new vote row.
// Returns store.ErrAlreadyExists if the (post, user) pair already has a vote.
// The composite primary key enforces the one vote per user per post rule,
// so a concurrent duplicate insert surfaces here rather than corrupting totals.
func (s *Store) CreateKarmaVote(ctx context.Context, vote *domain.KarmaVote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO karma_votes (
			post_id, user_id, is_positive, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?)`,
		vote.PostID,
		vote.UserID,
		boolToInt(vote.IsPositive),
		formatTime(vote.CreatedAt),
		formatTime(vote.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetKarmaVote retrieves a single user's vote on a post.
// Returns store.ErrNotFound if the user has not voted on the post.
func (s *Store) GetKarmaVote(ctx context.Context, postID, userID string) (*domain.KarmaVote, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+karmaColumns+` FROM karma_votes WHERE post_id = ? AND user_id = ?`,
		postID, userID)

	v, err := scanKarmaVote(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateKarmaVote updates the direction of an existing vote.
// Returns store.ErrNotFound if the vote does not exist.
func (s *Store) UpdateKarmaVote(ctx context.Context, vote *domain.KarmaVote) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE karma_votes SET is_positive = ?, updated_at = ?
		WHERE post_id = ? AND user_id = ?`,
		boolToInt(vote.IsPositive),
		formatTime(vote.UpdatedAt),
		vote.PostID,
		vote.UserID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteKarmaVote removes a user's vote from a post.
// Returns store.ErrNotFound if the vote does not exist.
func (s *Store) DeleteKarmaVote(ctx context.Context, postID, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM karma_votes WHERE post_id = ? AND user_id = ?`,
		postID, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListKarmaVotes returns every vote on any of the given posts.
func (s *Store) ListKarmaVotes(ctx context.Context, postIDs []string) ([]*domain.KarmaVote, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(postIDs)-1) + "?"
	args := make([]any, len(postIDs))
	for i, id := range postIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+karmaColumns+` FROM karma_votes WHERE post_id IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []*domain.KarmaVote
	for rows.Next() {
		v, err := scanKarmaVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return votes, nil
}
