package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/emotefeed/emote-server/internal/domain"
	"github.com/emotefeed/emote-server/internal/store"
)

// postColumns is the ordered list of columns selected in post queries.
// Must match the scan order in scanPost.
const postColumns = `id, created_at, updated_at, deleted_at, author_id, content`

// scanPost scans a sql.Row (or sql.Rows via its Scan method) into a domain.Post.
func scanPost(scanner interface{ Scan(dest ...any) error }) (*domain.Post, error) {
	var p domain.Post

	var (
		createdAt string
		updatedAt string
		deletedAt sql.NullString
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&deletedAt,
		&p.AuthorID,
		&p.Content,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	p.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePost inserts a new post into the database.
// Returns store.ErrAlreadyExists if the post ID already exists.
func (s *Store) CreatePost(ctx context.Context, post *domain.Post) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (
			id, created_at, updated_at, deleted_at, author_id, content
		) VALUES (?, ?, ?, ?, ?, ?)`,
		post.ID,
		formatTime(post.CreatedAt),
		formatTime(post.UpdatedAt),
		nullTimeString(post.DeletedAt),
		post.AuthorID,
		post.Content,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPost retrieves a post by ID, excluding soft-deleted records.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ? AND deleted_at IS NULL`, id)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListRecentPosts returns the newest posts first, up to limit.
func (s *Store) ListRecentPosts(ctx context.Context, limit int) ([]*domain.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListPostsByAuthor returns the author's newest posts first, up to limit.
func (s *Store) ListPostsByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE author_id = ? AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC LIMIT ?`, authorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]*domain.Post, error) {
	var posts []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}
