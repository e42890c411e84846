package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gophblog/internal/models"
	"github.com/iudanet/gophblog/internal/server/storage"
)

// CreatePost stores a new post of the user
func (s *Storage) CreatePost(ctx context.Context, userID string, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, content_type, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		post.ID.String(),
		userID,
		string(post.Content.Type),
		post.Content.Content,
		post.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// ListPosts returns posts of the user, newest first
func (s *Storage) ListPosts(ctx context.Context, userID string) ([]models.Post, error) {
	query := `
		SELECT id, content_type, content, created_at
		FROM posts
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// UpdatePostContent replaces the content of the post
func (s *Storage) UpdatePostContent(
	ctx context.Context,
	userID string,
	postID models.PostID,
	content models.PostContent,
) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE posts SET content_type = ?, content = ? WHERE id = ? AND user_id = ?`,
		string(content.Type),
		content.Content,
		postID.String(),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, storage.ErrPostNotFound
	}

	post, err := scanPost(tx.QueryRowContext(ctx,
		`SELECT id, content_type, content, created_at FROM posts WHERE id = ?`,
		postID.String(),
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return post, nil
}

// DeletePost deletes the post
func (s *Storage) DeletePost(ctx context.Context, userID string, postID models.PostID) error {
	query := `DELETE FROM posts WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, postID.String(), userID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrPostNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*models.Post, error) {
	var (
		post        models.Post
		id          string
		contentType string
	)

	if err := row.Scan(&id, &contentType, &post.Content.Content, &post.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}

	post.ID = models.NewPostID(id)
	post.Content.Type = models.ContentType(contentType)
	return &post, nil
}
