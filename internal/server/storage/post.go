package storage

import (
	"context"

	"github.com/iudanet/gophblog/internal/models"
)

// PostStorage defines interface for blog posts persistence.
// Every operation is scoped to the owner: posts of other users are invisible.
type PostStorage interface {
	// CreatePost stores a new post of the user
	CreatePost(ctx context.Context, userID string, post *models.Post) error

	// ListPosts returns posts of the user, newest first
	ListPosts(ctx context.Context, userID string) ([]models.Post, error)

	// UpdatePostContent replaces the content of the post and returns the updated post
	// Returns ErrPostNotFound if the user has no such post
	UpdatePostContent(ctx context.Context, userID string, postID models.PostID, content models.PostContent) (*models.Post, error)

	// DeletePost deletes the post
	// Returns ErrPostNotFound if the user has no such post
	DeletePost(ctx context.Context, userID string, postID models.PostID) error
}
