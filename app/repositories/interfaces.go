package repositories

import (
	"context"
	"errors"

	"blogspot/app/models"
)

// ErrNotFound reports that no record exists for the requested id.
var ErrNotFound = errors.New("record not found")

// PostRepository defines the interface for post data access.
//
// Insert returns the id assigned to the new post. Update and Delete return the
// number of records they touched, zero when the post does not exist.
type PostRepository interface {
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	Insert(ctx context.Context, in *models.PostInput) (int, error)
	Update(ctx context.Context, id int, in *models.PostInput) (int, error)
	Delete(ctx context.Context, id int) (int, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	Insert(ctx context.Context, postID int, in *models.CommentInput) (int, error)
}
