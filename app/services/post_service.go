package services

import (
	"context"
	"errors"

	"blogspot/app/models"
	"blogspot/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every post.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, storageError("list posts", err)
	}
	return posts, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, storageError("get post", err)
	}
	return post, nil
}

// CreatePost validates and stores a new post, then returns it as re-read from
// storage so that server-assigned fields are included.
func (s *PostService) CreatePost(ctx context.Context, in *models.PostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(ErrInvalidPost, err)
	}

	id, err := s.postRepo.Insert(ctx, in)
	if err != nil {
		return nil, storageError("insert post", err)
	}

	return s.reread(ctx, "create post", id)
}

// UpdatePost validates the input, checks that the post exists, applies the
// change and returns the post as re-read from storage.
func (s *PostService) UpdatePost(ctx context.Context, id int, in *models.PostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(ErrInvalidPost, err)
	}

	if _, err := s.GetPost(ctx, id); err != nil {
		return nil, err
	}

	count, err := s.postRepo.Update(ctx, id, in)
	if err != nil {
		return nil, storageError("update post", err)
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	return s.reread(ctx, "update post", id)
}

// DeletePost removes a post and returns it as it was just before deletion.
// Comments of the post are not removed.
func (s *PostService) DeletePost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return nil, storageError("delete post", err)
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// reread fetches a post that was just written. Its absence at this point is a
// storage failure, not a client error.
func (s *PostService) reread(ctx context.Context, op string, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(op, err)
	}
	return post, nil
}
