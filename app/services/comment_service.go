package services

import (
	"context"
	"errors"

	"blogspot/app/models"
	"blogspot/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ListPostComments retrieves all comments for an existing post.
func (s *CommentService) ListPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, storageError("list comments", err)
	}
	return comments, nil
}

// CreateComment validates the text before checking that the post exists, then
// stores the comment and returns it as re-read from storage.
func (s *CommentService) CreateComment(ctx context.Context, postID int, in *models.CommentInput) (*models.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(ErrInvalidComment, err)
	}

	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	id, err := s.commentRepo.Insert(ctx, postID, in)
	if err != nil {
		return nil, storageError("insert comment", err)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("create comment", err)
	}
	return comment, nil
}

func (s *CommentService) requirePost(ctx context.Context, postID int) error {
	_, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return storageError("get post", err)
	}
	return nil
}
