package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogspot/app/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the posts and comments tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

type gormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository returns a PostRepository backed by a SQL database.
func NewGormPostRepository(db *gorm.DB) PostRepository { return &gormPostRepository{db: db} }

func (r *gormPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.db.WithContext(ctx).Order("id").Find(&posts).Error
	return posts, err
}

func (r *gormPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *gormPostRepository) Insert(ctx context.Context, in *models.PostInput) (int, error) {
	post := models.Post{Title: in.Title, Contents: in.Contents}
	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return 0, err
	}
	return post.ID, nil
}

func (r *gormPostRepository) Update(ctx context.Context, id int, in *models.PostInput) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":      in.Title,
			"contents":   in.Contents,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

// Delete removes the post row only; comment rows keep their post_id.
func (r *gormPostRepository) Delete(ctx context.Context, id int) (int, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

type gormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository returns a CommentRepository backed by a SQL database.
func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id").Find(&comments).Error
	return comments, err
}

func (r *gormCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *gormCommentRepository) Insert(ctx context.Context, postID int, in *models.CommentInput) (int, error) {
	comment := models.Comment{PostID: postID, Text: in.Text}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return 0, err
	}
	return comment.ID, nil
}
