package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"problemas/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepo struct {
	db *gorm.DB
}

func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postRepo) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author.Role").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	return &post, nil
}

func (r *postRepo) ListNewestFirst(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("date_posted desc").
		Order("id desc").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update writes the editable fields only; owner and date_posted never change.
func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(&models.Post{ID: post.ID}).
		Select("title", "content", "contact_info", "updated_at").
		Updates(models.Post{
			Title:       post.Title,
			Content:     post.Content,
			ContactInfo: post.ContactInfo,
			UpdatedAt:   time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("update post %d: %w", post.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrPostNotFound
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete post %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrPostNotFound
	}
	return nil
}

func (r *postRepo) DeleteByOwner(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Post{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete posts of user %d: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *postRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func (r *postRepo) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count posts of user %d: %w", userID, err)
	}
	return count, nil
}
