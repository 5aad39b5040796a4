package repository

import (
	"errors"

	"community-backend/internal/post/domain"

	"gorm.io/gorm"
)

// PostRepository exposes the read paths notification composition needs.
type PostRepository interface {
	FindByID(id string) (*domain.Post, error)
	CountLikes(postID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db: db,
	}
}

func (r *postRepository) FindByID(id string) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) CountLikes(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
