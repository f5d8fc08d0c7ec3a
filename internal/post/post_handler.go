package post

import (
	"github.com/Nir-Bhay/LinkedIn-clone/internal/svc"

	"gorm.io/gorm"
)

type PostHandler struct {
	svc *svc.ServiceContext
}

func NewPostHandler(svc *svc.ServiceContext) *PostHandler {
	return &PostHandler{svc: svc}
}

// WithEngagement applies the preloads shared by every post read, newest
// first with id breaking ties in insertion order.
func WithEngagement(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", func(db *gorm.DB) *gorm.DB { return db.Select("id, name, email") }).
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Select("id") }).
		Preload("Shares", func(db *gorm.DB) *gorm.DB { return db.Select("id") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Preload("Comments.Author", func(db *gorm.DB) *gorm.DB { return db.Select("id, name, profile_picture, job_title") }).
		Order("created_at DESC, id DESC")
}
