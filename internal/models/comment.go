package models

import (
	"time"
)

// Comment represents a reader comment attached to a blog.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Content     string    `gorm:"not null" json:"content"`
	BlogID      uint      `gorm:"not null;index" json:"blog_id"`
	Blog        Blog      `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
	CreatedByID uint      `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
