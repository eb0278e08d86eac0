package models

import (
	"time"
)

// BlogStatus is the moderation state of a blog post.
type BlogStatus string

const (
	StatusPending  BlogStatus = "pending"
	StatusApproved BlogStatus = "approved"
	StatusRejected BlogStatus = "rejected"
)

// DefaultRejectionReason is stored when an admin rejects without a reason.
const DefaultRejectionReason = "No reason provided"

// Blog represents an authored post moving through the moderation workflow.
type Blog struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"not null" json:"title"`
	Body            string     `gorm:"type:text;not null" json:"body"`
	CoverImageURL   string     `json:"cover_image_url"`
	CreatedByID     uint       `gorm:"not null;index" json:"created_by_id"`
	CreatedBy       User       `gorm:"foreignKey:CreatedByID" json:"created_by"`
	ViewCount       int        `gorm:"not null;default:0" json:"view_count"`
	Status          BlogStatus `gorm:"type:varchar(16);default:pending" json:"status"`
	ApprovedByID    *uint      `json:"approved_by_id,omitempty"`
	ApprovedBy      *User      `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	IsPublished     bool       `gorm:"not null;default:false" json:"is_published"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	// CommentsCount is not persisted; computed at query time.
	CommentsCount int `gorm:"->" json:"comments_count"`
}

// NormalizeStatus maps legacy rows without a moderation status to approved.
// Rows created before the moderation workflow existed have an empty status and
// were always publicly visible.
func (b *Blog) NormalizeStatus() {
	if b.Status == "" {
		b.Status = StatusApproved
	}
}

// ScheduledInFuture reports whether the blog has a publication time that has
// not yet passed.
func (b *Blog) ScheduledInFuture(now time.Time) bool {
	return b.ScheduledAt != nil && now.Before(*b.ScheduledAt)
}
