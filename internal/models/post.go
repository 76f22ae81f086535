// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// Post statuses. Status governs public visibility and the meaning of PublishedAt.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// ValidStatus reports whether s is one of the known post statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}

// Post represents a blog article. Slug is the public lookup key and is
// unique across all posts. PublishedAt is nil exactly when Status is draft.
// Deletes are hard deletes; there is no tombstone column.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Tags        []string   `gorm:"serializer:json;type:text" json:"tags"`
	CoverURL    *string    `json:"cover_url"`
	Status      string     `gorm:"not null;default:draft;index" json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PublicationDate returns the date used for public ordering:
// published_at when present, created_at otherwise.
func (p *Post) PublicationDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// VisibleAt reports whether the post should appear on the public surface
// at the given instant. Drafts are never visible; scheduled posts become
// visible once their publication time has passed.
func (p *Post) VisibleAt(now time.Time) bool {
	switch p.Status {
	case StatusPublished:
		return true
	case StatusScheduled:
		return p.PublishedAt != nil && !p.PublishedAt.After(now)
	}
	return false
}

// HasTag reports whether the post carries the given tag, case-insensitively.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ParseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty entries. Insertion order is preserved for display.
func ParseTags(csv string) []string {
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
