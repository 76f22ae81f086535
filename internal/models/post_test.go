package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublicationDate(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	published := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	p := &Post{CreatedAt: created}
	assert.Equal(t, created, p.PublicationDate())

	p.PublishedAt = &published
	assert.Equal(t, published, p.PublicationDate())
}

func TestVisibleAt(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		post    Post
		visible bool
	}{
		{"draft", Post{Status: StatusDraft}, false},
		{"published", Post{Status: StatusPublished, PublishedAt: &past}, true},
		{"published without date", Post{Status: StatusPublished}, true},
		{"scheduled due", Post{Status: StatusScheduled, PublishedAt: &past}, true},
		{"scheduled future", Post{Status: StatusScheduled, PublishedAt: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, tt.post.VisibleAt(now))
		})
	}
}

func TestHasTag(t *testing.T) {
	p := &Post{Tags: []string{"IA", "Tecnologia"}}
	assert.True(t, p.HasTag("IA"))
	assert.True(t, p.HasTag("ia"))
	assert.True(t, p.HasTag("TECNOLOGIA"))
	assert.False(t, p.HasTag("Go"))
	assert.False(t, (&Post{}).HasTag("IA"))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"Go", "Web"}, ParseTags("Go, Web"))
	assert.Equal(t, []string{"Go"}, ParseTags("  Go ,, "))
	assert.Empty(t, ParseTags(""))
	assert.Empty(t, ParseTags(" , , "))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusDraft))
	assert.True(t, ValidStatus(StatusPublished))
	assert.True(t, ValidStatus(StatusScheduled))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}
