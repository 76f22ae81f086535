// Package seed provides helpers to create demo content for the blog
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"folio/internal/models"
	"folio/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var tagPool = []string{
	"IA", "Tecnologia", "Programação", "Carreira", "Produtividade",
	"Go", "Web", "Opinião",
}

// Factory builds demo posts and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildPost constructs a post without persisting it. The slug carries a
// short random suffix so repeated seeding never collides.
func (f *Factory) BuildPost(overrides ...func(*models.Post)) *models.Post {
	title := gofakeit.Sentence(5)

	tags := make([]string, 0, 2)
	for _, i := range f.r.Perm(len(tagPool))[:1+f.r.Intn(2)] {
		tags = append(tags, tagPool[i])
	}

	post := &models.Post{
		Slug:        fmt.Sprintf("%s-%s", slug.Normalize(title), uuid.New().String()[:8]),
		Title:       strings.TrimSuffix(title, "."),
		Description: gofakeit.Sentence(12),
		Content:     demoContent(),
		Tags:        tags,
		Status:      models.StatusPublished,
	}

	coverURL := fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID())
	post.CoverURL = &coverURL

	// realistic publication spread over the last 90 days
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	publishedAt := time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	post.PublishedAt = &publishedAt

	for _, override := range overrides {
		override(post)
	}
	return post
}

// demoContent produces a few headed sections so the article page has
// something to classify.
func demoContent() string {
	var b strings.Builder
	b.WriteString("# " + gofakeit.Sentence(4) + "\n\n")
	b.WriteString(gofakeit.Paragraph(1, 4, 12, " ") + "\n\n")
	b.WriteString("## " + gofakeit.Sentence(3) + "\n\n")
	b.WriteString(gofakeit.Paragraph(2, 4, 12, " "))
	return b.String()
}

// Run populates the database with demo posts: published articles plus a
// couple of drafts and one scheduled post.
func (f *Factory) Run(count int) error {
	if count <= 0 {
		count = 12
	}

	posts := make([]*models.Post, 0, count+3)
	for i := 0; i < count; i++ {
		posts = append(posts, f.BuildPost())
	}
	posts = append(posts, f.BuildPost(func(p *models.Post) {
		p.Status = models.StatusDraft
		p.PublishedAt = nil
	}))
	posts = append(posts, f.BuildPost(func(p *models.Post) {
		p.Status = models.StatusDraft
		p.PublishedAt = nil
	}))
	posts = append(posts, f.BuildPost(func(p *models.Post) {
		p.Status = models.StatusScheduled
		future := time.Now().Add(7 * 24 * time.Hour)
		p.PublishedAt = &future
	}))

	if err := f.db.Create(&posts).Error; err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	log.Printf("Seeded %d posts", len(posts))
	return nil
}
