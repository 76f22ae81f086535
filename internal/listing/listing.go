// Package listing computes the public feed view: filtered, sorted,
// paginated posts with an optional hero spotlight. It is pure; callers
// fetch posts and render the result.
package listing

import (
	"sort"
	"strings"

	"folio/internal/models"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 6

// Result is the computed view for one feed page.
type Result struct {
	Hero       *models.Post   `json:"hero,omitempty"`
	Items      []*models.Post `json:"items"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	Query      string         `json:"query,omitempty"`
}

// List computes the feed page for the given posts, search query and 1-based
// page number. Posts are ordered by publication date descending with ties
// keeping input order. A non-empty query keeps only posts whose concatenated
// title, description and tags contain it case-insensitively. The hero is the
// top post, selected only on page 1 with no query, and is excluded from the
// paged items. Pages beyond the last yield empty items; callers are expected
// to validate the page number, the engine does not clamp it.
func List(posts []*models.Post, query string, page int) Result {
	query = strings.TrimSpace(query)

	sorted := make([]*models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublicationDate().After(sorted[j].PublicationDate())
	})

	filtered := sorted
	if query != "" {
		needle := strings.ToLower(query)
		matched := make([]*models.Post, 0, len(sorted))
		for _, p := range sorted {
			hay := strings.ToLower(p.Title + " " + p.Description + " " + strings.Join(p.Tags, " "))
			if strings.Contains(hay, needle) {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	res := Result{Page: page, Query: query}

	// Without a query the top post is reserved for the hero slot on every
	// page, so page boundaries stay stable; it is only rendered on page 1.
	rest := filtered
	if query == "" && len(filtered) > 0 {
		if page == 1 {
			res.Hero = filtered[0]
		}
		rest = filtered[1:]
	}

	res.TotalPages = totalPages(len(rest))

	start := (page - 1) * PageSize
	if start < 0 || start >= len(rest) {
		res.Items = []*models.Post{}
		return res
	}
	end := start + PageSize
	if end > len(rest) {
		end = len(rest)
	}
	res.Items = rest[start:end]
	return res
}

// ByTag returns the posts carrying the given tag, in input order.
func ByTag(posts []*models.Post, tag string) []*models.Post {
	out := make([]*models.Post, 0)
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// ParsePage interprets a page query parameter: absent or invalid values
// fall back to page 1.
func ParsePage(raw string) int {
	page := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 1
		}
		page = page*10 + int(r-'0')
		if page > 1<<20 {
			break
		}
	}
	if page < 1 {
		return 1
	}
	return page
}

func totalPages(n int) int {
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}
