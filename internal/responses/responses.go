// Package responses maps content entities to the JSON shapes served by the
// HTTP API. Identity is the slug string, dates are RFC 3339 timestamps,
// flags are real booleans, and list fields are never null.
package responses

import (
	"time"

	"github.com/goliatone/go-folio/internal/content"
)

// PostResponse is the wire form of a blog post.
type PostResponse struct {
	ID          string   `json:"id"`
	UUID        string   `json:"uuid"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	CoverImage  *string  `json:"cover_image"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	ViewCount   int      `json:"view_count"`
	IsFeatured  bool     `json:"is_featured"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	PublishedAt *string  `json:"published_at"`
}

// ProjectResponse is the wire form of a project.
type ProjectResponse struct {
	ID              string   `json:"id"`
	UUID            string   `json:"uuid"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	Content         string   `json:"content"`
	HTMLURL         string   `json:"html_url"`
	Homepage        *string  `json:"homepage"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Topics          []string `json:"topics"`
	Status          string   `json:"status"`
	IsFeatured      bool     `json:"is_featured"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// TermResponse is the wire form of an aggregated category or tag.
type TermResponse struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Post maps a post. A nil post maps to the zero response.
func Post(p *content.Post) PostResponse {
	if p == nil {
		return PostResponse{Tags: []string{}}
	}
	return PostResponse{
		ID:          p.Slug,
		UUID:        p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Content:     p.BodyHTML,
		Excerpt:     p.Description,
		CoverImage:  cloneString(p.CoverImage),
		Category:    cloneString(p.Category),
		Tags:        nonNil(p.Tags),
		Status:      p.Status.String(),
		ViewCount:   p.ViewCount,
		IsFeatured:  p.Featured,
		CreatedAt:   timestamp(p.CreatedAt),
		UpdatedAt:   timestamp(p.UpdatedAt),
		PublishedAt: optionalTimestamp(p.PublishedAt),
	}
}

// Posts maps a listing; the result is never nil.
func Posts(posts []*content.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, Post(p))
	}
	return out
}

// Project maps a project. A nil project maps to the zero response.
func Project(p *content.Project) ProjectResponse {
	if p == nil {
		return ProjectResponse{Topics: []string{}}
	}
	return ProjectResponse{
		ID:              p.Slug,
		UUID:            p.ID.String(),
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Content:         p.BodyHTML,
		HTMLURL:         p.URL,
		Homepage:        cloneString(p.Homepage),
		Language:        p.Language,
		StargazersCount: p.Stars,
		ForksCount:      p.Forks,
		Topics:          nonNil(p.Topics),
		Status:          p.Status.String(),
		IsFeatured:      p.Featured,
		CreatedAt:       timestamp(p.CreatedAt),
		UpdatedAt:       timestamp(p.UpdatedAt),
	}
}

// Projects maps a listing; the result is never nil.
func Projects(projects []*content.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, Project(p))
	}
	return out
}

// Terms maps aggregated terms; the result is never nil.
func Terms(terms []content.Term) []TermResponse {
	out := make([]TermResponse, 0, len(terms))
	for _, term := range terms {
		out = append(out, TermResponse{Name: term.Name, Slug: term.Slug, Count: term.Count})
	}
	return out
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optionalTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	value := timestamp(t)
	return &value
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
