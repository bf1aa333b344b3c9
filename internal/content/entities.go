package content

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-folio/internal/domain"
	"github.com/goliatone/go-folio/internal/identity"
	"github.com/goliatone/go-folio/internal/markdown"
)

const (
	KindPost    = "post"
	KindProject = "project"
)

// DefaultLanguage is assigned to projects that do not declare one.
const DefaultLanguage = "Unknown"

// Post is a blog article. The format carries a single date, so CreatedAt,
// UpdatedAt, and PublishedAt are always equal.
type Post struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Description string
	Category    *string
	CoverImage  *string
	Tags        []string
	Status      domain.Status
	Featured    bool
	// ViewCount is always zero; nothing is persisted between requests.
	ViewCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt time.Time
	BodyHTML    string
	Source      Source
}

// Project is a portfolio entry.
type Project struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	Description string
	URL         string
	Homepage    *string
	Language    string
	Stars       int
	Forks       int
	Topics      []string
	Status      domain.Status
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	BodyHTML    string
	Source      Source
}

// PostSchema lists the header keys of a post.
var PostSchema = markdown.Schema{
	Name: KindPost,
	Fields: []markdown.Field{
		{Key: "title", Type: markdown.FieldString, Required: true, NonEmpty: true},
		{Key: "pubDate", Type: markdown.FieldDate, Required: true},
		{Key: "description", Type: markdown.FieldString},
		{Key: "tags", Type: markdown.FieldStrings},
		{Key: "category", Type: markdown.FieldOptionalString},
		{Key: "coverImage", Type: markdown.FieldOptionalString},
		{Key: "status", Type: markdown.FieldString, Default: string(domain.StatusPublished)},
		{Key: "featured", Type: markdown.FieldBool},
	},
}

// ProjectSchema lists the header keys of a project.
var ProjectSchema = markdown.Schema{
	Name: KindProject,
	Fields: []markdown.Field{
		{Key: "name", Type: markdown.FieldString, Required: true, NonEmpty: true},
		{Key: "url", Type: markdown.FieldString, Required: true},
		{Key: "createdAt", Type: markdown.FieldDate, Required: true},
		{Key: "updatedAt", Type: markdown.FieldDate, Required: true},
		{Key: "description", Type: markdown.FieldString},
		{Key: "homepage", Type: markdown.FieldOptionalString},
		{Key: "language", Type: markdown.FieldString, Default: DefaultLanguage},
		{Key: "stars", Type: markdown.FieldInt},
		{Key: "forks", Type: markdown.FieldInt},
		{Key: "topics", Type: markdown.FieldStrings},
		{Key: "status", Type: markdown.FieldString, Default: string(domain.StatusActive)},
		{Key: "featured", Type: markdown.FieldBool},
	},
}

// NewPost assembles a Post from a loaded document.
func NewPost(doc *markdown.Document) *Post {
	h := doc.Header
	published := h.Date("pubDate")
	return &Post{
		ID:          identity.EntityUUID(KindPost, doc.Slug),
		Slug:        doc.Slug,
		Title:       h.String("title"),
		Description: backfillDescription(h.String("description"), doc.BodyHTML),
		Category:    h.OptionalString("category"),
		CoverImage:  h.OptionalString("coverImage"),
		Tags:        h.Strings("tags"),
		Status:      domain.ParseStatus(h.String("status"), domain.StatusPublished),
		Featured:    h.Bool("featured"),
		CreatedAt:   published,
		UpdatedAt:   published,
		PublishedAt: published,
		BodyHTML:    string(doc.BodyHTML),
		Source:      sourceOf(doc),
	}
}

// NewProject assembles a Project from a loaded document.
func NewProject(doc *markdown.Document) *Project {
	h := doc.Header
	language := h.String("language")
	if language == "" {
		language = DefaultLanguage
	}
	return &Project{
		ID:          identity.EntityUUID(KindProject, doc.Slug),
		Slug:        doc.Slug,
		Name:        h.String("name"),
		Description: backfillDescription(h.String("description"), doc.BodyHTML),
		URL:         h.String("url"),
		Homepage:    h.OptionalString("homepage"),
		Language:    language,
		Stars:       h.Int("stars"),
		Forks:       h.Int("forks"),
		Topics:      h.Strings("topics"),
		Status:      domain.ParseStatus(h.String("status"), domain.StatusActive),
		Featured:    h.Bool("featured"),
		CreatedAt:   h.Date("createdAt"),
		UpdatedAt:   h.Date("updatedAt"),
		BodyHTML:    string(doc.BodyHTML),
		Source:      sourceOf(doc),
	}
}

// Posts is the post kind, sorted by publication date.
func Posts() Kind[*Post] {
	return Kind[*Post]{
		Name:   KindPost,
		Schema: PostSchema,
		Build:  NewPost,
		Slug:   func(p *Post) string { return p.Slug },
		Date:   func(p *Post) time.Time { return p.PublishedAt },
		Status: func(p *Post) domain.Status { return p.Status },
		Labels: func(p *Post) []string {
			labels := make([]string, 0, len(p.Tags)+1)
			if p.Category != nil && *p.Category != "" {
				labels = append(labels, *p.Category)
			}
			return append(labels, p.Tags...)
		},
		Text: func(p *Post) []string {
			return []string{p.Title, p.Description, p.BodyHTML}
		},
	}
}

// Projects is the project kind, sorted by last update.
func Projects() Kind[*Project] {
	return Kind[*Project]{
		Name:   KindProject,
		Schema: ProjectSchema,
		Build:  NewProject,
		Slug:   func(p *Project) string { return p.Slug },
		Date:   func(p *Project) time.Time { return p.UpdatedAt },
		Status: func(p *Project) domain.Status { return p.Status },
		Labels: func(p *Project) []string {
			labels := append([]string{}, p.Topics...)
			if p.Language != "" && p.Language != DefaultLanguage {
				labels = append(labels, p.Language)
			}
			return labels
		},
		Text: func(p *Project) []string {
			return []string{p.Name, p.Description, p.BodyHTML}
		},
	}
}

func hexChecksum(sum []byte) string {
	if len(sum) == 0 {
		return ""
	}
	return hex.EncodeToString(sum)
}
