package content_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/domain"
	"github.com/goliatone/go-folio/internal/identity"
)

const projectDoc = `---
name: go-folio
url: https://github.com/example/go-folio
createdAt: 2023-06-01
updatedAt: 2024-02-10
homepage: https://folio.example.com
language: Go
stars: 42
forks: 7
topics:
  - cms
  - markdown
featured: true
---
A flat-file content repository.
`

const minimalProjectDoc = `---
name: tiny
url: https://example.com/tiny
createdAt: 2022-01-01
updatedAt: 2022-01-02
---
Tiny.
`

func TestProjectFieldsAndDefaults(t *testing.T) {
	repo := newProjectRepo(t, map[string]string{
		"go-folio.md": projectDoc,
		"tiny.md":     minimalProjectDoc,
	})
	ctx := context.Background()

	project, err := repo.Get(ctx, "go-folio")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if project.Name != "go-folio" || project.Language != "Go" || project.Stars != 42 || project.Forks != 7 {
		t.Fatalf("unexpected project %+v", project)
	}
	if project.Homepage == nil || *project.Homepage != "https://folio.example.com" {
		t.Fatalf("unexpected homepage %v", project.Homepage)
	}
	if !project.Featured || project.Status != domain.StatusActive {
		t.Fatalf("unexpected flags featured=%v status=%q", project.Featured, project.Status)
	}
	if got := strings.Join(project.Topics, ","); got != "cms,markdown" {
		t.Fatalf("unexpected topics %q", got)
	}
	if project.UpdatedAt.Format("2006-01-02") != "2024-02-10" || project.CreatedAt.Format("2006-01-02") != "2023-06-01" {
		t.Fatalf("unexpected dates %v %v", project.CreatedAt, project.UpdatedAt)
	}
	if project.ID != identity.EntityUUID(content.KindProject, "go-folio") {
		t.Fatalf("expected deterministic id, got %s", project.ID)
	}
	if project.Source.Path != "projects/go-folio.md" || len(project.Source.Checksum) != 64 {
		t.Fatalf("unexpected source %+v", project.Source)
	}

	tiny, err := repo.Get(ctx, "tiny")
	if err != nil {
		t.Fatalf("Get tiny: %v", err)
	}
	if tiny.Language != content.DefaultLanguage || tiny.Homepage != nil || tiny.Stars != 0 || tiny.Featured {
		t.Fatalf("expected defaults, got %+v", tiny)
	}
	if tiny.Topics == nil || len(tiny.Topics) != 0 {
		t.Fatalf("expected empty topics, got %#v", tiny.Topics)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 || all[0].Slug != "go-folio" {
		t.Fatalf("expected projects sorted by updatedAt, got %d items", len(all))
	}
}

func TestProjectRequiresDates(t *testing.T) {
	repo := newProjectRepo(t, map[string]string{
		"nodate.md": "---\nname: x\nurl: y\ncreatedAt: 2024-01-01\n---\nbody",
	})
	_, err := repo.Get(context.Background(), "nodate")
	if !content.IsLoadError(err) || !strings.Contains(err.Error(), "updatedAt") {
		t.Fatalf("expected missing updatedAt error, got %v", err)
	}
}

func TestPostCollapsesDatesAndDefaults(t *testing.T) {
	repo := newPostRepo(t, map[string]string{
		"hello.md": postDoc("Hello", "2024-01-10", "tags: []"),
	})

	post, err := repo.Get(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !post.CreatedAt.Equal(post.PublishedAt) || !post.UpdatedAt.Equal(post.PublishedAt) {
		t.Fatalf("expected collapsed dates, got %v %v %v", post.CreatedAt, post.UpdatedAt, post.PublishedAt)
	}
	if post.Tags == nil || len(post.Tags) != 0 {
		t.Fatalf("expected empty tags, got %#v", post.Tags)
	}
	if post.Status != domain.StatusPublished || post.ViewCount != 0 || post.Category != nil || post.CoverImage != nil {
		t.Fatalf("unexpected defaults %+v", post)
	}
	if !strings.Contains(post.BodyHTML, "<p>Body of Hello.</p>") {
		t.Fatalf("unexpected body %q", post.BodyHTML)
	}
	if post.Description != post.BodyHTML {
		t.Fatalf("expected short body to be used as description, got %q", post.Description)
	}
}

func TestDescriptionBackfillTruncatesRenderedBody(t *testing.T) {
	body := strings.Repeat("é", 300)
	repo := newPostRepo(t, map[string]string{
		"long.md":      "---\ntitle: Long\npubDate: 2024-01-01\n---\n" + body + "\n",
		"described.md": "---\ntitle: Described\npubDate: 2024-01-01\ndescription: Kept as written\n---\n" + body + "\n",
	})
	ctx := context.Background()

	long, err := repo.Get(ctx, "long")
	if err != nil {
		t.Fatalf("Get long: %v", err)
	}
	if n := utf8.RuneCountInString(long.Description); n != content.DescriptionLength {
		t.Fatalf("expected %d characters, got %d", content.DescriptionLength, n)
	}
	if !strings.HasPrefix(long.Description, "<p>") {
		t.Fatalf("expected description cut from rendered HTML, got %q", long.Description[:10])
	}

	described, err := repo.Get(ctx, "described")
	if err != nil {
		t.Fatalf("Get described: %v", err)
	}
	if described.Description != "Kept as written" {
		t.Fatalf("unexpected description %q", described.Description)
	}
}
