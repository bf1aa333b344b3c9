package folio_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	folio "github.com/goliatone/go-folio"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"content/blog/hello.md": {Data: []byte("---\ntitle: Hello\npubDate: 2024-05-01\ntags: [go]\n---\n# Hello\n")},
		"content/blog/older.md": {Data: []byte("---\ntitle: Older\npubDate: 2023-05-01\n---\nolder\n")},
		"content/projects/folio.md": {Data: []byte("---\nname: folio\nurl: https://example.com/folio\ncreatedAt: 2024-01-01\nupdatedAt: 2024-06-01\n---\nreadme\n")},
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := folio.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if _, err := folio.New(cfg); !errors.Is(err, folio.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestModuleServesRepositories(t *testing.T) {
	var logs bytes.Buffer
	module, err := folio.New(folio.DefaultConfig(), folio.WithFS(testFS()), folio.WithLogWriter(&logs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	posts, err := module.Posts().List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "hello" {
		t.Fatalf("unexpected posts %+v", posts)
	}

	if _, err := module.Projects().Get(context.Background(), "missing"); !folio.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/folio", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["name"] != "folio" || body["language"] != "Unknown" {
		t.Fatalf("unexpected project %+v", body)
	}
}

func TestModuleCheckReportsBrokenDocuments(t *testing.T) {
	fsys := testFS()
	fsys["content/blog/broken.md"] = &fstest.MapFile{Data: []byte("---\npubDate: 2024-01-01\n---\n")}

	var reports []folio.CheckReport
	module, err := folio.New(folio.DefaultConfig(),
		folio.WithFS(fsys),
		folio.WithLogWriter(&bytes.Buffer{}),
		folio.WithCheckReporter(func(_ context.Context, r folio.CheckReport) { reports = append(reports, r) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := module.Check(context.Background(), "project"); err != nil {
		t.Fatalf("project check: %v", err)
	}
	if err := module.Check(context.Background(), "post"); err == nil {
		t.Fatal("expected post check to fail")
	}
	if len(reports) != 2 || reports[1].Loaded != 2 || len(reports[1].Failures) != 1 {
		t.Fatalf("unexpected reports %+v", reports)
	}
}

func TestModuleSkipsDisabledKinds(t *testing.T) {
	cfg := folio.DefaultConfig()
	cfg.Features.Projects = false
	cfg.Features.Metrics = false
	module, err := folio.New(cfg, folio.WithFS(testFS()), folio.WithLogWriter(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if module.Projects() != nil || module.Metrics() != nil {
		t.Fatal("expected projects and metrics to be disabled")
	}

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for disabled kind, got %d", rec.Code)
	}
}

func TestModuleLogsSkippedDocuments(t *testing.T) {
	fsys := testFS()
	fsys["content/blog/broken.md"] = &fstest.MapFile{Data: []byte("---\npubDate: 2024-01-01\n---\n")}
	var logs bytes.Buffer
	module, err := folio.New(folio.DefaultConfig(), folio.WithFS(fsys), folio.WithLogWriter(&logs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := module.Posts().All(context.Background()); err != nil {
		t.Fatalf("All: %v", err)
	}
	if !strings.Contains(logs.String(), "content_slug=broken") {
		t.Fatalf("expected skip warning in logs, got %q", logs.String())
	}
}
