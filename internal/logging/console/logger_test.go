package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/logging/console"
)

func TestLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		Now:      func() time.Time { return now },
		MinLevel: console.LevelDebug,
	})

	logger := logging.ContentLogger(provider)
	logger = logging.WithDocumentContext(logger, "post", "content/blog/broken.md", "broken")
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"request_id": "req-1234"})
	logger = logger.WithContext(ctx)

	logger.Warn("content.skip",
		"error", errors.New("missing field title"),
		"published_at", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z WARN content.skip content_kind=post content_path=content/blog/broken.md content_slug=broken error="missing field title" logger=folio.content module=folio.content published_at=2024-01-10T00:00:00Z request_id=req-1234`
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	logger := provider.GetLogger("folio.test")
	logger.Debug("dropped", "k", "v")
	logger.Info("kept", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "kept") {
		t.Fatalf("expected only the info entry, got %q", buf.String())
	}
}

func TestLoggerKeepsUnpairedArguments(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("folio.test").Info("odd", "count", 3, "dangling")

	line := buf.String()
	if !strings.Contains(line, "count=3") || !strings.Contains(line, "arg_2=dangling") {
		t.Fatalf("unexpected entry %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	level, err := console.ParseLevel("Warning")
	if err != nil || level != console.LevelWarn {
		t.Fatalf("ParseLevel(Warning) = %v, %v", level, err)
	}
	if level, _ := console.ParseLevel(""); level != console.LevelInfo {
		t.Fatalf("expected blank level to default to info, got %v", level)
	}
	if _, err := console.ParseLevel("verbose"); !errors.Is(err, console.ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}
