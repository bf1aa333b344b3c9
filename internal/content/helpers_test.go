package content_test

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

type captureSink struct {
	mu      sync.Mutex
	entries []logEntry
}

type captureLogger struct {
	sink   *captureSink
	fields map[string]any
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{sink: &captureSink{}}
}

func (l *captureLogger) record(level, msg string, args []any) {
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, fields)
	return &captureLogger{sink: l.sink, fields: merged}
}

func (l *captureLogger) WithContext(context.Context) interfaces.Logger {
	return l
}

func (l *captureLogger) warnings() []logEntry {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	var out []logEntry
	for _, entry := range l.sink.entries {
		if entry.level == "warn" {
			out = append(out, entry)
		}
	}
	return out
}

type scanRecord struct {
	kind            string
	loaded, skipped int
	err             error
}

type recordingObserver struct {
	mu    sync.Mutex
	scans []scanRecord
}

func (o *recordingObserver) ObserveScan(kind string, _ time.Duration, loaded, skipped int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scans = append(o.scans, scanRecord{kind: kind, loaded: loaded, skipped: skipped, err: err})
}

func postDoc(title, date string, extra ...string) string {
	var b strings.Builder
	b.WriteString("---\n")
	if title != "" {
		fmt.Fprintf(&b, "title: %s\n", title)
	}
	fmt.Fprintf(&b, "pubDate: %s\n", date)
	for _, line := range extra {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("---\n")
	fmt.Fprintf(&b, "Body of %s.\n", title)
	return b.String()
}

func corpus(dir string, files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[dir+"/"+name] = &fstest.MapFile{Data: []byte(data), ModTime: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	}
	return fsys
}

func newPostRepo(t *testing.T, files map[string]string, opts ...content.Option) *content.Repository[*content.Post] {
	t.Helper()
	loader := markdown.NewLoader(corpus("blog", files), markdown.LoaderConfig{Dir: "blog"})
	return content.NewRepository(loader, content.Posts(), opts...)
}

func newProjectRepo(t *testing.T, files map[string]string, opts ...content.Option) *content.Repository[*content.Project] {
	t.Helper()
	loader := markdown.NewLoader(corpus("projects", files), markdown.LoaderConfig{Dir: "projects"})
	return content.NewRepository(loader, content.Projects(), opts...)
}

func postSlugs(posts []*content.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}
