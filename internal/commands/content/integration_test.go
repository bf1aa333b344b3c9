package contentcmd

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/markdown"
)

func TestCheckDirectoryCommandThroughDispatcher(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/first.md":  {Data: []byte("---\ntitle: First\npubDate: 2024-01-01\n---\nbody\n")},
		"blog/second.md": {Data: []byte("---\ntitle: Second\npubDate: 2024-02-01\n---\nbody\n")},
		"blog/broken.md": {Data: []byte("---\npubDate: 2024-03-01\n---\nno title\n")},
	}
	repo := content.NewRepository(markdown.NewLoader(fsys, markdown.LoaderConfig{Dir: "blog"}), content.Posts())

	var report CheckReport
	handlers, err := RegisterContentCommands(nil, map[string]Checker{content.KindPost: repo}, nil,
		WithReporter(func(_ context.Context, r CheckReport) { report = r }))
	if err != nil {
		t.Fatalf("RegisterContentCommands: %v", err)
	}

	sub := dispatcher.SubscribeCommand(handlers.Check)
	t.Cleanup(sub.Unsubscribe)

	err = dispatcher.Dispatch(context.Background(), CheckDirectoryCommand{Kind: content.KindPost})
	if err == nil {
		t.Fatal("expected dispatch to fail for an invalid document")
	}
	if report.Loaded != 2 || len(report.Failures) != 1 || report.Failures[0].Slug != "broken" {
		t.Fatalf("unexpected report %+v", report)
	}
}

type flakyChecker struct {
	calls int
}

func (c *flakyChecker) Check(context.Context) (int, []*content.LoadError, error) {
	c.calls++
	if c.calls == 1 {
		return 0, nil, &content.ScanError{Dir: "blog", Err: fs.ErrPermission}
	}
	return 4, nil, nil
}

func TestCheckDirectoryCommandRetriesScanErrors(t *testing.T) {
	checker := &flakyChecker{}
	var reports []CheckReport
	handler := NewCheckDirectoryHandler(map[string]Checker{content.KindPost: checker}, nil,
		func(_ context.Context, r CheckReport) { reports = append(reports, r) })

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), CheckDirectoryCommand{Kind: content.KindPost}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if checker.calls != 2 {
		t.Fatalf("expected 2 scans (initial + retry), got %d", checker.calls)
	}
	if len(reports) != 1 || reports[0].Loaded != 4 {
		t.Fatalf("expected one report from the successful scan, got %+v", reports)
	}
}

func TestCheckDirectoryCommandGivesUpOnPersistentScanErrors(t *testing.T) {
	calls := 0
	checker := checkerFunc(func(context.Context) (int, []*content.LoadError, error) {
		calls++
		return 0, nil, &content.ScanError{Dir: "projects", Err: fs.ErrNotExist}
	})
	handler := NewCheckDirectoryHandler(map[string]Checker{content.KindProject: checker}, nil, nil)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), CheckDirectoryCommand{Kind: content.KindProject}); err == nil {
		t.Fatal("expected dispatch to fail once retries are exhausted")
	}
	if calls != 3 {
		t.Fatalf("expected 3 scans (initial + 2 retries), got %d", calls)
	}
}

type checkerFunc func(context.Context) (int, []*content.LoadError, error)

func (f checkerFunc) Check(ctx context.Context) (int, []*content.LoadError, error) {
	return f(ctx)
}
