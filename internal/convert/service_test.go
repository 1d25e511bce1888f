package convert

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	digestarchive "github.com/goliatone/go-digest/archive"
	"github.com/goliatone/go-digest/feed"
	archivesvc "github.com/goliatone/go-digest/internal/archive"
	"github.com/goliatone/go-digest/internal/markdown"
	"github.com/goliatone/go-digest/internal/render"
	"github.com/goliatone/go-digest/internal/validation"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{HardWraps: true})
	renderer, err := render.New(parser, render.Config{})
	if err != nil {
		t.Fatalf("render.New error = %v", err)
	}
	svc, err := NewService(renderer, opts...)
	if err != nil {
		t.Fatalf("NewService error = %v", err)
	}
	return svc
}

func newArchiveService(t *testing.T) *archivesvc.Service {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.NewCreateTable().Model((*digestarchive.Digest)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return archivesvc.NewService(archivesvc.NewBunDigestRepository(db))
}

func TestConvertRequest(t *testing.T) {
	svc := newTestService(t)

	body := []byte(`{"articles":[{"title":"Launch","summary":"**big** news","url":"https://mp.weixin.qq.com/s/x"}]}`)
	result, err := svc.ConvertRequest(context.Background(), body, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("ConvertRequest error = %v", err)
	}

	html := string(result.HTML)
	if !strings.Contains(html, "Launch") {
		t.Fatal("title missing from output")
	}
	if !strings.Contains(html, "查看原文") {
		t.Fatal("wechat link missing from output")
	}
	if result.Digest != nil {
		t.Fatal("digest must be nil without an archive")
	}
}

func TestConvertRequestValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.ConvertRequest(ctx, []byte(`{"articles":[]}`), interfaces.RenderOptions{}); !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("empty articles: expected ErrSchemaValidation, got %v", err)
	}
	if _, err := svc.ConvertRequest(ctx, []byte(`{"articles":[{"title":"x"}]}`), interfaces.RenderOptions{}); !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("missing fields: expected ErrSchemaValidation, got %v", err)
	}
	if _, err := svc.ConvertRequest(ctx, []byte(`{`), interfaces.RenderOptions{}); !errors.Is(err, feed.ErrFeedUnreadable) {
		t.Fatalf("bad JSON: expected ErrFeedUnreadable, got %v", err)
	}
}

func TestConvertFeedArchives(t *testing.T) {
	store := newArchiveService(t)
	svc := newTestService(t, WithArchive(store))
	ctx := context.Background()

	articles := feed.Feed{{Title: "Archived", Summary: "body"}}
	result, err := svc.ConvertFeed(ctx, articles, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("ConvertFeed error = %v", err)
	}
	if result.Digest == nil {
		t.Fatal("expected archived digest record")
	}

	fetched, err := store.Get(ctx, result.Digest.ID)
	if err != nil {
		t.Fatalf("archive Get error = %v", err)
	}
	if fetched.HTML != string(result.HTML) {
		t.Fatal("archived HTML must match rendered output")
	}
}

func TestConvertFeedValidatesArticles(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.ConvertFeed(context.Background(), feed.Feed{}, interfaces.RenderOptions{}); !errors.Is(err, feed.ErrFeedEmpty) {
		t.Fatalf("expected ErrFeedEmpty, got %v", err)
	}
	if _, err := svc.ConvertFeed(context.Background(), feed.Feed{{Summary: "no title"}}, interfaces.RenderOptions{}); !errors.Is(err, feed.ErrArticleInvalid) {
		t.Fatalf("expected ErrArticleInvalid, got %v", err)
	}
}

func TestConvertFile(t *testing.T) {
	svc := newTestService(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "date.txt")
	content := `[{"title":"From disk","summary":"- a\n- b","url":"https://example.com/p"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	result, err := svc.ConvertFile(context.Background(), path, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("ConvertFile error = %v", err)
	}
	if !strings.Contains(string(result.HTML), "From disk") {
		t.Fatal("file feed title missing from output")
	}
	if !strings.Contains(string(result.HTML), "[原文链接]: https://example.com/p") {
		t.Fatal("external link must render as plain text")
	}
}

func TestConvertFileMissing(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.ConvertFile(context.Background(), filepath.Join(t.TempDir(), "absent.json"), interfaces.RenderOptions{}); !errors.Is(err, feed.ErrFeedUnreadable) {
		t.Fatalf("expected ErrFeedUnreadable, got %v", err)
	}
}

func TestNewServiceRequiresRenderer(t *testing.T) {
	if _, err := NewService(nil); !errors.Is(err, feed.ErrRendererMissing) {
		t.Fatalf("expected ErrRendererMissing, got %v", err)
	}
}
