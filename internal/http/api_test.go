package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	digestarchive "github.com/goliatone/go-digest/archive"
	archivesvc "github.com/goliatone/go-digest/internal/archive"
	"github.com/goliatone/go-digest/internal/convert"
	"github.com/goliatone/go-digest/internal/markdown"
	"github.com/goliatone/go-digest/internal/render"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

func newTestAPI(t *testing.T, withArchive bool) (*API, *archivesvc.Service) {
	t.Helper()

	parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{HardWraps: true})
	renderer, err := render.New(parser, render.Config{},
		render.WithClock(func() time.Time {
			return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
		}),
	)
	if err != nil {
		t.Fatalf("render.New error = %v", err)
	}

	var archive *archivesvc.Service
	convertOpts := []convert.Option{}
	if withArchive {
		archive = newArchiveService(t)
		convertOpts = append(convertOpts, convert.WithArchive(archive))
	} else {
		archive = archivesvc.NewService(nil)
	}

	converter, err := convert.NewService(renderer, convertOpts...)
	if err != nil {
		t.Fatalf("convert.NewService error = %v", err)
	}

	urls := NewArchiveURLs(ArchiveURLsOptions{
		Manager: urlkit.NewRouteManager(&urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "api",
					BaseURL: "https://digest.example.com",
					Paths: map[string]string{
						"archive": "/archive",
						"digest":  "/archive/:id",
					},
				},
			},
		}),
	})

	api := NewAPI(APIOptions{
		Converter: converter,
		Archive:   archive,
		URLs:      urls,
		ArchiveEnabled: func() bool {
			return withArchive
		},
	})
	return api, archive
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

	if err := archivesvc.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return archivesvc.NewService(archivesvc.NewBunDigestRepository(db))
}

const convertBody = `{"articles":[{"title":"AI 周报","summary":"**大模型**动态。","url":"https://mp.weixin.qq.com/s/abc"}]}`

func TestAPI_ConvertRendersDigest(t *testing.T) {
	api, _ := newTestAPI(t, false)
	server := httptest.NewServer(api.Handler(""))
	defer server.Close()

	resp, err := http.Post(server.URL+"/convert", "application/json", strings.NewReader(convertBody))
	if err != nil {
		t.Fatalf("POST /convert error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		HTML string `json:"html"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(payload.HTML, "AI 周报") {
		t.Fatalf("expected rendered title in html")
	}
	if !strings.Contains(payload.HTML, "查看原文") {
		t.Fatalf("expected wechat link button in html")
	}
	if !strings.Contains(payload.HTML, "03月09日 · 新闻资讯") {
		t.Fatalf("expected dated banner in html")
	}
}

func TestAPI_ConvertRejectsMalformedJSON(t *testing.T) {
	api, _ := newTestAPI(t, false)
	server := httptest.NewServer(api.Handler(""))
	defer server.Close()

	resp, err := http.Post(server.URL+"/convert", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /convert error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAPI_ConvertRejectsInvalidPayload(t *testing.T) {
	api, _ := newTestAPI(t, false)
	server := httptest.NewServer(api.Handler(""))
	defer server.Close()

	for _, body := range []string{
		`{"articles":[]}`,
		`{"articles":[{"summary":"no title","url":""}]}`,
		`{}`,
	} {
		resp, err := http.Post(server.URL+"/convert", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST /convert error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422, got %d", body, resp.StatusCode)
		}
	}
}

func TestAPI_Healthz(t *testing.T) {
	api, _ := newTestAPI(t, false)
	server := httptest.NewServer(api.Handler(""))
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAPI_ArchiveUnavailableWhenDisabled(t *testing.T) {
	api, _ := newTestAPI(t, false)
	server := httptest.NewServer(api.Handler(""))
	defer server.Close()

	resp, err := http.Get(server.URL + "/archive")
	if err != nil {
		t.Fatalf("GET /archive error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestAPI_ArchiveRoundTrip(t *testing.T) {
	api, _ := newTestAPI(t, true)
	server := httptest.NewServer(api.Handler(""))
	defer server.Close()

	resp, err := http.Post(server.URL+"/convert", "application/json", strings.NewReader(convertBody))
	if err != nil {
		t.Fatalf("POST /convert error = %v", err)
	}
	var converted struct {
		HTML   string                 `json:"html"`
		Digest *digestarchive.Summary `json:"digest"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&converted); err != nil {
		t.Fatalf("decode convert response: %v", err)
	}
	resp.Body.Close()

	if converted.Digest == nil {
		t.Fatalf("expected digest metadata when archive is enabled")
	}
	if converted.Digest.URL != "https://digest.example.com/archive/"+converted.Digest.ID.String() {
		t.Fatalf("unexpected canonical url %q", converted.Digest.URL)
	}

	resp, err = http.Get(server.URL + "/archive")
	if err != nil {
		t.Fatalf("GET /archive error = %v", err)
	}
	var summaries []digestarchive.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode archive list: %v", err)
	}
	resp.Body.Close()

	if len(summaries) != 1 {
		t.Fatalf("expected 1 archived digest, got %d", len(summaries))
	}
	if summaries[0].ID != converted.Digest.ID {
		t.Fatalf("list id mismatch: %s vs %s", summaries[0].ID, converted.Digest.ID)
	}
	if summaries[0].URL == "" {
		t.Fatalf("expected canonical url on listing entries")
	}

	resp, err = http.Get(server.URL + "/archive/" + converted.Digest.ID.String())
	if err != nil {
		t.Fatalf("GET /archive/{id} error = %v", err)
	}
	var record digestarchive.Digest
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("decode archive record: %v", err)
	}
	resp.Body.Close()

	if record.HTML == "" {
		t.Fatalf("expected stored html on the full record")
	}
	if record.ArticleCount != 1 {
		t.Fatalf("expected article count 1, got %d", record.ArticleCount)
	}
}

func TestAPI_ArchiveGetUnknownID(t *testing.T) {
	api, _ := newTestAPI(t, true)
	server := httptest.NewServer(api.Handler(""))
	defer server.Close()

	resp, err := http.Get(server.URL + "/archive/" + uuid.NewString())
	if err != nil {
		t.Fatalf("GET /archive/{id} error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	badResp, err := http.Get(server.URL + "/archive/not-a-uuid")
	if err != nil {
		t.Fatalf("GET /archive/not-a-uuid error = %v", err)
	}
	defer badResp.Body.Close()

	if badResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", badResp.StatusCode)
	}
}
