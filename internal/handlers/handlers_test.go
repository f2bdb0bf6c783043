package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aaronzipp/nova-arcade/internal/catalog"
	"github.com/aaronzipp/nova-arcade/internal/game"
	"github.com/aaronzipp/nova-arcade/internal/models"
	"github.com/aaronzipp/nova-arcade/internal/store"
	"github.com/aaronzipp/nova-arcade/web"
)

type staticSource struct {
	games []catalog.Game
	err   error
	gate  chan struct{} // when set, Fetch waits for it to close
}

func (s staticSource) Fetch(ctx context.Context) ([]catalog.Game, error) {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.games, s.err
}

func testGames() []catalog.Game {
	return []catalog.Game{
		{ID: "1", Title: "Speed Run", Description: "Dash", Thumbnail: "https://img/1.png", IframeURL: "https://play.example/speed-run/", Category: catalog.CategoryAction, Featured: true},
		{ID: "2", Title: "Block Puzzle", Description: "Stack", Thumbnail: "https://img/2.png", IframeURL: "/local/block/", Category: catalog.CategoryPuzzle},
	}
}

type testServer struct {
	ctx    *Context
	srv    *httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T, src catalog.Source) *testServer {
	t.Helper()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	appCtx := &Context{
		Sessions:  store.NewSessionStore(),
		Templates: tmpl,
		Source:    src,
		Static:    web.Static(),
		PublicURL: "http://arcade.test/",
	}
	srv := httptest.NewServer(appCtx.Routes())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &testServer{ctx: appCtx, srv: srv, client: &http.Client{Jar: jar}}
}

func (ts *testServer) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ts.client.Get(ts.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (ts *testServer) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	resp, err := ts.client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

// session returns the session held by the test client's cookie
func (ts *testServer) session(t *testing.T) *models.Session {
	t.Helper()
	u, _ := url.Parse(ts.srv.URL)
	for _, c := range ts.client.Jar.Cookies(u) {
		if c.Name == game.SessionCookieName {
			if s, ok := ts.ctx.Sessions.Get(c.Value); ok {
				return s
			}
		}
	}
	t.Fatal("no session for client")
	return nil
}

// start opens the catalog and waits for its load to finish
func (ts *testServer) start(t *testing.T) *models.Session {
	t.Helper()
	ts.get(t, "/")
	s := ts.session(t)
	deadline := time.Now().Add(2 * time.Second)
	for s.Controller.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("catalog did not finish loading")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return s
}

func TestIndexCreatesSessionAndLoads(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})

	resp, body := ts.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "NovaArcade") {
		t.Fatal("expected page shell")
	}
	ts.start(t)

	_, body = ts.get(t, "/")
	if !strings.Contains(body, "Featured Games") || !strings.Contains(body, "Block Puzzle") {
		t.Fatalf("expected loaded catalog in:\n%s", body)
	}
	if ts.ctx.Sessions.Len() != 1 {
		t.Fatalf("expected the cookie to reuse one session, got %d", ts.ctx.Sessions.Len())
	}
}

func TestIndexLoadFailureShowsEmptyCatalog(t *testing.T) {
	ts := newTestServer(t, staticSource{err: errors.New("unreachable")})
	ts.start(t)

	resp, body := ts.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "No games found") {
		t.Fatalf("expected empty state in:\n%s", body)
	}
}

func TestSearchAndCategory(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})
	s := ts.start(t)

	resp, body := ts.post(t, "/search", url.Values{"q": {"BLOCK"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Block Puzzle") || strings.Contains(body, "Speed Run") {
		t.Fatalf("unexpected search results:\n%s", body)
	}
	if s.Controller.SearchQuery() != "BLOCK" {
		t.Fatalf("query not stored: %q", s.Controller.SearchQuery())
	}

	_, body = ts.post(t, "/category/Action", nil)
	if !strings.Contains(body, "No games found") {
		t.Fatalf("expected no results for block in Action:\n%s", body)
	}
	if s.Controller.SelectedCategory() != catalog.CategoryAction {
		t.Fatal("category not stored")
	}

	resp, _ = ts.post(t, "/category/Arcade", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown category: expected 400, got %d", resp.StatusCode)
	}
	if s.Controller.SelectedCategory() != catalog.CategoryAction {
		t.Fatal("unknown category changed state")
	}
}

func TestPlayCloseAndHome(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})
	s := ts.start(t)
	ts.post(t, "/search", url.Values{"q": {"puzzle"}})

	resp, _ := ts.post(t, "/play/2", nil)
	if resp.Header.Get("HX-Redirect") != "/" {
		t.Fatalf("expected HX-Redirect to /, got %q", resp.Header.Get("HX-Redirect"))
	}
	_, body := ts.get(t, "/")
	if !strings.Contains(body, "<iframe") || !strings.Contains(body, "/local/block/") {
		t.Fatalf("expected player page:\n%s", body)
	}
	if !strings.Contains(body, "Quit Game") {
		t.Fatal("expected quit action")
	}

	ts.post(t, "/close", nil)
	if s.Controller.View().Mode() != catalog.ModeBrowsing {
		t.Fatal("expected browsing after close")
	}
	if s.Controller.SearchQuery() != "puzzle" {
		t.Fatal("close should keep the search")
	}

	ts.post(t, "/play/1", nil)
	ts.post(t, "/home", nil)
	state := s.Controller.Snapshot()
	if state.View.Mode() != catalog.ModeBrowsing || state.Query != "" || state.Category != catalog.CategoryAll {
		t.Fatalf("expected reset state, got %+v", state)
	}

	resp, _ = ts.post(t, "/play/missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing game: expected 404, got %d", resp.StatusCode)
	}
}

func TestActionWithoutSessionGoesHome(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})

	resp, _ := ts.post(t, "/search", url.Values{"q": {"x"}})
	if resp.StatusCode != http.StatusOK || resp.Header.Get("HX-Redirect") != "/" {
		t.Fatalf("expected HX-Redirect home, got %d %q", resp.StatusCode, resp.Header.Get("HX-Redirect"))
	}
	if ts.ctx.Sessions.Len() != 0 {
		t.Fatal("actions should not create sessions")
	}
}

func TestSearchMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})
	resp, _ := ts.get(t, "/search")
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestSSEAfterLoad(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})
	ts.start(t)

	resp, body := ts.get(t, "/events")
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(body, "event: catalog-ready\n") || !strings.Contains(body, "data: ") {
		t.Fatalf("expected catalog-ready event:\n%s", body)
	}
	if !strings.Contains(body, "Speed Run") {
		t.Fatal("expected catalog in event data")
	}
}

func TestSSEDeliversWhenLoadFinishes(t *testing.T) {
	gate := make(chan struct{})
	ts := newTestServer(t, staticSource{games: testGames(), gate: gate})

	_, body := ts.get(t, "/")
	if !strings.Contains(body, `sse-connect="/events"`) {
		t.Fatalf("expected loading page with event stream:\n%s", body)
	}

	type result struct{ body string }
	done := make(chan result, 1)
	go func() {
		resp, err := ts.client.Get(ts.srv.URL + "/events")
		if err != nil {
			done <- result{}
			return
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		done <- result{body: string(b)}
	}()

	close(gate)

	select {
	case r := <-done:
		if !strings.Contains(r.body, "event: catalog-ready") || !strings.Contains(r.body, "Block Puzzle") {
			t.Fatalf("expected catalog-ready with games:\n%s", r.body)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("event stream never delivered the catalog")
	}
}

func TestSSEWithoutSession(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})
	_, body := ts.get(t, "/events")
	if !strings.Contains(body, "event: nav-redirect") {
		t.Fatalf("expected nav-redirect:\n%s", body)
	}
}

func TestQRCode(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})
	ts.start(t)

	for _, id := range []string{"1", "2"} {
		resp, body := ts.get(t, "/games/"+id+"/qr.png")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("game %s: expected 200, got %d", id, resp.StatusCode)
		}
		if resp.Header.Get("Content-Type") != "image/png" {
			t.Fatalf("game %s: unexpected content type %q", id, resp.Header.Get("Content-Type"))
		}
		if !bytes.HasPrefix([]byte(body), []byte("\x89PNG")) {
			t.Fatalf("game %s: body is not a PNG", id)
		}
	}

	resp, _ := ts.get(t, "/games/missing/qr.png")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing game: expected 404, got %d", resp.StatusCode)
	}
}

func TestGamesJSON(t *testing.T) {
	ts := newTestServer(t, staticSource{games: testGames()})

	resp, _ := ts.get(t, "/games.json")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("no file configured: expected 404, got %d", resp.StatusCode)
	}

	path := filepath.Join(t.TempDir(), "games.json")
	if err := os.WriteFile(path, []byte(`[{"id":"1","title":"Speed Run","category":"Action"}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ts.ctx.GamesFile = path

	resp, body := ts.get(t, "/games.json")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Speed Run") {
		t.Fatalf("expected games file, got %d:\n%s", resp.StatusCode, body)
	}
}

func TestRedirect(t *testing.T) {
	ts := newTestServer(t, staticSource{})
	tests := map[string]string{
		"/":               "/",
		"/x":              "/x",
		"//evil.example":  "/",
		"https://evil.io": "/",
		"":                "/",
	}
	for to, want := range tests {
		resp, _ := ts.get(t, "/redirect?to="+url.QueryEscape(to))
		if got := resp.Header.Get("HX-Location"); got != want {
			t.Fatalf("to=%q: HX-Location = %q, want %q", to, got, want)
		}
	}
}

func TestHealthAndStatic(t *testing.T) {
	ts := newTestServer(t, staticSource{})

	resp, body := ts.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Fatalf("healthz: %d %q", resp.StatusCode, body)
	}

	resp, _ = ts.get(t, "/static/style.css")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("static: expected 200, got %d", resp.StatusCode)
	}
}
