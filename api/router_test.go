package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/api/handlers"
	"github.com/yourusername/mediascraper-go/internal/app"
	"github.com/yourusername/mediascraper-go/internal/domain"
	"github.com/yourusername/mediascraper-go/internal/infrastructure"
)

const facebookPayload = `{
	"success": true,
	"message": "Media fetched",
	"data": {
		"platform": "facebook",
		"content": {"id": "9", "title": "Sunset", "views": 1500, "cover": "https://fb.cdn/cover.jpg"},
		"author": {"name": "Ada", "image": "https://fb.cdn/ada.jpg"},
		"media": [
			{"id": "hd", "address": "%s/media/hd.mp4", "is_video": true, "quality": "HD"}
		]
	}
}`

type testEnv struct {
	t       *testing.T
	router  http.Handler
	app     *app.App
	backend *httptest.Server
	media   *httptest.Server
	cookie  *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/media/hd.mp4" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "video/mp4")
		io.WriteString(w, "mp4-bytes")
	}))
	t.Cleanup(media.Close)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.ScrapeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		if !strings.Contains(req.URL, "facebook.com") {
			io.WriteString(w, `{"error": true, "message": "Unsupported link"}`)
			return
		}
		io.WriteString(w, strings.Replace(facebookPayload, "%s", media.URL, 1))
	}))
	t.Cleanup(backend.Close)

	config := domain.DefaultConfig()
	config.Backend.BaseURL = backend.URL
	config.Relay.BaseURL = "https://relay.test"
	config.History.DatabasePath = ":memory:"
	config.Logging.LogsDir = t.TempDir()

	repo, err := infrastructure.NewSQLiteCardRepository(config.History.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	log := zap.NewNop()
	application := app.New(config,
		infrastructure.NewHTTPScrapeClient(&config.Backend, log),
		infrastructure.NewHTTPMediaFetcher(media.Client()),
		repo, log, nil)

	return &testEnv{
		t:       t,
		router:  SetupRouter(application, log, nil),
		app:     application,
		backend: backend,
		media:   media,
	}
}

// do sends a request carrying the session cookie, keeping any new one
func (e *testEnv) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == handlers.SessionCookie {
			e.cookie = c
		}
	}
	return w
}

func (e *testEnv) page(target string) *goquery.Document {
	e.t.Helper()
	w := e.do(http.MethodGet, target, nil, "")
	require.Equal(e.t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(e.t, err)
	return doc
}

func (e *testEnv) submit(link string) {
	e.t.Helper()
	form := url.Values{"url": {link}}
	w := e.do(http.MethodPost, "/submit", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(e.t, http.StatusSeeOther, w.Code)
	assert.Equal(e.t, "/?section=save#save", w.Header().Get("Location"))
	e.app.Submitter.Wait()
}

func (e *testEnv) snapshot() domain.SessionSnapshot {
	e.t.Helper()
	require.NotNil(e.t, e.cookie)
	snap, err := e.app.Snapshot(e.cookie.Value)
	require.NoError(e.t, err)
	return snap
}

func TestHome_NewSessionOpensOnHome(t *testing.T) {
	env := newTestEnv(t)

	doc := env.page("/")

	require.NotNil(t, env.cookie)
	assert.Equal(t, 1, doc.Find("section.active").Length())
	assert.Equal(t, "home", doc.Find("section.active").AttrOr("id", ""))
	assert.Equal(t, "Privacy", strings.TrimSpace(doc.Find("#nav-label").Text()))
	assert.Equal(t, 1, doc.Find("#submit-form").Length())
}

func TestHome_DeepLink(t *testing.T) {
	env := newTestEnv(t)

	doc := env.page("/?section=about")
	assert.Equal(t, "about", doc.Find("section.active").AttrOr("id", ""))

	doc = env.page("/?section=nowhere")
	assert.Equal(t, "home", doc.Find("section.active").AttrOr("id", ""))
}

func TestHome_LoadWithoutSectionShowsDefault(t *testing.T) {
	env := newTestEnv(t)
	env.page("/")

	env.submit("https://www.facebook.com/watch?v=9")
	assert.Equal(t, "save", env.page("/?section=save").Find("section.active").AttrOr("id", ""))

	doc := env.page("/")
	assert.Equal(t, "home", doc.Find("section.active").AttrOr("id", ""))
	assert.Equal(t, "home", env.snapshot().ActiveSection)
	// the board is still there once the visitor navigates back
	assert.Len(t, env.snapshot().Cards, 3)
}

func TestHome_CookielessVisitsStoreNoState(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 200; i++ {
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?section=about", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Zero(t, env.app.Sessions.Len())

	w := env.do(http.MethodGet, "/api/v1/sessions/"+app.NewSessionID(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, env.app.Sessions.Len())
}

func TestSubmit_RendersCardsOnResultsSection(t *testing.T) {
	env := newTestEnv(t)
	env.page("/")

	env.submit("https://www.facebook.com/watch?v=9")
	doc := env.page("/?section=save")

	assert.Equal(t, "save", doc.Find("section.active").AttrOr("id", ""))
	assert.Equal(t, "Media fetched", strings.TrimSpace(doc.Find("#status").Text()))
	assert.True(t, doc.Find("#status").HasClass("success"))
	assert.False(t, doc.Find("#loader").HasClass("visible"))

	cards := doc.Find("#board article.card")
	require.Equal(t, 3, cards.Length())
	// newest first: media, author, post
	assert.Equal(t, "hd", cards.Eq(0).Find(".card-title").Text())
	assert.Equal(t, "Author", cards.Eq(1).Find(".card-title").Text())
	assert.Equal(t, "Post", cards.Eq(2).Find(".card-title").Text())

	video := cards.Eq(0).Find("video")
	require.Equal(t, 1, video.Length())
	assert.Equal(t, "https://relay.test/?url="+url.QueryEscape(env.media.URL+"/media/hd.mp4"), video.AttrOr("src", ""))
	assert.Equal(t, "no-referrer", video.AttrOr("referrerpolicy", ""))
	_, hasControls := video.Attr("controls")
	assert.True(t, hasControls)

	assert.Equal(t, "/static/facebook.svg", cards.Eq(1).Find("img").AttrOr("src", ""))

	post := cards.Eq(2)
	assert.Equal(t, "1.5k", post.Find(".row").Eq(1).Find(".value").Text())
	flagged := post.Find(`a.key[href^="/download"]`)
	require.Equal(t, 1, flagged.Length())
	assert.Equal(t, "title", flagged.Text())
	assert.Equal(t, "/download?url="+url.QueryEscape("https://fb.cdn/cover.jpg"), flagged.AttrOr("href", ""))

	// only the first row of a card is a link
	assert.Equal(t, 0, doc.Find(`a.key:not([href^="/download"])`).Length())
	assert.Equal(t, 2, doc.Find(`a.key[href^="/download"]`).Length())
}

func TestSubmit_BackendErrorTurnsStatusRed(t *testing.T) {
	env := newTestEnv(t)
	env.page("/")

	env.submit("https://example.com/post")
	doc := env.page("/?section=save")

	assert.Equal(t, "Unsupported link", strings.TrimSpace(doc.Find("#status").Text()))
	assert.True(t, doc.Find("#status").HasClass("error"))
	assert.Equal(t, 0, doc.Find("article.card").Length())
}

func TestSubmit_CardsAccumulate(t *testing.T) {
	env := newTestEnv(t)
	env.page("/")

	env.submit("https://www.facebook.com/watch?v=9")
	env.submit("https://www.facebook.com/watch?v=9")

	assert.Len(t, env.snapshot().Cards, 6)
}

func TestDownload_StreamsAttachment(t *testing.T) {
	env := newTestEnv(t)
	env.page("/")
	env.submit("https://www.facebook.com/watch?v=9")

	w := env.do(http.MethodGet, "/download?url="+url.QueryEscape(env.media.URL+"/media/hd.mp4"), nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mp4-bytes", w.Body.String())
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=hd.mp4`, w.Header().Get("Content-Disposition"))

	snap := env.snapshot()
	assert.Equal(t, domain.StatusDownloading, snap.StatusText)
	assert.False(t, snap.Loading)
}

func TestDownload_NotFoundStillSaysDownloading(t *testing.T) {
	env := newTestEnv(t)
	env.page("/")
	target := env.media.URL + "/gone.jpg"
	require.NoError(t, env.app.Cards.Insert(&domain.Card{
		SessionID: env.cookie.Value,
		Title:     "gone",
		Rows:      []domain.Row{{Key: "id", Value: "gone", DownloadURL: target}},
	}))

	w := env.do(http.MethodGet, "/download?url="+url.QueryEscape(target), nil, "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	snap := env.snapshot()
	assert.Equal(t, domain.StatusDownloading, snap.StatusText)
	assert.False(t, snap.Loading)
}

func TestDownload_RefusesTargetNotOnBoard(t *testing.T) {
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "internal-secret")
	}))
	defer internal.Close()

	env := newTestEnv(t)
	env.page("/")
	env.submit("https://www.facebook.com/watch?v=9")
	before := env.snapshot()

	w := env.do(http.MethodGet, "/download?url="+url.QueryEscape(internal.URL+"/admin"), nil, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "internal-secret")
	after := env.snapshot()
	assert.Equal(t, before.StatusText, after.StatusText)
	assert.Equal(t, before.Loading, after.Loading)

	// a link rendered for one session is not served to another
	stranger := httptest.NewRequest(http.MethodGet, "/download?url="+url.QueryEscape(env.media.URL+"/media/hd.mp4"), nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, stranger)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNavigation_DoesNotTouchStatus(t *testing.T) {
	env := newTestEnv(t)
	env.page("/")

	env.page("/?section=privacy")

	snap := env.snapshot()
	assert.Empty(t, snap.StatusText)
	assert.False(t, snap.Loading)
}

func TestDownload_MissingURL(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/download", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_SubmitAndWait(t *testing.T) {
	env := newTestEnv(t)

	sessionID := app.NewSessionID()
	body := `{"url": "https://www.facebook.com/watch?v=9", "session_id": "` + sessionID + `"}`
	w := env.do(http.MethodPost, "/api/v1/submit?wait=true", strings.NewReader(body), "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	var snap domain.SessionSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, sessionID, snap.SessionID)
	assert.Equal(t, "save", snap.ActiveSection)
	assert.Equal(t, domain.ColorSuccess, snap.StatusColor)
	assert.Len(t, snap.Cards, 3)

	w = env.do(http.MethodGet, "/api/v1/sessions/"+sessionID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Cards, 3)
}

func TestAPI_SubmitValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/submit", strings.NewReader(`{}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/v1/submit", strings.NewReader(`{"url": "x", "session_id": "nope"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/v1/sessions/nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var health handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)

	w = env.do(http.MethodGet, "/ready", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogs_Categories(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/logs/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "submit")

	w = env.do(http.MethodGet, "/api/v1/logs/bogus", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/v1/logs/submit", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaticPlaceholder(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/static/facebook.svg", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
