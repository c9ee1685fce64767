package admin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goalinstitute/admin-console/internal/platform/assets/cdnupload"
	"github.com/goalinstitute/admin-console/internal/platform/requestctx"
	"github.com/goalinstitute/admin-console/internal/services/admin/apiclient"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
	"github.com/goalinstitute/admin-console/internal/services/admin/static"
)

const (
	testPassword = "secret-pass"
	testEmail    = "admin@goalinstitute.com"
)

var testSecret = []byte("test-session-secret")

// testClock is a settable clock shared by the verifier and handler.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func signTestToken(t *testing.T, profile session.Profile, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":    profile.ID,
		"email": profile.Email,
		"name":  profile.Name,
		"role":  string(profile.Role),
		"iat":   exp.Add(-time.Hour).Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// fakeBackend serves submissions from memory and checks the bearer token on
// every data call.
type fakeBackend struct {
	t     *testing.T
	clock *testClock

	mu          sync.Mutex
	profile     session.Profile
	validToken  string
	stats       apiclient.Stats
	activity    []apiclient.Activity
	submissions map[string][]apiclient.Submission
	listQueries []apiclient.PageQuery
	deleted     []string
	failDelete  bool
}

func newFakeBackend(t *testing.T, clock *testClock) *fakeBackend {
	return &fakeBackend{
		t:       t,
		clock:   clock,
		profile: session.Profile{ID: "u1", Email: testEmail, Name: "Asha Admin", Role: session.RoleAdmin},
		stats:   apiclient.Stats{"admissions": 12, "contacts": 45, "answerKeys": 3, "newsletter_signups": 1500},
		activity: []apiclient.Activity{
			{ID: "a1", Type: "admission", Name: "Ravi Kumar", Email: "ravi@example.com", Time: "2026-02-28T10:00:00Z", Status: "new"},
		},
		submissions: map[string][]apiclient.Submission{"contacts": contactRows(45)},
	}
}

func contactRows(n int) []apiclient.Submission {
	rows := make([]apiclient.Submission, 0, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Student %02d", i)
		if i == 7 {
			name = "Ravi Sharma"
		}
		rows = append(rows, apiclient.Submission{
			"_id":       fmt.Sprintf("c%d", i),
			"name":      name,
			"email":     fmt.Sprintf("student%d@example.com", i),
			"subject":   "Batch timings",
			"message":   "When does the next batch start?",
			"createdAt": "2026-02-20T09:30:00Z",
			"source":    "website",
		})
	}
	return rows
}

func (f *fakeBackend) setProfile(p session.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = p
}

// revoke makes the backend reject the current token.
func (f *fakeBackend) revoke() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validToken = "revoked"
}

func (f *fakeBackend) Login(_ context.Context, email, password string) (session.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if email != testEmail || password != testPassword {
		return session.LoginResponse{Message: "Invalid credentials"}, nil
	}
	profile := f.profile
	f.validToken = signTestToken(f.t, profile, f.clock.Now().Add(time.Hour))
	return session.LoginResponse{Success: true, Token: f.validToken, User: &profile}, nil
}

func (f *fakeBackend) authorized(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := requestctx.BearerTokenFromContext(ctx)
	return token != "" && token == f.validToken
}

func unauthorized[T any]() apiclient.Result[T] {
	return apiclient.Result[T]{Message: "Unauthorized", Status: http.StatusUnauthorized}
}

func (f *fakeBackend) DashboardStats(ctx context.Context) apiclient.Result[apiclient.Stats] {
	if !f.authorized(ctx) {
		return unauthorized[apiclient.Stats]()
	}
	return apiclient.Result[apiclient.Stats]{Success: true, Data: f.stats, Status: http.StatusOK}
}

func (f *fakeBackend) RecentActivity(ctx context.Context) apiclient.Result[[]apiclient.Activity] {
	if !f.authorized(ctx) {
		return unauthorized[[]apiclient.Activity]()
	}
	return apiclient.Result[[]apiclient.Activity]{Success: true, Data: f.activity, Status: http.StatusOK}
}

func (f *fakeBackend) ListSubmissions(ctx context.Context, resource string, q apiclient.PageQuery) apiclient.Result[apiclient.SubmissionPage] {
	if !f.authorized(ctx) {
		return unauthorized[apiclient.SubmissionPage]()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listQueries = append(f.listQueries, q)

	var matched []apiclient.Submission
	for _, s := range f.submissions[resource] {
		if q.Search == "" || strings.Contains(strings.ToLower(s.Field("name")), strings.ToLower(q.Search)) {
			matched = append(matched, s)
		}
	}
	limit := max(q.Limit, 1)
	page := max(q.Page, 1)
	pages := (len(matched) + limit - 1) / limit
	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))
	return apiclient.Result[apiclient.SubmissionPage]{
		Success: true,
		Status:  http.StatusOK,
		Data: apiclient.SubmissionPage{
			Submissions: matched[start:end],
			Pagination:  apiclient.Pagination{Total: len(matched), Page: page, Limit: limit, Pages: pages},
		},
	}
}

func (f *fakeBackend) GetSubmission(ctx context.Context, resource, id string) apiclient.Result[apiclient.Submission] {
	if !f.authorized(ctx) {
		return unauthorized[apiclient.Submission]()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.submissions[resource] {
		if s.ID() == id {
			return apiclient.Result[apiclient.Submission]{Success: true, Data: s, Status: http.StatusOK}
		}
	}
	return apiclient.Result[apiclient.Submission]{Message: "Submission not found", Status: http.StatusNotFound}
}

func (f *fakeBackend) DeleteSubmission(ctx context.Context, resource, id string) apiclient.Result[struct{}] {
	if !f.authorized(ctx) {
		return unauthorized[struct{}]()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return apiclient.Result[struct{}]{Message: "Delete not allowed", Status: http.StatusForbidden}
	}
	f.deleted = append(f.deleted, resource+"/"+id)
	return apiclient.Result[struct{}]{Success: true, Status: http.StatusOK}
}

func (f *fakeBackend) queries() []apiclient.PageQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiclient.PageQuery(nil), f.listQueries...)
}

type fakeUploader struct {
	asset cdnupload.Asset
	err   error

	mu       sync.Mutex
	received []string
}

func (u *fakeUploader) calls() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.received...)
}

func (u *fakeUploader) Upload(_ context.Context, filename string, data []byte, _ cdnupload.Constraints) (cdnupload.Asset, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.received = append(u.received, fmt.Sprintf("%s:%d", filename, len(data)))
	return u.asset, u.err
}

// testConsole is a running handler with a browser-like client.
type testConsole struct {
	t       *testing.T
	server  *httptest.Server
	client  *http.Client
	backend *fakeBackend
	clock   *testClock
	handler *Handler
}

type consoleOption func(*HandlerConfig)

func newTestConsole(t *testing.T, medium string, opts ...consoleOption) *testConsole {
	t.Helper()
	clock := newTestClock()
	backend := newFakeBackend(t, clock)
	verifier, err := session.NewVerifier(testSecret, clock.Now)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	var namespaces session.Namespaces
	if medium == SessionStoreMemory {
		namespaces = session.NewMemoryNamespaces()
	}
	sessions, err := newSessionFactory(medium, namespaces, verifier, backend, session.CookieOptions{MaxAge: 3600})
	if err != nil {
		t.Fatalf("new session factory: %v", err)
	}
	cfg := HandlerConfig{
		Backend:        backend,
		Sessions:       sessions.Manager,
		StaticFS:       static.FS,
		PageSize:       20,
		SearchDebounce: 20 * time.Millisecond,
		DemoEmail:      "demo@goalinstitute.com",
		DemoPassword:   "demo123",
		Now:            clock.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	handler := NewHandler(cfg)
	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
		handler.Close()
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testConsole{t: t, server: server, client: client, backend: backend, clock: clock, handler: handler}
}

type testResponse struct {
	status int
	header http.Header
	body   string
}

func (c *testConsole) do(req *http.Request) testResponse {
	c.t.Helper()
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return testResponse{status: resp.StatusCode, header: resp.Header, body: string(body)}
}

func (c *testConsole) request(method, path string, body io.Reader, headers map[string]string) *http.Request {
	c.t.Helper()
	req, err := http.NewRequest(method, c.server.URL+path, body)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if method != http.MethodGet && method != http.MethodHead {
		req.Header.Set("Origin", c.server.URL)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return req
}

func (c *testConsole) get(path string, headers map[string]string) testResponse {
	c.t.Helper()
	return c.do(c.request(http.MethodGet, path, nil, headers))
}

func (c *testConsole) postForm(path string, form url.Values, headers map[string]string) testResponse {
	c.t.Helper()
	req := c.request(http.MethodPost, path, strings.NewReader(form.Encode()), headers)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *testConsole) login() {
	c.t.Helper()
	resp := c.postForm("/login", url.Values{"email": {testEmail}, "password": {testPassword}}, nil)
	if resp.status != http.StatusSeeOther {
		c.t.Fatalf("login status = %d, want %d; body: %s", resp.status, http.StatusSeeOther, resp.body)
	}
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Fatalf("body missing %q:\n%s", want, body)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Fatalf("body unexpectedly contains %q:\n%s", unwanted, body)
	}
}
