package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goalinstitute/admin-console/internal/platform/requestctx"
	"github.com/goalinstitute/admin-console/internal/platform/timeouts"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
)

const (
	tracerName      = "github.com/goalinstitute/admin-console/internal/services/admin/apiclient"
	maxResponseSize = 4 << 20
)

// Client calls the backend REST API.
type Client struct {
	base   *url.URL
	http   *http.Client
	tracer trace.Tracer
}

// New builds a Client for baseURL. A nil http client gets the backend
// request timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https: %q", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.BackendRequest}
	}
	return &Client{base: parsed, http: httpClient, tracer: otel.Tracer(tracerName)}, nil
}

// envelope is the status part every backend response shares.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) message() string {
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	return strings.TrimSpace(e.Error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	envelope
	Token string           `json:"token"`
	User  *session.Profile `json:"user"`
}

// Login calls POST /auth/login. Credential rejections come back as
// Success=false regardless of status; an error means the backend could not be
// reached or answered with something unreadable.
func (c *Client) Login(ctx context.Context, email, password string) (session.LoginResponse, error) {
	status, body, err := c.send(ctx, "login", http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return session.LoginResponse{}, err
	}
	var decoded loginResponse
	if err := json.Unmarshal(body, &decoded); err != nil || decoded.Success == nil {
		return session.LoginResponse{}, fmt.Errorf("login returned unreadable body (status %d)", status)
	}
	return session.LoginResponse{
		Success: *decoded.Success,
		Token:   decoded.Token,
		User:    decoded.User,
		Message: decoded.message(),
	}, nil
}

// DashboardStats calls GET /dashboard/stats.
func (c *Client) DashboardStats(ctx context.Context) Result[Stats] {
	var payload struct {
		Data Stats `json:"data"`
	}
	res := call(ctx, c, "dashboard.stats", http.MethodGet, "/dashboard/stats", nil, &payload)
	if !res.Success {
		return fail[Stats](res.Message, res.Status)
	}
	if payload.Data == nil {
		payload.Data = Stats{}
	}
	return succeed(payload.Data, res.Status)
}

// RecentActivity calls GET /dashboard/recent-activity.
func (c *Client) RecentActivity(ctx context.Context) Result[[]Activity] {
	var payload struct {
		Data []Activity `json:"data"`
	}
	res := call(ctx, c, "dashboard.recent_activity", http.MethodGet, "/dashboard/recent-activity", nil, &payload)
	if !res.Success {
		return fail[[]Activity](res.Message, res.Status)
	}
	return succeed(payload.Data, res.Status)
}

// ListSubmissions calls GET /{resource}?page=&limit=&search=.
func (c *Client) ListSubmissions(ctx context.Context, resource string, q PageQuery) Result[SubmissionPage] {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		query.Set("search", search)
	}
	var payload SubmissionPage
	res := call(ctx, c, "submissions.list", http.MethodGet, "/"+url.PathEscape(resource), query, &payload)
	if !res.Success {
		return fail[SubmissionPage](res.Message, res.Status)
	}
	return succeed(payload, res.Status)
}

// GetSubmission calls GET /{resource}/{id}. The record may arrive under
// data or submission.
func (c *Client) GetSubmission(ctx context.Context, resource, id string) Result[Submission] {
	if strings.TrimSpace(id) == "" {
		return fail[Submission]("Submission id is required", 0)
	}
	var payload struct {
		Data       Submission `json:"data"`
		Submission Submission `json:"submission"`
	}
	res := call(ctx, c, "submissions.get", http.MethodGet, "/"+url.PathEscape(resource)+"/"+url.PathEscape(id), nil, &payload)
	if !res.Success {
		return fail[Submission](res.Message, res.Status)
	}
	record := payload.Data
	if record == nil {
		record = payload.Submission
	}
	if record == nil {
		return fail[Submission]("Submission not found", http.StatusNotFound)
	}
	return succeed(record, res.Status)
}

// DeleteSubmission calls DELETE /{resource}/{id}.
func (c *Client) DeleteSubmission(ctx context.Context, resource, id string) Result[struct{}] {
	if strings.TrimSpace(id) == "" {
		return fail[struct{}]("Submission id is required", 0)
	}
	return call(ctx, c, "submissions.delete", http.MethodDelete, "/"+url.PathEscape(resource)+"/"+url.PathEscape(id), nil, nil)
}

// call performs a request and decodes a successful body into out. The
// returned Result carries the backend message on success too.
func call(ctx context.Context, c *Client, op, method, path string, query url.Values, out any) Result[struct{}] {
	status, body, err := c.send(ctx, op, method, path, query, nil)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("admin api %s: %v", op, err)
		}
		return fail[struct{}](NetworkErrorMessage, 0)
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)
	if status < 200 || status > 299 {
		if decodeErr == nil && env.message() != "" {
			return fail[struct{}](env.message(), status)
		}
		return fail[struct{}](fmt.Sprintf("%s (%d)", requestFailedMessage, status), status)
	}
	if decodeErr != nil {
		return fail[struct{}](NetworkErrorMessage, status)
	}
	if env.Success != nil && !*env.Success {
		return fail[struct{}](env.message(), status)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			log.Printf("admin api %s: decode: %v", op, err)
			return fail[struct{}](NetworkErrorMessage, status)
		}
	}
	res := succeed(struct{}{}, status)
	res.Message = env.message()
	return res
}

// send runs one HTTP exchange inside a span and returns the raw body.
func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, payload any) (int, []byte, error) {
	if c == nil || c.base == nil {
		return 0, nil, errors.New("api client is not configured")
	}
	ctx, span := c.tracer.Start(ctx, "apiclient."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer span.End()

	status, body, err := c.exchange(ctx, method, path, query, payload)
	span.SetAttributes(attribute.Int("http.status_code", status))
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
	case status >= 400:
		span.SetStatus(codes.Error, http.StatusText(status))
	}
	return status, body, err
}

func (c *Client) exchange(ctx context.Context, method, path string, query url.Values, payload any) (int, []byte, error) {
	target := *c.base
	target.Path = c.base.Path + path
	target.RawQuery = query.Encode()

	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := requestctx.BearerTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	return resp.StatusCode, body, nil
}
