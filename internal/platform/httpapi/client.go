package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/id"
	"grafik/internal/platform/logging"
)

const (
	DefaultRetryDelay = 700 * time.Millisecond
	defaultTimeout    = 15 * time.Second
	healthPath        = "/health"
)

// TokenSource is read on every call so a token written by another process
// is picked up by the next request.
type TokenSource interface {
	Token() string
	ClearToken() error
}

type Options struct {
	BaseURL    string
	LoginPath  string
	RetryDelay time.Duration
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     hclog.Logger
	IDs        id.Generator
	// OnUnauthorized fires after a 401 cleared the session.
	OnUnauthorized func(redirect string)
}

type Client struct {
	baseURL        string
	loginPath      string
	retryDelay     time.Duration
	http           *http.Client
	tokens         TokenSource
	log            hclog.Logger
	ids            id.Generator
	onUnauthorized func(string)
	online         atomic.Bool
}

func New(tokens TokenSource, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 || retryDelay >= time.Second {
		retryDelay = DefaultRetryDelay
	}
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	ids := opts.IDs
	if ids == nil {
		ids = id.UUID{}
	}
	c := &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		loginPath:      loginPath,
		retryDelay:     retryDelay,
		http:           httpClient,
		tokens:         tokens,
		log:            logging.OrNull(opts.Logger).Named("gateway"),
		ids:            ids,
		onUnauthorized: opts.OnUnauthorized,
	}
	c.online.Store(true)
	return c
}

// Request describes one backend call. Body is JSON-encoded unless Form is
// set, in which case a multipart payload is sent instead.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Form   *Form
	Header http.Header
	// Anonymous calls (login, register, health) never trigger the 401
	// session reset.
	Anonymous bool
	NoRetry   bool
}

type Form struct {
	Fields map[string]string
	Files  []FormFile
}

type FormFile struct {
	Field   string
	Name    string
	Content []byte
}

type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func (r Response) IsJSON() bool {
	media, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return strings.Contains(r.ContentType, "json")
	}
	return media == "application/json" || strings.HasSuffix(media, "+json")
}

// Decode parses a JSON body into out. Empty bodies leave out untouched.
func (r Response) Decode(out any) error {
	if out == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if !r.IsJSON() {
		return fmt.Errorf("decode response: expected json, got %q", r.ContentType)
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (r Response) Text() string {
	return string(r.Body)
}

type destinationKey struct{}

// WithDestination records where the user was heading, so a 401 can send
// them back there after logging in again.
func WithDestination(ctx context.Context, destination string) context.Context {
	return context.WithValue(ctx, destinationKey{}, destination)
}

func destinationFrom(ctx context.Context, fallback string) string {
	if v, ok := ctx.Value(destinationKey{}).(string); ok && v != "" {
		return v
	}
	return fallback
}

// LoginURL builds the login entry point carrying the next destination.
func (c *Client) LoginURL(next string) string {
	if next == "" {
		return c.loginPath
	}
	return c.loginPath + "?next=" + url.QueryEscape(next)
}

// Online reports whether the last round trip reached the backend.
func (c *Client) Online() bool {
	return c.online.Load()
}

func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	payload, contentType, err := encodeBody(req)
	if err != nil {
		return Response{}, err
	}
	requestID := c.ids.New()

	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, method, req, payload, contentType, requestID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Response{}, ctxErr
			}
			c.online.Store(false)
			c.log.Debug("request failed", "method", method, "path", req.Path, "request_id", requestID, "error", err)
			return Response{}, fmt.Errorf("%s %s: %w: %w", method, req.Path, apperrors.ErrNetwork, err)
		}
		c.online.Store(true)

		if isColdStart(resp.Status) && attempt == 0 && !req.NoRetry {
			c.log.Warn("backend cold start, retrying once", "method", method, "path", req.Path, "status", resp.Status, "delay", c.retryDelay, "request_id", requestID)
			if err := sleep(ctx, c.retryDelay); err != nil {
				return Response{}, err
			}
			continue
		}
		if resp.Status >= 200 && resp.Status < 300 {
			return resp, nil
		}
		return resp, c.failure(ctx, method, req, resp)
	}
}

// Call performs the request and decodes a JSON body into out.
func (c *Client) Call(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Call(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Call(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Call(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Call(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Ping hits the liveness endpoint without retries.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: healthPath, Anonymous: true, NoRetry: true})
	return err
}

func (c *Client) send(ctx context.Context, method string, req Request, payload []byte, contentType, requestID string) (Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Cache-Control", "no-store")
	httpReq.Header.Set("Pragma", "no-cache")
	httpReq.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()
	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	return Response{Status: httpResp.StatusCode, ContentType: httpResp.Header.Get("Content-Type"), Body: raw}, nil
}

func (c *Client) failure(ctx context.Context, method string, req Request, resp Response) error {
	apiErr := &apperrors.APIError{Status: resp.Status, Message: serverMessage(resp), Path: req.Path}
	if resp.Status == http.StatusUnauthorized && !req.Anonymous {
		if c.tokens != nil {
			if err := c.tokens.ClearToken(); err != nil {
				c.log.Error("clear session after 401", "error", err)
			}
		}
		fallback := req.Path
		if len(req.Query) > 0 {
			fallback += "?" + req.Query.Encode()
		}
		apiErr.LoginRedirect = c.LoginURL(destinationFrom(ctx, fallback))
		c.log.Warn("session rejected, cleared token", "method", method, "path", req.Path, "redirect", apiErr.LoginRedirect)
		if c.onUnauthorized != nil {
			c.onUnauthorized(apiErr.LoginRedirect)
		}
	}
	return fmt.Errorf("%s %s: %w", method, req.Path, apiErr)
}

// serverMessage pulls the backend's "error" text, falling back to the
// generic status line.
func serverMessage(resp Response) string {
	if resp.IsJSON() {
		var body struct {
			Error   json.RawMessage `json:"error"`
			Message string          `json:"message"`
			Msg     string          `json:"msg"`
		}
		if err := json.Unmarshal(resp.Body, &body); err == nil {
			var text string
			if len(body.Error) > 0 && json.Unmarshal(body.Error, &text) == nil && text != "" {
				return text
			}
			if body.Message != "" {
				return body.Message
			}
			if body.Msg != "" {
				return body.Msg
			}
		}
	}
	return fmt.Sprintf("HTTP %d", resp.Status)
}

func encodeBody(req Request) ([]byte, string, error) {
	if req.Form != nil {
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for k, v := range req.Form.Fields {
			if err := writer.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("write form field %s: %w", k, err)
			}
		}
		for _, f := range req.Form.Files {
			part, err := writer.CreateFormFile(f.Field, f.Name)
			if err != nil {
				return nil, "", fmt.Errorf("create form file: %w", err)
			}
			if _, err := part.Write(f.Content); err != nil {
				return nil, "", fmt.Errorf("write form file: %w", err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, "", fmt.Errorf("close multipart writer: %w", err)
		}
		return buf.Bytes(), writer.FormDataContentType(), nil
	}
	if req.Body == nil {
		return nil, "application/json", nil
	}
	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return payload, "application/json", nil
}

func isColdStart(status int) bool {
	return status == http.StatusInternalServerError || status == http.StatusServiceUnavailable
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, apperrors.ErrUnauthenticated)
}
