// Package api is the typed client for the storefront REST backend. Every
// endpoint has an explicit request/response schema; malformed server payloads
// surface as typed errors at this boundary instead of propagating zero values
// into the callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/verdantleaf/storefront/pkg/config"
	"github.com/verdantleaf/storefront/pkg/errors"
	"github.com/verdantleaf/storefront/pkg/logger"
)

// Namespace selects the backend audience prefix and the token used for it.
// User and admin tokens are never mixed.
type Namespace string

const (
	NamespaceUser   Namespace = "user"
	NamespaceAdmin  Namespace = "admin"
	NamespacePublic Namespace = "public"
)

func (n Namespace) prefix() string {
	switch n {
	case NamespaceUser:
		return "/user"
	case NamespaceAdmin:
		return "/admin"
	default:
		return ""
	}
}

// TokenSource supplies the bearer token for a namespace, empty when
// anonymous.
type TokenSource interface {
	Token(namespace Namespace) string
}

// UnauthorizedHook runs when the backend answers 401 for a namespace. The
// session layer uses it to clear exactly that namespace's credentials.
type UnauthorizedHook func(ctx context.Context, namespace Namespace)

// Client issues requests against the storefront backend.
type Client struct {
	http           *http.Client
	baseURL        string
	listRetries    int
	tokens         TokenSource
	onUnauthorized UnauthorizedHook
	logg           *logger.Logger
}

func NewClient(cfg config.APIConfig, tokens TokenSource, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.ListRetries
	if retries < 1 {
		retries = 1
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		listRetries: retries,
		tokens:      tokens,
		logg:        logg,
	}, nil
}

// SetUnauthorizedHook installs the forced-logout callback.
func (c *Client) SetUnauthorizedHook(hook UnauthorizedHook) {
	c.onUnauthorized = hook
}

// errorEnvelope covers the message shapes the backend uses for failures.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorEnvelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (c *Client) do(ctx context.Context, ns Namespace, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + ns.prefix() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if ns != NamespacePublic {
		if token := c.tokens.Token(ns); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.CodeNetwork, err, fmt.Sprintf("%s %s", method, path))
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(errors.CodeServer, err, "decode response body")
		}
		return nil
	}

	var envelope errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if len(raw) > 0 {
		json.Unmarshal(raw, &envelope)
	}

	code := errors.CodeForStatus(resp.StatusCode)
	if code == errors.CodeUnauthorized && ns != NamespacePublic {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "namespace", string(ns)), "credentials rejected, clearing session")
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx, ns)
		}
	}

	message := envelope.text()
	if message == "" {
		message = errors.MetadataFor(code).PublicMessage
	}
	return errors.New(code, message)
}

// doList wraps do with the small fixed retry used for list fetches. Only
// transient failures retry; mutations never go through here.
func (c *Client) doList(ctx context.Context, ns Namespace, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt < c.listRetries; attempt++ {
		lastErr = c.do(ctx, ns, http.MethodGet, path, query, nil, out)
		if lastErr == nil {
			return nil
		}
		typed := errors.As(lastErr)
		if typed == nil || !errors.MetadataFor(typed.Code()).Retryable {
			return lastErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return lastErr
}
