package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/wire"
	"github.com/golang-jwt/jwt/v5"
)

const maxResponseBytes = 4 << 20

type HTTPClient struct {
	baseURL       string
	http          *http.Client
	refreshBefore time.Duration

	mu      sync.Mutex
	token   string
	onToken func(token string)

	now func() time.Time
}

// NewHTTPClient returns a client for the API at baseURL. A positive
// refreshBefore makes the client renew its credential when it expires sooner
// than that.
func NewHTTPClient(baseURL string, timeout, refreshBefore time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: timeout},
		refreshBefore: refreshBefore,
		now:           time.Now,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// OnToken registers fn to be called with every newly issued credential.
func (c *HTTPClient) OnToken(fn func(token string)) {
	c.mu.Lock()
	c.onToken = fn
	c.mu.Unlock()
}

func (c *HTTPClient) storeToken(token string) {
	c.mu.Lock()
	c.token = token
	fn := c.onToken
	c.mu.Unlock()
	if fn != nil {
		fn(token)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, "/healthz", "", nil, nil)
}

// Login exchanges a signed message for a credential and keeps it.
func (c *HTTPClient) Login(ctx context.Context, address, message, signature string) (string, error) {
	var resp wire.TokenResponse
	req := wire.LoginRequest{Address: address, Message: message, SignedMessage: signature}
	if err := c.do(ctx, "/api/login", "", req, &resp); err != nil {
		return "", err
	}
	c.storeToken(resp.Token)
	return resp.Token, nil
}

// Refresh trades the current credential for a fresh one.
func (c *HTTPClient) Refresh(ctx context.Context) (string, error) {
	token := c.Token()
	if token == "" {
		return "", common.ErrUnauthorized
	}
	var resp wire.TokenResponse
	if err := c.do(ctx, "/api/refresh", token, nil, &resp); err != nil {
		return "", err
	}
	c.storeToken(resp.Token)
	return resp.Token, nil
}

func (c *HTTPClient) All(ctx context.Context) (*wire.AllItemsResponse, error) {
	var resp wire.AllItemsResponse
	if err := c.call(ctx, "/api/items/all", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Create(ctx context.Context, title string, category common.Category) (string, error) {
	var resp wire.IDResponse
	if err := c.call(ctx, "/api/items/create", wire.CreateRequest{Title: title, Category: category}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *HTTPClient) Update(ctx context.Context, req wire.UpdateRequest) (string, error) {
	var resp wire.IDResponse
	if err := c.call(ctx, "/api/items/update", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id string, category common.Category) error {
	return c.call(ctx, "/api/items/delete", wire.DeleteRequest{ID: id, Category: category}, nil)
}

func (c *HTTPClient) DeletePermanently(ctx context.Context, id string, category common.Category) error {
	return c.call(ctx, "/api/items/delete-perm", wire.DeleteRequest{ID: id, Category: category}, nil)
}

func (c *HTTPClient) Deleted(ctx context.Context, offset int) ([]wire.Item, error) {
	var resp wire.DeletedResponse
	if err := c.call(ctx, "/api/items/deleted", wire.DeletedRequest{Offset: offset}, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []wire.Item{}
	}
	return resp.Items, nil
}

func (c *HTTPClient) Restore(ctx context.Context, id string) (*wire.Item, error) {
	var resp wire.RestoreResponse
	if err := c.call(ctx, "/api/items/restore", wire.RestoreRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// call performs an authenticated request, renewing the credential first when
// it is about to expire. A failed renewal is not fatal: the request goes out
// with the old credential and the server decides.
func (c *HTTPClient) call(ctx context.Context, path string, in, out any) error {
	token := c.Token()
	if token == "" {
		return common.ErrUnauthorized
	}
	if c.expiresSoon(token) {
		if fresh, err := c.Refresh(ctx); err == nil {
			token = fresh
		}
	}
	return c.do(ctx, path, token, in, out)
}

func (c *HTTPClient) expiresSoon(token string) bool {
	if c.refreshBefore <= 0 {
		return false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	left := claims.ExpiresAt.Time.Sub(c.now())
	return left > 0 && left < c.refreshBefore
}

func (c *HTTPClient) do(ctx context.Context, path, token string, in, out any) error {
	body := []byte("{}")
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = b
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env wire.Envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: http %d", ErrUnavailable, resp.StatusCode)
		}
		return fmt.Errorf("decode response: %w", err)
	}

	switch env.Status {
	case wire.StatusError:
		return wire.ErrorFromMessage(env.Message)
	case wire.StatusSuccess:
	default:
		return fmt.Errorf("unexpected response status %q", env.Status)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// IsUnavailable reports whether err came from the transport rather than from
// the server.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
