package styleai

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/styleai/styleai-go/internal/api"
	"github.com/styleai/styleai-go/internal/types"
	"github.com/styleai/styleai-go/internal/workqueue"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the SDK entry point for the StyleAI backend. All authenticated
// calls read the bearer token from the attached session store; the token is
// injected by a transport wrapper so call sites never touch it.
type Client struct {
	baseURL string
	http    *http.Client
	session *SessionStore
	exec    *workqueue.Executor
	log     zerolog.Logger

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given backend base URL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zlog.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	if c.session == nil {
		c.session = NewSessionStore("")
	}
	if c.exec == nil {
		c.exec = newDefaultExecutor()
	}

	// Wrap HTTP transport to automatically add the Authorization header.
	c.wrapTransportWithSession()

	return c
}

// wrapTransportWithSession wraps the HTTP client's transport so every request
// carries the current session token, if one exists.
func (c *Client) wrapTransportWithSession() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &bearerTransport{
		base:    baseTransport,
		session: c.session,
	}
}

// bearerTransport wraps an http.RoundTripper to add the Authorization header.
// Unlike a fixed API key, the token is read from the session store on every
// request so login and logout take effect immediately.
type bearerTransport struct {
	base    http.RoundTripper
	session *SessionStore
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.session.Token()
	if token == "" {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}

// Session exposes the attached session store.
func (c *Client) Session() *SessionStore { return c.session }

// Close stops the background upload executor. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// newDefaultExecutor constructs the work queue with env-tunable defaults.
func newDefaultExecutor() *workqueue.Executor {
	cfg, err := workqueue.LoadConfig()
	if err != nil {
		zlog.Warn().Err(err).Msg("workqueue config invalid, using defaults")
		cfg = workqueue.Config{}
	}
	return workqueue.NewExecutor(cfg)
}

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// Register creates an account and persists the returned session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	tr, err := api.Register(ctx, c.http, c.baseURL, types.RegisterRequest(req))
	observeRequest("register", err)
	if err != nil {
		return nil, err
	}
	sess := Session{Token: tr.AccessToken, Name: tr.User.Name, Email: tr.User.Email}
	if err := c.session.Save(sess); err != nil {
		return nil, err
	}
	u := tr.User
	return &u, nil
}

// Login exchanges credentials for a token and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	tr, err := api.Login(ctx, c.http, c.baseURL, types.LoginRequest{Email: email, Password: password})
	observeRequest("login", err)
	if err != nil {
		return nil, err
	}
	sess := Session{Token: tr.AccessToken, Name: tr.User.Name, Email: tr.User.Email}
	if err := c.session.Save(sess); err != nil {
		return nil, err
	}
	u := tr.User
	return &u, nil
}

// Logout clears the persisted session. Callers must complete this before any
// navigation that depends on the signed-out state.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// --------------------------------------------------------------------
// Outfit operations - delegated to internal/api
// --------------------------------------------------------------------

// PreviewWeather resolves the weather for a request ahead of generation.
func (c *Client) PreviewWeather(ctx context.Context, req OutfitRequest) (*WeatherPreview, error) {
	w, err := api.PreviewWeather(ctx, c.http, c.baseURL, req.wire())
	observeRequest("preview_weather", err)
	return w, err
}

// GenerateOutfit asks the backend to synthesize a new outfit.
func (c *Client) GenerateOutfit(ctx context.Context, req OutfitRequest) (*GeneratedOutfit, error) {
	gr, err := api.Generate(ctx, c.http, c.baseURL, req.wire())
	observeRequest("generate", err)
	if err != nil {
		return nil, err
	}
	return gr.GeneratedOutfit, nil
}

// SuggestOutfit asks the backend to assemble an outfit from the user's
// wardrobe. The empty-wardrobe guard lives in the orchestrator, before any
// network call.
func (c *Client) SuggestOutfit(ctx context.Context, req OutfitRequest) (*SuggestionResult, error) {
	sr, err := api.SuggestFromWardrobe(ctx, c.http, c.baseURL, req.wire())
	observeRequest("suggest", err)
	if err != nil {
		return nil, err
	}
	return sr, nil
}

// OutfitHistory retrieves past outfit requests.
func (c *Client) OutfitHistory(ctx context.Context) ([]OutfitHistoryRecord, error) {
	recs, err := api.History(ctx, c.http, c.baseURL)
	observeRequest("history", err)
	return recs, err
}

// Outfit retrieves one persisted outfit request by identifier.
func (c *Client) Outfit(ctx context.Context, id int64) (*OutfitHistoryRecord, error) {
	rec, err := api.GetOutfit(ctx, c.http, c.baseURL, id)
	observeRequest("get_outfit", err)
	return rec, err
}

// --------------------------------------------------------------------
// Wardrobe operations - delegated to internal/api
// --------------------------------------------------------------------

// ListWardrobe retrieves all wardrobe items for the current user.
func (c *Client) ListWardrobe(ctx context.Context) ([]WardrobeItem, error) {
	items, err := api.ListWardrobe(ctx, c.http, c.baseURL)
	observeRequest("list_wardrobe", err)
	return items, err
}

// UploadWardrobeItem posts one clothing image.
func (c *Client) UploadWardrobeItem(ctx context.Context, category Category, filename string, content io.Reader) (*WardrobeItem, error) {
	item, err := api.UploadWardrobeItem(ctx, c.http, c.baseURL, category, filename, content)
	observeRequest("upload_wardrobe", err)
	return item, err
}

// DeleteWardrobeItem removes one item from the backend.
func (c *Client) DeleteWardrobeItem(ctx context.Context, id int64) error {
	err := api.DeleteWardrobeItem(ctx, c.http, c.baseURL, id)
	observeRequest("delete_wardrobe", err)
	return err
}

// RemoveBackground submits a batch of item ids for background removal and
// returns the updated subset.
func (c *Client) RemoveBackground(ctx context.Context, ids []int64) ([]WardrobeItem, error) {
	items, err := api.RemoveBackground(ctx, c.http, c.baseURL, ids)
	observeRequest("remove_background", err)
	return items, err
}
