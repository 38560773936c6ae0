// Package session keeps dashboard logins in Valkey. The browser only holds
// an opaque random id in the inkwell_session cookie; the payload lives
// under session:<id> and expires after DefaultTTL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "inkwell_session"

	// DefaultTTL is how long an idle session survives. Every write resets it.
	DefaultTTL = 24 * time.Hour

	keyPrefix = "session:"

	// idBytes of randomness, hex encoded in the cookie.
	idBytes = 32
)

// ErrNoSession is returned by Update when the request carries no usable
// session cookie.
var ErrNoSession = errors.New("session: no session cookie")

// Data is the JSON payload stored per session. The role is not
// stored: permission checks load the user fresh.
type Data struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Store creates, reads and destroys sessions.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore returns a Store using client. With secure set the cookie
// carries the Secure attribute.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: DefaultTTL, secure: secure}
}

// Create stores data under a fresh id and sets the cookie. It returns the id.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	data.CreatedAt = time.Now().UTC()
	if err := s.save(ctx, id, data); err != nil {
		return "", err
	}

	http.SetCookie(w, s.cookie(id, int(s.ttl.Seconds())))
	return id, nil
}

// Get returns the session of r, or nil when there is none. Unknown,
// expired and malformed cookies all mean "no session".
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	id, ok := idFromRequest(r)
	if !ok {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

// Update overwrites the payload of r's session and resets its TTL. The id
// and cookie are unchanged.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	id, ok := idFromRequest(r)
	if !ok {
		return ErrNoSession
	}
	return s.save(ctx, id, data)
}

// Destroy expires the cookie and deletes the session. The cookie is
// cleared even when Valkey is unreachable.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, ok := idFromRequest(r)
	if !ok {
		return nil
	}

	http.SetCookie(w, s.cookie("", -1))

	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// idFromRequest returns the cookie value if it looks like an id we issued.
func idFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || len(c.Value) != idBytes*2 {
		return "", false
	}
	if _, err := hex.DecodeString(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

func newID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
