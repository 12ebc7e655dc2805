package registry

import (
	"errors"
	"strings"
	"sync"

	"github.com/marcelsud/waha-dashboard/waha"
	"github.com/patrickmn/go-cache"
)

/* Registry maps session names to upstream credentials and hands out
 * one client per distinct (base URL, API key) pair
 * The most recently remembered pair becomes the default for sessions
 * that were never started through the dashboard
 */

// ErrIncompleteCredential is returned when either half of a pair is blank
var ErrIncompleteCredential = errors.New("base URL and API key are both required")

// Factory builds a client for a credential pair
type Factory func(baseURL, apiKey string) waha.API

// Credential is a normalized (base URL, API key) pair
type Credential struct {
	BaseURL string
	APIKey  string
}

// NewCredential trims both values and strips trailing slashes from the URL
func NewCredential(baseURL, apiKey string) Credential {
	return Credential{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIKey:  strings.TrimSpace(apiKey),
	}
}

func (c Credential) cacheKey() string {
	return c.BaseURL + "::" + c.APIKey
}

type Registry struct {
	fallback waha.API
	factory  Factory
	clients  *cache.Cache

	mu       sync.RWMutex
	sessions map[string]Credential
	def      *Credential
}

// New creates a registry. fallback serves requests when nothing was remembered.
func New(fallback waha.API, factory Factory) *Registry {
	return &Registry{
		fallback: fallback,
		factory:  factory,
		clients:  cache.New(cache.NoExpiration, 0),
		sessions: make(map[string]Credential),
	}
}

// Remember stores the credentials for session and makes them the default
func (r *Registry) Remember(session, baseURL, apiKey string) error {
	cred := NewCredential(baseURL, apiKey)
	if cred.BaseURL == "" || cred.APIKey == "" {
		return ErrIncompleteCredential
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session] = cred
	r.def = &cred
	return nil
}

// Credential returns the credentials remembered for session
func (r *Registry) Credential(session string) (Credential, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.sessions[session]
	return cred, ok
}

// ClientFor resolves a client: the session's credentials, then the default
// credentials, then the fallback client. An empty session skips the first step.
func (r *Registry) ClientFor(session string) waha.API {
	r.mu.RLock()
	cred, ok := r.sessions[session]
	if session == "" {
		ok = false
	}
	if !ok && r.def != nil {
		cred, ok = *r.def, true
	}
	r.mu.RUnlock()

	if !ok {
		return r.fallback
	}
	return r.clientFor(cred)
}

// Default resolves a client without a session hint
func (r *Registry) Default() waha.API {
	return r.ClientFor("")
}

func (r *Registry) clientFor(cred Credential) waha.API {
	key := cred.cacheKey()
	if c, found := r.clients.Get(key); found {
		return c.(waha.API)
	}

	client := r.factory(cred.BaseURL, cred.APIKey)
	// Add fails when another request won the race; use its client instead.
	if err := r.clients.Add(key, client, cache.NoExpiration); err != nil {
		if c, found := r.clients.Get(key); found {
			return c.(waha.API)
		}
	}
	return client
}

// ClientCount returns how many distinct credential clients are cached
func (r *Registry) ClientCount() int {
	return r.clients.ItemCount()
}
