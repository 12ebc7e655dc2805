package upstreams

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Loader reads upstream credentials from a YAML file
 * A Loader is not modified after Load; reloads build a new one
 */

// Config represents the structure of the upstreams file
type Config struct {
	Upstreams []UpstreamConfig `yaml:"upstreams"`
}

// UpstreamConfig represents a single entry in the YAML file
type UpstreamConfig struct {
	Session string `yaml:"session"`
	APIURL  string `yaml:"api_url"`
	APIKey  string `yaml:"api_key"`
}

// Rememberer stores credentials for a session
type Rememberer interface {
	Remember(session, baseURL, apiKey string) error
}

// Loader holds the loaded upstreams
type Loader struct {
	upstreams map[string]*Upstream
	order     []string
}

// NewLoader creates a new upstream loader
func NewLoader() *Loader {
	return &Loader{
		upstreams: make(map[string]*Upstream),
	}
}

// Load reads and parses the upstreams file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading upstreams file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing upstreams YAML: %w", err)
	}

	upstreams := make(map[string]*Upstream, len(config.Upstreams))
	order := make([]string, 0, len(config.Upstreams))
	for _, uc := range config.Upstreams {
		upstream := &Upstream{
			Session: uc.Session,
			APIURL:  uc.APIURL,
			APIKey:  uc.APIKey,
		}

		if err := upstream.Validate(); err != nil {
			return fmt.Errorf("validating upstream: %w", err)
		}
		if _, dup := upstreams[upstream.Session]; dup {
			return fmt.Errorf("validating upstream: duplicate session %s", upstream.Session)
		}

		upstreams[upstream.Session] = upstream
		order = append(order, upstream.Session)
	}

	l.upstreams = upstreams
	l.order = order
	return nil
}

// Get retrieves an upstream by session name
func (l *Loader) Get(session string) (*Upstream, error) {
	upstream, exists := l.upstreams[session]
	if !exists {
		return nil, fmt.Errorf("upstream not found: %s", session)
	}
	return upstream, nil
}

// List returns all loaded upstreams in file order
func (l *Loader) List() []*Upstream {
	upstreams := make([]*Upstream, 0, len(l.order))
	for _, session := range l.order {
		upstreams = append(upstreams, l.upstreams[session])
	}
	return upstreams
}

// Apply remembers every upstream in file order
func (l *Loader) Apply(r Rememberer) error {
	for _, upstream := range l.List() {
		if err := r.Remember(upstream.Session, upstream.APIURL, upstream.APIKey); err != nil {
			return fmt.Errorf("remembering upstream %s: %w", upstream.Session, err)
		}
	}
	return nil
}
