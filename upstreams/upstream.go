package upstreams

import (
	"fmt"
	"net/url"
)

/* Upstream maps a session name to the WAHA instance that serves it
 * Entries are remembered in file order, so the last one becomes the
 * default credential pair
 */
type Upstream struct {
	Session string
	APIURL  string
	APIKey  string
}

// Validate checks if the upstream configuration is valid
func (u *Upstream) Validate() error {
	if u.Session == "" {
		return fmt.Errorf("session cannot be empty")
	}
	if u.APIURL == "" {
		return fmt.Errorf("api_url cannot be empty for session %s", u.Session)
	}
	parsed, err := url.Parse(u.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url for session %s: %w", u.Session, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("api_url must be an absolute http(s) URL for session %s", u.Session)
	}
	if u.APIKey == "" {
		return fmt.Errorf("api_key cannot be empty for session %s", u.Session)
	}
	return nil
}

// MaskedKey returns the API key with all but the last four characters hidden
func (u *Upstream) MaskedKey() string {
	if len(u.APIKey) <= 4 {
		return "****"
	}
	return "****" + u.APIKey[len(u.APIKey)-4:]
}
