package upstreams_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcelsud/waha-dashboard/upstreams"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFile = `
upstreams:
  - session: "sales"
    api_url: "http://waha-sales:3000/"
    api_key: "sales-key"
  - session: "support"
    api_url: "https://waha-support.example.com"
    api_key: "support-key"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upstreams.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type remembered struct {
	session, url, key string
}

type recorder struct {
	calls []remembered
	err   error
}

func (r *recorder) Remember(session, baseURL, apiKey string) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, remembered{session, baseURL, apiKey})
	return nil
}

func TestLoader_Load(t *testing.T) {
	t.Run("success - valid upstreams file", func(t *testing.T) {
		loader := upstreams.NewLoader()
		err := loader.Load(writeFile(t, validFile))

		require.NoError(t, err)
		all := loader.List()
		require.Len(t, all, 2)
		assert.Equal(t, "sales", all[0].Session)
		assert.Equal(t, "support", all[1].Session)

		upstream, err := loader.Get("support")
		require.NoError(t, err)
		assert.Equal(t, "https://waha-support.example.com", upstream.APIURL)
		assert.Equal(t, "****-key", upstream.MaskedKey())
	})

	t.Run("error - file not found", func(t *testing.T) {
		loader := upstreams.NewLoader()
		err := loader.Load("nonexistent.yaml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading upstreams file")
	})

	t.Run("error - invalid YAML", func(t *testing.T) {
		loader := upstreams.NewLoader()
		err := loader.Load(writeFile(t, `invalid yaml content: [[[`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing upstreams YAML")
	})

	t.Run("error - duplicate session", func(t *testing.T) {
		content := `
upstreams:
  - session: "a"
    api_url: "http://one:3000"
    api_key: "k"
  - session: "a"
    api_url: "http://two:3000"
    api_key: "k"
`
		loader := upstreams.NewLoader()
		err := loader.Load(writeFile(t, content))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate session a")
	})
}

func TestLoader_Get(t *testing.T) {
	loader := upstreams.NewLoader()

	_, err := loader.Get("nonexistent")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream not found")
}

func TestLoader_Apply(t *testing.T) {
	t.Run("success - remembers in file order", func(t *testing.T) {
		loader := upstreams.NewLoader()
		require.NoError(t, loader.Load(writeFile(t, validFile)))
		rec := &recorder{}

		require.NoError(t, loader.Apply(rec))

		assert.Equal(t, []remembered{
			{"sales", "http://waha-sales:3000/", "sales-key"},
			{"support", "https://waha-support.example.com", "support-key"},
		}, rec.calls)
	})

	t.Run("error - remember fails", func(t *testing.T) {
		loader := upstreams.NewLoader()
		require.NoError(t, loader.Load(writeFile(t, validFile)))

		err := loader.Apply(&recorder{err: errors.New("boom")})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "remembering upstream sales")
	})
}

func TestUpstream_Validate(t *testing.T) {
	tests := []struct {
		name     string
		upstream upstreams.Upstream
		wantErr  string
	}{
		{name: "valid", upstream: upstreams.Upstream{Session: "s", APIURL: "http://h:3000", APIKey: "k"}},
		{name: "empty session", upstream: upstreams.Upstream{APIURL: "http://h", APIKey: "k"}, wantErr: "session cannot be empty"},
		{name: "empty url", upstream: upstreams.Upstream{Session: "s", APIKey: "k"}, wantErr: "api_url cannot be empty"},
		{name: "relative url", upstream: upstreams.Upstream{Session: "s", APIURL: "waha:3000", APIKey: "k"}, wantErr: "absolute http(s) URL"},
		{name: "ftp url", upstream: upstreams.Upstream{Session: "s", APIURL: "ftp://h", APIKey: "k"}, wantErr: "absolute http(s) URL"},
		{name: "empty key", upstream: upstreams.Upstream{Session: "s", APIURL: "http://h"}, wantErr: "api_key cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.upstream.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := writeFile(t, `upstreams: []`)
	loaded := make(chan *upstreams.Loader, 16)
	done := make(chan error, 1)
	go func() {
		done <- upstreams.Watch(ctx, path, zerolog.Nop(), func(l *upstreams.Loader) {
			select {
			case loaded <- l:
			default:
			}
		})
	}()

	// Truncation fires its own event, so an empty load may arrive first
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(validFile), 0o600)
		deadline := time.After(50 * time.Millisecond)
		for {
			select {
			case l := <-loaded:
				if len(l.List()) == 2 {
					return true
				}
			case <-deadline:
				return false
			}
		}
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
