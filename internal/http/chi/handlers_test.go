package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marcelsud/waha-dashboard/registry"
	"github.com/marcelsud/waha-dashboard/stream"
	"github.com/marcelsud/waha-dashboard/waha"
	"github.com/marcelsud/waha-dashboard/waha/mocks"
	"github.com/marcelsud/waha-dashboard/webhook"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

/* Proxy routes are tested against a mocked upstream client.
 * remote is the client the registry builds for remembered credentials.
 */
type fixture struct {
	api     *mocks.API
	remote  *mocks.API
	hub     *stream.Hub
	service *webhook.Service
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithLogger(t, zerolog.Nop())
}

func newFixtureWithLogger(t *testing.T, logger zerolog.Logger) *fixture {
	t.Helper()
	f := &fixture{
		api:    mocks.NewAPI(t),
		remote: mocks.NewAPI(t),
		hub:    stream.NewHub(8, zerolog.Nop()),
	}
	clients := registry.New(f.api, func(baseURL, apiKey string) waha.API {
		return f.remote
	})
	f.service = webhook.NewService(
		webhook.NewBuffer(webhook.Capacity),
		webhook.WithPublisher(f.hub),
		webhook.WithLogger(zerolog.Nop()),
	)
	f.handler = Handlers(Deps{
		Clients:  clients,
		Webhooks: f.service,
		Hub:      f.hub,
		Logger:   logger,
	})
	t.Cleanup(f.hub.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestListSessions(t *testing.T) {
	t.Run("success - forwards upstream list", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("ListSessions", mock.Anything).Return(json.RawMessage(`[{"name":"default"}]`), nil)

		w, _ := f.do(t, http.MethodGet, "/sessions", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[{"name":"default"}]}`, w.Body.String())
	})

	t.Run("error - upstream failure is a 500", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("ListSessions", mock.Anything).Return(nil, &waha.APIError{StatusCode: 502, Body: "bad gateway"})

		w, env := f.do(t, http.MethodGet, "/sessions", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "WAHA API Error: 502 - bad gateway", env.Error)
	})
}

func TestStartSession(t *testing.T) {
	t.Run("success - default client", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("StartSession", mock.Anything, "default").Return(json.RawMessage(`{"name":"default","status":"STARTING"}`), nil)

		w, env := f.do(t, http.MethodPost, "/sessions", `{"sessionName":"default"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
	})

	t.Run("success - remembers credentials for later calls", func(t *testing.T) {
		f := newFixture(t)
		f.remote.On("StartSession", mock.Anything, "sales").Return(json.RawMessage(`{"name":"sales"}`), nil)
		f.remote.On("GetSession", mock.Anything, "sales").Return(json.RawMessage(`{"name":"sales","status":"WORKING"}`), nil)

		w, _ := f.do(t, http.MethodPost, "/sessions", `{"sessionName":"sales","apiUrl":"http://waha-sales:3000","apiKey":"k"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = f.do(t, http.MethodGet, "/sessions/sales", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"name":"sales","status":"WORKING"}}`, w.Body.String())
	})

	t.Run("error - missing session name", func(t *testing.T) {
		f := newFixture(t)

		w, env := f.do(t, http.MethodPost, "/sessions", `{"sessionName":"  "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Session name is required", env.Error)
	})

	t.Run("error - only one credential half", func(t *testing.T) {
		f := newFixture(t)

		w, env := f.do(t, http.MethodPost, "/sessions", `{"sessionName":"sales","apiUrl":"http://waha:3000"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "apiUrl and apiKey must be provided together", env.Error)
	})

	t.Run("error - malformed body", func(t *testing.T) {
		f := newFixture(t)

		w, env := f.do(t, http.MethodPost, "/sessions", `{"sessionName":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid JSON body", env.Error)
	})
}

func TestStopSession(t *testing.T) {
	f := newFixture(t)
	f.api.On("StopSession", mock.Anything, "default").Return(nil)

	w, env := f.do(t, http.MethodPost, "/sessions/default/stop", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Session stopped", env.Message)
}

func TestSessionWebhooks(t *testing.T) {
	t.Run("success - get list", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("SessionWebhooks", mock.Anything, "default").Return([]waha.SessionWebhook{
			{URL: "http://dash/webhooks/messages", Events: []string{"message"}},
		}, nil)

		w, _ := f.do(t, http.MethodGet, "/sessions/default/webhook", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[{"url":"http://dash/webhooks/messages","events":["message"]}]}`, w.Body.String())
	})

	t.Run("success - patch single url", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("SetWebhook", mock.Anything, "default", "http://dash/webhooks/messages").Return(nil)

		w, env := f.do(t, http.MethodPatch, "/sessions/default/webhook", `{"webhookUrl":"http://dash/webhooks/messages"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Webhook updated", env.Message)
	})

	t.Run("success - patch full list", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("UpdateSessionWebhooks", mock.Anything, "default", []waha.SessionWebhook{
			{URL: "http://a", Events: []string{"message", "session.status"}},
		}).Return(nil)

		w, env := f.do(t, http.MethodPatch, "/sessions/default/webhook",
			`{"webhookUrl":"ignored","webhooks":[{"url":"http://a","events":["message","session.status"]}]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Webhooks updated", env.Message)
	})

	t.Run("error - neither field", func(t *testing.T) {
		f := newFixture(t)

		w, env := f.do(t, http.MethodPatch, "/sessions/default/webhook", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "webhookUrl or webhooks is required", env.Error)
	})
}

func TestQRAndScreenshot(t *testing.T) {
	t.Run("success - qr", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("QR", mock.Anything, "default").Return(waha.Image{Source: waha.FromBinary, Value: "data:image/png;base64,AAAA"}, nil)

		w, _ := f.do(t, http.MethodGet, "/sessions/default/qr", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"qr":"data:image/png;base64,AAAA"}}`, w.Body.String())
	})

	t.Run("success - screenshot", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("Screenshot", mock.Anything, "default").Return(waha.Image{Source: waha.FromJSON, Value: "abc"}, nil)

		w, _ := f.do(t, http.MethodGet, "/screenshot?session=default", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"screenshot":"abc"}}`, w.Body.String())
	})

	t.Run("error - screenshot without session", func(t *testing.T) {
		f := newFixture(t)

		w, env := f.do(t, http.MethodGet, "/screenshot", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required query param: session", env.Error)
	})
}

func TestSendMessage(t *testing.T) {
	t.Run("success - bare number gets personal suffix", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("SendText", mock.Anything, waha.SendTextRequest{
			Session: "default",
			ChatID:  "5511999999999@c.us",
			Text:    "hi",
		}).Return(json.RawMessage(`{"id":"m1"}`), nil)

		w, env := f.do(t, http.MethodPost, "/messages/send", `{"session":"default","chatId":"5511999999999","text":"hi"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Message sent successfully", env.Message)
	})

	t.Run("success - group id untouched", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("SendText", mock.Anything, mock.MatchedBy(func(req waha.SendTextRequest) bool {
			return req.ChatID == "123-456@g.us"
		})).Return(json.RawMessage(`{}`), nil)

		w, _ := f.do(t, http.MethodPost, "/messages/send", `{"session":"default","chatId":"123-456@g.us","text":"hi"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error - missing fields", func(t *testing.T) {
		f := newFixture(t)

		w, env := f.do(t, http.MethodPost, "/messages/send", `{"session":"default","chatId":"1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields: session, chatId, or text", env.Error)
	})
}

func TestChats(t *testing.T) {
	t.Run("success - overview limit is clamped", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("ChatsOverview", mock.Anything, "default", waha.MaxChatLimit).Return(json.RawMessage(`[]`), nil)

		w, _ := f.do(t, http.MethodGet, "/default/chats/overview?limit=500", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
	})

	t.Run("success - messages with decoded chat id and normalized query", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("ChatMessages", mock.Anything, "default", "5511999999999@c.us", waha.MessagesQuery{
			Limit:         waha.DefaultChatLimit,
			Offset:        0,
			DownloadMedia: true,
			SortBy:        waha.SortByMessageTimestamp,
			SortOrder:     waha.SortAsc,
		}).Return(json.RawMessage(`[{"id":"m1"}]`), nil)

		w, _ := f.do(t, http.MethodGet,
			"/default/chats/5511999999999%40c.us/messages?offset=-3&downloadMedia=true&sortBy=bogus&sortOrder=asc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[{"id":"m1"}]}`, w.Body.String())
	})
}
