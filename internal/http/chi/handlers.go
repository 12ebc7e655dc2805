package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/waha-dashboard/stream"
	"github.com/marcelsud/waha-dashboard/waha"
	"github.com/marcelsud/waha-dashboard/webhook"
	"github.com/rs/zerolog"
)

// Clients resolves the upstream client serving a session
type Clients interface {
	ClientFor(session string) waha.API
	Default() waha.API
	Remember(session, baseURL, apiKey string) error
}

// Deps holds everything the router delegates to. Metrics is optional.
type Deps struct {
	Clients  Clients
	Webhooks webhook.UseCase
	Hub      *stream.Hub
	Metrics  http.Handler
	Logger   zerolog.Logger
}

// Handlers sets up the dashboard API routes
func Handlers(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(deps.Logger))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	// Long-lived streams stay outside the request timeout
	r.Method(http.MethodGet, "/webhooks/stream", streamEvents(deps.Hub))
	r.Method(http.MethodGet, "/webhooks/ws", streamWebSocket(deps.Hub, deps.Logger))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Method(http.MethodGet, "/sessions", listSessions(deps.Clients))
		r.Method(http.MethodPost, "/sessions", startSession(deps.Clients))
		r.Method(http.MethodGet, "/sessions/{name}", getSession(deps.Clients))
		r.Method(http.MethodPost, "/sessions/{name}/stop", stopSession(deps.Clients))
		r.Method(http.MethodGet, "/sessions/{name}/webhook", getSessionWebhooks(deps.Clients))
		r.Method(http.MethodPatch, "/sessions/{name}/webhook", patchSessionWebhooks(deps.Clients))
		r.Method(http.MethodGet, "/sessions/{name}/qr", getQR(deps.Clients))
		r.Method(http.MethodGet, "/screenshot", getScreenshot(deps.Clients))

		r.Method(http.MethodPost, "/messages/send", sendMessage(deps.Clients))

		r.Method(http.MethodGet, "/{session}/chats/overview", getChatsOverview(deps.Clients))
		r.Method(http.MethodGet, "/{session}/chats/{chatId}/messages", getChatMessages(deps.Clients))

		r.Method(http.MethodPost, "/webhooks/messages", postWebhook(deps.Webhooks, deps.Logger))
		r.Method(http.MethodGet, "/webhooks/messages", getWebhooks(deps.Webhooks))
		r.Method(http.MethodDelete, "/webhooks/messages", deleteWebhooks(deps.Webhooks))
	})

	return r
}
