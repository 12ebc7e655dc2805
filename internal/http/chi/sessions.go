package chi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/waha-dashboard/waha"
)

/* HTTP layer DTOs for session routes
 * Upstream answers are forwarded as-is inside the envelope
 */

type startSessionRequest struct {
	SessionName string `json:"sessionName"`
	APIURL      string `json:"apiUrl"`
	APIKey      string `json:"apiKey"`
}

type patchWebhookRequest struct {
	WebhookURL string                 `json:"webhookUrl"`
	Webhooks   *[]waha.SessionWebhook `json:"webhooks"`
}

type qrResponse struct {
	QR string `json:"qr"`
}

type screenshotResponse struct {
	Screenshot string `json:"screenshot"`
}

// listSessions handles GET /sessions
func listSessions(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessions, err := clients.Default().ListSessions(r.Context())
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeData(w, sessions)
	})
}

// startSession handles POST /sessions
func startSession(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req startSessionRequest
		if err := decodeBody(r, &req); err != nil {
			writeBadRequest(w, invalidJSON)
			return
		}

		name := strings.TrimSpace(req.SessionName)
		if name == "" {
			writeBadRequest(w, "Session name is required")
			return
		}

		apiURL := strings.TrimSpace(req.APIURL)
		apiKey := strings.TrimSpace(req.APIKey)
		if (apiURL == "") != (apiKey == "") {
			writeBadRequest(w, "apiUrl and apiKey must be provided together")
			return
		}
		if apiURL != "" {
			if err := clients.Remember(name, apiURL, apiKey); err != nil {
				writeBadRequest(w, err.Error())
				return
			}
		}

		session, err := clients.ClientFor(name).StartSession(r.Context(), name)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeData(w, session)
	})
}

// getSession handles GET /sessions/{name}
func getSession(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		session, err := clients.ClientFor(name).GetSession(r.Context(), name)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeData(w, session)
	})
}

// stopSession handles POST /sessions/{name}/stop
func stopSession(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if err := clients.ClientFor(name).StopSession(r.Context(), name); err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeMessage(w, "Session stopped")
	})
}

// getSessionWebhooks handles GET /sessions/{name}/webhook
func getSessionWebhooks(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		webhooks, err := clients.ClientFor(name).SessionWebhooks(r.Context(), name)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeData(w, webhooks)
	})
}

// patchSessionWebhooks handles PATCH /sessions/{name}/webhook.
// A webhooks array replaces the whole list and wins over webhookUrl.
func patchSessionWebhooks(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		var req patchWebhookRequest
		if err := decodeBody(r, &req); err != nil {
			writeBadRequest(w, invalidJSON)
			return
		}

		client := clients.ClientFor(name)
		switch {
		case req.Webhooks != nil:
			if err := client.UpdateSessionWebhooks(r.Context(), name, *req.Webhooks); err != nil {
				writeUpstreamError(w, err)
				return
			}
			writeMessage(w, "Webhooks updated")
		case strings.TrimSpace(req.WebhookURL) != "":
			if err := client.SetWebhook(r.Context(), name, strings.TrimSpace(req.WebhookURL)); err != nil {
				writeUpstreamError(w, err)
				return
			}
			writeMessage(w, "Webhook updated")
		default:
			writeBadRequest(w, "webhookUrl or webhooks is required")
		}
	})
}

// getQR handles GET /sessions/{name}/qr
func getQR(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		qr, err := clients.ClientFor(name).QR(r.Context(), name)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeData(w, qrResponse{QR: qr.Value})
	})
}

// getScreenshot handles GET /screenshot?session=
func getScreenshot(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("session"))
		if name == "" {
			writeBadRequest(w, "Missing required query param: session")
			return
		}

		screenshot, err := clients.ClientFor(name).Screenshot(r.Context(), name)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeData(w, screenshotResponse{Screenshot: screenshot.Value})
	})
}
