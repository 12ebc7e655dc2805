package chi

import (
	"errors"
	"io"
	"net/http"

	"github.com/marcelsud/waha-dashboard/webhook"
	"github.com/marcelsud/waha-dashboard/webhook/signature"
	"github.com/rs/zerolog"
)

// postWebhook handles POST /webhooks/messages.
// WAHA always gets a success so it never redelivers a payload we chose to drop.
func postWebhook(webhookService webhook.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.Warn().Int64("limit_bytes", tooLarge.Limit).Msg("webhook body too large, payload dropped")
			} else {
				logger.Warn().Err(err).Msg("reading webhook body")
			}
			writeMessage(w, webhook.Ignored.Message())
			return
		}

		if algorithm := r.Header.Get(signature.AlgorithmHeader); !signature.SupportedAlgorithm(algorithm) {
			logger.Warn().Str("algorithm", algorithm).Msg("unsupported webhook signature algorithm")
		}

		outcome := webhookService.Ingest(r.Context(), body, r.Header.Get(signature.Header))
		writeMessage(w, outcome.Message())
	})
}

// getWebhooks handles GET /webhooks/messages?session=&limit=
func getWebhooks(webhookService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		events := webhookService.Messages(query.Get("session"), webhook.ParseLimit(query.Get("limit")))
		if events == nil {
			events = []webhook.Event{}
		}

		count := len(events)
		writeJSON(w, http.StatusOK, envelope{
			Success: true,
			Data:    events,
			Count:   &count,
		})
	})
}

// deleteWebhooks handles DELETE /webhooks/messages
func deleteWebhooks(webhookService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webhookService.Clear()
		writeMessage(w, "All messages cleared")
	})
}
