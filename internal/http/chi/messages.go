package chi

import (
	"net/http"
	"strings"

	"github.com/marcelsud/waha-dashboard/waha"
)

type sendMessageRequest struct {
	Session     string  `json:"session"`
	ChatID      string  `json:"chatId"`
	Text        string  `json:"text"`
	ReplyTo     *string `json:"replyTo"`
	LinkPreview *bool   `json:"linkPreview"`
}

// sendMessage handles POST /messages/send
func sendMessage(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := decodeBody(r, &req); err != nil {
			writeBadRequest(w, invalidJSON)
			return
		}

		session := strings.TrimSpace(req.Session)
		chatID := strings.TrimSpace(req.ChatID)
		if session == "" || chatID == "" || req.Text == "" {
			writeBadRequest(w, "Missing required fields: session, chatId, or text")
			return
		}

		result, err := clients.ClientFor(session).SendText(r.Context(), waha.SendTextRequest{
			Session:     session,
			ChatID:      waha.FormatChatID(chatID),
			Text:        req.Text,
			ReplyTo:     req.ReplyTo,
			LinkPreview: req.LinkPreview,
		})
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{
			Success: true,
			Data:    result,
			Message: "Message sent successfully",
		})
	})
}
