package chi

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/waha-dashboard/waha"
)

// getChatsOverview handles GET /{session}/chats/overview?limit=
func getChatsOverview(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := chi.URLParam(r, "session")
		limit := waha.ParseLimit(r.URL.Query().Get("limit"))

		chats, err := clients.ClientFor(session).ChatsOverview(r.Context(), session, limit)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeData(w, chats)
	})
}

// getChatMessages handles GET /{session}/chats/{chatId}/messages
func getChatMessages(clients Clients) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := chi.URLParam(r, "session")
		chatID, err := url.PathUnescape(chi.URLParam(r, "chatId"))
		if err != nil || chatID == "" {
			writeBadRequest(w, "Invalid chatId")
			return
		}

		query := waha.ParseMessagesQuery(r.URL.Query())
		messages, err := clients.ClientFor(session).ChatMessages(r.Context(), session, chatID, query)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeData(w, messages)
	})
}
