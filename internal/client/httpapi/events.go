package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/blueprint/internal/client/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type eventMessage struct {
	Type        string    `json:"type"`
	BlueprintID string    `json:"blueprintId"`
	PublishedAt time.Time `json:"publishedAt"`
}

const eventWriteTimeout = 5 * time.Second

// handleEvents streams local publish events until the client goes away.
// Events that arrive while the client is slow are dropped once the buffer
// is full; readers re-fetch the catalog anyway.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	ch := make(chan events.LocalPublished, 16)
	unsubscribe := s.catalog.SubscribeToLocalPublish(func(e events.LocalPublished) {
		select {
		case ch <- e:
		default:
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.logger.Debug(r.Context(), "event stream connected")

	for {
		select {
		case e := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			msg := eventMessage{Type: "localPublished", BlueprintID: e.BlueprintID, PublishedAt: e.PublishedAt}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
