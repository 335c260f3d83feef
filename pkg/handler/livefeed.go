// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/broadcast"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/service"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/state"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait          = 10 * time.Second
	defaultPingPeriod  = 30 * time.Second
	maxViewerFrameSize = 512
)

// MatchReader loads the current record of a match.
type MatchReader interface {
	GetMatch(ctx context.Context, matchID string) (*state.MatchRecord, error)
}

// LiveFeed serves match snapshots over HTTP and live updates over WebSocket.
type LiveFeed struct {
	matches    MatchReader
	subscriber broadcast.Subscriber
	upgrader   websocket.Upgrader
	pingPeriod time.Duration
}

// NewLiveFeed creates the viewer-facing HTTP handler.
func NewLiveFeed(matches MatchReader, subscriber broadcast.Subscriber) *LiveFeed {
	return &LiveFeed{
		matches:    matches,
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// scoreboards are embedded on other sites
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		pingPeriod: defaultPingPeriod,
	}
}

// Routes returns the mux with the snapshot and live endpoints.
func (h *LiveFeed) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /matches/{id}", h.Snapshot)
	mux.HandleFunc("GET /matches/{id}/live", h.Live)
	return mux
}

// Snapshot writes the current scoreboard of a match as JSON.
func (h *LiveFeed) Snapshot(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(service.Snapshot(rec, nil)); err != nil {
		logrus.Warnf("failed to write snapshot of match %s: %v", rec.ID, err)
	}
}

// Live upgrades to a WebSocket, sends the current scoreboard and then every
// newer update until the viewer goes away.
func (h *LiveFeed) Live(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")

	// subscribe first so nothing published between the read and the
	// subscription is lost
	sub, err := h.subscriber.Subscribe(r.Context(), matchID)
	if err != nil {
		logrus.Errorf("failed to subscribe to match %s: %v", matchID, err)
		http.Error(w, "live feed unavailable", http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	rec, ok := h.load(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade failed for match %s: %v", matchID, err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go readPump(conn, cancel)

	if err := writeUpdate(conn, service.Snapshot(rec, nil)); err != nil {
		return
	}
	logrus.Debugf("viewer joined match %s at version %d", matchID, rec.Version)

	h.writePump(ctx, conn, sub, rec.Version)
}

func (h *LiveFeed) load(w http.ResponseWriter, r *http.Request) (*state.MatchRecord, bool) {
	matchID := r.PathValue("id")
	rec, err := h.matches.GetMatch(r.Context(), matchID)
	if errors.Is(err, state.ErrMatchNotFound) {
		http.Error(w, "match not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		logrus.Errorf("failed to load match %s: %v", matchID, err)
		http.Error(w, "failed to load match", http.StatusInternalServerError)
		return nil, false
	}
	return rec, true
}

func (h *LiveFeed) writePump(ctx context.Context, conn *websocket.Conn, sub *broadcast.Subscription, version int64) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case update, ok := <-sub.Updates():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"), time.Now().Add(writeWait))
				return
			}
			// already covered by the snapshot
			if update.Version <= version {
				continue
			}
			if err := writeUpdate(conn, &update); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains viewer frames so control messages are handled and cancels
// once the connection closes.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxViewerFrameSize)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeUpdate(conn *websocket.Conn, update *broadcast.MatchUpdate) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(update); err != nil {
		logrus.Debugf("dropping viewer of match %s: %v", update.MatchID, err)
		return err
	}
	return nil
}
