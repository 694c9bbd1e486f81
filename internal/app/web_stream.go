// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

const (
	streamSendBuffer = 32
	streamWriteWait  = 5 * time.Second
)

// StreamMessage is one websocket frame: the MQTT payload tagged with its kind.
type StreamMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// streamHub fans MQTT updates out to websocket clients. Slow clients miss
// messages rather than block the MQTT callback.
type streamHub struct {
	mu      sync.Mutex
	clients map[chan StreamMessage]struct{}
}

func newStreamHub() *streamHub {
	return &streamHub{clients: make(map[chan StreamMessage]struct{})}
}

func (h *streamHub) add() chan StreamMessage {
	ch := make(chan StreamMessage, streamSendBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *streamHub) remove(ch chan StreamMessage) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

func (h *streamHub) broadcast(kind string, payload []byte) {
	msg := StreamMessage{Type: kind, Data: json.RawMessage(payload)}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// serveStream handles GET /ws/gps: a snapshot first, then live updates.
func serveStream(hub *streamHub, state *gpsState, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("web: websocket upgrade error")
		return
	}
	defer conn.Close()

	ch := hub.add()
	defer hub.remove(ch)

	snap, err := json.Marshal(state.Snapshot())
	if err != nil {
		return
	}
	if err := conn.WriteJSON(StreamMessage{Type: "snapshot", Data: snap}); err != nil {
		return
	}

	// The read loop only watches for the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Warn().Err(err).Msg("web: websocket error")
				}
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
