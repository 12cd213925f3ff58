package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"NovelEngine/internal/novel"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var errUnknownMessage = errors.New("unknown message type")

const maxPlaythroughIDLen = 64

type liveConn struct {
	conn     *websocket.Conn
	sendTick *time.Ticker
}

func serveWS(h *novel.Hub, cfg AppConfig, w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if len(id) > maxPlaythroughIDLen {
		http.Error(w, "playthrough id too long", http.StatusBadRequest)
		return
	}
	if id == "" {
		id = novel.RandId("play")
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[ws] upgrade:", err)
		return
	}
	p, reattached, err := h.Attach(id)
	if err != nil {
		log.Printf("[ws] playthrough %s: %v", id, err)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "story unavailable"))
		conn.Close()
		return
	}
	lc := &liveConn{
		conn:     conn,
		sendTick: time.NewTicker(time.Duration(float64(time.Second) / cfg.UpdateRateHz)),
	}
	log.Printf("[ws] playthrough %s attached (reattached=%t)", id, reattached)

	if err := conn.WriteJSON(novel.OutboundMessage{
		Type:    "session",
		Payload: sessionPayload{ID: id, Reattached: reattached},
	}); err != nil {
		log.Printf("[ws] send session error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer cancel()
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if msgType != websocket.TextMessage {
				log.Printf("[ws] received unsupported WebSocket message type %d", msgType)
				continue
			}
			if err := handleInbound(p, data); err != nil {
				log.Printf("[ws] playthrough %s: %v", id, err)
			}
		}
	}()

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-lc.sendTick.C:
				p.Mu.Lock()
				msg := buildStateMsgLocked(p)
				outbound := p.Events.ConsumePendingMessages()
				p.Mu.Unlock()

				state, err := stateToProto(msg)
				if err != nil {
					log.Printf("[ws] encode state error: %v", err)
					return
				}
				if err := sendProtoMessage(conn, state); err != nil {
					log.Printf("[ws] send error: %v", err)
					return
				}
				for _, event := range outbound {
					if err := conn.WriteJSON(event); err != nil {
						log.Printf("[ws] send json event error: %v", err)
						return
					}
				}
			}
		}
	}()

	<-ctx.Done()
	lc.sendTick.Stop()
	conn.Close()

	h.Detach(p)
	log.Printf("[ws] playthrough %s detached", id)
}

// handleInbound applies one client message to the playthrough.
func handleInbound(p *novel.Playthrough, data []byte) error {
	var inbound inboundMessage
	if err := json.Unmarshal(data, &inbound); err != nil {
		return fmt.Errorf("invalid JSON message: %w", err)
	}

	p.Mu.Lock()
	defer p.Mu.Unlock()
	p.LastSeen = time.Now()

	switch inbound.Type {
	case "advance":
		p.Session.OnAdvanceRequested()
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Index == nil {
			return fmt.Errorf("invalid select payload: %s", string(inbound.Payload))
		}
		return p.Session.SelectBranch(*payload.Index)
	case "back":
		p.Session.GoBack()
	case "restart":
		p.Session.Restart()
	case "pause":
		p.Pause.Pause()
	case "resume":
		p.Pause.Resume()
	case "name":
		var payload namePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return fmt.Errorf("invalid name payload: %w", err)
		}
		if !p.Name.Set(payload.Name) {
			return fmt.Errorf("invalid name payload: blank name")
		}
	default:
		return fmt.Errorf("%w: %s", errUnknownMessage, inbound.Type)
	}
	return nil
}
