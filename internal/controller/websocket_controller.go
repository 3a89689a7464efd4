package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("game %s: register connection for %s: %v", gameID, playerID, err)
		c.WriteJSON(ws.ErrorMessage(err.Error()))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("game %s: read from %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.reply(gameID, playerID, ws.ErrorMessage("malformed message: "+err.Error()))
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			reply = ws.ErrorMessage(err.Error())
		}
		wsc.reply(gameID, playerID, reply)
	}
}

// handleMessage dispatches one client message and returns the direct reply.
// State changes also reach every watcher through the game's broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return ws.Message{}, err
		}
		kind, err := wsc.gameService.HandleMove(gameID, playerID, move)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeMoveResult, map[string]interface{}{
			"from": move.From,
			"to":   move.To,
			"kind": kind,
		})

	case ws.MessageTypePromote:
		var req model.WSPromotion
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return ws.Message{}, err
		}
		if err := wsc.gameService.HandlePromotion(gameID, playerID, req); err != nil {
			return ws.Message{}, err
		}
		state, err := wsc.gameService.GetGameState(gameID)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeGameState, state)

	case ws.MessageTypeCandidates:
		var req model.WSCandidatesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return ws.Message{}, err
		}
		candidates, err := wsc.gameService.GetCandidates(gameID, playerID, req.Square)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeCandidates, candidates)

	default:
		return ws.Message{}, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) reply(gameID, playerID string, msg ws.Message) {
	if err := wsc.gameService.Send(gameID, playerID, msg); err != nil {
		log.Printf("game %s: reply to %s: %v", gameID, playerID, err)
	}
}

// HandleMatchmaking queues the player and holds the socket open until a match is
// found or the client goes away.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)

	// The manager never blocks on a send, so the channel needs room for the event.
	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	// Players who queued over REST open this socket just to hear the result.
	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		c.WriteJSON(ws.ErrorMessage(err.Error()))
		return
	}

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case payload, ok := <-ch:
		if !ok {
			return
		}
		if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(payload)}); err != nil {
			log.Printf("matchmaking: notify %s: %v", playerID, err)
		}
	case <-gone:
	}
}
