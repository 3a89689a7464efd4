package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/engine"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameFull            = errors.New("game is full")
	ErrNotInGame           = errors.New("player not in game")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrNotAuthorized       = errors.New("not authorized to join this game")
	ErrDuplicateConnection = errors.New("connection already exists")
	ErrNoConnection        = errors.New("no connection registered")
)

// Conn is the part of a websocket connection the game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Game is one hosted chess game: the engine plus seats, history and the
// connections watching it. All engine access goes through mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *engine.Game
	players     [2]string // indexed by engine.Player
	captured    CapturedPieces
	history     []Ply
	lastMove    *SimpleMove
	sound       string
	connections *GameConnections
}

type GameState struct {
	Sound            string                   `json:"sound"`
	Board            ClientBoard              `json:"board"`
	ToMove           engine.Player            `json:"toMove"`
	Status           engine.State             `json:"status"`
	EnPassant        *engine.EnPassantMarker  `json:"enPassant"`
	PendingPromotion *engine.PendingPromotion `json:"pendingPromotion"`
	MoveHistory      []Ply                    `json:"moveHistory"`
	CapturedPieces   CapturedPieces           `json:"capturedPieces"`
	LastMove         *SimpleMove              `json:"lastMove"`
	Players          struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

func NewGame(id string) *Game {
	return newGame(id, engine.NewGame())
}

// NewGameFromPosition hosts a game that starts from an arbitrary position.
func NewGameFromPosition(id string, board engine.Board, toMove engine.Player) *Game {
	return newGame(id, engine.NewGameFromBoard(board, toMove))
}

func newGame(id string, eng *engine.Game) *Game {
	return &Game{
		ID:          id,
		engine:      eng,
		captured:    newCapturedPieces(),
		history:     make([]Ply, 0),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// AddPlayer seats playerID as white, then black. A player already seated gets
// their existing color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, err := g.seatOf(playerID); err == nil {
		return colorOf(color), nil
	}
	for _, color := range []engine.Player{engine.White, engine.Black} {
		if g.players[color] == "" {
			g.players[color] = playerID
			return colorOf(color), nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.seatOf(playerID)
	return err == nil
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players[engine.White] == "" || g.players[engine.Black] == ""
}

func (g *Game) seatOf(playerID string) (engine.Player, error) {
	if playerID == "" {
		return 0, ErrNotInGame
	}
	for _, color := range []engine.Player{engine.White, engine.Black} {
		if g.players[color] == playerID {
			return color, nil
		}
	}
	return 0, ErrNotInGame
}

// checkTurn fails unless playerID holds the seat of the player to move.
func (g *Game) checkTurn(playerID string) error {
	color, err := g.seatOf(playerID)
	if err != nil {
		return err
	}
	if color != g.engine.CurrentPlayer() {
		return ErrNotYourTurn
	}
	return nil
}

// Candidates lists the moves for the piece on sq. Only the player to move may ask.
func (g *Game) Candidates(playerID string, sq engine.Square) ([]engine.CandidateMove, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkTurn(playerID); err != nil {
		return nil, err
	}
	return g.engine.CandidateMoves(sq)
}

func (g *Game) MakeMove(playerID string, move WSMove) (engine.MoveKind, error) {
	g.mu.Lock()
	if err := g.checkTurn(playerID); err != nil {
		g.mu.Unlock()
		return 0, err
	}

	before := g.engine.Board()
	mover := g.engine.CurrentPlayer()
	kind, err := g.engine.ApplyMove(move.From, engine.CandidateMove{To: move.To})
	if err != nil {
		g.mu.Unlock()
		return 0, err
	}

	ply := Ply{
		Piece: before[move.From],
		From:  move.From,
		To:    move.To,
		Kind:  kind,
	}
	captured := before[move.To]
	if kind == engine.EnPassant {
		captured = before[move.To-engine.Square(8*mover.Direction())]
	}
	if !captured.IsEmpty() {
		ply.CapturedPiece = &captured
		g.captured.add(mover, captured)
	}
	g.history = append(g.history, ply)
	g.lastMove = &SimpleMove{From: move.From, To: move.To}
	g.sound = soundFor(kind)

	g.broadcastState(g.snapshot())
	g.mu.Unlock()
	return kind, nil
}

// Promote resolves the pending promotion of playerID's pawn.
func (g *Game) Promote(playerID string, req WSPromotion) error {
	g.mu.Lock()
	if err := g.checkTurn(playerID); err != nil {
		g.mu.Unlock()
		return err
	}
	if err := g.engine.Promote(req.Square, req.Piece); err != nil {
		g.mu.Unlock()
		return err
	}
	if n := len(g.history); n > 0 && g.history[n-1].To == req.Square {
		g.history[n-1].Promotion = req.Piece
	}
	g.sound = "promote"

	g.broadcastState(g.snapshot())
	g.mu.Unlock()
	return nil
}

func soundFor(kind engine.MoveKind) string {
	switch kind {
	case engine.Capture, engine.EnPassant:
		return "capture"
	case engine.Promotion:
		return "promote"
	default:
		return "move"
	}
}

// snapshot copies the state; callers hold g.mu.
func (g *Game) snapshot() GameState {
	state := GameState{
		Sound:          g.sound,
		Board:          newClientBoard(g.engine.Board()),
		ToMove:         g.engine.CurrentPlayer(),
		Status:         g.engine.State(),
		MoveHistory:    append(make([]Ply, 0, len(g.history)), g.history...),
		CapturedPieces: g.captured.clone(),
	}
	if m, ok := g.engine.EnPassant(); ok {
		state.EnPassant = &m
	}
	if p, ok := g.engine.Pending(); ok {
		state.PendingPromotion = &p
	}
	if g.lastMove != nil {
		last := *g.lastMove
		state.LastMove = &last
	}
	state.Players.White = ClientPlayer{ID: g.players[engine.White], Color: PlayerColorWhite}
	state.Players.Black = ClientPlayer{ID: g.players[engine.Black], Color: PlayerColorBlack}
	return state
}

// RegisterConnection adds conn as playerID's socket and sends it the current
// state. g.mu is held throughout so no broadcast can reach conn out of order.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.seatOf(playerID); err != nil && !g.canSpectate() {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the existing connection and reject the new one.
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ErrDuplicateConnection.Error()),
		)
		conn.Close()
		return ErrDuplicateConnection
	}
	g.connections.connections[playerID] = conn
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.snapshot())
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(msg); err != nil {
		delete(g.connections.connections, playerID)
		return err
	}
	return nil
}

// UnregisterConnection removes conn if it is still the one registered for playerID.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Printf("game %s: unregistered connection for player %s", g.ID, playerID)
	}
}

// broadcastState sends state to every connection, dropping the ones that fail.
// Callers hold g.mu, so broadcasts leave in the order the states were made.
// Writes happen under the connections lock so a connection never has two writers.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}

// Send writes one message to a single registered connection.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoConnection, playerID)
	}
	return conn.WriteJSON(msg)
}
