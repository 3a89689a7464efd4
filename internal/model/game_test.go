package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/engine"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) WriteMessage(int, []byte) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) lastState(t *testing.T) GameState {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		t.Fatalf("no messages received")
	}
	msg := c.messages[len(c.messages)-1]
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("last message type = %s, want gameState", msg.Type)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(msg.Payload, &raw); err != nil {
		t.Fatalf("json.Unmarshal state: %v", err)
	}
	var state GameState
	if err := json.Unmarshal(raw["sound"], &state.Sound); err != nil {
		t.Fatalf("json.Unmarshal sound: %v", err)
	}
	if err := json.Unmarshal(raw["toMove"], &state.ToMove); err != nil {
		t.Fatalf("json.Unmarshal toMove: %v", err)
	}
	return state
}

func seatedGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("g1")
	if color, err := g.AddPlayer("alice"); err != nil || color != PlayerColorWhite {
		t.Fatalf("AddPlayer(alice) = (%s,%v), want white", color, err)
	}
	if color, err := g.AddPlayer("bob"); err != nil || color != PlayerColorBlack {
		t.Fatalf("AddPlayer(bob) = (%s,%v), want black", color, err)
	}
	return g
}

func move(t *testing.T, from, to string) WSMove {
	t.Helper()
	f, err := engine.ParseSquare(from)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", from, err)
	}
	d, err := engine.ParseSquare(to)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", to, err)
	}
	return WSMove{From: f, To: d}
}

func TestAddPlayer(t *testing.T) {
	g := seatedGame(t)
	if color, err := g.AddPlayer("alice"); err != nil || color != PlayerColorWhite {
		t.Fatalf("re-adding alice = (%s,%v), want white", color, err)
	}
	if _, err := g.AddPlayer("carol"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("AddPlayer(carol) error = %v, want ErrGameFull", err)
	}
	if g.CanSpectate() {
		t.Fatalf("CanSpectate on a full game")
	}
	if !g.IsPlayerInGame("bob") || g.IsPlayerInGame("carol") {
		t.Fatalf("IsPlayerInGame mismatch")
	}
}

func TestMakeMoveTurnChecks(t *testing.T) {
	g := seatedGame(t)
	if _, err := g.MakeMove("bob", move(t, "e7", "e5")); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("bob moving first error = %v, want ErrNotYourTurn", err)
	}
	if _, err := g.MakeMove("carol", move(t, "e2", "e4")); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("carol moving error = %v, want ErrNotInGame", err)
	}
	if _, err := g.Candidates("bob", 52); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("bob candidates error = %v, want ErrNotYourTurn", err)
	}
	if _, err := g.Candidates("alice", 52); !errors.Is(err, engine.ErrWrongTurn) {
		t.Fatalf("alice asking for a black piece error = %v, want engine.ErrWrongTurn", err)
	}
	if _, err := g.MakeMove("alice", move(t, "e2", "e5")); !errors.Is(err, engine.ErrIllegalMove) {
		t.Fatalf("e2e5 error = %v, want engine.ErrIllegalMove", err)
	}
}

func TestMakeMoveRecordsHistoryAndCaptures(t *testing.T) {
	g := seatedGame(t)
	conn := &fakeConn{}
	if err := g.RegisterConnection("alice", conn); err != nil {
		t.Fatalf("RegisterConnection error = %v", err)
	}

	steps := []struct {
		player   string
		from, to string
		kind     engine.MoveKind
	}{
		{"alice", "e2", "e4", engine.Regular},
		{"bob", "d7", "d5", engine.Regular},
		{"alice", "e4", "e5", engine.Regular},
		{"bob", "f7", "f5", engine.Regular},
		{"alice", "e5", "f6", engine.EnPassant},
		{"bob", "d5", "d4", engine.Regular},
		{"alice", "f6", "g7", engine.Capture},
	}
	for _, s := range steps {
		kind, err := g.MakeMove(s.player, move(t, s.from, s.to))
		if err != nil {
			t.Fatalf("MakeMove(%s %s%s) error = %v", s.player, s.from, s.to, err)
		}
		if kind != s.kind {
			t.Fatalf("MakeMove(%s%s) = %v, want %v", s.from, s.to, kind, s.kind)
		}
	}

	state := g.GetState()
	if len(state.MoveHistory) != len(steps) {
		t.Fatalf("history length = %d, want %d", len(state.MoveHistory), len(steps))
	}
	if got := len(state.CapturedPieces.White); got != 2 {
		t.Fatalf("white captured %d pieces, want 2", got)
	}
	if ep := state.MoveHistory[4].CapturedPiece; ep == nil || ep.Type != engine.Pawn || ep.Owner != engine.Black {
		t.Fatalf("en passant captured = %v, want black pawn", ep)
	}
	if state.Board[37] != nil {
		t.Fatalf("f5 = %v, want empty after en passant", state.Board[37])
	}
	if state.Sound != "capture" {
		t.Fatalf("sound = %q, want capture", state.Sound)
	}
	if state.LastMove == nil || state.LastMove.To != 54 {
		t.Fatalf("lastMove = %v, want to g7", state.LastMove)
	}

	last := conn.lastState(t)
	if last.Sound != "capture" || last.ToMove != engine.Black {
		t.Fatalf("broadcast state sound=%q toMove=%v", last.Sound, last.ToMove)
	}
}

func TestPromoteFlow(t *testing.T) {
	var b engine.Board
	b[48] = engine.Piece{Type: engine.Pawn, Owner: engine.White}
	b[4] = engine.Piece{Type: engine.King, Owner: engine.White}
	b[60] = engine.Piece{Type: engine.King, Owner: engine.Black}
	g := NewGameFromPosition("p1", b, engine.White)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	kind, err := g.MakeMove("alice", move(t, "a7", "a8"))
	if err != nil || kind != engine.Promotion {
		t.Fatalf("MakeMove(a7a8) = (%v,%v), want promotion", kind, err)
	}
	state := g.GetState()
	if state.Status != engine.AwaitingPromotion || state.PendingPromotion == nil || state.ToMove != engine.White {
		t.Fatalf("state after push: status=%v pending=%v toMove=%v", state.Status, state.PendingPromotion, state.ToMove)
	}
	if err := g.Promote("bob", WSPromotion{Square: 56, Piece: engine.Queen}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("bob promoting error = %v, want ErrNotYourTurn", err)
	}
	if _, err := g.MakeMove("alice", move(t, "e1", "e2")); !errors.Is(err, engine.ErrPromotionPending) {
		t.Fatalf("move while pending error = %v, want ErrPromotionPending", err)
	}
	if err := g.Promote("alice", WSPromotion{Square: 56, Piece: engine.Queen}); err != nil {
		t.Fatalf("Promote error = %v", err)
	}

	state = g.GetState()
	if state.ToMove != engine.Black || state.Status != engine.Idle {
		t.Fatalf("after promote toMove=%v status=%v", state.ToMove, state.Status)
	}
	if p := state.Board[56]; p == nil || p.Type != engine.Queen {
		t.Fatalf("a8 = %v, want queen", p)
	}
	if got := state.MoveHistory[0].Promotion; got != engine.Queen {
		t.Fatalf("history promotion = %v, want queen", got)
	}
	if state.Sound != "promote" {
		t.Fatalf("sound = %q, want promote", state.Sound)
	}
}

func TestRegisterConnectionSendsCurrentStateOnlyToNewcomer(t *testing.T) {
	g := seatedGame(t)
	alice := &fakeConn{}
	if err := g.RegisterConnection("alice", alice); err != nil {
		t.Fatalf("RegisterConnection(alice) error = %v", err)
	}
	if _, err := g.MakeMove("alice", move(t, "e2", "e4")); err != nil {
		t.Fatalf("MakeMove error = %v", err)
	}
	if got := len(alice.messages); got != 2 {
		t.Fatalf("alice got %d messages, want 2", got)
	}

	bob := &fakeConn{}
	if err := g.RegisterConnection("bob", bob); err != nil {
		t.Fatalf("RegisterConnection(bob) error = %v", err)
	}
	if got := len(bob.messages); got != 1 {
		t.Fatalf("bob got %d messages, want 1", got)
	}
	if state := bob.lastState(t); state.ToMove != engine.Black || state.Sound != "move" {
		t.Fatalf("bob's first state toMove=%v sound=%q, want black/move", state.ToMove, state.Sound)
	}
	if got := len(alice.messages); got != 2 {
		t.Fatalf("alice got %d messages after bob joined, want 2", got)
	}
}

func TestConnections(t *testing.T) {
	g := seatedGame(t)
	first := &fakeConn{}
	if err := g.RegisterConnection("alice", first); err != nil {
		t.Fatalf("RegisterConnection error = %v", err)
	}
	second := &fakeConn{}
	if err := g.RegisterConnection("alice", second); !errors.Is(err, ErrDuplicateConnection) {
		t.Fatalf("duplicate RegisterConnection error = %v, want ErrDuplicateConnection", err)
	}
	if !second.closed {
		t.Fatalf("duplicate connection left open")
	}
	if err := g.RegisterConnection("mallory", &fakeConn{}); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("stranger RegisterConnection error = %v, want ErrNotAuthorized", err)
	}

	// A stale connection must not evict the live one.
	g.UnregisterConnection("alice", second)
	if err := g.Send("alice", ws.ErrorMessage("ping")); err != nil {
		t.Fatalf("Send after stale unregister error = %v", err)
	}

	first.fail = true
	if _, err := g.MakeMove("alice", move(t, "e2", "e4")); err != nil {
		t.Fatalf("MakeMove error = %v", err)
	}
	if err := g.Send("alice", ws.ErrorMessage("ping")); !errors.Is(err, ErrNoConnection) {
		t.Fatalf("Send to dropped connection error = %v, want ErrNoConnection", err)
	}
}
