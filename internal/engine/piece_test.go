package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in      string
		want    Square
		wantErr bool
	}{
		{in: "a1", want: 0},
		{in: "h1", want: 7},
		{in: "e2", want: 12},
		{in: "h8", want: 63},
		{in: "27", want: 27},
		{in: "64", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "i9", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSquare(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrSquareOutOfRange) {
				t.Errorf("ParseSquare(%q) error = %v, want ErrSquareOutOfRange", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseSquare(%q) = (%d,%v), want %d", tt.in, got, err, tt.want)
		}
		if tt.in[0] >= 'a' && got.String() != tt.in {
			t.Errorf("Square(%d).String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}

func TestNewSquare(t *testing.T) {
	if s, err := NewSquare(3, 3); err != nil || s != 27 {
		t.Fatalf("NewSquare(3,3) = (%d,%v), want 27", s, err)
	}
	if _, err := NewSquare(8, 0); !errors.Is(err, ErrSquareOutOfRange) {
		t.Fatalf("NewSquare(8,0) error = %v, want ErrSquareOutOfRange", err)
	}
}

func TestParsePieceType(t *testing.T) {
	for in, want := range map[string]PieceType{"queen": Queen, "N": Knight, "r": Rook, "bishop": Bishop} {
		if got, err := ParsePieceType(in); err != nil || got != want {
			t.Errorf("ParsePieceType(%q) = (%v,%v), want %v", in, got, err, want)
		}
	}
	if _, err := ParsePieceType("dragon"); !errors.Is(err, ErrInvalidPieceType) {
		t.Fatalf("ParsePieceType(dragon) error = %v, want ErrInvalidPieceType", err)
	}
}

func TestPlayer(t *testing.T) {
	if White.Direction() != 1 || Black.Direction() != -1 {
		t.Fatalf("Direction white=%d black=%d", White.Direction(), Black.Direction())
	}
	if White.Opponent() != Black || Black.Opponent() != White {
		t.Fatalf("Opponent is not symmetric")
	}
}

func TestCandidateMoveJSON(t *testing.T) {
	b, err := json.Marshal(CandidateMove{To: 43, Kind: EnPassant})
	if err != nil {
		t.Fatalf("json.Marshal error = %v", err)
	}
	if got, want := string(b), `{"to":"d6","kind":"enPassant"}`; got != want {
		t.Fatalf("json.Marshal = %s, want %s", got, want)
	}

	for _, kind := range []MoveKind{Regular, Capture, EnPassant, Promotion} {
		want := CandidateMove{To: 28, Kind: kind}
		raw, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("json.Marshal(%v) error = %v", kind, err)
		}
		var got CandidateMove
		if err := json.Unmarshal(raw, &got); err != nil || got != want {
			t.Fatalf("round trip of %s = (%+v,%v), want %+v", raw, got, err, want)
		}
	}
	for _, state := range []State{Idle, AwaitingPromotion} {
		raw, err := json.Marshal(state)
		if err != nil {
			t.Fatalf("json.Marshal(%v) error = %v", state, err)
		}
		var got State
		if err := json.Unmarshal(raw, &got); err != nil || got != state {
			t.Fatalf("round trip of %s = (%v,%v), want %v", raw, got, err, state)
		}
	}
	var kind MoveKind
	if err := json.Unmarshal([]byte(`"teleport"`), &kind); err == nil {
		t.Fatalf("json.Unmarshal(teleport) succeeded, want error")
	}

	var req struct {
		Square Square    `json:"square"`
		Piece  PieceType `json:"piece"`
	}
	if err := json.Unmarshal([]byte(`{"square":"a8","piece":"queen"}`), &req); err != nil {
		t.Fatalf("json.Unmarshal error = %v", err)
	}
	if req.Square != 56 || req.Piece != Queen {
		t.Fatalf("json.Unmarshal = %+v, want a8 queen", req)
	}
}
