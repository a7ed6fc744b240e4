package search

import (
	"sync/atomic"
	"testing"

	"github.com/ngrigoriev/gochess/board"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(fen)
	if err != nil {
		t.Fatalf("NewBoard(%q): %v", fen, err)
	}
	return b
}

func TestMateInOneFound(t *testing.T) {
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	result := Run(Params{Board: b, Limits: LimitsType{Depth: 1}}, nil, nil)
	if result.BestMove.String() != "a1a8" {
		t.Fatalf("best move = %v, want a1a8", result.BestMove)
	}
	if result.Info.Score.Mate != 1 {
		t.Fatalf("score = %+v, want mate in 1", result.Info.Score)
	}
}

func TestForcedMoveSkipsSearch(t *testing.T) {
	// A position with exactly one legal move: the rook covers both other king flight squares.
	b := mustBoard(t, "k7/8/1R6/8/8/8/8/7K b - - 0 1")
	ml := b.GenerateLegalMoves()
	if len(ml) != 1 {
		t.Fatalf("setup: expected exactly one legal move, got %d", len(ml))
	}
	result := Run(Params{Board: b, Limits: LimitsType{Depth: 5}}, nil, nil)
	if result.BestMove != ml[0] {
		t.Fatalf("forced move = %v, want %v", result.BestMove, ml[0])
	}
}

func TestBestMoveIsAlwaysLegal(t *testing.T) {
	positions := []string{
		board.InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPBBPPP1/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range positions {
		b := mustBoard(t, fen)
		legal := b.GenerateLegalMoves()
		result := Run(Params{Board: b, Limits: LimitsType{Depth: 2}}, nil, nil)
		found := false
		for _, m := range legal {
			if m == result.BestMove {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("best move %v from %q is not among the legal moves", result.BestMove, fen)
		}
	}
}

func TestRunOnTerminalPositionReturnsNoMove(t *testing.T) {
	b := mustBoard(t, "R5k1/5ppp/8/8/8/8/8/7K b - - 0 1")
	terminal, _ := b.IsTerminal()
	if !terminal {
		t.Fatalf("setup: expected a terminal (mated) position")
	}
	result := Run(Params{Board: b, Limits: LimitsType{Depth: 3}}, nil, nil)
	if result.BestMove != board.NoMove {
		t.Fatalf("expected NoMove from a terminal root, got %v", result.BestMove)
	}
}

func TestStopFlagHaltsSearchWithAValidResult(t *testing.T) {
	b := mustBoard(t, board.InitialPositionFEN)
	var stop atomic.Bool
	stop.Store(true)
	result := Run(Params{Board: b, Limits: LimitsType{Depth: 6}}, &stop, nil)
	legal := b.GenerateLegalMoves()
	found := false
	for _, m := range legal {
		if m == result.BestMove {
			found = true
		}
	}
	if !found {
		t.Fatalf("stopped search did not return a legal root move: %v", result.BestMove)
	}
}

func TestInfiniteSearchStopsOnStopFlagAndDeepens(t *testing.T) {
	b := mustBoard(t, board.InitialPositionFEN)
	var stop atomic.Bool

	var depths []int
	result := Run(Params{Board: b, Limits: LimitsType{Infinite: true}}, &stop, func(info Info) {
		depths = append(depths, info.Depth)
		if len(depths) >= 3 {
			stop.Store(true)
		}
	})

	legal := b.GenerateLegalMoves()
	found := false
	for _, m := range legal {
		if m == result.BestMove {
			found = true
		}
	}
	if !found {
		t.Fatalf("infinite search did not return a legal root move: %v", result.BestMove)
	}
	if len(depths) < 3 {
		t.Fatalf("expected at least 3 progress reports before stopping, got %v", depths)
	}
	for i := 1; i < len(depths); i++ {
		if depths[i] != depths[i-1]+1 {
			t.Fatalf("depths should increase by exactly 1 each iteration, got %v", depths)
		}
	}
}

func TestSearchMovesRootFilter(t *testing.T) {
	b := mustBoard(t, board.InitialPositionFEN)
	want, ok := b.ParseUCI("e2e4")
	if !ok {
		t.Fatalf("setup: e2e4 should be legal")
	}
	result := Run(Params{Board: b, Limits: LimitsType{Depth: 2, SearchMoves: []board.Move{want}}}, nil, nil)
	if result.BestMove.String() != "e2e4" {
		t.Fatalf("best move = %v, want e2e4 (the only searchmoves entry)", result.BestMove)
	}
}
