// Package search implements fixed-depth negamax alpha-beta search with a quiescence
// extension over board.Board, plus a goroutine-owning worker that runs one outstanding
// search at a time and reports progress through a callback.
package search

import "github.com/ngrigoriev/gochess/board"

// LimitsType carries every parameter a UCI "go" command can specify. The core search only
// honors Depth, SearchMoves and Infinite directly; the remaining fields are accepted so a
// surrounding time manager can consult them, but carry no further contract here.
type LimitsType struct {
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int
	Mate           int
	Ponder         bool
	SearchMoves    []board.Move
}

// Params bundles everything a search needs to run to completion.
type Params struct {
	Board  *board.Board
	Limits LimitsType
}

// UciScore is either a centipawn evaluation or a mate-in-N count, never both.
type UciScore struct {
	Centipawns int
	Mate       int
}

// Info reports search progress: every depth iteration (and, inside a single fixed-depth
// call, the final result) is published through the caller's progress callback. A root with
// no candidate moves, or with a single forced move, returns without a progress report.
type Info struct {
	Depth    int
	Score    UciScore
	Nodes    int64
	MainLine []board.Move
}

// Result is the outcome of a completed (or stopped) search.
type Result struct {
	BestMove board.Move
	Ponder   board.Move
	Info     Info
}
