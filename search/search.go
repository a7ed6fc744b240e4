package search

import (
	"sync/atomic"

	"github.com/ngrigoriev/gochess/board"
)

const (
	valueMate     = 30000
	valueInfinity = valueMate + 1
	valueDraw     = 0

	// quiescenceBudget bounds how many plies the quiescence extension may run past the
	// nominal horizon; it is a small fixed budget, not a second depth parameter.
	quiescenceBudget = 4

	// winThreshold is the boundary above which a score is reported as a mate distance
	// rather than a centipawn evaluation.
	winThreshold = valueMate - 1000 - 64
)

// lossIn gives a mate score that prefers shorter mates over longer ones: a checkmate found
// height plies from the node that reports it scores strictly worse (more negative, from the
// mated side's perspective) the smaller height is. height counts plies already played when
// the terminal position is reached, so a mate delivered by the very next move (height 1)
// scores -(valueMate-1000-1).
func lossIn(height int) int { return height - (valueMate - 1000) }

// searcher holds the state threaded through one fixed-depth search call: the board being
// searched (mutated in place by apply/unmake as recursion descends), the shared stop flag,
// and a node counter for reporting.
type searcher struct {
	b     *board.Board
	stop  *atomic.Bool
	nodes int64
}

func (s *searcher) stopped() bool { return s.stop != nil && s.stop.Load() }

// Run executes a negamax alpha-beta search from the root position in params, honoring
// params.Limits.Depth, params.Limits.SearchMoves, params.Limits.Infinite, and the stop flag.
// With Infinite set, it ignores Depth and iteratively deepens — one fixed-depth pass at a
// time, depth 1, 2, 3, ... — reporting progress after each completed pass, until stop is set.
// Otherwise it runs a single pass at Depth (or depth 1 if unset). The returned BestMove is
// always a legal move in the root position unless the root itself has none (or none of them
// survives the SearchMoves filter), matching the root
// guarantee: a pending stop never leaves the root without a candidate once at least one child
// has returned.
func Run(params Params, stop *atomic.Bool, progress func(Info)) Result {
	b := params.Board
	moves := b.GenerateLegalMoves()
	if len(params.Limits.SearchMoves) > 0 {
		moves = filterSearchMoves(moves, params.Limits.SearchMoves)
	}
	if len(moves) == 0 {
		return Result{}
	}
	board.Sort(moves)
	if len(moves) == 1 && len(params.Limits.SearchMoves) == 0 {
		return Result{BestMove: moves[0]}
	}

	s := &searcher{b: b, stop: stop}

	if params.Limits.Infinite {
		return s.runInfinite(moves, progress)
	}

	depth := params.Limits.Depth
	if depth <= 0 {
		depth = 1
	}
	result := s.runDepth(moves, depth)
	if progress != nil {
		progress(result.Info)
	}
	return result
}

// runInfinite iterates runDepth with ever-increasing depth, reporting progress after every
// completed pass, until the stop flag is set. It always completes at least one pass before
// checking stop, so the root-always-legal guarantee holds even if stop is already set when
// the search starts.
func (s *searcher) runInfinite(moves []board.Move, progress func(Info)) Result {
	var result Result
	for depth := 1; ; depth++ {
		result = s.runDepth(moves, depth)
		if progress != nil {
			progress(result.Info)
		}
		if s.stopped() {
			return result
		}
	}
}

// runDepth runs one fixed-depth pass over the root moves and returns the best one found.
func (s *searcher) runDepth(moves []board.Move, depth int) Result {
	best := moves[0]
	bestScore := -valueInfinity
	alpha := -valueInfinity
	const beta = valueInfinity
	var line []board.Move

	for _, m := range moves {
		snapshot := s.b.Apply(m)
		var childLine []board.Move
		score := -s.alphaBeta(-beta, -alpha, depth-1, 1, m.IsQuiet(), &childLine)
		s.b.Unmake(snapshot)

		if score > bestScore {
			bestScore = score
			best = m
			line = append([]board.Move{m}, childLine...)
			if score > alpha {
				alpha = score
			}
		}
		if s.stopped() {
			break
		}
	}

	info := Info{Depth: depth, Score: newUciScore(bestScore), Nodes: s.nodes, MainLine: line}
	result := Result{BestMove: best, Info: info}
	if len(line) > 1 {
		result.Ponder = line[1]
	}
	return result
}

func filterSearchMoves(moves []board.Move, want []board.Move) []board.Move {
	out := moves[:0:0]
	for _, m := range moves {
		for _, w := range want {
			if m.Equivalent(w) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// alphaBeta returns a score from the perspective of the side to move at the current node.
// height counts plies below the root, used only for mate-distance scoring. leadingQuiet
// reports whether the move that produced this node was quiet, deciding what happens when
// depth reaches zero: a quiet leading move returns the static score directly, a non-quiet one
// extends into quiescence.
func (s *searcher) alphaBeta(alpha, beta, depth, height int, leadingQuiet bool, pv *[]board.Move) int {
	s.nodes++
	if s.stopped() {
		return s.b.Material(s.b.WhiteToMove())
	}

	terminal, termScore := s.b.IsTerminal()
	if terminal {
		if termScore < 0 {
			return lossIn(height)
		}
		return valueDraw
	}

	if depth <= 0 {
		if leadingQuiet {
			return s.b.Material(s.b.WhiteToMove())
		}
		return s.quiescence(alpha, beta, quiescenceBudget, height)
	}

	bestScore := -valueInfinity
	s.b.EachLegalMove(func(m board.Move) bool {
		snapshot := s.b.Apply(m)
		var childLine []board.Move
		score := -s.alphaBeta(-beta, -alpha, depth-1, height+1, m.IsQuiet(), &childLine)
		s.b.Unmake(snapshot)

		if score > bestScore {
			bestScore = score
			if pv != nil {
				*pv = append([]board.Move{m}, childLine...)
			}
			if score > alpha {
				alpha = score
			}
		}
		return alpha < beta
	})
	return bestScore
}

// quiescence explores only non-quiet moves (captures, promotions, castling, check-related
// moves) past the nominal horizon, stand-patting on the static material score when no
// non-quiet move improves on it or the budget runs out.
func (s *searcher) quiescence(alpha, beta, depth, height int) int {
	s.nodes++
	if s.stopped() {
		return s.b.Material(s.b.WhiteToMove())
	}

	terminal, termScore := s.b.IsTerminal()
	if terminal {
		if termScore < 0 {
			return lossIn(height)
		}
		return valueDraw
	}

	// Stand-pat is taken unconditionally, even in check: a king in check has no quiet evasions
	// by construction (withCheckFlags marks every evasion non-quiet), so the move loop below
	// still searches all of them regardless of the stand-pat floor.
	standPat := s.b.Material(s.b.WhiteToMove())
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}
	if depth <= 0 {
		return alpha
	}

	s.b.EachLegalMove(func(m board.Move) bool {
		if m.IsQuiet() {
			return true
		}
		snapshot := s.b.Apply(m)
		score := -s.quiescence(-beta, -alpha, depth-1, height+1)
		s.b.Unmake(snapshot)

		if score > alpha {
			alpha = score
		}
		return alpha < beta
	})
	return alpha
}

func newUciScore(v int) UciScore {
	if v >= winThreshold {
		return UciScore{Mate: (valueMate - 1000 - v + 1) / 2}
	}
	if v <= -winThreshold {
		return UciScore{Mate: -(valueMate - 1000 + v) / 2}
	}
	return UciScore{Centipawns: v}
}
