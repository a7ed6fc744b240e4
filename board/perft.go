package board

// Perft counts legal leaves at the given depth: perft(0) = 1, perft(d) = sum of perft(d-1)
// over every legal move. Used solely as a correctness harness for the generator and
// make/unmake; not part of the search hot path.
func Perft(b *Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var count int64
	b.EachLegalMove(func(m Move) bool {
		snapshot := b.Apply(m)
		count += Perft(b, depth-1)
		b.Unmake(snapshot)
		return true
	})
	return count
}

// DivideEntry is one root move's contribution to a PerftDivide call.
type DivideEntry struct {
	Move  Move
	Nodes int64
}

// PerftDivide runs perft from the root one move at a time, reporting the leaf count
// contributed by each root move. Depth must be >= 1.
func PerftDivide(b *Board, depth int) []DivideEntry {
	var entries []DivideEntry
	b.EachLegalMove(func(m Move) bool {
		snapshot := b.Apply(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: Perft(b, depth-1)})
		b.Unmake(snapshot)
		return true
	})
	return entries
}
