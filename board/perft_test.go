package board

import "testing"

// Ground truths from the standard perft reference positions.
func TestPerftStartPosition(t *testing.T) {
	cases := []struct {
		depth int
		nodes int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		b, err := NewBoard(InitialPositionFEN)
		if err != nil {
			t.Fatalf("NewBoard: %v", err)
		}
		if got := Perft(b, c.depth); got != c.nodes {
			t.Errorf("perft(start, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := NewBoard(kiwipete)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if got := Perft(b, 1); got != 48 {
		t.Errorf("perft(kiwipete, 1) = %d, want 48", got)
	}
	if got := Perft(b, 2); got != 2039 {
		t.Errorf("perft(kiwipete, 2) = %d, want 2039", got)
	}
	if got := Perft(b, 3); got != 97862 {
		t.Errorf("perft(kiwipete, 3) = %d, want 97862", got)
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	b, err := NewBoard(InitialPositionFEN)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	entries := PerftDivide(b, 3)
	var sum int64
	for _, e := range entries {
		sum += e.Nodes
	}
	if want := Perft(b, 3); sum != want {
		t.Fatalf("divide sum = %d, want %d", sum, want)
	}
	if len(entries) != 20 {
		t.Fatalf("divide produced %d root entries, want 20", len(entries))
	}
}
