package uci

import (
	"bytes"
	"strings"
	"testing"
)

func runCommands(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	p := NewProtocol(&out)
	p.Run(strings.NewReader(strings.Join(lines, "\n") + "\nquit\n"))
	return out.String()
}

func TestUciCommandAnnouncesIdentity(t *testing.T) {
	out := runCommands(t, "uci")
	if !strings.Contains(out, "id name "+engineName) {
		t.Fatalf("missing id name line in output: %q", out)
	}
	if !strings.Contains(out, "uciok") {
		t.Fatalf("missing uciok in output: %q", out)
	}
}

func TestIsReadyRespondsReadyOk(t *testing.T) {
	out := runCommands(t, "isready")
	if strings.TrimSpace(out) != "readyok" {
		t.Fatalf("output = %q, want readyok", out)
	}
}

func TestPositionStartposThenGoReportsBestMove(t *testing.T) {
	out := runCommands(t, "position startpos", "go depth 1")
	if !strings.Contains(out, "bestmove ") {
		t.Fatalf("missing bestmove line: %q", out)
	}
}

func TestPositionWithMovesAppliesThemBeforeSearch(t *testing.T) {
	out := runCommands(t,
		"position startpos moves e2e4 e7e5",
		"go depth 1",
	)
	if !strings.Contains(out, "bestmove ") {
		t.Fatalf("missing bestmove line: %q", out)
	}
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	out := runCommands(t, "position startpos moves e2e5")
	if !strings.Contains(out, "info string") {
		t.Fatalf("expected an info string reporting the illegal move, got %q", out)
	}
}

func TestPositionKeepsMovesAppliedBeforeAnIllegalOne(t *testing.T) {
	// e2e4 is legal and should stick; e2e5 is not and should only stop further moves from
	// being applied, not roll back the base position or the moves already played.
	out := runCommands(t, "position startpos moves e2e4 e2e5", "d")
	if !strings.Contains(out, "info string") {
		t.Fatalf("expected an info string reporting the illegal move, got %q", out)
	}
	if !strings.Contains(out, "Fen: ") {
		t.Fatalf("missing Fen line from d command: %q", out)
	}
	if !strings.Contains(out, " b ") {
		t.Fatalf("e2e4 should have been applied (black to move), got %q", out)
	}
}

func TestStopWithNoSearchRunningIsHarmless(t *testing.T) {
	out := runCommands(t, "stop")
	if strings.TrimSpace(out) != "" {
		t.Fatalf("unexpected output from a no-op stop: %q", out)
	}
}

func TestUnknownCommandReportsInfoString(t *testing.T) {
	out := runCommands(t, "bogus")
	if !strings.Contains(out, "info string") {
		t.Fatalf("expected an info string for an unknown command, got %q", out)
	}
}
