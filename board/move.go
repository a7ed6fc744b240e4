package board

import "strings"

// Piece kinds, colorless. These double as the white-side bitboard-array index (see
// bbIndex in board.go): Empty has no bitboard of its own, White pieces occupy slots 1..6.
const (
	Empty = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Castling side, as carried on a Move.
const (
	NoCastle = 0
	CastleKingSide = 1
	CastleQueenSide = 2
)

// Move is a packed 32-bit move value: from (6 bits), to (6 bits), promotion kind (3 bits),
// capture flag, en-passant flag, castling side (2 bits), moving-piece kind (3 bits),
// checking-move flag, unchecking-move flag, quiescence (non-quiet) marker.
//
// The checking/unchecking/quiescence flags are computed at generation time against the board
// that produced the move; a Move is only meaningful paired with that board and must never be
// cached or replayed against a different position.
type Move int32

const NoMove Move = 0

const (
	moveFromShift      = 0
	moveToShift        = 6
	movePromotionShift = 12
	moveCaptureShift   = 15
	moveEpShift        = 16
	moveCastleShift    = 17
	moveMovingShift    = 19
	moveCheckingShift  = 22
	moveUncheckShift   = 23
	moveQuiescentShift = 24

	moveFromMask      = 0x3F << moveFromShift
	moveToMask        = 0x3F << moveToShift
	movePromotionMask = 0x7 << movePromotionShift
	moveCastleMask    = 0x3 << moveCastleShift
	moveMovingMask    = 0x7 << moveMovingShift

	// comparableMask isolates from/to/promotion, the tuple used to compare a generated move
	// against a UCI long-algebraic move string for root searchMoves filtering.
	comparableMask = moveFromMask | moveToMask | movePromotionMask
)

func newMove(from, to, moving, promotion int) Move {
	return Move(from<<moveFromShift | to<<moveToShift | moving<<moveMovingShift | promotion<<movePromotionShift)
}

func (m Move) withCapture() Move  { return m | Move(1<<moveCaptureShift) }
func (m Move) withEnPassant() Move {
	return m | Move(1<<moveEpShift) | Move(1<<moveCaptureShift)
}
func (m Move) withCastle(side int) Move { return m | Move(side<<moveCastleShift) }

func (m Move) withCheckFlags(checking, uncheck bool) Move {
	if checking {
		m |= Move(1 << moveCheckingShift)
	}
	if uncheck {
		m |= Move(1 << moveUncheckShift)
	}
	if checking || uncheck || m.IsCapture() || m.IsPromotion() || m.IsCastle() {
		m |= Move(1 << moveQuiescentShift)
	}
	return m
}

func (m Move) From() int      { return int(m>>moveFromShift) & 0x3F }
func (m Move) To() int        { return int(m>>moveToShift) & 0x3F }
func (m Move) Promotion() int { return int(m>>movePromotionShift) & 0x7 }
func (m Move) MovingPiece() int { return int(m>>moveMovingShift) & 0x7 }
func (m Move) CastleSide() int  { return int(m>>moveCastleShift) & 0x3 }

func (m Move) IsCapture() bool    { return m&(1<<moveCaptureShift) != 0 }
func (m Move) IsEnPassant() bool  { return m&(1<<moveEpShift) != 0 }
func (m Move) IsPromotion() bool  { return m.Promotion() != Empty }
func (m Move) IsCastle() bool     { return m.CastleSide() != NoCastle }
func (m Move) IsChecking() bool   { return m&(1<<moveCheckingShift) != 0 }
func (m Move) IsUnchecking() bool { return m&(1<<moveUncheckShift) != 0 }

// IsQuiet reports whether the move should be skipped by the quiescence search: a move is
// non-quiet (tactical) if it captures, promotes, castles, gives check or escapes check.
func (m Move) IsQuiet() bool { return m&(1<<moveQuiescentShift) == 0 }

// Equivalent compares the significant portion of two moves: from, to and promotion only. This
// is the comparison UCI root searchMoves filtering and LAN parsing use.
func (m Move) Equivalent(other Move) bool {
	return m&comparableMask == other&comparableMask
}

func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := SquareName(m.From()) + SquareName(m.To())
	if p := m.Promotion(); p != Empty {
		s += string("  nbrq"[p])
	}
	return s
}

// ParseUCIMove parses UCI long-algebraic notation ("e2e4", "e7e8q", "0000") into the
// (from, to, promotion) tuple used for Equivalent comparisons. It does not validate the move
// against any board; callers match the result against generated moves to find the real Move
// value (with its check/capture/castle flags) or to detect an unknown move.
func ParseUCIMove(s string) (from, to, promotion int, ok bool) {
	if s == "0000" {
		return 0, 0, Empty, true
	}
	if len(s) < 4 {
		return 0, 0, 0, false
	}
	from = ParseSquare(s[0:2])
	to = ParseSquare(s[2:4])
	if from == SquareNone || to == SquareNone {
		return 0, 0, 0, false
	}
	promotion = Empty
	if len(s) >= 5 {
		switch s[4] {
		case 'n':
			promotion = Knight
		case 'b':
			promotion = Bishop
		case 'r':
			promotion = Rook
		case 'q':
			promotion = Queen
		default:
			return 0, 0, 0, false
		}
	}
	return from, to, promotion, true
}

func pieceLetter(kind int, white bool) byte {
	var letters = "-PNBRQK"
	c := letters[kind]
	if !white {
		c = byte(strings.ToLower(string(c))[0])
	}
	return c
}
