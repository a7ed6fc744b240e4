package board

// castleRightsClear clears a color's castling rights whenever its king moves, its rook leaves
// a home corner, or a home corner is captured. Index by origin/destination square; a touch of
// either clears the matching bits (home corners are fixed: a1,h1,a8,h8; king squares e1,e8).
var castleRightsClear [64]uint8

func init() {
	for i := range castleRightsClear {
		castleRightsClear[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleRightsClear[SquareE1] &^= WhiteKingSide | WhiteQueenSide
	castleRightsClear[SquareH1] &^= WhiteKingSide
	castleRightsClear[SquareA1] &^= WhiteQueenSide
	castleRightsClear[SquareE8] &^= BlackKingSide | BlackQueenSide
	castleRightsClear[SquareH8] &^= BlackKingSide
	castleRightsClear[SquareA8] &^= BlackQueenSide
}

// Snapshot captures the current Board state by value.
func (b *Board) Snapshot() State { return State(*b) }

// Unmake restores the Board from a snapshot taken before some sequence of Apply calls.
func (b *Board) Unmake(s State) { *b = Board(s) }

// Apply mutates the Board by playing move, which must have been produced by this Board's own
// generator (its check/uncheck flags are meaningless otherwise). It returns a snapshot taken
// before the move so the caller can later Unmake it.
func (b *Board) Apply(move Move) State {
	snapshot := b.Snapshot()
	b.apply(move)
	return snapshot
}

func (b *Board) apply(m Move) {
	from, to := m.From(), m.To()
	moving := m.MovingPiece()
	white := b.whiteMove

	// 1. Lift the moving piece from its origin.
	b.liftPiece(moving, white, from)

	capturedIdx := Empty
	if m.IsEnPassant() {
		// 3. The captured pawn sits one rank behind the ep target, and the square it
		// occupied becomes empty (nothing replaces it), so it is lifted, not placed-over.
		epCaptureSq := to - 8
		if !white {
			epCaptureSq = to + 8
		}
		b.liftPiece(Pawn, !white, epCaptureSq)
	} else if m.IsCapture() {
		capturedIdx = b.bbIndexAt(to)
	}

	// 2. Place the moved (or promoted) piece on the destination, folding in the capture.
	if promo := m.Promotion(); promo != Empty {
		b.placePiece(promo, white, to, capturedIdx)
	} else {
		b.placePiece(moving, white, to, capturedIdx)
	}

	// 4. Castling also relocates the rook.
	if m.IsCastle() {
		if white {
			if to == SquareG1 {
				b.movePiece(Rook, true, SquareH1, SquareF1)
			} else {
				b.movePiece(Rook, true, SquareA1, SquareD1)
			}
		} else {
			if to == SquareG8 {
				b.movePiece(Rook, false, SquareH8, SquareF8)
			} else {
				b.movePiece(Rook, false, SquareA8, SquareD8)
			}
		}
	}

	// 5. En-passant target: set on a two-square pawn push, cleared otherwise.
	b.epSquare = SquareNone
	if moving == Pawn {
		if white && to == from+16 {
			b.epSquare = from + 8
		} else if !white && to == from-16 {
			b.epSquare = from - 8
		}
	}

	// 6. Castling rights: clear on king move, rook move, or rook capture at a home corner.
	b.castling &= castleRightsClear[from] & castleRightsClear[to]

	// 7. Side to move, fullmove number, halfmove clock.
	b.whiteMove = !white
	if b.whiteMove {
		b.fullmove++
	}
	if moving == Pawn || capturedIdx != Empty {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
}
