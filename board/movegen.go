package board

import "sort"

// generatePseudoLegal appends pseudo-legal candidate moves to ml in the fixed staged order:
// pawns, knights, bishops, rooks, queens, king (including castling).
func (b *Board) generatePseudoLegal(ml []Move) []Move {
	white := b.whiteMove
	own, opp := b.white(), b.black()
	if !white {
		own, opp = opp, own
	}
	occ := b.occupied()
	empty := ^occ

	ml = b.genPawnMoves(ml, white, opp, empty)
	ml = b.genPieceMoves(ml, Knight, white, own, opp, occ)
	ml = b.genPieceMoves(ml, Bishop, white, own, opp, occ)
	ml = b.genPieceMoves(ml, Rook, white, own, opp, occ)
	ml = b.genPieceMoves(ml, Queen, white, own, opp, occ)
	ml = b.genKingMoves(ml, white, own, occ)
	return ml
}

func (b *Board) genPieceMoves(ml []Move, kind int, white bool, own, opp, occ uint64) []Move {
	for fromBB := b.pieces(kind, white); fromBB != 0; fromBB &= fromBB - 1 {
		from := FirstOne(fromBB)
		var targets uint64
		switch kind {
		case Knight:
			targets = knightAttacks[from]
		case Bishop:
			targets = bishopAttacks(from, occ)
		case Rook:
			targets = rookAttacks(from, occ)
		case Queen:
			targets = queenAttacks(from, occ)
		}
		targets &^= own
		for toBB := targets; toBB != 0; toBB &= toBB - 1 {
			to := FirstOne(toBB)
			m := newMove(from, to, kind, Empty)
			if sqMask(to)&opp != 0 {
				m = m.withCapture()
			}
			ml = append(ml, m)
		}
	}
	return ml
}

func (b *Board) genKingMoves(ml []Move, white bool, own, occ uint64) []Move {
	from := b.kingSquare(white)
	opp := b.white() | b.black()
	opp &^= own
	for toBB := kingAttacks[from] &^ own; toBB != 0; toBB &= toBB - 1 {
		to := FirstOne(toBB)
		m := newMove(from, to, King, Empty)
		if sqMask(to)&opp != 0 {
			m = m.withCapture()
		}
		ml = append(ml, m)
	}
	return b.genCastling(ml, white, occ)
}

func (b *Board) genCastling(ml []Move, white bool, occ uint64) []Move {
	var rights [2]int
	if white {
		rights = [2]int{0, 1}
	} else {
		rights = [2]int{2, 3}
	}
	for _, r := range rights {
		bit := uint8(1) << uint(r)
		if b.castling&bit == 0 {
			continue
		}
		if occ&castleEmptyMask[r] != 0 {
			continue
		}
		blocked := false
		for _, sq := range castleKingPath[r] {
			if b.isAttacked(sq, !white) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		side := CastleKingSide
		if r == 1 || r == 3 {
			side = CastleQueenSide
		}
		ml = append(ml, newMove(castleHomeKingSq[r], castlePostKingSq[r], King, Empty).withCastle(side))
	}
	return ml
}

func appendPromotions(ml []Move, from, to int, capture bool) []Move {
	for _, p := range [4]int{Queen, Rook, Bishop, Knight} {
		m := newMove(from, to, Pawn, p)
		if capture {
			m = m.withCapture()
		}
		ml = append(ml, m)
	}
	return ml
}

func (b *Board) genPawnMoves(ml []Move, white bool, opp, empty uint64) []Move {
	pawns := b.pieces(Pawn, white)
	if white {
		for fromBB := pawns; fromBB != 0; fromBB &= fromBB - 1 {
			from := FirstOne(fromBB)
			to := from + 8
			if Rank(from) != Rank7 {
				if sqMask(to)&empty != 0 {
					ml = append(ml, newMove(from, to, Pawn, Empty))
					if Rank(from) == Rank2 && sqMask(from+16)&empty != 0 {
						ml = append(ml, newMove(from, from+16, Pawn, Empty))
					}
				}
				if File(from) > FileA && sqMask(from+7)&opp != 0 {
					ml = append(ml, newMove(from, from+7, Pawn, Empty).withCapture())
				}
				if File(from) < FileH && sqMask(from+9)&opp != 0 {
					ml = append(ml, newMove(from, from+9, Pawn, Empty).withCapture())
				}
			} else {
				if sqMask(to)&empty != 0 {
					ml = appendPromotions(ml, from, to, false)
				}
				if File(from) > FileA && sqMask(from+7)&opp != 0 {
					ml = appendPromotions(ml, from, from+7, true)
				}
				if File(from) < FileH && sqMask(from+9)&opp != 0 {
					ml = appendPromotions(ml, from, from+9, true)
				}
			}
			if b.epSquare != SquareNone {
				if File(from) > FileA && from+7 == b.epSquare {
					ml = append(ml, newMove(from, from+7, Pawn, Empty).withEnPassant())
				}
				if File(from) < FileH && from+9 == b.epSquare {
					ml = append(ml, newMove(from, from+9, Pawn, Empty).withEnPassant())
				}
			}
		}
		return ml
	}

	for fromBB := pawns; fromBB != 0; fromBB &= fromBB - 1 {
		from := FirstOne(fromBB)
		to := from - 8
		if Rank(from) != Rank2 {
			if sqMask(to)&empty != 0 {
				ml = append(ml, newMove(from, to, Pawn, Empty))
				if Rank(from) == Rank7 && sqMask(from-16)&empty != 0 {
					ml = append(ml, newMove(from, from-16, Pawn, Empty))
				}
			}
			if File(from) > FileA && sqMask(from-9)&opp != 0 {
				ml = append(ml, newMove(from, from-9, Pawn, Empty).withCapture())
			}
			if File(from) < FileH && sqMask(from-7)&opp != 0 {
				ml = append(ml, newMove(from, from-7, Pawn, Empty).withCapture())
			}
		} else {
			if sqMask(to)&empty != 0 {
				ml = appendPromotions(ml, from, to, false)
			}
			if File(from) > FileA && sqMask(from-9)&opp != 0 {
				ml = appendPromotions(ml, from, from-9, true)
			}
			if File(from) < FileH && sqMask(from-7)&opp != 0 {
				ml = appendPromotions(ml, from, from-7, true)
			}
		}
		if b.epSquare != SquareNone {
			if File(from) > FileA && from-9 == b.epSquare {
				ml = append(ml, newMove(from, from-9, Pawn, Empty).withEnPassant())
			}
			if File(from) < FileH && from-7 == b.epSquare {
				ml = append(ml, newMove(from, from-7, Pawn, Empty).withEnPassant())
			}
		}
	}
	return ml
}

// EachLegalMove generates legal moves and invokes visit on each, stopping early if visit
// returns false. It returns the same boolean visit last returned, so callers can reuse it both
// to collect moves (always return true) and to answer "is there any legal move" (return false
// on the first).
//
// Legality is filtered by applying each pseudo-legal candidate to this Board, testing whether
// the mover's own king is attacked, and unmaking; the checking/unchecking flags are set from
// the same post-apply position before it is unmade, so a Move is only meaningful paired with
// the Board that produced it.
func (b *Board) EachLegalMove(visit func(Move) bool) bool {
	var buf [MaxMoves]Move
	pseudo := b.generatePseudoLegal(buf[:0])
	preCheck := b.InCheck()
	mover := b.whiteMove

	for _, pm := range pseudo {
		snapshot := b.Apply(pm)
		illegal := b.isAttacked(b.kingSquare(mover), !mover)
		var finalMove Move
		if !illegal {
			checking := b.isAttacked(b.kingSquare(!mover), mover)
			finalMove = pm.withCheckFlags(checking, preCheck)
		}
		b.Unmake(snapshot)

		if illegal {
			continue
		}
		if !visit(finalMove) {
			return false
		}
	}
	return true
}

// GenerateLegalMoves returns every legal move from the current position.
func (b *Board) GenerateLegalMoves() []Move {
	ml := make([]Move, 0, MaxMoves)
	b.EachLegalMove(func(m Move) bool {
		ml = append(ml, m)
		return true
	})
	return ml
}

// IsTerminal reports whether the side to move has no legal moves, and if so, the score from
// the side-to-move's perspective: -1 for checkmate, 0 for stalemate.
func (b *Board) IsTerminal() (terminal bool, score int) {
	hasMove := false
	b.EachLegalMove(func(Move) bool {
		hasMove = true
		return false
	})
	if hasMove {
		return false, 0
	}
	if b.InCheck() {
		return true, -1
	}
	return true, 0
}

// ParseUCI resolves a UCI long-algebraic move string against this Board's legal moves,
// comparing by (from, to, promotion) only (Move.Equivalent), so it accepts a bare LAN string
// without needing the checking/capture/castle flags the real Move carries.
func (b *Board) ParseUCI(s string) (Move, bool) {
	from, to, promotion, ok := ParseUCIMove(s)
	if !ok {
		return NoMove, false
	}
	want := newMove(from, to, Empty, promotion)
	var found Move
	hit := false
	b.EachLegalMove(func(m Move) bool {
		if m.Equivalent(want) {
			found, hit = m, true
			return false
		}
		return true
	})
	return found, hit
}

// moveOrderKey implements the advisory move-ordering hint: checking moves first, then
// unchecking, then captures, then promotions (queen, rook, bishop, knight), then castling,
// then everything else.
func moveOrderKey(m Move) int {
	switch {
	case m.IsChecking():
		return 0
	case m.IsUnchecking():
		return 10
	case m.IsCapture():
		return 20
	case m.IsPromotion():
		switch m.Promotion() {
		case Queen:
			return 30
		case Rook:
			return 31
		case Bishop:
			return 32
		default:
			return 33
		}
	case m.IsCastle():
		return 40
	default:
		return 50
	}
}

// Sort orders moves per moveOrderKey. Ordering is advisory only: search correctness does not
// depend on it, only its efficiency.
func Sort(moves []Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moveOrderKey(moves[i]) < moveOrderKey(moves[j])
	})
}
