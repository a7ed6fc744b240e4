package uci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ngrigoriev/gochess/board"
)

const (
	whiteKing   = "♔"
	whiteQueen  = "♕"
	whiteRook   = "♖"
	whiteBishop = "♗"
	whiteKnight = "♘"
	whitePawn   = "♙"
	blackKing   = "♚"
	blackQueen  = "♛"
	blackRook   = "♜"
	blackBishop = "♝"
	blackKnight = "♞"
	blackPawn   = "♟"
)

const (
	fgBlack = iota + 30
)

const (
	bgBlack = iota + 40
	bgRed
	bgGreen
	bgYellow
	bgBlue
	bgMagenta
	bgCyan
	bgWhite
)

const (
	bgHiBlack = iota + 100
	bgHiRed
	bgHiGreen
	bgHiYellow
	bgHiBlue
	bgHiMagenta
	bgHiCyan
	bgHiWhite
)

var chessSymbols = [2][7]string{
	{" ", whitePawn, whiteKnight, whiteBishop, whiteRook, whiteQueen, whiteKing},
	{" ", blackPawn, blackKnight, blackBishop, blackRook, blackQueen, blackKing},
}

// renderBoard draws b as an 8x8 grid of Unicode chess symbols on alternating background
// colors, for the "d" debug command.
func renderBoard(b *board.Board) string {
	var sb strings.Builder
	for rank := board.Rank8; rank >= board.Rank1; rank-- {
		for file := board.FileA; file <= board.FileH; file++ {
			sq := rank*8 + file
			kind, white := b.PieceAt(sq)
			sb.WriteString(pieceString(kind, white, isDarkSquare(file, rank)))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Fen: %s\n", b.String())
	return sb.String()
}

func isDarkSquare(file, rank int) bool {
	return (file+rank)%2 == 0
}

func pieceString(kind int, white bool, darkSquare bool) string {
	var s string
	if white {
		s = chessSymbols[0][kind]
	} else {
		s = chessSymbols[1][kind]
	}
	s += " "
	const fgColor = fgBlack
	var bgColor int
	if darkSquare {
		bgColor = bgWhite
	} else {
		bgColor = bgHiWhite
	}
	const escape = "\x1b"
	const reset = 0
	return fmt.Sprintf("%s[%s;%sm%s%s[%dm",
		escape, strconv.Itoa(fgColor), strconv.Itoa(bgColor), s, escape, reset)
}
