// Package uci implements the text command loop that speaks the Universal Chess Interface
// over stdio: position setup, search requests, cancellation, and info/bestmove reporting.
// It is the sole owner of the Board during the "position" and "go" commands and the sole
// caller into the search package; the core (board, search) performs no I/O of its own.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ngrigoriev/gochess/board"
	"github.com/ngrigoriev/gochess/search"
)

const (
	engineName    = "gochess"
	engineVersion = "1.0"
	engineAuthor  = "gochess contributors"
)

// Protocol drives the read-eval loop: one command at a time, dispatched to a handler, with
// all output serialized through a shared syncWriter.
type Protocol struct {
	out    *syncWriter
	b      *board.Board
	worker search.Worker
	fields []string
}

// NewProtocol constructs a Protocol with the standard starting position and out as its
// output stream. Call Run with the input stream to start the command loop.
func NewProtocol(out io.Writer) *Protocol {
	b, _ := board.NewBoard(board.InitialPositionFEN)
	return &Protocol{out: newSyncWriter(out), b: b}
}

// Run reads UCI commands from in line by line until "quit" or end of input, stopping any
// outstanding search before returning.
func (p *Protocol) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "quit" {
			break
		}
		if err := p.handle(line); err != nil {
			p.out.infoString(err.Error())
		}
	}
	if p.worker.IsRunning() {
		p.worker.Stop()
		p.worker.Wait()
	}
}

func (p *Protocol) handle(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command := fields[0]
	p.fields = fields[1:]

	if command == "stop" {
		p.worker.Stop()
		return nil
	}
	if p.worker.IsRunning() {
		return errors.New("search still running")
	}

	switch command {
	case "uci":
		return p.uciCommand()
	case "isready":
		p.out.println("readyok")
		return nil
	case "setoption":
		return nil
	case "ucinewgame":
		b, err := board.NewBoard(board.InitialPositionFEN)
		if err != nil {
			return err
		}
		p.b = b
		return nil
	case "position":
		return p.positionCommand()
	case "go":
		return p.goCommand()
	case "d":
		p.out.println(renderBoard(p.b))
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (p *Protocol) uciCommand() error {
	p.out.printf("id name %s %s\n", engineName, engineVersion)
	p.out.printf("id author %s\n", engineAuthor)
	p.out.println("uciok")
	return nil
}

func (p *Protocol) positionCommand() error {
	args := p.fields
	if len(args) == 0 {
		return errors.New("position: missing argument")
	}

	movesIndex := indexOf(args, "moves")
	var fen string
	switch args[0] {
	case "startpos":
		fen = board.InitialPositionFEN
	case "fen":
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	default:
		return errors.New("position: expected startpos or fen")
	}

	b, err := board.NewBoard(fen)
	if err != nil {
		return err
	}
	p.b = b

	if movesIndex >= 0 {
		for _, lan := range args[movesIndex+1:] {
			m, ok := b.ParseUCI(lan)
			if !ok {
				return fmt.Errorf("position: illegal move %q, stopped applying moves", lan)
			}
			b.Apply(m)
		}
	}

	return nil
}

func (p *Protocol) goCommand() error {
	limits, searchMoveStrings := parseLimits(p.fields)

	if len(searchMoveStrings) > 0 {
		legal := p.b.GenerateLegalMoves()
		var filtered []board.Move
		for _, lan := range searchMoveStrings {
			from, to, promotion, ok := board.ParseUCIMove(lan)
			if !ok {
				return fmt.Errorf("go: malformed searchmoves entry %q", lan)
			}
			for _, m := range legal {
				if m.From() == from && m.To() == to && m.Promotion() == promotion {
					filtered = append(filtered, m)
					break
				}
			}
		}
		limits.SearchMoves = filtered
	}

	params := search.Params{Board: p.b, Limits: limits}

	p.worker.Start(params,
		func(info search.Info) { printSearchInfo(p.out, info) },
		func(result search.Result) {
			printSearchInfo(p.out, result.Info)
			if result.BestMove == board.NoMove {
				p.out.println("bestmove 0000")
				return
			}
			if result.Ponder != board.NoMove {
				p.out.printf("bestmove %v ponder %v\n", result.BestMove, result.Ponder)
				return
			}
			p.out.printf("bestmove %v\n", result.BestMove)
		},
	)
	return nil
}

func printSearchInfo(out *syncWriter, info search.Info) {
	var score string
	if info.Score.Mate != 0 {
		score = fmt.Sprintf("mate %d", info.Score.Mate)
	} else {
		score = fmt.Sprintf("cp %d", info.Score.Centipawns)
	}
	var pv strings.Builder
	for i, m := range info.MainLine {
		if i > 0 {
			pv.WriteString(" ")
		}
		pv.WriteString(m.String())
	}
	out.printf("info depth %d score %s nodes %d pv %s\n", info.Depth, score, info.Nodes, pv.String())
}

func parseLimits(args []string) (search.LimitsType, []string) {
	var limits search.LimitsType
	var searchMoves []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "ponder":
			limits.Ponder = true
		case "infinite":
			limits.Infinite = true
		case "wtime":
			limits.WhiteTime, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "btime":
			limits.BlackTime, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "winc":
			limits.WhiteIncrement, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "binc":
			limits.BlackIncrement, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "movestogo":
			limits.MovesToGo, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "depth":
			limits.Depth, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "nodes":
			limits.Nodes, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "mate":
			limits.Mate, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "movetime":
			limits.MoveTime, _ = strconv.Atoi(arg(args, i+1))
			i++
		case "searchmoves":
			for j := i + 1; j < len(args); j++ {
				searchMoves = append(searchMoves, args[j])
			}
			i = len(args)
		}
	}
	return limits, searchMoves
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func indexOf(args []string, value string) int {
	for i, v := range args {
		if v == value {
			return i
		}
	}
	return -1
}
