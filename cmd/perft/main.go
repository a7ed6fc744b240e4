// perft is a correctness harness for the move generator: it runs board.Perft over one
// position (optionally reported per root move with -divide) or a batch of EPD lines read
// from a file, fanning the
// batch out across worker goroutines.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/ngrigoriev/gochess/board"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		fen      = flag.String("fen", board.InitialPositionFEN, "position to run perft against")
		depth    = flag.Int("depth", 5, "perft depth")
		divide   = flag.Bool("divide", false, "report per-root-move leaf counts")
		epdFile  = flag.String("epd", "", "EPD file of '<fen> ;D<depth> <nodes> ...' lines to verify in batch")
		parallel = flag.Int("parallel", runtime.NumCPU(), "worker goroutines for -epd batch mode")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	if *epdFile != "" {
		if err := runBatch(context.Background(), logger, *epdFile, *parallel); err != nil {
			logger.Fatal(err)
		}
		return
	}

	b, err := board.NewBoard(*fen)
	if err != nil {
		logger.Fatal(err)
	}

	if *divide {
		for _, e := range board.PerftDivide(b, *depth) {
			fmt.Printf("%v: %d\n", e.Move, e.Nodes)
		}
		return
	}

	fmt.Println(board.Perft(b, *depth))
}

// epdCase is one line of the batch file: a position and the expected leaf count at each
// depth the line lists.
type epdCase struct {
	fen    string
	depths map[int]int64
}

type caseResult struct {
	epdCase epdCase
	depth   int
	want    int64
	got     int64
}

func runBatch(ctx context.Context, logger *log.Logger, path string, parallel int) error {
	cases, err := readEpdFile(path)
	if err != nil {
		return err
	}
	logger.Println("perft batch started", "cases", len(cases), "parallel", parallel)

	g, ctx := errgroup.WithContext(ctx)
	work := make(chan epdCase)
	results := make(chan caseResult)

	g.Go(func() error {
		defer close(work)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case work <- c:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return verifyCases(ctx, work, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var failures int
	g.Go(func() error {
		for r := range results {
			if r.got != r.want {
				failures++
				logger.Printf("FAIL %q depth=%d want=%d got=%d", r.epdCase.fen, r.depth, r.want, r.got)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Println("perft batch finished", "failures", failures)
	if failures > 0 {
		return fmt.Errorf("%d perft case(s) failed", failures)
	}
	return nil
}

func verifyCases(ctx context.Context, work <-chan epdCase, results chan<- caseResult) error {
	for c := range work {
		b, err := board.NewBoard(c.fen)
		if err != nil {
			return fmt.Errorf("perft: %q: %w", c.fen, err)
		}
		for depth, want := range c.depths {
			got := board.Perft(b, depth)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case results <- caseResult{epdCase: c, depth: depth, want: want, got: got}:
			}
		}
	}
	return nil
}

// readEpdFile parses lines of the form:
//
//	<fen fields> ;D1 20 ;D2 400 ;D3 8902
//
// Blank lines and lines starting with '#' are skipped.
func readEpdFile(path string) ([]epdCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []epdCase
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := parseEpdLine(line)
		if err != nil {
			return nil, fmt.Errorf("perft: %s: %w", path, err)
		}
		cases = append(cases, c)
	}
	return cases, scanner.Err()
}

func parseEpdLine(line string) (epdCase, error) {
	parts := strings.Split(line, ";")
	fen := strings.TrimSpace(parts[0])
	depths := map[int]int64{}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" || p[0] != 'D' {
			continue
		}
		fields := strings.Fields(p)
		if len(fields) != 2 {
			return epdCase{}, fmt.Errorf("malformed depth field %q", p)
		}
		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil {
			return epdCase{}, fmt.Errorf("malformed depth field %q: %w", p, err)
		}
		nodes, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return epdCase{}, fmt.Errorf("malformed node count %q: %w", p, err)
		}
		depths[depth] = nodes
	}
	if len(depths) == 0 {
		return epdCase{}, fmt.Errorf("no depth fields in line %q", line)
	}
	return epdCase{fen: fen, depths: depths}, nil
}
