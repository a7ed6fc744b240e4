package uci

import (
	"fmt"
	"io"
	"sync"
)

// syncWriter serializes writes from multiple goroutines onto a single io.Writer, matching
// the concurrency model's requirement that stdout output (bestmove/info lines) never
// interleaves mid-line even though the search goroutine and the command loop both write.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSyncWriter(w io.Writer) *syncWriter {
	return &syncWriter{w: w}
}

func (s *syncWriter) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}

func (s *syncWriter) println(args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, args...)
}

func (s *syncWriter) infoString(msg string) {
	s.println("info string " + msg)
}
