package punch

import (
	"bufio"
	"fmt"
	"io"

	"github.com/edp1096/pchmat/internal/consts"
)

// Scanner reads a punch stream record by record.
type Scanner struct {
	sc   *bufio.Scanner
	line int
	rec  Record
}

func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), consts.MaxLineSize)
	return &Scanner{sc: sc}
}

// Scan advances to the next line. It returns false at end of input or on a
// read error, which is then reported by Err.
func (s *Scanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.line++
	s.rec = Classify(s.sc.Text())
	s.rec.Line = s.line
	return true
}

func (s *Scanner) Record() Record {
	return s.rec
}

func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) Err() error {
	if err := s.sc.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w: %w", s.line+1, ErrIO, err)
	}
	return nil
}
