package punch

import (
	"fmt"
	"strings"

	"github.com/edp1096/pchmat/internal/consts"
)

type Kind int

const (
	KindOther       Kind = iota
	KindScalarPoint      // SPOINT
	KindHeader           // DMIG
	KindColumn           // DMIG*
	KindEntry            // *
)

func (k Kind) String() string {
	switch k {
	case KindScalarPoint:
		return consts.SPOINT
	case KindHeader:
		return consts.DMIG
	case KindColumn:
		return consts.DMIGStar
	case KindEntry:
		return consts.Continuation
	default:
		return "OTHER"
	}
}

// Record is one whitespace-tokenized line of a punch file. Fields holds the
// tokens after the leading record token.
type Record struct {
	Kind   Kind
	Line   int // 1-based, 0 when not read from a file
	Fields []string
}

// Classify tokenizes a raw line and identifies its record kind by the first
// token. Matching is exact: "DMIG" and "DMIG*" are distinct records and a
// lone "*" is the only continuation marker.
func Classify(line string) Record {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Record{Kind: KindOther}
	}

	var kind Kind
	switch tokens[0] {
	case consts.SPOINT:
		kind = KindScalarPoint
	case consts.DMIG:
		kind = KindHeader
	case consts.DMIGStar:
		kind = KindColumn
	case consts.Continuation:
		kind = KindEntry
	default:
		kind = KindOther
	}

	return Record{Kind: kind, Fields: tokens[1:]}
}

// Token returns field i or an ErrFormat naming what was expected there.
func (r Record) Token(i int, what string) (string, error) {
	if i < 0 || i >= len(r.Fields) {
		return "", r.errorf("missing %s", what)
	}
	return r.Fields[i], nil
}

// Last returns the final field of the record.
func (r Record) Last(what string) (string, error) {
	return r.Token(len(r.Fields)-1, what)
}

// Int parses field i as a non-negative integer.
func (r Record) Int(i int, what string) (int, error) {
	tok, err := r.Token(i, what)
	if err != nil {
		return 0, err
	}
	v, err := ParseID(tok)
	if err != nil {
		return 0, r.errorf("invalid %s %q", what, tok)
	}
	return v, nil
}

// Float parses field i as a punch floating-point literal.
func (r Record) Float(i int, what string) (float64, error) {
	tok, err := r.Token(i, what)
	if err != nil {
		return 0, err
	}
	v, err := ParseValue(tok)
	if err != nil {
		return 0, r.errorf("invalid %s %q", what, tok)
	}
	return v, nil
}

func (r Record) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if r.Line > 0 {
		return fmt.Errorf("line %d: %s %s: %w", r.Line, r.Kind, msg, ErrFormat)
	}
	return fmt.Errorf("%s %s: %w", r.Kind, msg, ErrFormat)
}
