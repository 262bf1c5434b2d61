// Package record turns input lines into rankable records and builds the
// orderings used to rank them.
package record

import (
	"strconv"
	"strings"

	"github.com/luketpeterson/n-best/tools/text"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyLine is returned for lines holding only white space.
	ErrEmptyLine = errors.New("empty line")
	// ErrNoField is returned when the line has fewer columns than requested.
	ErrNoField = errors.New("field out of range")
	// ErrNotNumeric is returned when a numeric key cannot be parsed.
	ErrNotNumeric = errors.New("key is not a number")
)

// Record is a single ranked input line
type Record struct {
	Text   string
	Key    string
	Score  float64
	Source string
	LineNo int
	Seq    uint64
}

// Parser extracts the ranking key of a line.
type Parser struct {
	// Field selects the key column, counted from 1. Zero uses the whole line
	// and negative values count from the last column.
	Field int
	// Separator splits columns. Empty splits on runs of white space.
	Separator string
	// Numeric parses the key as a float64 into Score.
	Numeric bool
	// Normalize folds case, accents and punctuation out of text keys.
	Normalize bool
}

// Parse builds a record from line. Source, LineNo and Seq are left for the
// caller to fill.
func (p Parser) Parse(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Record{}, ErrEmptyLine
	}

	key, err := p.field(line)
	if err != nil {
		return Record{}, err
	}

	r := Record{Text: line, Key: key}
	if p.Numeric {
		r.Score, err = strconv.ParseFloat(key, 64)
		if err != nil {
			return Record{}, errors.Wrapf(ErrNotNumeric, "%q", key)
		}
	} else if p.Normalize {
		r.Key = text.Fold(key)
	}

	return r, nil
}

func (p Parser) field(line string) (string, error) {
	if p.Field == 0 {
		return strings.TrimSpace(line), nil
	}

	var cols []string
	if p.Separator == "" {
		cols = strings.Fields(line)
	} else {
		cols = strings.Split(line, p.Separator)
	}

	i := p.Field - 1
	if p.Field < 0 {
		i = len(cols) + p.Field
	}
	if i < 0 || i >= len(cols) {
		return "", errors.Wrapf(ErrNoField, "field %d of %d", p.Field, len(cols))
	}
	return strings.TrimSpace(cols[i]), nil
}
