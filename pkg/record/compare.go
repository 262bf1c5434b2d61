package record

import (
	"cmp"

	"github.com/luketpeterson/n-best/pkg/nbest"
	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Options selects how records are ranked.
type Options struct {
	Numeric bool
	// Ascending ranks smaller keys as better. The default keeps the largest.
	Ascending bool
	// Locale is the BCP 47 tag used to collate text keys.
	Locale string
}

// Comparator returns the ordering of records for an nbest collector: a
// positive result means a ranks above b. Records with equal keys rank by
// input order, earlier first.
//
// The returned function is not safe for concurrent use.
func Comparator(opts Options) (func(a, b Record) int, error) {
	byKey := func(a, b Record) int { return cmp.Compare(a.Score, b.Score) }
	if !opts.Numeric {
		tag := language.Und
		if opts.Locale != "" {
			var err error
			if tag, err = language.Parse(opts.Locale); err != nil {
				return nil, errors.Wrapf(err, "invalid locale %q", opts.Locale)
			}
		}
		col := collate.New(tag)
		byKey = func(a, b Record) int { return col.CompareString(a.Key, b.Key) }
	}
	if opts.Ascending {
		byKey = nbest.Reverse(byKey)
	}

	return func(a, b Record) int {
		if c := byKey(a, b); c != 0 {
			return c
		}
		return cmp.Compare(b.Seq, a.Seq)
	}, nil
}
