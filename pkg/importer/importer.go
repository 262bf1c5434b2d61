package importer

import (
	"bufio"
	"context"
	"io"
	"iter"
	"os"

	"github.com/luketpeterson/n-best/pkg/record"
	"github.com/luketpeterson/n-best/tools/blacklist"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const maxLineSize = 1 << 20

// Importer reads records out of line oriented input. Records are numbered in
// the order they are read across every input of the importer.
type Importer struct {
	parser  record.Parser
	skip    *blacklist.Blacklist
	log     zerolog.Logger
	seq     uint64
	maxLine int
}

// New returns an importer parsing lines with p and dropping the lines
// matched by skip, which may be nil.
func New(p record.Parser, skip *blacklist.Blacklist, log zerolog.Logger) *Importer {
	return &Importer{parser: p, skip: skip, log: log, maxLine: maxLineSize}
}

// Records iterates over the records read from r. Lines which cannot be parsed
// or are longer than 1 MiB are logged and skipped. A read error or the
// cancellation of ctx is yielded last, with a zero record.
func (im *Importer) Records(ctx context.Context, r io.Reader, source string) iter.Seq2[record.Record, error] {
	return func(yield func(record.Record, error) bool) {
		br := bufio.NewReaderSize(r, 64*1024)

		lineNo := 0
		for {
			line, tooLong, err := readLine(br, im.maxLine)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(record.Record{}, errors.Wrapf(err, "reading %v", source))
				return
			}
			if err := ctx.Err(); err != nil {
				yield(record.Record{}, err)
				return
			}
			lineNo++

			if tooLong {
				im.log.Debug().Str("source", source).Int("line", lineNo).Int("limit", im.maxLine).Msg("skipping over-long line")
				continue
			}
			rec, ok := im.Parse(string(line), source, lineNo)
			if !ok {
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// readLine returns the next line without its terminator. Bytes past max are
// discarded and reported with tooLong. io.EOF is returned only when no byte
// is left.
func readLine(br *bufio.Reader, max int) (line []byte, tooLong bool, err error) {
	read := false
	for {
		chunk, rerr := br.ReadSlice('\n')
		read = read || len(chunk) > 0
		content := len(chunk)
		if rerr == nil {
			content--
		}
		if !tooLong {
			if len(line)+content > max {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk[:content]...)
			}
		}

		switch rerr {
		case bufio.ErrBufferFull:
			continue
		case nil:
			return line, tooLong, nil
		case io.EOF:
			if !read {
				return nil, false, io.EOF
			}
			return line, tooLong, nil
		default:
			return nil, false, rerr
		}
	}
}

// Parse builds the record of a single line, reporting false if the line is
// excluded or unparsable.
func (im *Importer) Parse(line, source string, lineNo int) (record.Record, bool) {
	if im.skip.Excludes(line) {
		return record.Record{}, false
	}

	rec, err := im.parser.Parse(line)
	if err != nil {
		if !errors.Is(err, record.ErrEmptyLine) {
			im.log.Debug().Err(err).Str("source", source).Int("line", lineNo).Msg("skipping line")
		}
		return record.Record{}, false
	}

	rec.Source = source
	rec.LineNo = lineNo
	rec.Seq = im.seq
	im.seq++
	return rec, true
}

// Open opens the file at path for Records.
func Open(path string) (*os.File, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, errors.Errorf("%v is a directory", path)
	}

	return os.Open(path)
}
