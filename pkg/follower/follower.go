// Package follower keeps the best records of a growing file up to date.
package follower

import (
	"bytes"
	"context"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/luketpeterson/n-best/pkg/importer"
	"github.com/luketpeterson/n-best/pkg/nbest"
	"github.com/luketpeterson/n-best/pkg/record"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Follower feeds the lines appended to a file into an nbest collector.
type Follower struct {
	path     string
	ordering func(a, b record.Record) int
	importer *importer.Importer
	log      zerolog.Logger

	// OnUpdate, if set, receives the best records, best first, each time new
	// lines have been read. It is called from the goroutine running Run.
	OnUpdate func(best []record.Record)

	lock    sync.Mutex
	best    *nbest.NBest[record.Record]
	offset  int64
	lineNo  int
	partial []byte
}

// New returns a follower keeping the capacity best records of the file at
// path.
func New(path string, capacity int, ordering func(a, b record.Record) int, im *importer.Importer, log zerolog.Logger) *Follower {
	return &Follower{
		path:     path,
		ordering: ordering,
		importer: im,
		log:      log.With().Str("file", path).Logger(),
		best:     nbest.New(capacity, ordering),
	}
}

// Run reads the current content of the file, then follows it until ctx is
// done.
func (f *Follower) Run(ctx context.Context) error {
	w, err := newWatcher(f.path)
	if err != nil {
		return errors.Wrap(err, "could not watch file")
	}
	defer w.Close()

	if err := f.catchUp(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !w.concerns(event) {
				continue
			}

			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				if err := f.catchUp(); err != nil {
					f.log.Warn().Err(err).Msg("could not read appended lines")
				}
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				f.log.Info().Msg("file removed, waiting for it to reappear")
				f.rewind()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.log.Error().Err(err).Msg("watcher error")
		}
	}
}

// Snapshot returns the records currently retained, best first, without
// consuming the collector.
func (f *Follower) Snapshot() []record.Record {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.snapshot()
}

// Result consumes the follower and returns the retained records, best first.
// Run must have returned.
func (f *Follower) Result() []record.Record {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.best.IntoSorted()
}

func (f *Follower) snapshot() []record.Record {
	best := slices.Collect(f.best.All())
	slices.SortFunc(best, nbest.Reverse(f.ordering))
	return best
}

// rewind forgets everything read so far, the file is read again from the
// start on the next catchUp.
func (f *Follower) rewind() {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.best = nbest.New(f.best.Cap(), f.ordering)
	f.offset = 0
	f.lineNo = 0
	f.partial = nil
}

// catchUp reads everything appended since the previous call.
func (f *Follower) catchUp() error {
	file, err := os.Open(f.path)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() < f.offset {
		f.log.Info().Int64("size", stat.Size()).Msg("file truncated, reading from start")
		f.rewind()
	}

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	f.lock.Lock()
	f.offset += int64(len(data))
	pushed := f.consume(data)
	var best []record.Record
	if pushed > 0 && f.OnUpdate != nil {
		best = f.snapshot()
	}
	f.lock.Unlock()

	f.log.Debug().Int("records", pushed).Int64("offset", f.offset).Msg("read appended lines")
	if best != nil {
		f.OnUpdate(best)
	}
	return nil
}

// consume pushes every complete line of data, keeping an unterminated tail for
// the next call. The lock must be held.
func (f *Follower) consume(data []byte) int {
	data = append(f.partial, data...)
	pushed := 0
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := string(data[:i])
		data = data[i+1:]
		f.lineNo++

		if rec, ok := f.importer.Parse(line, f.path, f.lineNo); ok {
			f.best.Push(rec)
			pushed++
		}
	}
	f.partial = slices.Clone(data)
	return pushed
}
