// Package search ranks records against a free text query with BM25, keeping
// only the best results.
package search

import (
	"cmp"
	"container/heap"
	"math"
	"strings"

	"github.com/luketpeterson/n-best/pkg/nbest"
	"github.com/luketpeterson/n-best/pkg/record"
	"github.com/luketpeterson/n-best/tools/text"
)

const (
	k1 float64 = 1.2
	b  float64 = 0.75
)

// Engine is an in-memory inverted index over records
type Engine struct {
	docs        []record.Record
	lengths     []uint32
	totalLength uint64
	postings    map[string][]posting
}

// Result type
type Result struct {
	Record record.Record
	Score  float64
}

// NewEngine creates an empty search engine
func NewEngine() *Engine {
	return &Engine{postings: make(map[string][]posting)}
}

// Add indexes the text of a record
func (e *Engine) Add(r record.Record) {
	id := uint32(len(e.docs))
	words := strings.Fields(text.Normalize(r.Text))

	freqs := make(map[string]uint32)
	var order []string
	for _, w := range words {
		if freqs[w] == 0 {
			order = append(order, w)
		}
		freqs[w]++
	}
	for _, w := range order {
		e.postings[w] = append(e.postings[w], posting{doc: id, frequency: freqs[w]})
	}

	e.docs = append(e.docs, r)
	e.lengths = append(e.lengths, uint32(len(words)))
	e.totalLength += uint64(len(words))
}

// NumDocs returns the number of indexed records
func (e *Engine) NumDocs() int {
	return len(e.docs)
}

// Search returns the n records scoring best against the query, best first.
// Records which do not contain any query term are never returned.
func (e *Engine) Search(query string, n int) []Result {
	terms := e.initQuery(query)
	if len(terms) == 0 {
		return nil
	}

	results := nbest.New(n, func(a, b Result) int {
		if c := cmp.Compare(a.Score, b.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.Record.Seq, a.Record.Seq)
	})
	var removedTerms []*term
	var removedScore float64

	for len(terms) > 0 {
		doc := terms[0].current().doc
		score := 0.0
		for len(terms) > 0 && terms[0].current().doc == doc {
			t := terms[0]
			score += e.Score(doc, t.numDocs(), t.current().frequency, k1, b)

			if t.advance() {
				heap.Fix(&terms, 0)
			} else {
				heap.Pop(&terms)
			}
		}
		score += e.calculateRemovedTermsScore(removedTerms, doc)

		if score > 0 {
			results.Push(Result{Record: e.docs[doc], Score: score})
		}

		// Remove terms which cannot contribute
		worst, ok := results.Worst()
		if ok && results.Len() == results.Cap() && len(terms) > 0 &&
			worst.Score > terms[0].maxScore+removedScore {
			removedScore += terms[0].maxScore
			removedTerms = append(removedTerms, heap.Pop(&terms).(*term))
		}
	}

	return results.IntoSorted()
}

func (e *Engine) initQuery(query string) termHeap {
	var terms termHeap
	seen := make(map[string]bool)
	for _, value := range strings.Fields(text.Normalize(query)) {
		if seen[value] {
			continue
		}
		seen[value] = true

		postings, ok := e.postings[value]
		if !ok {
			continue
		}
		heap.Push(&terms, &term{
			value:    value,
			postings: postings,
			maxScore: calculateMaxScore(uint32(len(e.docs)), uint32(len(postings))),
		})
	}
	return terms
}

func (e *Engine) calculateRemovedTermsScore(terms []*term, doc uint32) float64 {
	score := 0.0
	for _, t := range terms {
		if freq := t.frequencyIn(doc); freq > 0 {
			score += e.Score(doc, t.numDocs(), freq, k1, b)
		}
	}
	return score
}

// Score returns the score for a doc using the BM25 ranking function
func (e *Engine) Score(doc, numDocs, frequency uint32, k float64, b float64) float64 {
	N := float64(len(e.docs))
	lavg := float64(e.totalLength) / N
	if int(doc) >= len(e.lengths) || lavg == 0 {
		return 0
	}

	Nt := float64(numDocs)
	f := float64(frequency)
	l := float64(e.lengths[doc])

	TF := (f * (k + 1)) / (f + k*((1-b)+b*(l/lavg)))
	return math.Log(N/Nt) * TF
}
