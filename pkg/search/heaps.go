package search

import (
	"math"
	"sort"
)

type posting struct {
	doc       uint32
	frequency uint32
}

// term walks the posting list of one query term.
type term struct {
	value    string
	postings []posting
	pos      int
	maxScore float64
}

func (t *term) ok() bool         { return t.pos < len(t.postings) }
func (t *term) current() posting { return t.postings[t.pos] }
func (t *term) numDocs() uint32  { return uint32(len(t.postings)) }

func (t *term) advance() bool {
	t.pos++
	return t.ok()
}

// frequencyIn returns the frequency of the term in doc, or zero.
func (t *term) frequencyIn(doc uint32) uint32 {
	i := sort.Search(len(t.postings), func(i int) bool { return t.postings[i].doc >= doc })
	if i < len(t.postings) && t.postings[i].doc == doc {
		return t.postings[i].frequency
	}
	return 0
}

type termHeap []*term

func (h termHeap) Len() int           { return len(h) }
func (h termHeap) Less(i, j int) bool { return h[i].current().doc < h[j].current().doc }
func (h termHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *termHeap) Push(x interface{}) {
	*h = append(*h, x.(*term))
}

func (h *termHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// calculateMaxScore bounds the BM25 contribution of a term found in numDocs
// of the totalDocs documents.
func calculateMaxScore(totalDocs, numDocs uint32) float64 {
	return (k1 + 1) * math.Log(float64(totalDocs)/float64(numDocs))
}
