package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/openfiscal/munidocs/bloom"
)

// Item is one frontier entry: a URL plus how many hops it is from a seed.
type Item struct {
	URL   string
	Depth int
}

// Frontier is an in-memory crawl queue with Bloom filter deduplication.
// Shallower items are popped first, so the walk proceeds breadth-first.
// Safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *itemHeap
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &itemHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push queues an item. Returns false if the URL has already been seen.
// Fragments are stripped before deduplication.
func (f *Frontier) Push(item Item) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := item.URL
	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	item.URL = url
	heap.Push(f.queue, item)
	return true
}

// Pop returns the shallowest queued item. The bool result is false when the
// frontier is empty.
func (f *Frontier) Pop() (Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return Item{}, false
	}
	item, _ := heap.Pop(f.queue).(Item)
	return item, true
}

// Len returns the number of queued items.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// itemHeap is a min-heap on depth.
type itemHeap []Item

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return h[i].Depth < h[j].Depth }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) {
	item, _ := x.(Item)
	*h = append(*h, item)
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
