package checkout

import (
	"strconv"
	"sync"
	"time"
)

const DefaultFolioPrefix = "WEB-"

// FolioGenerator hands out "<prefix><unix nanos>" folios that strictly increase
// within the process, even when the clock stalls or steps back.
type FolioGenerator struct {
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	last int64
}

func NewFolioGenerator(prefix string, now func() time.Time) *FolioGenerator {
	if prefix == "" {
		prefix = DefaultFolioPrefix
	}
	if now == nil {
		now = time.Now
	}

	return &FolioGenerator{prefix: prefix, now: now}
}

func (g *FolioGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.now().UnixNano()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n

	return g.prefix + strconv.FormatInt(n, 10)
}
