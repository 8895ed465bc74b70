// Package simt emulates a SIMT device on general-purpose cores: kernels are
// dispatched over a grid of cooperating groups, each group running a fixed
// number of lanes that share a scratch buffer and an intra-group barrier.
// There is no synchronization primitive across groups; a launch returns only
// once every group has finished.
package simt

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Grid dispatches kernel launches, bounding the number of groups in flight.
type Grid struct {
	workers int
}

// NewGrid returns a Grid running at most workers groups concurrently.
// workers <= 0 selects GOMAXPROCS.
func NewGrid(workers int) *Grid {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Grid{workers: workers}
}

var defaultGrid = sync.OnceValue(func() *Grid {
	return NewGrid(0)
})

// DefaultGrid returns the process-wide grid, sized to GOMAXPROCS.
func DefaultGrid() *Grid {
	return defaultGrid()
}

// Launch runs body once per group index in [0, groups) and blocks until all
// groups have completed. Groups are mutually independent: body must not
// assume any ordering between group indices.
func (gr *Grid) Launch(groups int, body func(g *Group)) {
	if groups <= 0 {
		return
	}
	var eg errgroup.Group
	eg.SetLimit(gr.workers)
	for i := 0; i < groups; i++ {
		g := &Group{index: uint32(i)}
		eg.Go(func() error {
			body(g)
			return nil
		})
	}
	// bodies cannot fail; Wait only joins the groups
	_ = eg.Wait()
}

// Execute splits [iStart, iEnd) into contiguous chunks, one per worker, and
// runs work on each chunk concurrently. Used for one-lane-per-index kernels
// with no cross-lane communication.
func (gr *Grid) Execute(iStart, iEnd int, work func(start, end int)) {
	n := iEnd - iStart
	if n <= 0 {
		return
	}
	nbTasks := gr.workers
	perTask := n / nbTasks
	if perTask < 1 {
		perTask = 1
		nbTasks = n
	}
	extra := n - nbTasks*perTask

	var wg sync.WaitGroup
	start := iStart
	for i := 0; i < nbTasks; i++ {
		end := start + perTask
		if i < extra {
			end++
		}
		wg.Add(1)
		go func(s, e int) {
			work(s, e)
			wg.Done()
		}(start, end)
		start = end
	}
	wg.Wait()
}

// Group is one cooperating set of lanes within a launch.
type Group struct {
	index uint32
	bar   barrier
}

// Index returns the group's position in the launch grid.
func (g *Group) Index() uint32 {
	return g.index
}

// Run starts lanes concurrent lane bodies and returns when every lane has
// finished. Lane bodies may call Sync; when they do, every lane of the group
// must reach the same Sync call.
func (g *Group) Run(lanes int, lane func(lid int)) {
	g.bar.reset(lanes)
	if lanes == 1 {
		lane(0)
		return
	}
	var wg sync.WaitGroup
	wg.Add(lanes)
	for lid := 0; lid < lanes; lid++ {
		go func(lid int) {
			lane(lid)
			wg.Done()
		}(lid)
	}
	wg.Wait()
}

// Sync is the intra-group barrier: it returns once every lane of the group
// has called it. Writes made before Sync are visible to every lane after it.
func (g *Group) Sync() {
	g.bar.wait()
}

// barrier is a reusable phase barrier for a fixed lane count.
type barrier struct {
	mu      sync.Mutex
	cond    sync.Cond
	size    int
	arrived int
	phase   uint64
}

func (b *barrier) reset(size int) {
	b.size = size
	b.arrived = 0
	if b.cond.L == nil {
		b.cond.L = &b.mu
	}
}

func (b *barrier) wait() {
	b.mu.Lock()
	phase := b.phase
	b.arrived++
	if b.arrived == b.size {
		b.arrived = 0
		b.phase++
		b.cond.Broadcast()
	} else {
		for b.phase == phase {
			b.cond.Wait()
		}
	}
	b.mu.Unlock()
}
