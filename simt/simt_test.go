package simt

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLaunchCoversAllGroups(t *testing.T) {
	gr := NewGrid(4)
	const groups = 100

	seen := make([]int32, groups)
	gr.Launch(groups, func(g *Group) {
		atomic.AddInt32(&seen[g.Index()], 1)
	})

	for i, c := range seen {
		require.EqualValues(t, 1, c, "group %d ran %d times", i, c)
	}
}

func TestExecuteCoversRange(t *testing.T) {
	gr := NewGrid(3)

	for _, n := range []int{0, 1, 2, 7, 64, 1000} {
		hits := make([]int32, n)
		gr.Execute(0, n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, c := range hits {
			require.EqualValues(t, 1, c, "n=%d index %d hit %d times", n, i, c)
		}
	}
}

// Every lane increments a shared counter in each round; after the barrier the
// counter must show all lanes of the round, for every lane, every round.
func TestGroupBarrierRounds(t *testing.T) {
	gr := NewGrid(2)
	const lanes = 8
	const rounds = 5

	gr.Launch(4, func(g *Group) {
		var counter int64
		g.Run(lanes, func(lid int) {
			for r := 0; r < rounds; r++ {
				atomic.AddInt64(&counter, 1)
				g.Sync()
				got := atomic.LoadInt64(&counter)
				if got < int64((r+1)*lanes) {
					t.Errorf("lane %d round %d: counter %d, want >= %d", lid, r, got, (r+1)*lanes)
				}
				g.Sync()
			}
		})
	})
}

func TestSingleLaneGroup(t *testing.T) {
	gr := NewGrid(1)
	ran := false
	gr.Launch(1, func(g *Group) {
		g.Run(1, func(lid int) {
			require.Equal(t, 0, lid)
			g.Sync() // must not block with one lane
			ran = true
		})
	})
	require.True(t, ran)
}
