package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"parbfs/pkg/bfs"
)

func TestObserveTraversal(t *testing.T) {
	beforeTotal := testutil.ToFloat64(TraversalsTotal.WithLabelValues("bottom-up"))
	beforeReached := testutil.ToFloat64(VerticesDiscovered)
	beforeSteps := testutil.CollectAndCount(StepDuration)

	ObserveTraversal(bfs.Result{
		Strategy: bfs.BottomUpStrategy,
		Reached:  7,
		Elapsed:  3 * time.Millisecond,
		Steps: []bfs.StepInfo{
			{Level: 0, Step: bfs.StepBottomUp, FrontierSize: 1, Discovered: 2, Duration: time.Millisecond},
			{Level: 1, Step: bfs.StepBottomUp, FrontierSize: 2, Discovered: 4, Duration: time.Millisecond},
		},
	})

	assert.Equal(t, beforeTotal+1, testutil.ToFloat64(TraversalsTotal.WithLabelValues("bottom-up")))
	assert.Equal(t, beforeReached+7, testutil.ToFloat64(VerticesDiscovered))
	// One histogram series per step label in use.
	assert.GreaterOrEqual(t, testutil.CollectAndCount(StepDuration), max(beforeSteps, 1))
}
