package bfs

// chooseStep picks the expansion for one level. A frontier smaller than
// half the graph is cheaper to push from; past that, scanning unvisited
// vertices touches less memory because most of them stop early.
func chooseStep(frontierSize int, numNodes uint32) Step {
	if frontierSize < int(numNodes/2) {
		return StepTopDown
	}
	return StepBottomUp
}

// stepFor maps a fixed strategy, or the hybrid policy, to this level's step.
func (t *traversal) stepFor(s Strategy) Step {
	switch s {
	case TopDownStrategy:
		return StepTopDown
	case BottomUpStrategy:
		return StepBottomUp
	case HybridStrategy:
		return chooseStep(t.current.Len(), t.g.NumNodes)
	default:
		panic("bfs: unknown strategy " + s.String())
	}
}
