package bfs

import (
	"errors"
	"fmt"
	"time"
)

// NotVisited marks a vertex the traversal has not reached.
const NotVisited int32 = -1

// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names.
var ErrUnknownStrategy = errors.New("bfs: unknown strategy")

// Strategy selects how each level is expanded.
type Strategy int

const (
	// HybridStrategy chooses a step per level from the frontier size.
	HybridStrategy Strategy = iota
	// TopDownStrategy always expands along outgoing edges.
	TopDownStrategy
	// BottomUpStrategy always scans unvisited vertices' incoming edges.
	BottomUpStrategy
)

// Strategies lists every strategy in a stable order.
var Strategies = []Strategy{TopDownStrategy, BottomUpStrategy, HybridStrategy}

func (s Strategy) String() string {
	switch s {
	case HybridStrategy:
		return "hybrid"
	case TopDownStrategy:
		return "top-down"
	case BottomUpStrategy:
		return "bottom-up"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a name to a Strategy. It accepts the String forms
// and the aliases "forward" and "reverse".
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "hybrid", "":
		return HybridStrategy, nil
	case "top-down", "topdown", "forward":
		return TopDownStrategy, nil
	case "bottom-up", "bottomup", "reverse":
		return BottomUpStrategy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Step identifies the expansion that ran for one level.
type Step int

const (
	StepTopDown Step = iota
	StepBottomUp
)

func (s Step) String() string {
	if s == StepBottomUp {
		return "bottom-up"
	}
	return "top-down"
}

// StepInfo describes one completed level.
type StepInfo struct {
	Level        int32 // distance of the frontier that was expanded
	Step         Step
	FrontierSize int // vertices in the expanded frontier
	Discovered   int // vertices assigned Level+1
	Duration     time.Duration
}

// Result summarises a traversal. Distances stay in the caller's buffer.
type Result struct {
	Strategy    Strategy
	Root        uint32
	Reached     int   // vertices with a finite distance, root included
	MaxDistance int32 // largest finite distance
	Steps       []StepInfo
	Elapsed     time.Duration
}

// Levels returns the number of expansion steps that ran.
func (r Result) Levels() int {
	return len(r.Steps)
}
