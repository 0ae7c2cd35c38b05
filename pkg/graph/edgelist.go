package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxEdgeListNode bounds node ids accepted from text input.
const maxEdgeListNode = maxNodes - 1

// ReadEdgeList parses a whitespace-separated edge list ("u v" per line).
// Blank lines and lines starting with '#' or '%' are skipped, as are any
// columns after the second. The node count is one more than the largest
// id seen, or numNodes if that is larger.
func ReadEdgeList(r io.Reader, numNodes uint32) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var edges []Edge
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '%' {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want two node ids, got %q", line, text)
		}
		u, err := parseNodeID(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: source: %w", line, err)
		}
		v, err := parseNodeID(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: target: %w", line, err)
		}
		edges = append(edges, Edge{From: u, To: v})
		numNodes = max(numNodes, u+1, v+1)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}
	if uint64(len(edges)) > maxEdges {
		return nil, fmt.Errorf("edge count %d exceeds limit %d", len(edges), maxEdges)
	}
	return Build(numNodes, edges), nil
}

func parseNodeID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if id > maxEdgeListNode {
		return 0, fmt.Errorf("node id %d exceeds limit %d", id, maxEdgeListNode)
	}
	return uint32(id), nil
}

// WriteEdgeList writes g's outgoing edges as "u v" lines.
func WriteEdgeList(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "# nodes %d edges %d\n", g.NumNodes, g.NumEdges); err != nil {
		return err
	}
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for _, v := range g.Head[start:end] {
			if _, err := fmt.Fprintf(bw, "%d %d\n", u, v); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
