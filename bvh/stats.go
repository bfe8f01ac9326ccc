package bvh

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// TreeStats summarizes the shape of a flattened tree.
type TreeStats struct {
	Nodes    int
	Leafs    int
	Branches int
	MaxDepth int

	// Leafs whose object could not be resolved to a buffer index.
	UnresolvedLeafs int

	// Encoded size in bytes.
	SizeBytes int
}

// Collect statistics for a flat tree.
func Stats(tree FlatTree) TreeStats {
	stats := TreeStats{
		Nodes:     len(tree),
		SizeBytes: len(tree) * RecordSize,
	}
	if len(tree) == 0 {
		return stats
	}

	type entry struct {
		index int32
		depth int
	}
	stack := []entry{{0, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth > stats.MaxDepth {
			stats.MaxDepth = top.depth
		}

		node := &tree[top.index]
		if node.IsLeaf() {
			stats.Leafs++
			if node.Right == MissIndex {
				stats.UnresolvedLeafs++
			}
			continue
		}

		stats.Branches++
		stack = append(stack, entry{node.Right, top.depth + 1}, entry{node.Left, top.depth + 1})
	}

	return stats
}

// Build a tabular representation of tree statistics.
func (s TreeStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Nodes", strconv.Itoa(s.Nodes)})
	table.Append([]string{"Branches", strconv.Itoa(s.Branches)})
	table.Append([]string{"Leafs", strconv.Itoa(s.Leafs)})
	table.Append([]string{"Unresolved leafs", strconv.Itoa(s.UnresolvedLeafs)})
	table.Append([]string{"Max depth", strconv.Itoa(s.MaxDepth)})
	table.SetFooter([]string{"Size", fmtSize(s.SizeBytes)})

	table.Render()
	return buf.String()
}

// Format a byte count with the appropriate byte/kb/mb unit.
func fmtSize(totalBytes int) string {
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", totalBytes)
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", float32(totalBytes)/1e3)
	}
	return fmt.Sprintf("%5.1f mb", float32(totalBytes)/1e6)
}
