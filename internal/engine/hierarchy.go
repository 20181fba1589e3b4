package engine

import "github.com/alexanderramin/blueprint/internal/domain"

// Hierarchy is the parent/child structure implied by line order and indent.
// It is derived on every computation and never persisted.
type Hierarchy struct {
	ids      []string
	parent   []int   // -1 for roots
	children [][]int // insertion order
	index    map[string]int
}

type stackEntry struct {
	pos    int
	indent int
}

// BuildHierarchy reconstructs outline nesting in one pass: the parent of a
// line is the nearest preceding line with a strictly smaller indent.
func BuildHierarchy(lines []domain.LineItem) *Hierarchy {
	h := &Hierarchy{
		ids:      make([]string, len(lines)),
		parent:   make([]int, len(lines)),
		children: make([][]int, len(lines)),
		index:    make(map[string]int, len(lines)),
	}

	var stack []stackEntry
	for i, l := range lines {
		h.ids[i] = l.ID
		if _, seen := h.index[l.ID]; !seen {
			h.index[l.ID] = i
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= l.Indent {
			stack = stack[:len(stack)-1]
		}
		h.parent[i] = -1
		if len(stack) > 0 {
			p := stack[len(stack)-1].pos
			h.parent[i] = p
			h.children[p] = append(h.children[p], i)
		}
		stack = append(stack, stackEntry{pos: i, indent: l.Indent})
	}
	return h
}

// ParentOf returns the parent line ID, or false for a root line.
func (h *Hierarchy) ParentOf(id string) (string, bool) {
	i, ok := h.index[id]
	if !ok || h.parent[i] < 0 {
		return "", false
	}
	return h.ids[h.parent[i]], true
}

// ChildrenOf returns the direct children of id in document order.
func (h *Hierarchy) ChildrenOf(id string) []string {
	i, ok := h.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(h.children[i]))
	for k, c := range h.children[i] {
		out[k] = h.ids[c]
	}
	return out
}

// Roots returns the IDs of top-level lines in document order.
func (h *Hierarchy) Roots() []string {
	var out []string
	for i, p := range h.parent {
		if p < 0 {
			out = append(out, h.ids[i])
		}
	}
	return out
}

// Depth returns how many ancestors id has.
func (h *Hierarchy) Depth(id string) int {
	i, ok := h.index[id]
	if !ok {
		return 0
	}
	depth := 0
	for p := h.parent[i]; p >= 0; p = h.parent[p] {
		depth++
	}
	return depth
}

func (h *Hierarchy) childPositions(pos int) []int {
	return h.children[pos]
}
