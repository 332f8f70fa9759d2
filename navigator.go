package treediff

// Navigator walks the differences of a merged tree in display order. It
// remembers the last difference it returned so that consecutive calls move on
// from there. A Navigator is bound to one tree; use several Navigators for
// independent cursors.
type Navigator struct {
	root      *DiffNode
	last      *DiffNode
	lastIndex int
	direction Direction
}

// NewNavigator returns a Navigator over the tree rooted at root.
func NewNavigator(root *DiffNode) *Navigator {
	return &Navigator{root: root, lastIndex: -1}
}

// Next returns the next difference after current, or after the last returned
// difference when current is nil. The search wraps around at the end of the
// tree. It returns nil when the tree has no differences.
func (nav *Navigator) Next(current *DiffNode) *DiffNode {
	return nav.move(current, Next)
}

// Previous is like Next but moves backwards.
func (nav *Navigator) Previous(current *DiffNode) *DiffNode {
	return nav.move(current, Previous)
}

// Direction returns the direction of the last move.
func (nav *Navigator) Direction() Direction {
	return nav.direction
}

// Last returns the last difference returned, or nil.
func (nav *Navigator) Last() *DiffNode {
	return nav.last
}

// Reset forgets the last position.
func (nav *Navigator) Reset() {
	nav.last = nil
	nav.lastIndex = -1
}

func (nav *Navigator) move(current *DiffNode, dir Direction) *DiffNode {
	nav.direction = dir
	if nav.root.CountDifferences() == 0 {
		nav.Reset()
		return nil
	}

	step := stepOf(dir)
	var parent *DiffNode
	var start int

	switch {
	case current != nil && current.parent != nil && current.IsLeaf():
		parent = current.parent
		start = indexOf(parent, current) + step
	case current != nil && (current.parent != nil || current == nav.root):
		parent = current
		start = firstIndex(current, dir)
	case nav.last != nil && nav.last.parent != nil:
		parent = nav.last.parent
		idx := indexOf(parent, nav.last)
		if idx < 0 {
			idx = nav.lastIndex
		}
		start = idx + step
	default:
		parent = nav.root
		start = firstIndex(nav.root, dir)
	}

	return nav.search(parent, start, dir)
}

// search scans depth-first from child index i of node. Containers are entered,
// exhausted containers continue with their next sibling, and the root wraps
// around once.
func (nav *Navigator) search(node *DiffNode, i int, dir Direction) *DiffNode {
	step := stepOf(dir)
	wrapped := false

	for {
		if i >= 0 && i < len(node.children) {
			child := node.children[i]
			if !child.IsLeaf() {
				node, i = child, firstIndex(child, dir)
				continue
			}
			if child.IsDifference() {
				nav.last = child
				nav.lastIndex = i
				return child
			}
			i += step
			continue
		}

		if node.parent == nil {
			if wrapped {
				return nil
			}
			wrapped = true
			i = firstIndex(node, dir)
			continue
		}
		i = indexOf(node.parent, node) + step
		node = node.parent
	}
}

func stepOf(dir Direction) int {
	if dir == Previous {
		return -1
	}
	return 1
}

func firstIndex(n *DiffNode, dir Direction) int {
	if dir == Previous {
		return len(n.children) - 1
	}
	return 0
}

func indexOf(parent, child *DiffNode) int {
	for i, c := range parent.children {
		if c == child {
			return i
		}
	}
	return -1
}
