package treediff

// CountDifferences returns the number of nodes below n classified as a
// difference on either side. The node itself is not counted.
func (n *DiffNode) CountDifferences() int {
	count := 0
	for _, child := range n.children {
		if child.IsDifference() {
			count++
		}
		count += child.CountDifferences()
	}
	return count
}

// CollectDiffStates records the classifications found in the subtree rooted
// at n, n included, into parent. A nil parent starts a fresh set.
func (n *DiffNode) CollectDiffStates(parent *StateSet) *StateSet {
	states := parent
	if states == nil {
		states = new(StateSet)
	}

	for _, side := range Sides {
		states.Add(n.pair.Diff(side))
	}
	for _, child := range n.children {
		child.CollectDiffStates(states)
	}
	return states
}
