package treediff

// EDiff classifies one position of the merged tree as seen from one side.
type EDiff int

const (
	// Equal means both refs are present leaves with equal values.
	Equal EDiff = iota
	// Different means both refs are present leaves with different values.
	Different
	// Missing means the queried side has no ref while the other side has one.
	Missing
	// Deleted means neither side has a ref anymore.
	Deleted
	// BothPresent means both refs are present containers. Their children may
	// still differ.
	BothPresent
	// NotEvaluated is returned for combinations no other value covers.
	NotEvaluated
)

func (d EDiff) String() string {
	switch d {
	case Equal:
		return "equal"
	case Different:
		return "different"
	case Missing:
		return "missing"
	case Deleted:
		return "deleted"
	case BothPresent:
		return "both-present"
	case NotEvaluated:
		return "not-evaluated"
	default:
		return "unknown"
	}
}

// IsDifference reports whether d counts as a difference for aggregation and
// navigation.
func (d EDiff) IsDifference() bool {
	return d == Different || d == Missing || d == Deleted
}

// StateSet records which of Equal, Different, Missing and Deleted were seen
// while collecting the states of a subtree.
type StateSet uint8

const (
	stateEqual StateSet = 1 << iota
	stateDifferent
	stateMissing
	stateDeleted
)

func stateBit(d EDiff) StateSet {
	switch d {
	case Equal:
		return stateEqual
	case Different:
		return stateDifferent
	case Missing:
		return stateMissing
	case Deleted:
		return stateDeleted
	}
	return 0
}

// Add records d. BothPresent and NotEvaluated are ignored.
func (s *StateSet) Add(d EDiff) {
	*s |= stateBit(d)
}

// Has reports whether d was recorded.
func (s StateSet) Has(d EDiff) bool {
	bit := stateBit(d)
	return bit != 0 && s&bit != 0
}

// Reset clears the set so it can be reused.
func (s *StateSet) Reset() {
	*s = 0
}

// CanRestore reports whether the subtree holds a state that a restore could
// act on.
func (s StateSet) CanRestore() bool {
	return s.Has(Equal) || s.Has(Deleted)
}

// States returns the recorded states in declaration order.
func (s StateSet) States() []EDiff {
	var states []EDiff
	for _, d := range []EDiff{Equal, Different, Missing, Deleted} {
		if s.Has(d) {
			states = append(states, d)
		}
	}
	return states
}
