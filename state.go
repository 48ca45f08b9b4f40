package orchestra

// State is the Orchestrator lifecycle position.
//
//	Dispatching <-> Draining -> AllIdleEmpty -> Terminating -> Joined -> Sorted
//
// A batch that aborts on a task failure ends in Failed instead of Sorted.
type State int32

const (
	Dispatching State = iota
	Draining
	AllIdleEmpty
	Terminating
	Joined
	Sorted
	Failed
)

func (s State) String() string {
	switch s {
	case Dispatching:
		return "dispatching"
	case Draining:
		return "draining"
	case AllIdleEmpty:
		return "all-idle-empty"
	case Terminating:
		return "terminating"
	case Joined:
		return "joined"
	case Sorted:
		return "sorted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool { return s == Sorted || s == Failed }
