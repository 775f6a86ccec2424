package driver

// State is the lifecycle position of a Controller
type State int

const (
	// Idle means no grid has been seeded yet
	Idle State = iota
	// Seeding means a fresh seed is loaded and waiting to be started
	Seeding
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Seeding:
		return "seeding"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason explains why a Controller left the Running state
type StopReason int

const (
	StopNone StopReason = iota
	StopUser
	StopConverged
	StopCycle
	StopLimit
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return ""
	case StopUser:
		return "stopped by user"
	case StopConverged:
		return "converged"
	case StopCycle:
		return "cycle detected"
	case StopLimit:
		return "generation limit reached"
	default:
		return "unknown"
	}
}

// Action is a user command delivered to a Runner
type Action int

const (
	ActionSeed Action = iota
	ActionStart
	ActionStop
	ActionToggle
	ActionDensityUp
	ActionDensityDown
	ActionSeedSizeUp
	ActionSeedSizeDown
)

const (
	DensityStep  = 0.05
	SeedSizeStep = 1
)
