package vm

// State defines the execution state of a machine.
type State int

// Known states.
const (
	Running   State = iota // Executing, or ready to execute.
	Suspended              // Paused after emitting an output value.
	Halted                 // Terminated by HALT. No further execution is possible.
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Halted:
		return "halted"
	}
	return "unknown"
}
