package arch

// AddressMode defines instruction operand address modes.
type AddressMode int

// Known address modes.
const (
	Position  AddressMode = 0 // x = mem[123]
	Immediate AddressMode = 1 // x = 123
	Relative  AddressMode = 2 // x = mem[rb+123]
)

func (m AddressMode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "unknown"
}
