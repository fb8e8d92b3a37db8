package vm

const (
	DefaultHeadroom    = 10000   // Zeroed cells appended to a loaded program.
	DefaultMemoryLimit = 1 << 24 // Upper bound on addressable cells.
)

// Memory defines the machine's memory bank.
//
// Cells beyond the end of the slice read as zero. Writing to them grows the bank.
type Memory []int64

// newMemory creates a memory bank holding a copy of program,
// followed by headroom zeroed cells.
func newMemory(program []int64, headroom int) Memory {
	if headroom < 0 {
		headroom = 0
	}
	m := make(Memory, len(program), len(program)+headroom)
	copy(m, program)
	return m[:cap(m)]
}

// Len returns the number of allocated cells.
func (m Memory) Len() int {
	return len(m)
}

// At returns the value at the given address.
func (m Memory) At(addr int) int64 {
	if addr < 0 || addr >= len(m) {
		return 0
	}
	return m[addr]
}

// Set sets the value at the given address, growing the bank as needed.
func (m *Memory) Set(addr int, value int64) {
	if addr >= len(*m) {
		m.grow(addr + 1)
	}
	(*m)[addr] = value
}

// grow extends the bank to hold at least n cells.
func (m *Memory) grow(n int) {
	size := 2 * len(*m)
	if size < n {
		size = n
	}
	next := make(Memory, size)
	copy(next, *m)
	*m = next
}
