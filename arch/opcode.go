// Package arch defines the intcode instruction set along with
// some related helper functions.
package arch

// Known opcodes.
const (
	ADD  = 1  // mem[c] = a + b
	MUL  = 2  // mem[c] = a * b
	IN   = 3  // mem[a] = next input value
	OUT  = 4  // emit a
	JNZ  = 5  // if a != 0 { ip = b }
	JEZ  = 6  // if a == 0 { ip = b }
	CLT  = 7  // mem[c] = a < b
	CEQ  = 8  // mem[c] = a == b
	ARB  = 9  // relative base += a
	HALT = 99 // stop execution
)

// Name returns the name for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case ADD:
		return "ADD", true
	case MUL:
		return "MUL", true
	case IN:
		return "IN", true
	case OUT:
		return "OUT", true
	case JNZ:
		return "JNZ", true
	case JEZ:
		return "JEZ", true
	case CLT:
		return "CLT", true
	case CEQ:
		return "CEQ", true
	case ARB:
		return "ARB", true
	case HALT:
		return "HALT", true
	}

	return "", false
}

// Argc returns the number of arguments the given instruction requires.
// Returns -1 if the opcode is not recognized.
func Argc(opcode int) int {
	switch opcode {
	case ADD, MUL, CLT, CEQ:
		return 3
	case JNZ, JEZ:
		return 2
	case IN, OUT, ARB:
		return 1
	case HALT:
		return 0
	}
	return -1
}

// Width returns the number of memory cells occupied by the given instruction,
// including the opcode cell itself. Returns -1 if the opcode is not recognized.
func Width(opcode int) int {
	argc := Argc(opcode)
	if argc < 0 {
		return -1
	}
	return argc + 1
}

// Target returns the index of the argument the given instruction writes to.
// Returns -1 if the instruction does not write to memory.
func Target(opcode int) int {
	switch opcode {
	case ADD, MUL, CLT, CEQ:
		return 2
	case IN:
		return 0
	}
	return -1
}

// Split separates a raw instruction cell into its opcode and the
// address mode digits for up to three arguments.
//
// The opcode is the cell's lowest two decimal digits. The mode for
// argument i is the decimal digit at position i+2.
func Split(cell int64) (opcode int, modes [3]AddressMode) {
	opcode = int(cell % 100)
	cell /= 100
	for i := range modes {
		modes[i] = AddressMode(cell % 10)
		cell /= 10
	}
	return
}
