package vm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hexaflex/intcode/arch"
)

// Disassemble writes a human-readable listing of program to w.
//
// The program is walked linearly from address 0. Cells which do not decode
// into an instruction supported by f are listed as data.
func Disassemble(w io.Writer, program []int64, f arch.Feature) error {
	bw := bufio.NewWriter(w)
	mem := Memory(program)

	var instr Instruction
	for ip := 0; ip < len(program); {
		if !decodeStatic(&instr, mem, ip, f) {
			fmt.Fprintf(bw, "%04d %5s %d\n", ip, "DATA", program[ip])
			ip++
			continue
		}

		fmt.Fprintln(bw, instr.String())
		ip += instr.Width()
	}

	return bw.Flush()
}

// decodeStatic decodes the instruction at ip without resolving its operands.
// Returns false if the cell does not hold a valid instruction, or if the
// instruction's operands extend past the end of memory.
func decodeStatic(instr *Instruction, m Memory, ip int, f arch.Feature) bool {
	opcode, modes := arch.Split(m[ip])
	width := arch.Width(opcode)
	if width < 0 || !f.Supports(opcode) || ip+width > len(m) {
		return false
	}
	argc := width - 1

	target := arch.Target(opcode)
	for j := 0; j < argc; j++ {
		if !f.SupportsMode(modes[j]) || (j == target && modes[j] == arch.Immediate) {
			return false
		}
	}

	instr.IP = ip
	instr.Opcode = opcode
	instr.Argc = argc
	for j := 0; j < argc; j++ {
		instr.Args[j] = Operand{
			Raw:   m[ip+1+j],
			Mode:  modes[j],
			Value: m[ip+1+j],
		}
	}
	return true
}
