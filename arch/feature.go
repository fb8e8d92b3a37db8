package arch

import "strings"

// Feature is a set of instruction set capabilities.
type Feature uint

// Known capabilities.
const (
	FeatureIO        Feature = 1 << iota // IN and OUT.
	FeatureImmediate                     // Immediate address mode.
	FeatureBranch                        // JNZ, JEZ, CLT and CEQ.
	FeatureRelative                      // ARB and the relative address mode.
)

// Known instruction set revisions.
const (
	// Basic has ADD, MUL and HALT in position mode.
	Basic Feature = 0

	// Diagnostic adds I/O, branching and immediate operands.
	Diagnostic = FeatureIO | FeatureImmediate | FeatureBranch

	// Extended adds the relative base register.
	Extended = Diagnostic | FeatureRelative
)

// Has returns true if all of the given capabilities are present in f.
func (f Feature) Has(v Feature) bool {
	return f&v == v
}

// Supports returns true if the given opcode is part of the instruction set f.
func (f Feature) Supports(opcode int) bool {
	switch opcode {
	case ADD, MUL, HALT:
		return true
	case IN, OUT:
		return f.Has(FeatureIO)
	case JNZ, JEZ, CLT, CEQ:
		return f.Has(FeatureBranch)
	case ARB:
		return f.Has(FeatureRelative)
	}
	return false
}

// SupportsMode returns true if the given address mode is part of the instruction set f.
func (f Feature) SupportsMode(m AddressMode) bool {
	switch m {
	case Position:
		return true
	case Immediate:
		return f.Has(FeatureImmediate)
	case Relative:
		return f.Has(FeatureRelative)
	}
	return false
}

// Features returns the instruction set revision matching the given name.
// Returns false if no match was found.
func Features(name string) (Feature, bool) {
	switch strings.ToLower(name) {
	case "basic":
		return Basic, true
	case "diagnostic":
		return Diagnostic, true
	case "extended", "":
		return Extended, true
	}
	return 0, false
}

// FeatureName returns the name of the given instruction set revision.
// Returns "" for sets that are not a known revision.
func FeatureName(f Feature) string {
	switch f {
	case Basic:
		return "basic"
	case Diagnostic:
		return "diagnostic"
	case Extended:
		return "extended"
	}
	return ""
}
