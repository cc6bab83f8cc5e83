package opcode

// registerNumbers is the fixed SIC/XE register-name to register-number
// mapping used by the register operands of format 2 instructions such as
// CLEAR, RMO and TIXR.
var registerNumbers = map[string]int{
	"A":  0,
	"X":  1,
	"L":  2,
	"B":  3,
	"S":  4,
	"T":  5,
	"F":  6,
	"PC": 8,
	"SW": 9,
}

// RegisterNumber looks up the fixed numeric encoding of a register name.
func RegisterNumber(name string) (int, bool) {
	n, ok := registerNumbers[name]
	return n, ok
}
