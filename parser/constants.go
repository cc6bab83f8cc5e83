package parser

// Literal Pool Constants
const (
	// AutoPoolFlushBytes is the reservation size (in bytes) above which a
	// pending RESB/RESW directive forces an automatic literal pool flush
	// before it: "if the next source line after a pending-literal state is
	// a RESB or RESW that would reserve more than 100 bytes, flush the
	// pending literals before that reservation." This keeps literals within
	// the +-2048 PC-relative displacement window of the code referencing
	// them.
	AutoPoolFlushBytes = 100
)

// Object Code Constants
const (
	// MaxTextRecordBytes is the largest number of object bytes one T record
	// may carry (0x1E = 30).
	MaxTextRecordBytes = 30

	// MaxPCRelativeDisplacement and MinPCRelativeDisplacement bound the
	// signed 12-bit displacement field used by format-3 PC-relative
	// addressing.
	MaxPCRelativeDisplacement = 2047
	MinPCRelativeDisplacement = -2048

	// MaxBaseRelativeDisplacement bounds the unsigned 12-bit displacement
	// field used by format-3 base-relative addressing.
	MaxBaseRelativeDisplacement = 4095
)

// Macro Processing Constants
const (
	// MaxMacroNestingDepth bounds macro-invocation nesting so a macro that
	// (incorrectly) invokes itself fails fast instead of looping forever.
	MaxMacroNestingDepth = 64
)
