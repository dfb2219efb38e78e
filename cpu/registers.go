package cpu

const (
	REG_V0 = 0x0 // First general purpose register.
	REG_VF = 0xf // Flag register.
)

// Registers is the register file.
type Registers struct {
	V [16]uint8 // v0 - vf
	I uint16    // Index register.
}

// Reset zeros all registers.
func (reg *Registers) Reset() {
	clear(reg.V[:])
	reg.I = 0
}

// Timers are the two 60Hz countdown timers.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Decrement both timers by one, stopping at zero.
func (tm *Timers) Decrement() {
	if tm.Delay > 0 {
		tm.Delay--
	}
	if tm.Sound > 0 {
		tm.Sound--
	}
}

// Reset zeros both timers.
func (tm *Timers) Reset() {
	tm.Delay = 0
	tm.Sound = 0
}
