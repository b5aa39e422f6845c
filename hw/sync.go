package hw

// busEdges is what the synchronizer reports for one system-clock tick:
// debounced line levels plus the edges detected on this tick.
type busEdges struct {
	SCL, SDA bool // debounced levels

	SCLRise bool
	SCLFall bool
	Start   bool // SDA fell while SCL stable high
	Stop    bool // SDA rose while SCL stable high
}

// lineSync double-samples the raw SCL/SDA lines so that a level must hold
// for two consecutive ticks before it is believed. Single-tick glitches
// never make it past the second stage.
type lineSync struct {
	ff1SCL, ff2SCL bool
	ff1SDA, ff2SDA bool

	scl, sda bool // debounced levels
}

func (ls *lineSync) reset() {
	// Both lines idle high (pulled up).
	ls.ff1SCL, ls.ff2SCL = true, true
	ls.ff1SDA, ls.ff2SDA = true, true
	ls.scl, ls.sda = true, true
}

// step advances the synchronizer by one tick and reports detected edges.
func (ls *lineSync) step(rawSCL, rawSDA bool) busEdges {
	ls.ff2SCL, ls.ff1SCL = ls.ff1SCL, rawSCL
	ls.ff2SDA, ls.ff1SDA = ls.ff1SDA, rawSDA

	prevSCL, prevSDA := ls.scl, ls.sda
	if ls.ff1SCL == ls.ff2SCL {
		ls.scl = ls.ff2SCL
	}
	if ls.ff1SDA == ls.ff2SDA {
		ls.sda = ls.ff2SDA
	}

	e := busEdges{SCL: ls.scl, SDA: ls.sda}
	e.SCLRise = !prevSCL && ls.scl
	e.SCLFall = prevSCL && !ls.scl

	// START/STOP require SCL stable high across the SDA transition.
	sclHigh := prevSCL && ls.scl
	e.Start = sclHigh && prevSDA && !ls.sda
	e.Stop = sclHigh && !prevSDA && ls.sda
	return e
}
