package hw

import "testing"

func TestLineSyncStartStop(t *testing.T) {
	var ls lineSync
	ls.reset()

	// Bus idle, both lines high.
	for range 4 {
		e := ls.step(true, true)
		if e.Start || e.Stop || e.SCLRise || e.SCLFall {
			t.Fatal("unexpected edge on idle bus")
		}
	}

	// SDA falls while SCL high: START after the debounce tick.
	if e := ls.step(true, false); e.Start {
		t.Fatal("START declared before the level is stable")
	}
	if e := ls.step(true, false); !e.Start {
		t.Fatal("START not declared")
	}

	// SCL falls, then SDA rises with SCL high again: STOP.
	ls.step(false, false)
	ls.step(false, false)
	ls.step(true, false)
	if e := ls.step(true, false); !e.SCLRise {
		t.Fatal("SCL rising edge not declared")
	}
	ls.step(true, true)
	if e := ls.step(true, true); !e.Stop {
		t.Fatal("STOP not declared")
	}
}

func TestLineSyncGlitchRejected(t *testing.T) {
	var ls lineSync
	ls.reset()

	for range 4 {
		ls.step(true, true)
	}

	// Single-tick SDA glitch while SCL is high must not register as START.
	if e := ls.step(true, false); e.Start {
		t.Fatal("glitch declared as START")
	}
	for range 4 {
		if e := ls.step(true, true); e.Start || e.Stop {
			t.Fatal("glitch leaked through the synchronizer")
		}
	}
	if !ls.sda {
		t.Fatal("debounced SDA should still be high")
	}
}

func TestLineSyncSCLEdges(t *testing.T) {
	var ls lineSync
	ls.reset()

	ls.step(false, true)
	if e := ls.step(false, true); !e.SCLFall {
		t.Fatal("SCL falling edge not declared")
	}
	ls.step(true, true)
	if e := ls.step(true, true); !e.SCLRise {
		t.Fatal("SCL rising edge not declared")
	}
	// SDA was high throughout: the SCL edge must not fake a START/STOP.
	ls.reset()
	ls.step(false, true)
	ls.step(false, true)
	ls.step(true, true)
	if e := ls.step(true, true); e.Start || e.Stop {
		t.Fatal("SCL edge misread as START/STOP")
	}
}
