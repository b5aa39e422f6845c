package hw

import "testing"

// runSPI steps the generator until it goes idle and returns, per tick, the
// observed pin levels.
func runSPI(t *testing.T, s *spiMaster, maxTicks int) (sclk, mosi, csn []bool) {
	t.Helper()
	for range maxTicks {
		s.step()
		sclk = append(sclk, s.sclk)
		mosi = append(mosi, s.mosi)
		csn = append(csn, s.csn)
		if !s.busy() {
			return sclk, mosi, csn
		}
	}
	t.Fatalf("SPI generator still busy after %d ticks", maxTicks)
	return nil, nil, nil
}

func TestSPIShiftsJobMSBFirst(t *testing.T) {
	var s spiMaster
	s.init(10)

	s.start(0xA5, 0x3C)
	if !s.busy() {
		t.Fatal("generator should be busy right after start")
	}
	if s.csn {
		t.Fatal("CS_N should assert with the job")
	}

	sclk, mosi, _ := runSPI(t, &s, 1000)

	// Reconstruct the shifted bits from the rising edges.
	var got uint16
	var nbits int
	prev := false
	for i := range sclk {
		if sclk[i] && !prev {
			got <<= 1
			if mosi[i] {
				got |= 1
			}
			nbits++
		}
		prev = sclk[i]
	}
	if nbits != 16 {
		t.Fatalf("got %d SCLK rising edges, want 16", nbits)
	}
	if got != 0xA53C {
		t.Fatalf("shifted out %04x, want a53c", got)
	}
	if !s.csn || s.sclk || s.mosi {
		t.Fatal("outputs not idle after the transfer")
	}
}

func TestSPITiming(t *testing.T) {
	const divisor = 10

	var s spiMaster
	s.init(divisor)
	s.start(0x01, 0xA5)

	sclk, _, csn := runSPI(t, &s, 1000)

	// First rising edge one half-period after CS assert.
	for i := range divisor/2 - 1 {
		if sclk[i] {
			t.Fatalf("SCLK high %d ticks after CS assert, want %d of setup", i+1, divisor/2)
		}
	}
	if !sclk[divisor/2-1] {
		t.Fatal("first SCLK rising edge late")
	}

	// Each subsequent edge is one half-period apart.
	last := divisor/2 - 1
	edges := 1
	for i := last + 1; i < len(sclk); i++ {
		if sclk[i] != sclk[i-1] {
			if d := i - last; d != divisor/2 {
				t.Fatalf("edge spacing %d ticks, want %d", d, divisor/2)
			}
			last = i
			edges++
		}
	}
	if edges != 32 {
		t.Fatalf("got %d SCLK edges, want 32", edges)
	}

	// CS_N holds for one half-period after the last falling edge.
	if hold := len(csn) - 1 - last; hold != divisor/2 {
		t.Fatalf("CS hold %d ticks, want %d", hold, divisor/2)
	}
	if !csn[len(csn)-1] {
		t.Fatal("CS_N not deasserted at the end")
	}
}

func TestSPIDivisorClamp(t *testing.T) {
	var s spiMaster
	s.init(1)
	if s.half != 1 {
		t.Fatalf("half-period = %d, want clamped to 1", s.half)
	}
}
