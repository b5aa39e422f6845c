package hw

//go:generate go tool stringer -type=spiState -output=spistate_string.go

type spiState uint8

const (
	spiIdle spiState = iota
	spiAssert
	spiShift
	spiHold
)

// spiMaster shifts out one 16-bit job (register byte then data byte),
// MSB first, SPI mode 0: SCLK idles low, MOSI is valid before the rising
// edge and the receiver samples on the rising edge.
type spiMaster struct {
	half int // SCLK half-period, in system ticks

	state spiState
	shift uint16
	nbits int
	cnt   int // ticks left in the current phase

	sclk bool
	mosi bool
	csn  bool // true = deasserted
}

func (s *spiMaster) init(divisor int) {
	s.half = divisor / 2
	if s.half < 1 {
		s.half = 1
	}
	s.reset()
}

func (s *spiMaster) reset() {
	s.state = spiIdle
	s.shift = 0
	s.nbits = 0
	s.cnt = 0
	s.sclk = false
	s.mosi = false
	s.csn = true
}

func (s *spiMaster) busy() bool {
	return s.state != spiIdle
}

// start accepts a new job. Must not be called while busy.
func (s *spiMaster) start(reg, data uint8) {
	s.shift = uint16(reg)<<8 | uint16(data)
	s.nbits = 16
	s.state = spiAssert
	s.csn = false
	s.mosi = s.shift&0x8000 != 0
	s.sclk = false
	s.cnt = s.half
}

func (s *spiMaster) step() {
	if s.state == spiIdle {
		return
	}

	s.cnt--
	if s.cnt > 0 {
		return
	}

	switch s.state {
	case spiAssert:
		// CS setup elapsed, first rising edge.
		s.sclk = true
		s.state = spiShift
		s.cnt = s.half

	case spiShift:
		if s.sclk {
			// Falling edge: current bit has been sampled, present the
			// next one.
			s.sclk = false
			s.nbits--
			if s.nbits == 0 {
				s.mosi = false
				s.state = spiHold
			} else {
				s.shift <<= 1
				s.mosi = s.shift&0x8000 != 0
			}
		} else {
			s.sclk = true
		}
		s.cnt = s.half

	case spiHold:
		// CS hold elapsed after the last falling edge.
		s.csn = true
		s.state = spiIdle
	}
}
