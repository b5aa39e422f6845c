package hw

//go:generate go tool stringer -type=i2cState -output=i2cstate_string.go

type i2cState uint8

const (
	i2cIdle i2cState = iota
	i2cAddr
	i2cAddrAck
	i2cReg
	i2cRegAck
	i2cData
	i2cDataAck
	i2cWaitStop
)

type i2cEvent uint8

const (
	evNone i2cEvent = iota
	evAddrMatch
	evAddrMismatch
	evFrameDone // matched frame fully received, STOP seen
	evAbort     // frame dropped: restart, or STOP mid-byte/mid-ack
)

// frame is the in-progress I2C transaction, assembled bit by bit by the
// decoder, consumed by the bridge on evFrameDone.
type frame struct {
	addr uint8 // 7-bit address
	read bool
	reg  uint8
	data uint8
}

// i2cDecoder receives the debounced edge stream and assembles write
// transactions addressed to slaveAddr. It owns the open-drain ACK drive:
// sdaOE high means the device is pulling SDA low.
type i2cDecoder struct {
	slaveAddr uint8

	state i2cState
	shift uint8
	nbits uint8
	sdaOE bool
	frame frame
}

func (d *i2cDecoder) reset() {
	d.state = i2cIdle
	d.shift = 0
	d.nbits = 0
	d.sdaOE = false
	d.frame = frame{}
}

func (d *i2cDecoder) begin() {
	d.state = i2cAddr
	d.shift = 0
	d.nbits = 0
	d.sdaOE = false
	d.frame = frame{}
}

func (d *i2cDecoder) release() {
	d.sdaOE = false
	d.shift = 0
	d.nbits = 0
}

// step advances the decoder by one tick. Data bits are sampled on the SCL
// rising edge; state transitions and ACK drive changes happen on the falling
// edge, so the master always sees a stable SDA while SCL is high.
func (d *i2cDecoder) step(e busEdges) i2cEvent {
	if e.Start {
		// A START at any point restarts decoding. Any frame in progress
		// is dropped on the floor, which also covers the SDA-falls-while-
		// SCL-high protocol violation case.
		ev := evNone
		if d.state != i2cIdle && d.state != i2cWaitStop {
			ev = evAbort
		}
		d.begin()
		return ev
	}

	if e.Stop {
		// Drop the ACK drive and go idle; the assembled frame stays valid
		// until the next START so the controller can consume it.
		st := d.state
		d.state = i2cIdle
		d.release()
		switch st {
		case i2cIdle:
			return evNone
		case i2cWaitStop:
			return evFrameDone
		default:
			// STOP mid-byte or mid-ack: no ACK for the partial byte,
			// no forwarded job.
			return evAbort
		}
	}

	switch {
	case e.SCLRise:
		switch d.state {
		case i2cAddr, i2cReg, i2cData:
			d.shift = d.shift << 1
			if e.SDA {
				d.shift |= 1
			}
			d.nbits++
		}

	case e.SCLFall:
		switch d.state {
		case i2cAddr:
			if d.nbits == 8 {
				d.frame.addr = d.shift >> 1
				d.frame.read = d.shift&1 != 0
				if d.frame.addr == d.slaveAddr && !d.frame.read {
					d.sdaOE = true
					d.state = i2cAddrAck
					return evAddrMatch
				}
				// NACK: SDA stays released during the ack cell. The
				// decoder keeps watching the lines, a new START re-arms.
				d.state = i2cIdle
				return evAddrMismatch
			}
		case i2cReg:
			if d.nbits == 8 {
				d.frame.reg = d.shift
				d.sdaOE = true
				d.state = i2cRegAck
			}
		case i2cData:
			if d.nbits == 8 {
				d.frame.data = d.shift
				d.sdaOE = true
				d.state = i2cDataAck
			}
		case i2cAddrAck:
			d.release()
			d.state = i2cReg
		case i2cRegAck:
			d.release()
			d.state = i2cData
		case i2cDataAck:
			d.release()
			d.state = i2cWaitStop
		}
	}

	return evNone
}
