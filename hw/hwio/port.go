package hwio

import "fmt"

// Port8 is an 8-line digital port. External code goes through Poke8/Peek8,
// which honor the read-only mask and the write callback; the owning device
// accesses Value directly.
type Port8 struct {
	Name   string
	Value  uint8
	RoMask uint8 // bits an external Poke8 cannot change

	WriteCb func(old, val uint8)
}

func (p Port8) String() string {
	s := fmt.Sprintf("%s{%02x", p.Name, p.Value)
	if p.WriteCb != nil {
		s += ",w!"
	}
	return s + "}"
}

// Poke8 drives the port from outside the device.
func (p *Port8) Poke8(val uint8) {
	old := p.Value
	p.Value = (p.Value & p.RoMask) | (val &^ p.RoMask)
	if p.WriteCb != nil {
		p.WriteCb(old, p.Value)
	}
}

// Peek8 observes the port without side effects.
func (p *Port8) Peek8() uint8 {
	return p.Value
}

func (p *Port8) Bit(n uint) bool {
	return Bit(p.Value, n)
}
