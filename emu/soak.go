package emu

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"golang.org/x/sync/errgroup"

	"i2spi/emu/log"
	"i2spi/hw"
)

// Soak runs count randomized write transactions, jobs at a time, each on a
// fresh bridge instance, and verifies that every byte is acknowledged and
// forwarded verbatim over SPI. The first failure aborts the whole group.
func Soak(cfg Config, count, jobs int) error {
	var g errgroup.Group
	g.SetLimit(jobs)

	for i := range count {
		g.Go(func() error {
			reg := uint8(rand.UintN(256))
			data := uint8(rand.UintN(256))

			br := hw.New(cfg.Hardware())
			drv := NewDriver(br, cfg.Sim.BitHalf)
			rec := NewSPIRecorder()
			drv.Attach(rec)

			drv.PowerUp()
			addrAck, regAck, dataAck := drv.Write(cfg.Bridge.SlaveAddr, reg, data)
			if !addrAck || !regAck || !dataAck {
				return fmt.Errorf("transaction %d: acks=[%t %t %t], want all acked",
					i, addrAck, regAck, dataAck)
			}
			drv.Run(cfg.Sim.SettleTicks)

			want := []uint8{reg, data}
			if len(rec.Frames) != 1 || !slices.Equal(rec.Frames[0], want) {
				return fmt.Errorf("transaction %d: SPI frames %#v, want one frame %#v",
					i, rec.Frames, want)
			}

			log.ModEmu.DebugZ("soak transaction ok").
				Int("n", int64(i)).
				Hex8("reg", reg).
				Hex8("data", data).
				End()
			return nil
		})
	}

	return g.Wait()
}
