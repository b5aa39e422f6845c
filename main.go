package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"i2spi/emu"
	"i2spi/emu/log"
	"i2spi/hw"
)

const version = "0.1.0"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case versionMode:
		fmt.Println("i2spi", version)

	case configMode:
		cfg := emu.LoadConfigOrDefault()
		checkf(toml.NewEncoder(os.Stdout).Encode(cfg), "failed to encode configuration")

	case soakMode:
		cfg := emu.LoadConfigOrDefault()
		checkf(emu.Soak(cfg, cli.Soak.Count, cli.Soak.Jobs), "soak failed")
		fmt.Printf("soak: %d transactions ok\n", cli.Soak.Count)

	case runMode:
		runTransaction(cli)
	}
}

func runTransaction(cli CLI) {
	cfg := emu.LoadConfigOrDefault()

	br := hw.New(cfg.Hardware())
	log.AddContext(br)
	defer log.RemoveContext(br)

	drv := emu.NewDriver(br, cfg.Sim.BitHalf)
	rec := emu.NewSPIRecorder()
	drv.Attach(rec)

	if cli.Run.Trace != nil {
		defer cli.Run.Trace.Close()
		drv.Attach(emu.NewTracer(cli.Run.Trace))
	}
	var wave *emu.WaveWriter
	if cli.Run.Wave != nil {
		defer cli.Run.Wave.Close()
		wave = emu.NewWaveWriter(cli.Run.Wave)
		drv.Attach(wave)
	}

	drv.PowerUp()
	addrAck, regAck, dataAck := drv.Write(uint8(cli.Run.Addr), uint8(cli.Run.Reg), uint8(cli.Run.Data))
	drv.Run(cfg.Sim.SettleTicks)

	if wave != nil {
		checkf(wave.Err(), "failed to write waveform")
	}

	fmt.Printf("write 0x%02X @ 0x%02X to address 0x%02X: ack=[%s %s %s]\n",
		uint8(cli.Run.Data), uint8(cli.Run.Reg), uint8(cli.Run.Addr),
		ackStr(addrAck), ackStr(regAck), ackStr(dataAck))

	if !addrAck {
		fmt.Printf("address not acknowledged (bridge answers on 0x%02X)\n",
			cfg.Bridge.SlaveAddr)
	}
	for _, frame := range rec.Frames {
		fmt.Printf("SPI frame:")
		for _, b := range frame {
			fmt.Printf(" %02X", b)
		}
		fmt.Println()
	}
	if len(rec.Frames) == 0 {
		fmt.Println("no SPI activity")
	}
}

func ackStr(ack bool) string {
	if ack {
		return "ACK"
	}
	return "NACK"
}
