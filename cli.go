package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"i2spi/emu/log"
)

type mode byte

const (
	runMode     mode = iota // Drive one write transaction
	soakMode                // Randomized verification runs
	configMode              // Print effective configuration
	versionMode             // Show i2spi version
)

type (
	CLI struct {
		Run     Run       `cmd:"" help:"Drive one I2C register write through the bridge."`
		Soak    Soak      `cmd:"" help:"Run randomized transactions and verify the forwarded bytes."`
		Config  ConfigCmd `cmd:"" help:"Print the effective configuration as TOML."`
		Version Version   `cmd:"" help:"Show i2spi version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		Reg  hexByte `arg:"" name:"register" help:"Register address byte."`
		Data hexByte `arg:"" name:"data" help:"Data byte."`

		Addr  hexByte  `name:"addr" help:"${addr_help}" default:"0x28"`
		Trace *outfile `name:"trace" help:"Write pin trace." placeholder:"FILE|stdout|stderr"`
		Wave  *outfile `name:"wave" help:"Write JSON-lines waveform." placeholder:"FILE|stdout|stderr"`
	}

	Soak struct {
		Count int `name:"count" help:"Number of transactions to run." default:"100"`
		Jobs  int `name:"jobs" help:"Number of parallel bridge instances." default:"4"`
	}

	ConfigCmd struct{}

	Version struct{}
)

var vars = kong.Vars{
	"addr_help": "Target 7-bit address for the write. The bridge answers on the configured slave_addr.",
	"log_help":  "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("i2spi"),
		kong.Description("Cycle-accurate I2C-slave to SPI-master bridge simulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "soak":
		cfg.mode = soakMode
	case "config":
		cfg.mode = configMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

// hexByte accepts decimal, 0x-prefixed hex and 0-prefixed octal byte values
// on the command line.
type hexByte uint8

func (h *hexByte) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 0, 8)
	if err != nil {
		return fmt.Errorf("invalid byte value %q", text)
	}
	*h = hexByte(v)
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
