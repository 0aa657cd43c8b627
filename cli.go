package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"go8080/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Run a program
	romInfosMode             // Show ROM infos
	disasmMode               // Disassemble a ROM
	configMode               // Show or save the configuration
	versionMode              // Show go8080 version
)

type (
	CLI struct {
		Run      Run       `cmd:"" help:"Run a program in the emulator."`
		RomInfos RomInfos  `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Disasm   Disasm    `cmd:"" help:"Disassemble a whole ROM."`
		Config   ConfigCmd `cmd:"" help:"Show the effective configuration."`
		Version  Version   `cmd:"" help:"Show go8080 version."`

		ConfigFile string     `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`
		Log        logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" required:"true" type:"existingfile"`

		SP          *address      `name:"sp" help:"Initial stack pointer, overrides the configuration." placeholder:"ADDR"`
		MaxSteps    int64         `name:"max-steps" help:"Stop after N instructions, overrides the configuration if not 0." placeholder:"N"`
		StopOutside bool          `name:"stop-outside" help:"${stopoutside_help}"`
		Progress    time.Duration `name:"progress" help:"Report progress at this period, overrides the configuration if not 0." placeholder:"DURATION"`
		Trace       *outfile      `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		Report      *outfile      `name:"report" help:"Write final CPU state as JSON." placeholder:"FILE|stdout|stderr"`
		Dump        bool          `name:"dump" help:"Print final CPU state."`
		CPUProfile  string        `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
	}

	RomInfos struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	Disasm struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	ConfigCmd struct {
		Save bool `name:"save" help:"${save_help}"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"rompath_help":     "Raw 8080 program image, loaded at address 0.",
	"config_help":      "Configuration file. (default: <user config dir>/go8080/config.toml)",
	"cpuprofile_help":  "Write CPU profile to file.",
	"stopoutside_help": "Stop as soon as PC leaves the loaded image.",
	"save_help":        "Save the configuration into go8080 config directory.",
	"log_help":         "Enable logging for specified modules.",
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("go8080"),
		kong.Description("Intel 8080 emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := newParser(&cfg)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	cfg.mode = commandMode(ctx.Command())
	return cfg
}

func commandMode(cmd string) mode {
	switch strings.Fields(cmd)[0] {
	case "rom-infos":
		return romInfosMode
	case "disasm":
		return disasmMode
	case "config":
		return configMode
	case "version":
		return versionMode
	}
	return runMode
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

// address is a 16-bit address given in decimal, hexadecimal (0x), octal (0o)
// or binary (0b).
type address uint16

// Decode implements kong.MapperValue interface.
func (a *address) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	s, ok := tok.Value.(string)
	if !ok {
		return fmt.Errorf("expected an address but got %v (%T)", tok.Value, tok.Value)
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", s, err)
	}
	*a = address(v)
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
