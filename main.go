package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"go8080/emu"
	"go8080/rom"
)

var version = "dev"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case runMode:
		checkf(runMain(cli), "emulation failed")
	case romInfosMode:
		r, err := rom.Open(cli.RomInfos.RomPath)
		checkf(err, "failed to read ROM")
		checkf(r.Infos(os.Stdout), "failed to show ROM infos")
	case disasmMode:
		r, err := rom.Open(cli.Disasm.RomPath)
		checkf(err, "failed to read ROM")
		checkf(r.Disasm(os.Stdout), "failed to disassemble ROM")
	case configMode:
		configMain(cli)
	case versionMode:
		fmt.Println("go8080", version)
	}
}

// loadConfig loads the configuration file given on the command line, or the
// one in the go8080 config directory.
func loadConfig(path string) emu.Config {
	if path == "" {
		return emu.LoadConfigOrDefault()
	}
	cfg, err := emu.LoadConfig(path)
	checkf(err, "failed to load configuration")
	return cfg
}

func configMain(cli CLI) {
	cfg := loadConfig(cli.ConfigFile)
	checkf(toml.NewEncoder(os.Stdout).Encode(cfg), "failed to encode configuration")

	if cli.Config.Save {
		checkf(emu.SaveConfig(cfg), "failed to save configuration")
		fmt.Fprintln(os.Stderr, "configuration saved to", emu.ConfigPath())
	}
}
