package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/go-faster/jx"
	"golang.org/x/sync/errgroup"

	"go8080/emu"
	"go8080/emu/log"
	"go8080/rom"
)

// applyFlags overrides cfg with the run flags that have been set.
func applyFlags(cfg *emu.Config, args Run) {
	if args.SP != nil {
		cfg.CPU.StackPointer = uint16(*args.SP)
	}
	if args.MaxSteps != 0 {
		cfg.Run.MaxSteps = args.MaxSteps
	}
	if args.StopOutside {
		cfg.Run.StopOutsideImage = true
	}
	if args.Progress != 0 {
		cfg.Run.Progress.Duration = args.Progress
	}
	if args.Trace != nil {
		cfg.TraceOut = args.Trace
	}
}

// runMain runs the emulator on the ROM given on the command line.
func runMain(cli CLI) error {
	args := cli.Run

	r, err := rom.Open(args.RomPath)
	if err != nil {
		return err
	}

	cfg := loadConfig(cli.ConfigFile)
	applyFlags(&cfg, args)

	mask, err := cfg.Log.Mask()
	if err != nil {
		return err
	}
	if cfg.Run.Progress.Duration > 0 {
		mask |= log.ModEmu.Mask()
	}
	log.EnableDebugModules(mask)

	if args.Trace != nil {
		defer args.Trace.Close()
	}

	e, err := emu.New(r.Data, cfg)
	if err != nil {
		return err
	}

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	done := make(chan struct{})

	var reason emu.StopReason
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)

		var err error
		reason, err = e.Run(gctx)
		return err
	})
	if period := cfg.Run.Progress.Duration; period > 0 {
		g.Go(func() error {
			reportProgress(e, period, done)
			return nil
		})
	}
	runErr := g.Wait()

	log.ModEmu.InfoZ("Emulation stopped").
		Stringer("reason", reason).
		Int64("steps", e.Steps()).
		Duration("elapsed", time.Since(start)).
		End()

	if args.Dump {
		fmt.Println(e.CPU.State())
	}
	if args.Report != nil {
		err := writeReport(args.Report, e, reason, runErr)
		args.Report.Close()
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	return runErr
}

// reportProgress logs the number of executed instructions every period,
// until done is closed.
func reportProgress(e *emu.Emulator, period time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var last int64
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			steps := e.Steps()
			log.ModEmu.InfoZ("Progress").
				Int64("steps", steps).
				Int64("steps/s", int64(float64(steps-last)/period.Seconds())).
				End()
			last = steps
		}
	}
}

// writeReport writes the final emulator state as a JSON object.
func writeReport(w io.Writer, e *emu.Emulator, reason emu.StopReason, runErr error) error {
	var enc jx.Encoder
	enc.ObjStart()
	enc.FieldStart("stop_reason")
	enc.Str(reason.String())
	enc.FieldStart("steps")
	enc.Int64(e.Steps())
	if runErr != nil {
		enc.FieldStart("error")
		enc.Str(runErr.Error())
	}
	enc.FieldStart("state")
	e.CPU.State().EncodeJSON(&enc)
	enc.ObjEnd()

	_, err := w.Write(append(enc.Bytes(), '\n'))
	return err
}
