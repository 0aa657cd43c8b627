package emu

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go8080/emu/log"
	"go8080/hw"
)

//go:generate go tool stringer -type=StopReason -trimprefix=Stop

// StopReason tells why Run returned.
type StopReason int

const (
	StopHalted       StopReason = iota // HLT executed
	StopOutsideImage                   // PC left the loaded image
	StopMaxSteps                       // step budget exhausted
	StopCanceled                       // context canceled
	StopFault                          // Step returned an error
)

// the context is only checked every ctxCheckSteps instructions.
const ctxCheckSteps = 4096

type Emulator struct {
	CPU *hw.CPU
	cfg RunConfig

	imageSize int

	// Accessed concurrently by Run and progress reporters.
	steps atomic.Int64
}

// New creates an emulator with image loaded at address 0.
func New(image []byte, cfg Config) (*Emulator, error) {
	cpu := hw.NewCPU()
	if err := cpu.Load(image); err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	cpu.SetSP(cfg.CPU.StackPointer)

	// CPU execution trace setup.
	if cfg.TraceOut != nil {
		cpu.SetTraceOutput(cfg.TraceOut)
	}

	log.ModEmu.InfoZ("Image loaded").
		Int("size", len(image)).
		Hex16("sp", cfg.CPU.StackPointer).
		End()

	return &Emulator{
		CPU:       cpu,
		cfg:       cfg.Run,
		imageSize: len(image),
	}, nil
}

// Steps returns the number of instructions executed so far. Safe to call
// while Run is executing.
func (e *Emulator) Steps() int64 {
	return e.steps.Load()
}

// Run executes instructions until the CPU halts, a stop condition of the run
// configuration is met, ctx is canceled or an instruction fails. The
// returned error is non-nil only for StopFault.
func (e *Emulator) Run(ctx context.Context) (StopReason, error) {
	for {
		steps := e.steps.Load()
		if steps%ctxCheckSteps == 0 && ctx.Err() != nil {
			return StopCanceled, nil
		}
		if e.cfg.MaxSteps > 0 && steps >= e.cfg.MaxSteps {
			return StopMaxSteps, nil
		}
		if e.cfg.StopOutsideImage && int(e.CPU.PC()) >= e.imageSize {
			return StopOutsideImage, nil
		}

		if err := e.CPU.Step(); err != nil {
			if errors.Is(err, hw.ErrHalted) {
				return StopHalted, nil
			}
			return StopFault, fmt.Errorf("step %d: %w", steps, err)
		}
		e.steps.Add(1)

		if e.CPU.Halted() {
			return StopHalted, nil
		}
	}
}
