// Package rom loads raw 8080 program images. An image is a flat binary
// loaded at address 0, with no header.
package rom

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"go8080/hw"
)

// MaxSize is the size of the largest image, the whole address space.
const MaxSize = hw.MemSize

var ErrEmpty = errors.New("empty image")

type Rom struct {
	Path string // empty if not read from a file
	Data []byte
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := &Rom{Path: path}
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom interface
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	// Read one byte more than allowed to detect oversize images.
	buf, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return int64(len(buf)), err
	}

	switch {
	case len(buf) == 0:
		return 0, ErrEmpty
	case len(buf) > MaxSize:
		return int64(len(buf)), &hw.OutOfBoundsError{Addr: len(buf) - 1, Op: "load"}
	}

	rom.Data = buf
	return int64(len(buf)), nil
}

func (rom *Rom) CRC32() uint32 {
	return crc32.ChecksumIEEE(rom.Data)
}

func (rom *Rom) SHA1() [sha1.Size]byte {
	return sha1.Sum(rom.Data)
}

// number of instructions disassembled by Infos.
const infosInstructions = 16

// Infos prints the image size, checksums and a disassembly of the first
// instructions.
func (rom *Rom) Infos(w io.Writer) error {
	cpu := hw.NewCPU()
	if err := cpu.Load(rom.Data); err != nil {
		return err
	}

	if rom.Path != "" {
		fmt.Fprintf(w, "path:  %s\n", rom.Path)
	}
	fmt.Fprintf(w, "size:  %d bytes\n", len(rom.Data))
	fmt.Fprintf(w, "crc32: %08x\n", rom.CRC32())
	fmt.Fprintf(w, "sha1:  %x\n", rom.SHA1())
	fmt.Fprintln(w)

	return rom.disasm(w, cpu, infosInstructions)
}

// Disasm writes the disassembly of the whole image.
func (rom *Rom) Disasm(w io.Writer) error {
	cpu := hw.NewCPU()
	if err := cpu.Load(rom.Data); err != nil {
		return err
	}
	return rom.disasm(w, cpu, len(rom.Data))
}

// disasm writes at most n instructions, stopping at the end of the image.
func (rom *Rom) disasm(w io.Writer, cpu *hw.CPU, n int) error {
	pc := 0
	for range n {
		if pc >= len(rom.Data) {
			break
		}
		d := cpu.Disasm(uint16(pc))
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
		pc += len(d.Buf)
	}
	return nil
}
