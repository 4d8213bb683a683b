// Package loader reads program images from a filesystem and places them
// in the 6502 address space.
package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/nevisdale/mos6502/internal/cpu"
	"github.com/nevisdale/mos6502/internal/mem"
	"github.com/spf13/afero"
)

const (
	inesMagic        = 0x1a53454e // "NES\x1a"
	inesTrainerSize  = 512
	prgBankSizeBytes = 0x4000

	prgStartAddr = uint16(0x8000)
)

var (
	ErrEmptyImage        = errors.New("empty image")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
	ErrInvalidImage      = errors.New("invalid image")
)

type Format uint8

const (
	FormatRaw Format = iota
	FormatINES
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatINES:
		return "iNES"
	}
	return "unknown"
}

// Options controls how raw images are placed. iNES images carry their
// own layout and only honour Entry.
type Options struct {
	// Origin is the load address of a raw image.
	Origin uint16

	// Entry overrides the start address when HasEntry is set.
	// A raw image without an override starts at Origin.
	Entry    uint16
	HasEntry bool

	// SetResetVector makes Install point the reset vector at Entry,
	// so the CPU reaches the program through Reset.
	SetResetVector bool
}

// Segment is a contiguous run of bytes placed at Addr.
type Segment struct {
	Addr uint16
	Data []uint8
}

type Program struct {
	Format   Format
	Segments []Segment

	// Entry is valid only when HasEntry is set. Otherwise the program
	// is started through its reset vector.
	Entry    uint16
	HasEntry bool

	setResetVector bool
}

// Load reads the image at path. iNES images are detected by their magic
// number; anything else is a raw binary loaded at opts.Origin.
func Load(fs afero.Fs, path string, opts Options) (*Program, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}

	var p *Program
	if isINES(data) {
		p, err = parseINES(bytes.NewReader(data))
	} else {
		p, err = parseRaw(data, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if opts.HasEntry {
		p.Entry = opts.Entry
		p.HasEntry = true
	}
	p.setResetVector = opts.SetResetVector && p.Format == FormatRaw && p.HasEntry
	return p, nil
}

func isINES(data []uint8) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data) == inesMagic
}

func parseRaw(data []uint8, opts Options) (*Program, error) {
	if int(opts.Origin)+len(data) > mem.Size {
		return nil, fmt.Errorf("%w: %d bytes at $%04X", mem.ErrAddressOutOfRange, len(data), opts.Origin)
	}
	return &Program{
		Format:   FormatRaw,
		Segments: []Segment{{Addr: opts.Origin, Data: data}},
		Entry:    opts.Origin,
		HasEntry: true,
	}, nil
}

// parseINES maps the PRG ROM the way mapper 0 does: a single 16 KB bank
// appears at both $8000 and $C000, two banks fill $8000-$FFFF.
// CHR ROM is ignored because there is no PPU.
func parseINES(r io.ReadSeeker) (*Program, error) {
	var header struct {
		Magic      uint32
		PrgRomSize uint8
		ChrRomSize uint8
		Flags6     uint8
		Flags7     uint8
		Flags8     uint8
		Flags9     uint8
		Flags10    uint8
		_          [5]uint8 // unused
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("couldn't read the header: %w", err)
	}
	if header.Magic != inesMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidImage)
	}

	// flag6: lower 4 bits of mapper ID
	// flag7: upper 4 bits of mapper ID
	mapperID := (header.Flags7 & 0xf0) | (header.Flags6 >> 4)
	if mapperID != 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, mapperID)
	}
	if header.PrgRomSize != 1 && header.PrgRomSize != 2 {
		return nil, fmt.Errorf("%w: %d PRG banks", ErrInvalidImage, header.PrgRomSize)
	}

	// the second bit of flags6 is the trainer flag
	if header.Flags6&0x4 != 0 {
		if _, err := r.Seek(inesTrainerSize, io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("couldn't skip the trainer: %w", err)
		}
	}

	prg := make([]uint8, int(header.PrgRomSize)*prgBankSizeBytes)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("couldn't read PRG ROM: %w", err)
	}

	p := &Program{Format: FormatINES}
	p.Segments = append(p.Segments, Segment{Addr: prgStartAddr, Data: prg})
	if header.PrgRomSize == 1 {
		p.Segments = append(p.Segments, Segment{Addr: prgStartAddr + prgBankSizeBytes, Data: prg})
	}
	return p, nil
}

// Install copies every segment into m and writes the reset vector if it
// was requested.
func (p *Program) Install(m mem.Loader) error {
	for _, seg := range p.Segments {
		if err := m.Load(seg.Addr, seg.Data); err != nil {
			return fmt.Errorf("couldn't install segment at $%04X: %w", seg.Addr, err)
		}
	}
	if p.setResetVector {
		vec := []uint8{uint8(p.Entry), uint8(p.Entry >> 8)}
		if err := m.Load(cpu.VectorReset, vec); err != nil {
			return fmt.Errorf("couldn't set the reset vector: %w", err)
		}
	}
	return nil
}

// Size is the number of bytes Install writes, vectors excluded.
func (p *Program) Size() int {
	n := 0
	for _, seg := range p.Segments {
		n += len(seg.Data)
	}
	return n
}
