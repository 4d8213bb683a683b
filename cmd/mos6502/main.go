package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/nevisdale/mos6502/internal/cpu"
	"github.com/nevisdale/mos6502/internal/loader"
	"github.com/nevisdale/mos6502/internal/machine"
	"github.com/nevisdale/mos6502/internal/ui"
	"github.com/pkg/profile"
	"github.com/spf13/afero"
)

var (
	path,
	origin,
	entry,
	profileMode string
)

var (
	headless,
	setVector,
	trace,
	noBCD bool
)

var steps uint64

func init() {
	flag.StringVar(&path, "path", "", "Path to a raw binary or iNES image")
	flag.StringVar(&origin, "origin", "0x0800", "Load address of a raw binary")
	flag.StringVar(&entry, "entry", "", "Start address, overrides the reset vector")
	flag.BoolVar(&setVector, "vector", false, "Point the reset vector at the start address of a raw binary")
	flag.BoolVar(&headless, "headless", false, "Run without the monitor window")
	flag.Uint64Var(&steps, "steps", 0, "Stop a headless run after this many instructions (0 runs until trapped)")
	flag.BoolVar(&trace, "trace", false, "Write a trace line per instruction to stderr")
	flag.BoolVar(&noBCD, "nobcd", false, "Disable decimal mode like the Ricoh 2A03")
	flag.StringVar(&profileMode, "profile", "", "Write a cpu or mem profile to the current directory")
}

func parseAddr(name, s string) uint16 {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		log.Fatalf("invalid -%s %q: %s\n", name, s, err)
	}
	return uint16(v)
}

func main() {
	flag.Parse()

	if path == "" {
		flag.Usage()
		os.Exit(2)
	}

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		log.Fatalf("unknown profile mode %q\n", profileMode)
	}

	opts := loader.Options{
		Origin:         parseAddr("origin", origin),
		SetResetVector: setVector,
	}
	if entry != "" {
		opts.Entry = parseAddr("entry", entry)
		opts.HasEntry = true
	}
	prog, err := loader.Load(afero.NewOsFs(), path, opts)
	if err != nil {
		log.Fatalf("couldn't load the program: %s\n", err)
	}
	log.Printf("loaded %s image, %d bytes\n", prog.Format, prog.Size())

	var cpuOpts []cpu.Option
	if noBCD {
		cpuOpts = append(cpuOpts, cpu.WithoutDecimalMode())
	}
	m, err := machine.New(cpuOpts...)
	if err != nil {
		log.Fatalf("couldn't create machine: %s\n", err)
	}
	if err := m.Install(prog); err != nil {
		log.Fatalf("couldn't install the program: %s\n", err)
	}
	m.Reset()
	if trace {
		m.SetTrace(os.Stderr)
	}

	if !headless {
		if err := ui.RunUI(ui.New(m)); err != nil {
			log.Fatalf("ui: %s\n", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, err := m.Run(ctx, steps)
	info := m.DebugInfo()
	log.Printf("%d instructions, %d cycles, PC $%04X, A $%02X X $%02X Y $%02X SP $%02X P %s\n",
		n, info.Cycles, info.PC, info.A, info.X, info.Y, info.SP, info.StatusString())
	switch {
	case errors.Is(err, machine.ErrTrapped):
		log.Printf("%s\n", err)
	case err != nil:
		log.Printf("stopped: %s\n", err)
	}
}
