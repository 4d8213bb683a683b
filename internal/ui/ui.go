package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nevisdale/mos6502/internal/cpu"
	"github.com/nevisdale/mos6502/internal/machine"
)

// P - pause
// R - one step and stop
// I - pulse IRQ
// N - pulse NMI

const (
	screenWidth  = 420
	screenHeight = 540
	screenScale  = 2

	disasmLines = 8
	stackRows   = 8
	stackCols   = 8

	panelPadding = 4
)

var (
	panelColor = color.RGBA{50, 50, 50, 255}
	haltColor  = color.RGBA{120, 30, 30, 255}
)

// Source is what the monitor needs from a machine.
type Source interface {
	Tic()
	TogglePause()
	OneStepAndStop()
	SetIRQ(level bool)
	SetNMI(level bool)
	Peek(addr uint16) uint8
	DebugInfo() machine.DebugInfo
	History() []cpu.Disassembly
	Disassemble(n int) []cpu.Disassembly
}

type UI struct {
	src Source
}

func New(src Source) *UI {
	return &UI{src: src}
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.src.TogglePause()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ui.src.OneStepAndStop()
	}

	ui.src.SetIRQ(ebiten.IsKeyPressed(ebiten.KeyI))
	ui.src.SetNMI(ebiten.IsKeyPressed(ebiten.KeyN))

	ui.src.Tic()
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	info := ui.src.DebugInfo()

	bg := panelColor
	if info.Halt != nil {
		bg = haltColor
	}
	vector.DrawFilledRect(screen, 0, 0, screenWidth, screenHeight, bg, false)
	ebitenutil.DebugPrintAt(screen, ui.text(info), panelPadding, panelPadding)
}

func (ui *UI) text(info machine.DebugInfo) string {
	var infoStr strings.Builder
	fmt.Fprintf(&infoStr, "FPS: %0.0f  TICS: %d\n", ebiten.ActualFPS(), info.Tics)
	writeRegisters(&infoStr, info)
	infoStr.WriteString("\n")
	for _, d := range ui.src.History() {
		infoStr.WriteString(" " + d.String() + "\n")
	}
	for i, d := range ui.src.Disassemble(disasmLines) {
		mark := " "
		if i == 0 {
			mark = "*"
		}
		infoStr.WriteString(mark + d.String() + "\n")
	}
	infoStr.WriteString("\n")
	writeStack(&infoStr, ui.src, info.SP)
	return infoStr.String()
}

func writeRegisters(w *strings.Builder, info machine.DebugInfo) {
	state := "RUNNING"
	switch {
	case info.Halt != nil:
		state = "HALTED: " + info.Halt.Error()
	case info.Paused:
		state = "PAUSED"
	}
	fmt.Fprintf(w, "%s\n", state)
	fmt.Fprintf(w, "STATUS: %s\n", info.StatusString())
	fmt.Fprintf(w, "PC: $%04X  SP: $%02X  CYC: %d\n", info.PC, info.SP, info.Cycles)
	fmt.Fprintf(w, "A: $%02X [%03d] ", info.A, info.A)
	fmt.Fprintf(w, "X: $%02X [%03d] ", info.X, info.X)
	fmt.Fprintf(w, "Y: $%02X [%03d]\n", info.Y, info.Y)
}

// writeStack dumps the stack page, marking the byte SP points at.
func writeStack(w *strings.Builder, src Source, sp uint8) {
	w.WriteString("STACK\n")
	for row := 0; row < stackRows; row++ {
		base := 0x100 + uint16(0x100-stackRows*stackCols) + uint16(row*stackCols)
		fmt.Fprintf(w, "$%04X:", base)
		for col := 0; col < stackCols; col++ {
			addr := base + uint16(col)
			mark := " "
			if uint8(addr) == sp {
				mark = ">"
			}
			fmt.Fprintf(w, "%s%02X", mark, src.Peek(addr))
		}
		w.WriteString("\n")
	}
}

func (ui *UI) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func RunUI(ui *UI) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*screenScale, screenHeight*screenScale)
	ebiten.SetWindowTitle("mos6502")
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
