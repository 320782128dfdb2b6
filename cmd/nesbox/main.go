// Command nesbox runs an NES ROM through an ebiten-hosted window, or
// drops into a text debug console with -bios.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rdkern/nesbox/console"
)

var biosMode = flag.Bool("bios", false, "Drop into the text debug console instead of the windowed player.")

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-bios] <rom.nes>\n", os.Args[0])
	os.Exit(1)
}

// keys maps the standard controller's bit order (A, B, Select, Start,
// Up, Down, Left, Right) onto host keys.
var keys = []ebiten.Key{
	ebiten.KeyZ,
	ebiten.KeyX,
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}
	romFile := flag.Arg(0)

	rom, err := os.ReadFile(romFile)
	if err != nil {
		log.Fatalf("reading ROM %q: %v", romFile, err)
	}

	emu, err := console.New(rom)
	if err != nil {
		log.Fatalf("loading ROM %q: %v", romFile, err)
	}

	if *biosMode {
		emu.BIOS(context.Background())
		os.Exit(0)
	}

	h := &host{emu: emu}
	ebiten.SetWindowSize(console.FrameWidth*2, console.FrameHeight*2)
	ebiten.SetWindowTitle("nesbox")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(h); err != nil {
		log.Fatal(err)
	}
}

// host adapts an *console.Emulator to the ebiten.Game interface: one
// emulated frame per Update, blitted to the window in Draw.
type host struct {
	emu *console.Emulator
	fb  [console.FrameWidth * console.FrameHeight]uint32
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return console.FrameWidth, console.FrameHeight
}

func (h *host) Update() error {
	h.pollInput()
	if err := h.emu.RunFrame(&h.fb); err != nil {
		return err
	}
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	for y := 0; y < console.FrameHeight; y++ {
		for x := 0; x < console.FrameWidth; x++ {
			screen.Set(x, y, unpackColor(h.fb[y*console.FrameWidth+x]))
		}
	}
}

func (h *host) pollInput() {
	var mask uint8
	for i, key := range keys {
		if ebiten.IsKeyPressed(key) {
			mask |= 1 << i
		}
	}
	h.emu.SetButtons(0, mask)
}

// unpackColor expands the PPU's packed 0x00RRGGBB framebuffer format
// into an ebiten-friendly, fully opaque color.RGBA.
func unpackColor(c uint32) color.RGBA {
	return color.RGBA{
		A: 0xFF,
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}
