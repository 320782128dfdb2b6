package console

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/rdkern/nesbox/disasm"
)

// BIOS runs an interactive debug REPL against the machine: breakpoints,
// single-stepping, memory/stack inspection, and free-run until a
// breakpoint or SIGINT/SIGTERM. It blocks until the user quits.
func (e *Emulator) BIOS(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", e)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run until a breakpoint or interrupt")
		fmt.Println("(S)tep - step the cpu one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("S(t)ack - show last 3 items on the stack")
		fmt.Println("(I)nstruction - show instruction bytes at PC")
		fmt.Println("(P)C - set program counter")
		fmt.Println("(Q)uit - leave the debug console")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			e.SetPC(readAddress("Set PC to what address (eg: 0400)?: "))
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				select {
				case <-sigQuit:
					cancel()
				case <-ctx.Done():
				}
			}(cctx)
			e.runUntil(cctx, breaks)
		case 's', 'S':
			if _, err := e.Step(); err != nil {
				fmt.Printf("step error: %v\n", err)
			}
		case 't', 'T':
			fmt.Println()
			base := e.StackAddr()
			for i := 0; i < 3; i++ {
				addr := base + uint16(i)
				fmt.Printf("0x%04x: 0x%02x ", addr, e.ReadMemory(addr))
				if addr == 0x01FF {
					break
				}
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			fmt.Println()
			pc := e.Snapshot().PC
			inst := disasm.Disassemble(e.ReadMemory, pc)
			for i := uint16(0); i < uint16(inst.Length); i++ {
				fmt.Printf("0x%04x: 0x%02x ", pc+i, e.ReadMemory(pc+i))
			}
			fmt.Printf("\n%04X: %s\n\n", pc, inst.Text)
		case 'e', 'E':
			e.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			addr := low
			for {
				fmt.Printf("0x%04x: 0x%02x ", addr, e.ReadMemory(addr))
				if x%5 == 0 {
					fmt.Println()
				}
				if addr == high || addr == math.MaxUint16 {
					break
				}
				x++
				addr++
			}
			fmt.Printf("\n\n")
		}
	}
}

// runUntil single-steps the CPU until a breakpoint address is hit, an
// instruction errors, or ctx is cancelled (SIGINT/SIGTERM or a quit
// from the outer loop).
func (e *Emulator) runUntil(ctx context.Context, breaks map[uint16]struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, ok := breaks[e.Snapshot().PC]; ok {
			return
		}
		if _, err := e.Step(); err != nil {
			fmt.Printf("halted: %v\n", err)
			return
		}
	}
}

func readAddress(prompt string) uint16 {
	fmt.Print(prompt)
	var addr uint16
	fmt.Scanf("%x\n", &addr)
	return addr
}
