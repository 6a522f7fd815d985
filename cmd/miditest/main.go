package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"hopkinsville/clock"
	"hopkinsville/lcd"
	"hopkinsville/midi"
	"hopkinsville/params"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		monitor(args)
	case "send":
		sendClock(args)
	case "write":
		writeDirection(args)
	case "glyphs":
		printGlyphs()
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                      - List all MIDI ports")
	fmt.Println("  monitor <in>              - Count quarter notes from an input clock")
	fmt.Println("  send <out> [bpm] [bars]   - Send Start, clock pulses, Stop")
	fmt.Println("  write <out> <up|down|updown> - Send the arpeggiator direction NRPNs")
	fmt.Println("  glyphs                    - Print the screen glyph bitmaps")
	fmt.Println("  poll                      - Poll for device changes")
}

func listPorts() {
	fmt.Println("(waiting up to 3 seconds...)")
	ins, outs, err := midi.PortNames()
	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func monitor(args []string) {
	if len(args) < 1 {
		usage()
		return
	}
	in, err := midi.FindIn(args[0])
	if err != nil {
		fmt.Printf("%s: %v\n", args[0], err)
		return
	}

	transport := midi.NewTransport(96)
	defer transport.Close()
	if err := transport.Attach(in); err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}
	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", in.String())

	var meter clock.Meter
	div := clock.NewDivider()
	div.SetOnTransport(func(e clock.Event) {
		if e == clock.Start {
			meter.Reset()
		}
		fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), e)
	})
	div.SetOnQuarterNote(func(count int) {
		bpm := meter.Boundary(time.Now().UnixMicro())
		fmt.Printf("  quarter %d  beat %d  ~%d bpm\n", count, (count-1)%4+1, bpm)
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	for {
		select {
		case e := <-transport.Events():
			div.Handle(e)
		case <-sig:
			return
		}
	}
}

func sendClock(args []string) {
	if len(args) < 1 {
		usage()
		return
	}
	bpm, bars := 120, 2
	if len(args) > 1 {
		bpm, _ = strconv.Atoi(args[1])
	}
	if len(args) > 2 {
		bars, _ = strconv.Atoi(args[2])
	}

	out, err := openOutput(args[0])
	if err != nil {
		fmt.Printf("%s: %v\n", args[0], err)
		return
	}
	defer out.Detach()

	gen := clock.NewGenerator(bpm)
	fmt.Printf("Sending %d bars at %d bpm (pulse every %s) to %s\n", bars, gen.Tempo(), gen.Interval(), out.Port())

	out.Transport(clock.Start)
	ticker := time.NewTicker(gen.Interval())
	defer ticker.Stop()
	for i := 0; i < bars*4*clock.PulsesPerQuarterNote; i++ {
		<-ticker.C
		if err := out.Transport(clock.Pulse); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if (i+1)%clock.PulsesPerQuarterNote == 0 {
			fmt.Print(".")
		}
	}
	out.Transport(clock.Stop)
	fmt.Println("\nDone!")
}

func writeDirection(args []string) {
	if len(args) < 2 {
		usage()
		return
	}
	dir := -1
	for i, name := range []string{"up", "down", "updown"} {
		if strings.EqualFold(args[1], name) {
			dir = params.DirectionUp + i
		}
	}
	if dir < 0 {
		usage()
		return
	}

	out, err := openOutput(args[0])
	if err != nil {
		fmt.Printf("%s: %v\n", args[0], err)
		return
	}
	defer out.Detach()

	for _, p := range params.DirectionPatch(dir) {
		fmt.Printf("NRPN %d = %d\n", p.Param, p.Value)
		if err := out.NRPN(params.ProgramChannel-1, p.Param, p.Value); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
	fmt.Println("Done!")
}

func openOutput(name string) (*midi.Output, error) {
	port, err := midi.FindOut(name)
	if err != nil {
		return nil, err
	}
	out := midi.NewOutput()
	if err := out.Attach(port); err != nil {
		return nil, err
	}
	return out, nil
}

func printGlyphs() {
	for slot, g := range lcd.InstrumentGlyphs {
		fmt.Printf("slot %d\n%s\n", slot, g.Art())
	}
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds... Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		inNames, outNames, err := midi.PortNames()
		if err != nil {
			fmt.Printf("  %v\n", err)
			time.Sleep(2 * time.Second)
			continue
		}

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}
