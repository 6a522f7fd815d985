package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hopkinsville/config"
	"hopkinsville/debug"
	"hopkinsville/instrument"
	"hopkinsville/midi"
	"hopkinsville/theme"
	"hopkinsville/tui"
)

func main() {
	var (
		configPath  = flag.String("config", "", "config file (default ~/.config/hopkinsville/config.json)")
		inPort      = flag.String("in", "", "MIDI input port carrying the clock (substring match)")
		outPort     = flag.String("out", "", "MIDI output port of the synth (substring match)")
		tempo       = flag.Int("tempo", 0, "internal clock tempo in BPM")
		internal    = flag.Bool("internal", false, "generate clock internally instead of following the input")
		debugLog    = flag.Bool("debug", false, "write a debug log to ~/.config/hopkinsville/debug.log")
		palettePath = flag.String("palette", "", "GIMP .gpl palette for the screen colors")
	)
	flag.Parse()

	if *debugLog {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	path := *configPath
	if path == "" {
		if p, err := config.ConfigPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config %s: %v\n", path, err)
		os.Exit(1)
	}
	if *inPort != "" {
		cfg.MIDI.InputPort = *inPort
	}
	if *outPort != "" {
		cfg.MIDI.OutputPort = *outPort
	}
	if *internal {
		cfg.Clock.Source = config.ClockInternal
	}
	if *tempo > 0 {
		cfg.Clock.Tempo = *tempo
	}

	palette, err := theme.LoadOrDefault(*palettePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "palette: %v (using default)\n", err)
	}
	th := theme.New(palette)

	transport := midi.NewTransport(96)
	defer transport.Close()
	out := midi.NewOutput()

	panel := instrument.New(cfg, out)

	// Device manager attaches the named ports as they appear
	deviceMgr := midi.NewDeviceManager(cfg.MIDI.InputPort, cfg.MIDI.OutputPort, transport, out)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)

	debug.Log("main", "starting: in=%q out=%q source=%s tempo=%d", cfg.MIDI.InputPort, cfg.MIDI.OutputPort, cfg.Clock.Source, cfg.Clock.Tempo)

	m := tui.NewModel(panel, transport, deviceMgr, cfg, th)
	m.ConfigPath = path
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
