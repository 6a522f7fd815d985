package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hopkinsville/clock"
	"hopkinsville/config"
	"hopkinsville/debug"
	"hopkinsville/instrument"
	"hopkinsville/midi"
	"hopkinsville/theme"
)

// The bubbletea loop is the panel's scheduler: every tick, key press and
// transport event is handled to completion in Update before the next one.

type pollMsg struct{}

type blinkMsg struct{}

type downbeatOffMsg struct{}

// pulseMsg is one internal clock pulse; gen discards pulses scheduled
// before the clock was stopped or restarted.
type pulseMsg struct{ gen int }

// TransportMsg carries one event from the MIDI input.
type TransportMsg clock.Event

type DeviceEventMsg midi.DeviceEvent

type errMsg struct{ err error }

type Model struct {
	Panel      *instrument.Instrument
	Transport  *midi.Transport
	DeviceMgr  *midi.DeviceManager
	Config     *config.Config
	ConfigPath string
	Theme      *theme.Theme

	keys     KeyMap
	help     help.Model
	quitting bool

	running  bool // internal clock
	clockGen int

	inPort, outPort string
	status          string
	err             error
}

func NewModel(panel *instrument.Instrument, transport *midi.Transport, deviceMgr *midi.DeviceManager, cfg *config.Config, th *theme.Theme) Model {
	return Model{
		Panel:     panel,
		Transport: transport,
		DeviceMgr: deviceMgr,
		Config:    cfg,
		Theme:     th,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
}

func ListenForTransport(t *midi.Transport) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-t.Events():
			return TransportMsg(e)
		case <-t.Done():
			return nil
		}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.Config.Timing.DisplayPollInterval(), func(time.Time) tea.Msg { return pollMsg{} })
}

func (m Model) scheduleBlink() tea.Cmd {
	return tea.Tick(m.Config.Timing.UpdateEditableInterval(), func(time.Time) tea.Msg { return blinkMsg{} })
}

func (m Model) scheduleDownbeatOff() tea.Cmd {
	return tea.Tick(m.Config.Timing.DownbeatFlashDuration(), func(time.Time) tea.Msg { return downbeatOffMsg{} })
}

// schedulePulse waits for the next absolute pulse deadline, so time spent
// handling one pulse does not push back the ones after it.
func (m Model) schedulePulse() tea.Cmd {
	gen := m.clockGen
	deadline := m.Panel.Gen.Next()
	return tea.Tick(time.Until(deadline), func(time.Time) tea.Msg { return pulseMsg{gen: gen} })
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.schedulePoll(), m.scheduleBlink()}
	if m.Transport != nil {
		cmds = append(cmds, ListenForTransport(m.Transport))
	}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case pollMsg:
		m.Panel.Refresh()
		return m, m.schedulePoll()

	case blinkMsg:
		m.Panel.Blink()
		return m, m.scheduleBlink()

	case downbeatOffMsg:
		m.Panel.DownbeatOff()

	case pulseMsg:
		if !m.running || msg.gen != m.clockGen {
			return m, nil
		}
		cmds := []tea.Cmd{m.schedulePulse()}
		if m.Panel.Transport(clock.Pulse) {
			cmds = append(cmds, m.scheduleDownbeatOff())
		}
		return m, tea.Batch(cmds...)

	case TransportMsg:
		next := ListenForTransport(m.Transport)
		// the internal clock is the master; external transport is drained
		if m.Panel.Internal() {
			return m, next
		}
		if m.Panel.Transport(clock.Event(msg)) {
			return m, tea.Batch(next, m.scheduleDownbeatOff())
		}
		return m, next

	case DeviceEventMsg:
		m.handleDevice(midi.DeviceEvent(msg))
		return m, ListenForDevices(m.DeviceMgr)

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.running {
			m.Panel.Pause()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Increment):
		m.Panel.Encoder(1)

	case key.Matches(msg, m.keys.Decrement):
		m.Panel.Encoder(-1)

	case key.Matches(msg, m.keys.Next):
		m.Panel.Next()

	case key.Matches(msg, m.keys.Previous):
		m.Panel.Previous()

	case key.Matches(msg, m.keys.Write):
		if err := m.Panel.Write(); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.status = "written"
		}

	case key.Matches(msg, m.keys.Audition):
		m.Panel.ToggleAudition()

	case key.Matches(msg, m.keys.Play):
		if !m.Panel.Internal() {
			return m, nil
		}
		m.clockGen++
		if m.running {
			m.running = false
			m.Panel.Pause()
			return m, nil
		}
		m.running = true
		m.Panel.Play()
		return m, m.schedulePulse()

	case key.Matches(msg, m.keys.Continue):
		if !m.Panel.Internal() || m.running {
			return m, nil
		}
		m.clockGen++
		m.running = true
		m.Panel.Resume()
		return m, m.schedulePulse()

	case key.Matches(msg, m.keys.Faster):
		m.Panel.NudgeTempo(1)

	case key.Matches(msg, m.keys.Slower):
		m.Panel.NudgeTempo(-1)

	case key.Matches(msg, m.keys.Save):
		m.save()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) save() {
	m.Config.Fields = m.Panel.Values()
	var err error
	if m.ConfigPath != "" {
		err = m.Config.SaveFile(m.ConfigPath)
	} else {
		err = m.Config.Save()
	}
	if err != nil {
		m.err = fault.Wrap(err, fmsg.WithDesc("save config", "Could not save the configuration"))
		return
	}
	m.err = nil
	m.status = "saved"
}

func (m *Model) handleDevice(e midi.DeviceEvent) {
	debug.Log("tui", "device event %s %s type=%d", e.Kind, e.Name, e.Type)
	switch e.Type {
	case midi.DeviceConnected:
		if e.Kind == midi.PortInput {
			m.inPort = e.Name
			return
		}
		m.outPort = e.Name
		if err := m.Panel.SendClockMode(); err != nil {
			m.err = err
		}
	case midi.DeviceDisconnected:
		if e.Kind == midi.PortInput {
			m.inPort = ""
		} else {
			m.outPort = ""
		}
	case midi.DeviceFailed:
		m.err = fault.Wrap(e.Err, fmsg.WithDesc("open port", fmt.Sprintf("Could not open MIDI %s port %s", e.Kind, e.Name)))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	source := "EXT"
	if m.Panel.Internal() {
		source = "INT"
	}
	playState := "STOP"
	if m.Panel.Divider.Playing() {
		playState = "PLAY"
	}
	tempo := "---"
	if t := m.Panel.Tempo(); t > 0 {
		tempo = fmt.Sprintf("%3d", t)
	}
	beat := "-"
	if b := m.Panel.Beat(); b > 0 {
		beat = fmt.Sprint(b)
	}
	header := headerStyle.Render(fmt.Sprintf("hopkinsville  %s %s  %sbpm  beat %s", source, playState, tempo, beat))

	ports := dimStyle.Render(fmt.Sprintf("in: %s  out: %s", portLabel(m.inPort), portLabel(m.outPort)))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(renderLCD(m.Panel, m.Theme))
	out.WriteString("\n")
	out.WriteString(renderLamps(m.Panel, m.Theme))
	out.WriteString("\n\n")
	out.WriteString(ports)
	out.WriteString("\n")

	switch {
	case m.err != nil:
		out.WriteString(errStyle.Render(errorText(m.err)))
	case m.status != "":
		out.WriteString(dimStyle.Render(m.status))
	}
	out.WriteString("\n\n")
	out.WriteString(m.help.View(m.keys))

	return out.String()
}

func portLabel(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

// errorText prefers the user-facing description attached with fmsg.
func errorText(err error) string {
	if issue := fmsg.GetIssue(err); issue != "" {
		return issue
	}
	return err.Error()
}
