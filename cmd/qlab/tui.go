package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"qlab"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusTokens focus = iota
	focusControls
	focusMenu
)

// control rows in the builder panel.
const (
	ctrlQubits = iota
	ctrlShots
)

// protocolEntry is one line in the protocol menu. run executes the
// protocol through the lab and returns the rendered result.
type protocolEntry struct {
	name string
	hint string
	run  func(lab *qlab.Lab) (string, error)
}

var protocolMenu = []protocolEntry{
	{name: "Bell state", hint: "entangled pair sample", run: func(lab *qlab.Lab) (string, error) {
		res, err := lab.BellState()
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		printBell(&buf, res)
		return buf.String(), nil
	}},
	{name: "BB84 key", hint: "32 bit sifted key", run: func(lab *qlab.Lab) (string, error) {
		res, err := lab.BB84(32)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		printBB84(&buf, res)
		return buf.String(), nil
	}},
	{name: "Quantum random", hint: "32 measured bits", run: func(lab *qlab.Lab) (string, error) {
		res, err := lab.QuantumRandom(32)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		printRandom(&buf, res)
		return buf.String(), nil
	}},
	{name: "Grover search", hint: "3 qubits, marked 5", run: func(lab *qlab.Lab) (string, error) {
		res, err := lab.Grover(3, 5)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		printGrover(&buf, res)
		return buf.String(), nil
	}},
	{name: "Fourier transform", hint: "3 qubit demo state", run: func(lab *qlab.Lab) (string, error) {
		res, err := lab.QFT(3)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		printQFT(&buf, res)
		return buf.String(), nil
	}},
	{name: "Phase estimation", hint: "3 counting qubits", run: func(lab *qlab.Lab) (string, error) {
		res, err := lab.PhaseEstimation(3)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		printPhase(&buf, res)
		return buf.String(), nil
	}},
	{name: "Teleportation", hint: "plus state message", run: func(lab *qlab.Lab) (string, error) {
		res, err := lab.Teleport("H")
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		printTeleport(&buf, res)
		return buf.String(), nil
	}},
	{name: "Molecule H2O", hint: "298 K, 1 atm", run: func(lab *qlab.Lab) (string, error) {
		res, err := lab.SimulateMolecule("h2o", 298, 1)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		printMolecule(&buf, res)
		return buf.String(), nil
	}},
}

// tuiModel is the terminal UI state.
type tuiModel struct {
	lab        *qlab.Lab
	tokens     textinput.Model
	qubits     int
	shots      int
	ctrlIdx    int
	focus      focus
	menuIdx    int
	width      int
	height     int
	statusMsg  string
	statusErr  bool
	resultText string
	counts     qlab.Histogram
	lastLikely string
	runs       int
}

func newTUIModel(lab *qlab.Lab, cfg *Config) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "H CNOT RZ(pi/2) ..."
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()

	return tuiModel{
		lab:    lab,
		tokens: ti,
		qubits: 2,
		shots:  cfg.Shots,
		focus:  focusTokens,
	}
}

func runTUI(lab *qlab.Lab, cfg *Config) error {
	p := tea.NewProgram(newTUIModel(lab, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return errors.Wrap(err, "terminal ui")
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tokens.Width = max(msg.Width/2-12, 20)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""
		m.statusErr = false

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusTokens:
			switch key {
			case "tab":
				m.focus = focusControls
				m.tokens.Blur()
			case "enter":
				m.execute()
			case "esc":
				return m, tea.Quit
			default:
				var cmd tea.Cmd
				m.tokens, cmd = m.tokens.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusControls:
			switch key {
			case "q", "esc":
				return m, tea.Quit
			case "tab":
				m.focus = focusMenu
			case "up", "k":
				if m.ctrlIdx > 0 {
					m.ctrlIdx--
				}
			case "down", "j":
				if m.ctrlIdx < ctrlShots {
					m.ctrlIdx++
				}
			case "left", "h":
				m.adjust(-1)
			case "right", "l":
				m.adjust(1)
			case "enter":
				m.execute()
			}

		case focusMenu:
			switch key {
			case "q":
				return m, tea.Quit
			case "esc":
				m.focus = focusTokens
				m.tokens.Focus()
			case "tab":
				m.focus = focusTokens
				m.tokens.Focus()
			case "up", "k":
				if m.menuIdx > 0 {
					m.menuIdx--
				}
			case "down", "j":
				if m.menuIdx < len(protocolMenu)-1 {
					m.menuIdx++
				}
			case "enter":
				m.runProtocol()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// adjust moves the active control row one step in either direction.
func (m *tuiModel) adjust(dir int) {
	switch m.ctrlIdx {
	case ctrlQubits:
		next := m.qubits + dir
		if next >= 1 && next <= qlab.MaxQubits {
			m.qubits = next
		}
	case ctrlShots:
		step := 100
		if m.shots+dir*step >= step {
			m.shots += dir * step
		}
	}
}

// execute binds the entered tokens and runs the circuit.
func (m *tuiModel) execute() {
	fields := strings.Fields(m.tokens.Value())
	if len(fields) == 0 {
		m.setError("enter gate tokens first, eg: H CNOT")
		return
	}
	m.runs++
	name := fmt.Sprintf("tui-%d", m.runs)
	id, err := createFromTokens(m.lab, name, m.qubits, fields)
	if err != nil {
		m.setError(err.Error())
		return
	}
	res, err := m.lab.Execute(id, m.shots)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.counts = res.Counts
	m.lastLikely = res.MostLikely
	m.resultText = ""
	m.statusMsg = fmt.Sprintf("executed %s: most likely %s", name, res.MostLikely)
}

// runProtocol executes the selected protocol menu entry.
func (m *tuiModel) runProtocol() {
	entry := protocolMenu[m.menuIdx]
	text, err := entry.run(m.lab)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.counts = nil
	m.resultText = text
	m.statusMsg = "ran " + entry.name
}

func (m *tuiModel) setError(msg string) {
	m.statusMsg = msg
	m.statusErr = true
}
