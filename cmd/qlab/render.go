package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qlab"
)

// ──────────────────────────── Top-level view ────────────────────────────

func (m tuiModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	leftW := min(44, m.width/2)
	rightW := max(m.width-leftW-6, 24)
	ctrlH := 4
	bodyH := max(m.height-ctrlH-3, 12)

	resultsH := max(bodyH*2/3, 8)
	registryH := max(bodyH-resultsH-2, 4)

	builder := m.renderBuilderPanel(leftW, bodyH)
	results := m.renderResultsPanel(rightW, resultsH)
	registry := m.renderRegistryPanel(rightW, registryH)

	right := lipgloss.JoinVertical(lipgloss.Left, results, registry)
	body := lipgloss.JoinHorizontal(lipgloss.Top, builder, right)
	controls := m.renderControlsPanel(m.width-4, ctrlH-2)

	return lipgloss.JoinVertical(lipgloss.Left, body, controls)
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderBuilderPanel renders the token entry, run controls, and protocol menu.
func (m tuiModel) renderBuilderPanel(width, height int) string {
	var sb strings.Builder

	title := "Circuit Builder"
	if m.focus == focusTokens {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	sb.WriteString(m.tokens.View())
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("bare RY/RZ bind " + formatParam(math.Pi/4)))
	sb.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"qubits", fmt.Sprintf("%d", m.qubits)},
		{"shots", fmt.Sprintf("%d", m.shots)},
	}
	for i, row := range rows {
		marker := "  "
		style := menuNormalStyle
		if m.focus == focusControls && i == m.ctrlIdx {
			marker = "▸ "
			style = menuSelectedStyle
		}
		sb.WriteString(marker + labelStyle.Render(fmt.Sprintf("%-8s", row.label)) + style.Render(row.value))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	menuTitle := "Protocols"
	if m.focus == focusMenu {
		menuTitle += " [ACTIVE]"
	}
	sb.WriteString(accentStyle.Render(menuTitle))
	sb.WriteString("\n")
	for i, entry := range protocolMenu {
		if m.focus == focusMenu && i == m.menuIdx {
			sb.WriteString(menuSelectedStyle.Render("▸ " + entry.name))
			sb.WriteString(dimStyle.Render("  " + entry.hint))
		} else {
			sb.WriteString(menuNormalStyle.Render("  " + entry.name))
		}
		sb.WriteString("\n")
	}

	return builderStyle.Width(width).Height(height).Render(sb.String())
}

// renderResultsPanel renders the last execution histogram or protocol output.
func (m tuiModel) renderResultsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Results"))
	sb.WriteString("\n\n")

	switch {
	case m.counts != nil:
		sb.WriteString(renderBars(m.counts, m.lastLikely, width-4))
	case m.resultText != "":
		sb.WriteString(m.resultText)
	default:
		sb.WriteString(dimStyle.Render("run a circuit or pick a protocol"))
	}

	return resultsStyle.Width(width).Height(height).Render(sb.String())
}

// renderRegistryPanel renders the tail of the circuit registry.
func (m tuiModel) renderRegistryPanel(width, height int) string {
	var sb strings.Builder

	infos := m.lab.ListCircuits()
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Registry (%d)", len(infos))))
	sb.WriteString("\n\n")

	if len(infos) == 0 {
		sb.WriteString(dimStyle.Render("no circuits yet"))
	}

	visible := max(height-2, 1)
	start := max(len(infos)-visible, 0)
	for _, info := range infos[start:] {
		fmt.Fprintf(&sb, "%s %-10s %dq %d gates\n",
			dimStyle.Render(info.ID[:8]), info.Name, info.NumQubits, info.GateCount)
	}

	return registryStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/status bar.
func (m tuiModel) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(accentStyle.Render("Keys: "))
	sb.WriteString("Tab Switch focus  ↑↓/jk Select  ←→/hl Adjust  Enter Run  q/^C Quit")
	sb.WriteString("\n")

	switch {
	case m.statusMsg != "" && m.statusErr:
		sb.WriteString(errorStyle.Render(m.statusMsg))
	case m.statusMsg != "":
		sb.WriteString(accentStyle.Render(m.statusMsg))
	default:
		sb.WriteString(dimStyle.Render("tokens bind positionally, eg: H CNOT RZ(pi/2)"))
	}

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Histogram bars ────────────────────────────

// renderBars draws one bar row per observed outcome, scaled to the peak count.
func renderBars(counts qlab.Histogram, mostLikely string, width int) string {
	total := counts.Total()
	if total == 0 {
		return dimStyle.Render("no samples")
	}

	peak := 0
	for _, n := range counts {
		if n > peak {
			peak = n
		}
	}
	barW := max(width-22, 8)

	var sb strings.Builder
	for _, key := range counts.Keys() {
		n := counts[key]
		label := fmt.Sprintf("%-8s", "|"+key+">")
		if key == mostLikely {
			label = accentStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		bar := strings.Repeat("█", barLength(n, peak, barW))
		fmt.Fprintf(&sb, "%s %s %d (%.1f%%)\n",
			label, barStyle.Render(bar), n, 100*float64(n)/float64(total))
	}
	return sb.String()
}
