package main

import (
	"fmt"
	"io"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"qlab"
)

const histogramBarWidth = 24

// printHistogram renders outcome counts as a table with a proportional
// bar column.
func printHistogram(w io.Writer, counts qlab.Histogram) {
	total := counts.Total()
	if total == 0 {
		fmt.Fprintln(w, "no samples")
		return
	}
	peak := 0
	for _, k := range counts.Keys() {
		if counts[k] > peak {
			peak = counts[k]
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Outcome", "Count", "Probability", "Histogram"})
	for _, k := range counts.Keys() {
		n := counts[k]
		bar := strings.Repeat("#", barLength(n, peak, histogramBarWidth))
		table.Append([]string{
			k,
			strconv.Itoa(n),
			fmt.Sprintf("%.4f", float64(n)/float64(total)),
			bar,
		})
	}
	table.Render()
}

func barLength(n, peak, width int) int {
	if peak == 0 || n == 0 {
		return 0
	}
	l := n * width / peak
	if l == 0 {
		l = 1
	}
	return l
}

// printAmplitudes renders the nonzero entries of a statevector.
func printAmplitudes(w io.Writer, amps []complex128, numQubits int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Basis", "Amplitude", "Probability"})
	for i, a := range amps {
		p := real(a * cmplx.Conj(a))
		if p < 1e-12 {
			continue
		}
		table.Append([]string{
			"|" + qlab.FormatBasisState(i, numQubits) + ">",
			fmt.Sprintf("%.4f%+.4fi", real(a), imag(a)),
			fmt.Sprintf("%.4f", p),
		})
	}
	table.Render()
}

func printExecution(w io.Writer, res *qlab.ExecutionResult) {
	fmt.Fprintf(w, "circuit %s (%s), %d qubits, %d shots\n", res.CircuitID, res.Name, res.NumQubits, res.Shots)
	fmt.Fprintf(w, "most likely: %s\n", res.MostLikely)
	printHistogram(w, res.Counts)
}

func printStatus(w io.Writer, st qlab.LabStatus) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"backend", st.Backend})
	table.Append([]string{"status", st.Status})
	table.Append([]string{"max qubits", strconv.Itoa(st.MaxQubits)})
	table.Append([]string{"circuits", strconv.Itoa(st.Circuits)})
	table.Append([]string{"keys", strconv.Itoa(st.Keys)})
	table.Append([]string{"molecules", strconv.Itoa(st.Molecules)})
	table.Render()
}

func printBell(w io.Writer, res *qlab.BellResult) {
	fmt.Fprintf(w, "bell state %s, %d shots\n", res.State, res.Shots)
	fmt.Fprintf(w, "entanglement: %.4f bits, fidelity: %.4f\n", res.Entanglement, res.Fidelity)
	printHistogram(w, res.Counts)
}

func printBB84(w io.Writer, res *qlab.BB84Result) {
	fmt.Fprintf(w, "bb84: %d/%d bits sifted over %d trials, efficiency %.2f\n",
		res.SiftedBits, res.RequestedBits, res.Trials, res.Efficiency)
	fmt.Fprintf(w, "error rate: %.4f, security: %s\n", res.ErrorRate, res.SecurityLevel)
	if res.Partial {
		fmt.Fprintln(w, "warning: trial budget exhausted, key is partial")
	}
	fmt.Fprintf(w, "key: %s (hex %s)\n", res.KeyBinary, res.KeyHex)
}

func printRandom(w io.Writer, res *qlab.RandomResult) {
	fmt.Fprintf(w, "quantum random, %d bits (%.0f bits entropy)\n", res.Bits, res.Entropy)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Reading", "Value"})
	table.Append([]string{"binary", res.Binary})
	table.Append([]string{"decimal", res.Decimal})
	table.Append([]string{"hex", res.Hex})
	table.Render()
}

func printGrover(w io.Writer, res *qlab.GroverResult) {
	fmt.Fprintf(w, "grover: %d qubits, marked %s, %d iterations, %d shots\n",
		res.NumQubits, res.MarkedState, res.Iterations, res.Shots)
	fmt.Fprintf(w, "top outcome %s with probability %.4f\n", res.Top, res.Probability)
	printHistogram(w, res.Counts)
}

func printQFT(w io.Writer, res *qlab.QFTResult) {
	fmt.Fprintf(w, "qft: %d qubits, %d shots, most likely %s\n", res.NumQubits, res.Shots, res.MostLikely)
	printHistogram(w, res.Counts)
}

func printPhase(w io.Writer, res *qlab.PhaseResult) {
	fmt.Fprintf(w, "phase estimation: %d counting qubits, %d shots\n", res.CountingQubits, res.Shots)
	fmt.Fprintf(w, "measured %d, estimated phase %.4f, confidence %.4f\n",
		res.MeasuredValue, res.EstimatedPhase, res.Confidence)
}

func printTeleport(w io.Writer, res *qlab.TeleportResult) {
	fmt.Fprintf(w, "teleport: prep %s, %d shots, fidelity %.6f, success %.4f\n",
		res.Preparation, res.Shots, res.Fidelity, res.Success)
	fmt.Fprintln(w, "receiver readout:")
	printHistogram(w, res.ReceiverCounts)
	fmt.Fprintln(w, "bell measurement outcomes:")
	printHistogram(w, res.BellOutcomes)
}

func printMolecule(w io.Writer, res *qlab.MoleculeResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"molecule", res.Molecule})
	table.Append([]string{"qubits", strconv.Itoa(res.NumQubits)})
	table.Append([]string{"bonds", strconv.Itoa(res.Bonds)})
	table.Append([]string{"temperature", fmt.Sprintf("%.1f K", res.TemperatureK)})
	table.Append([]string{"pressure", fmt.Sprintf("%.2f atm", res.PressureAtm)})
	table.Append([]string{"energy", fmt.Sprintf("%.4f", res.Energy)})
	table.Append([]string{"vibrational freq", fmt.Sprintf("%.1f cm^-1", res.VibrationalFreq)})
	table.Append([]string{"stability", fmt.Sprintf("%.4f", res.Stability)})
	table.Render()
}
