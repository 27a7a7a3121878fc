package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"qlab"
)

// createFromTokens routes plain tokens through the lab binder and
// angle-carrying tokens through the explicit build path.
func createFromTokens(lab *qlab.Lab, name string, numQubits int, tokens []string) (string, error) {
	specs, err := parseGateSpecs(tokens)
	if err != nil {
		return "", err
	}
	if !hasAngles(specs) {
		return lab.CreateCircuit(name, numQubits, tokens)
	}
	gates, err := buildGates(specs, numQubits)
	if err != nil {
		return "", err
	}
	c, err := qlab.NewCircuit(name, numQubits, gates...)
	if err != nil {
		return "", err
	}
	return lab.StoreCircuit(c)
}

var runCommand = cli.Command{
	Name:      "run",
	Usage:     "bind gate tokens into a circuit and execute it",
	ArgsUsage: "TOKEN [TOKEN ...]   eg: H CNOT RZ(pi/2)",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "qubits,n",
			Value: 3,
			Usage: "circuit width in qubits",
		},
		cli.StringFlag{
			Name:  "name",
			Value: "cli",
			Usage: "circuit name in the registry",
		},
		cli.BoolFlag{
			Name:  "state",
			Usage: "also print the evolved statevector",
		},
	},
	Action: func(c *cli.Context) error {
		lab, cfg, err := buildLab(c)
		if err != nil {
			return err
		}
		tokens := []string(c.Args())
		if len(tokens) == 0 {
			return errors.New("run needs gate tokens, eg: qlab run H CNOT H")
		}
		id, err := createFromTokens(lab, c.String("name"), c.Int("qubits"), tokens)
		if err != nil {
			return err
		}
		res, err := lab.Execute(id, cfg.Shots)
		if err != nil {
			return err
		}
		printExecution(os.Stdout, res)
		if c.Bool("state") {
			printAmplitudes(os.Stdout, res.Amplitudes, res.NumQubits)
		}
		return nil
	},
}

var bellCommand = cli.Command{
	Name:  "bell",
	Usage: "prepare and sample the two-qubit Bell pair",
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}
		res, err := lab.BellState()
		if err != nil {
			return err
		}
		printBell(os.Stdout, res)
		return nil
	},
}

var bb84Command = cli.Command{
	Name:  "bb84",
	Usage: "sift a shared key over a simulated quantum channel",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "bits,b",
			Value: 16,
			Usage: "requested key length in bits",
		},
		cli.Float64Flag{
			Name:  "flip",
			Value: 0,
			Usage: "channel bit-flip probability, 0 for a clean channel",
		},
	},
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}
		res, err := lab.BB84OverChannel(c.Int("bits"), c.Float64("flip"))
		if err != nil {
			return err
		}
		printBB84(os.Stdout, res)
		return nil
	},
}

var randomCommand = cli.Command{
	Name:  "random",
	Usage: "draw random bits by measuring Hadamard qubits",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "bits,b",
			Value: 32,
			Usage: "number of bits to draw",
		},
	},
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}
		res, err := lab.QuantumRandom(c.Int("bits"))
		if err != nil {
			return err
		}
		printRandom(os.Stdout, res)
		return nil
	},
}

var groverCommand = cli.Command{
	Name:  "grover",
	Usage: "amplify and find a marked basis state",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "qubits,n",
			Value: 3,
			Usage: "search register width",
		},
		cli.IntFlag{
			Name:  "marked,m",
			Value: 5,
			Usage: "marked basis state index",
		},
	},
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}
		res, err := lab.Grover(c.Int("qubits"), c.Int("marked"))
		if err != nil {
			return err
		}
		printGrover(os.Stdout, res)
		return nil
	},
}

var qftCommand = cli.Command{
	Name:  "qft",
	Usage: "run the quantum Fourier transform demonstration",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "qubits,n",
			Value: 3,
			Usage: "register width",
		},
	},
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}
		res, err := lab.QFT(c.Int("qubits"))
		if err != nil {
			return err
		}
		printQFT(os.Stdout, res)
		return nil
	},
}

var phaseCommand = cli.Command{
	Name:  "phase",
	Usage: "estimate the Z eigenphase of |1>",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "counting",
			Value: 3,
			Usage: "counting register width",
		},
	},
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}
		res, err := lab.PhaseEstimation(c.Int("counting"))
		if err != nil {
			return err
		}
		printPhase(os.Stdout, res)
		return nil
	},
}

var teleportCommand = cli.Command{
	Name:  "teleport",
	Usage: "teleport a one-qubit message through an entangled pair",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "prep,p",
			Value: "H",
			Usage: "message preparation: I, X or H",
		},
	},
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}
		res, err := lab.Teleport(c.String("prep"))
		if err != nil {
			return err
		}
		printTeleport(os.Stdout, res)
		return nil
	},
}

var moleculeCommand = cli.Command{
	Name:      "molecule",
	Usage:     "run the bond model for a supported molecule",
	ArgsUsage: "NAME   one of h2o, co2, nh3, ch4",
	Flags: []cli.Flag{
		cli.Float64Flag{
			Name:  "temp,t",
			Value: 298,
			Usage: "temperature in kelvin",
		},
		cli.Float64Flag{
			Name:  "pressure,p",
			Value: 1,
			Usage: "pressure in atmospheres",
		},
	},
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}
		name := c.Args().First()
		if name == "" {
			name = "h2o"
		}
		res, err := lab.SimulateMolecule(name, c.Float64("temp"), c.Float64("pressure"))
		if err != nil {
			return err
		}
		printMolecule(os.Stdout, res)
		return nil
	},
}

var demoCommand = cli.Command{
	Name:  "demo",
	Usage: "run every protocol demonstration concurrently",
	Action: func(c *cli.Context) error {
		lab, _, err := buildLab(c)
		if err != nil {
			return err
		}

		sections := make([]bytes.Buffer, 8)
		var g errgroup.Group
		g.Go(func() error {
			res, err := lab.BellState()
			if err != nil {
				return err
			}
			printBell(&sections[0], res)
			return nil
		})
		g.Go(func() error {
			res, err := lab.BB84(16)
			if err != nil {
				return err
			}
			printBB84(&sections[1], res)
			return nil
		})
		g.Go(func() error {
			res, err := lab.QuantumRandom(32)
			if err != nil {
				return err
			}
			printRandom(&sections[2], res)
			return nil
		})
		g.Go(func() error {
			res, err := lab.Grover(3, 5)
			if err != nil {
				return err
			}
			printGrover(&sections[3], res)
			return nil
		})
		g.Go(func() error {
			res, err := lab.QFT(3)
			if err != nil {
				return err
			}
			printQFT(&sections[4], res)
			return nil
		})
		g.Go(func() error {
			res, err := lab.PhaseEstimation(3)
			if err != nil {
				return err
			}
			printPhase(&sections[5], res)
			return nil
		})
		g.Go(func() error {
			res, err := lab.Teleport("H")
			if err != nil {
				return err
			}
			printTeleport(&sections[6], res)
			return nil
		})
		g.Go(func() error {
			res, err := lab.SimulateMolecule("h2o", 298, 1)
			if err != nil {
				return err
			}
			printMolecule(&sections[7], res)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		for i := range sections {
			if i > 0 {
				fmt.Println()
			}
			os.Stdout.Write(sections[i].Bytes())
		}
		fmt.Println()
		printStatus(os.Stdout, lab.Status())
		return nil
	},
}
