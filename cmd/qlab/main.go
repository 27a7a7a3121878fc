package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"qlab"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

func main() {
	myApp := cli.NewApp()
	myApp.Name = "qlab"
	myApp.Usage = "statevector quantum circuit lab"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.Int64Flag{
			Name:  "seed",
			Value: 0,
			Usage: "base RNG seed, 0 draws one from the clock",
		},
		cli.IntFlag{
			Name:  "shots,s",
			Value: qlab.DefaultShots,
			Usage: "measurement shots per execution",
		},
		cli.IntFlag{
			Name:  "workers,w",
			Value: 0,
			Usage: "sampling workers, 0 uses every core",
		},
		cli.BoolFlag{
			Name:  "quiet,q",
			Usage: "suppress lab progress logging",
		},
		cli.StringFlag{
			Name:  "log",
			Value: "",
			Usage: "specify a log file to output, default goes to stderr",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from json file, which will override the command from shell",
		},
	}
	myApp.Commands = []cli.Command{
		runCommand,
		bellCommand,
		bb84Command,
		randomCommand,
		groverCommand,
		qftCommand,
		phaseCommand,
		teleportCommand,
		moleculeCommand,
		demoCommand,
	}
	myApp.Action = func(c *cli.Context) error {
		lab, cfg, err := buildLab(c)
		if err != nil {
			return err
		}
		return runTUI(lab, cfg)
	}

	if err := myApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "qlab:", err)
		os.Exit(1)
	}
}

// buildConfig collects the global flags and applies the optional JSON
// overlay.
func buildConfig(c *cli.Context) (*Config, error) {
	config := Config{}
	config.Seed = c.GlobalInt64("seed")
	config.Shots = c.GlobalInt("shots")
	config.Workers = c.GlobalInt("workers")
	config.Quiet = c.GlobalBool("quiet")
	config.Log = c.GlobalString("log")

	if path := c.GlobalString("c"); path != "" {
		if err := parseJSONConfig(&config, path); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
	}
	if config.Shots <= 0 {
		return nil, errors.Errorf("shots %d must be greater than 0", config.Shots)
	}
	return &config, nil
}

// buildLab turns the resolved config into a Lab with its logger wired.
func buildLab(c *cli.Context) (*qlab.Lab, *Config, error) {
	config, err := buildConfig(c)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.InfoLevel,
		Prefix: "qlab",
	})
	if config.Quiet {
		logger.SetLevel(log.WarnLevel)
	}
	if config.Log != "" {
		f, err := os.OpenFile(config.Log, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		logger.SetOutput(f)
	}

	opts := []qlab.Option{
		qlab.WithLogger(logger),
		qlab.WithWorkers(config.Workers),
		qlab.WithDefaultShots(config.Shots),
	}
	if config.Seed != 0 {
		opts = append(opts, qlab.WithSeed(config.Seed))
	}
	return qlab.New(opts...), config, nil
}
