package main

import (
	"encoding/json"
	"os"
)

// Config carries the settings shared by every command. Flags populate
// it first; a -c file overrides whatever it names.
type Config struct {
	Seed    int64  `json:"seed"`
	Shots   int    `json:"shots"`
	Workers int    `json:"workers"`
	Quiet   bool   `json:"quiet"`
	Log     string `json:"log"`
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
