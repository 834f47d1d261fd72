package main

import (
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/walletctl/internal/command"
)

// sessionConfig is the session.toml shape: the material the device may
// request during one signing session, byte values hex-encoded.
type sessionConfig struct {
	Preimages   []string   `toml:"preimages"`
	Lists       [][]string `toml:"lists"`
	PubkeyLists [][]string `toml:"pubkey_lists"`
}

func loadSessionConfig(path string) (sessionConfig, error) {
	var cfg sessionConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return sessionConfig{}, fmt.Errorf("load session config: %w", err)
	}
	return cfg, nil
}

// register feeds the session material into the interpreter's registries.
func (c sessionConfig) register(interp *command.Interpreter) error {
	for i, p := range c.Preimages {
		value, err := hex.DecodeString(p)
		if err != nil {
			return fmt.Errorf("preimages[%d]: %w", i, err)
		}
		if _, err := interp.AddKnownPreimage(value); err != nil {
			return fmt.Errorf("preimages[%d]: %w", i, err)
		}
	}
	for i, list := range c.Lists {
		elements := make([][]byte, len(list))
		for j, el := range list {
			value, err := hex.DecodeString(el)
			if err != nil {
				return fmt.Errorf("lists[%d][%d]: %w", i, j, err)
			}
			elements[j] = value
		}
		if _, err := interp.AddKnownList(elements); err != nil {
			return fmt.Errorf("lists[%d]: %w", i, err)
		}
	}
	for i, keys := range c.PubkeyLists {
		if _, err := interp.AddKnownPubkeyList(keys); err != nil {
			return fmt.Errorf("pubkey_lists[%d]: %w", i, err)
		}
	}
	return nil
}
