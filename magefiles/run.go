//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the engine with the default config file.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	_, err := executeCmd("go", withArgs("run", ".", "-config", "starlet.toml"), withStream())
	return err
}

// Runs the engine built with the debug tag.
func (Run) Debug() error {
	mg.Deps(Build.Debug)
	fmt.Println("Run engine (debug)...")
	_, err := executeCmd(binary+"-debug", withArgs("-config", "starlet.toml"), withStream())
	return err
}
