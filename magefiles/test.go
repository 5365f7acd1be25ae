//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every test that does not need a display.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./engine/..."), withStream())
	return err
}

// Runs the engine tests with developer key bindings compiled in.
func (Test) Debug() error {
	_, err := executeCmd("go", withArgs("test", "-tags", "debug", "./engine/"), withStream())
	return err
}
