//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

const binary = "bin/starlet"

type Build mg.Namespace

// Builds the engine binary.
func (Build) Engine() error {
	_, err := executeCmd("go", withArgs("build", "-o", binary, "."), withStream())
	return err
}

// Builds the engine binary with developer key bindings (P wireframe, C cursor lock).
func (Build) Debug() error {
	_, err := executeCmd("go", withArgs("build", "-tags", "debug", "-o", binary+"-debug", "."), withStream())
	return err
}

// Runs go mod tidy.
func Tidy() error {
	return goModTidy()
}
