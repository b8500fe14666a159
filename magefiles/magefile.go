//go:build mage

// Package main contains Mage build targets for litweave developer tooling.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

var binaries = map[string]string{
	"litweave":    "./cmd/litweave",
	"litweave-ls": "./cmd/litweave-ls",
}

// Build compiles the CLI and language server binaries into bin/.
func Build() error {
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name)
		if err := sh.Run("go", "build", "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", name, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the test suite.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm(binDir)
}
