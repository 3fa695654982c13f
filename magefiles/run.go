//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed. Set TOOLBOX_CONFIG to a TOML file to load and watch it.
func (Run) Testbed() error {
	args := []string{"run", "main.go"}
	if path := os.Getenv("TOOLBOX_CONFIG"); path != "" {
		args = append(args, "-config", path)
	}
	fmt.Println("Run testbed...")
	if _, err := executeCmd("go", withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}
