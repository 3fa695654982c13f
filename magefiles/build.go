//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the testbed binary into bin/.
func (Build) Testbed() error {
	if err := goModDownload(); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/toolbox", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs vet and the tests of every package but the GLFW platform.
func (Build) Test() error {
	if _, err := executeCmd("go", withArgs("vet", "./engine/...", "./testbed/..."), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("test", "-race", "./engine/...", "./testbed/..."), withStream()); err != nil {
		return err
	}
	return nil
}
