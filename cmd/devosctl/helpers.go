package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devos-project/devosctl/internal/config"
	"github.com/devos-project/devosctl/internal/logging"
	"github.com/devos-project/devosctl/internal/render"
)

// Exit codes: 0 success, 1 findings, 2 operational error.
const (
	exitFindings    = 1
	exitOperational = 2
)

// fatalError prints an operational error and exits.
func fatalError(err error) {
	logging.New("cli").Error("fatal", nil, err)
	render.Stderr().Println("Error: %v", err)
	os.Exit(exitOperational)
}

// repoLayout resolves the repository root from --repo, DEVOS_REPO or
// the current directory, and verifies it is a readable directory.
func repoLayout() config.Layout {
	root := repoFlag
	if root == "" {
		root = config.Env().Repo
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		fatalError(fmt.Errorf("resolve repo root %q: %w", root, err))
	}

	info, err := os.Stat(abs)
	if err != nil {
		fatalError(fmt.Errorf("repo root %s: %w", abs, err))
	}
	if !info.IsDir() {
		fatalError(fmt.Errorf("repo root %s is not a directory", abs))
	}

	return config.NewLayout(abs)
}
