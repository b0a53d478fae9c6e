package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    *log.Logger
}

// DefaultEnv returns the production environment.
func DefaultEnv(verbose bool) *Environment {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    logger,
	}
}
