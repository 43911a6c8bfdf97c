package main

import (
	"io"
	"os"
	"time"

	"github.com/qblog/go-mdrender/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// Config is loaded once per command and shared by every file rendered.
	Config *config.Config
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Config:  config.DefaultConfig(),
	}
}
