package main

import (
	"log"

	"github.com/amonks/taskmate/internal/config"
	"github.com/amonks/taskmate/internal/kv"
	"github.com/amonks/taskmate/internal/paths"
	"github.com/amonks/taskmate/internal/ui"
	"github.com/amonks/taskmate/task"
	"github.com/spf13/cobra"
)

// session is an open store together with the config that located it.
type session struct {
	store  *task.Store
	cfg    *config.Config
	medium kv.Medium
}

// openSession loads config for the working directory and opens the store.
// Store notices are printed to the command's output streams.
func openSession(cmd *cobra.Command) (*session, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	medium, err := cfg.OpenMedium()
	if err != nil {
		return nil, err
	}
	store, err := task.Open(task.OpenOptions{
		Medium:   medium,
		Notifier: ui.NewNoticePrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		Logger:   log.New(cmd.ErrOrStderr(), "taskmate: ", log.LstdFlags),
	})
	if err != nil {
		medium.Close()
		return nil, err
	}
	return &session{store: store, cfg: cfg, medium: medium}, nil
}

// Close releases the storage medium.
func (s *session) Close() error {
	return s.medium.Close()
}
