// Package app wires cobra, pflag and viper into a small application
// framework shared by the trackhub binaries. Flag defaults are overridden by
// a config file, which is in turn overridden by explicit flags.
package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackhub-io/trackhub/pkg/log"
)

// RunFunc is the application entry point invoked after options are resolved.
type RunFunc func() error

// Options is implemented by a binary's aggregated options struct.
type Options interface {
	// Flags registers every option with the command's flag set.
	Flags() *NamedFlagSets

	// Complete fills in derived or defaulted values after parsing.
	Complete() error

	// Validate checks the final option values.
	Validate() error
}

// App is a command-line application with config-file and env binding.
type App struct {
	name        string
	brief       string
	description string
	opts        Options
	run         RunFunc
	onReload    func()

	cmd *cobra.Command
}

// Option configures an App during construction.
type Option func(*App)

// WithDescription sets the long help text.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithOptions attaches the binary's options struct.
func WithOptions(opts Options) Option {
	return func(a *App) { a.opts = opts }
}

// WithRunFunc sets the application entry point.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.run = run }
}

// WithReloadFunc registers a callback invoked after the config file changes
// on disk and the options have been re-unmarshalled.
func WithReloadFunc(fn func()) Option {
	return func(a *App) { a.onReload = fn }
}

// NewApp builds an App with the given name and one-line summary.
func NewApp(name, brief string, options ...Option) *App {
	a := &App{
		name:  name,
		brief: brief,
	}
	for _, opt := range options {
		opt(a)
	}
	a.cmd = a.buildCommand()
	return a
}

// Command exposes the underlying cobra command, mainly for adding
// subcommands.
func (a *App) Command() *cobra.Command { return a.cmd }

// Run parses flags and executes the application.
func (a *App) Run() error {
	return a.cmd.Execute()
}

func (a *App) buildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.brief,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCommand(cmd)
		},
		Args: cobra.NoArgs,
	}

	if a.opts != nil {
		fss := a.opts.Flags()
		for _, name := range fss.Order {
			cmd.Flags().AddFlagSet(fss.Sets[name])
		}
	}

	addConfigFlag(a.name, cmd.PersistentFlags())

	return cmd
}

func (a *App) runCommand(cmd *cobra.Command) error {
	if a.opts != nil {
		if err := bindConfig(a.name, cmd, a.opts, a.onReload); err != nil {
			return err
		}

		if err := a.opts.Complete(); err != nil {
			return fmt.Errorf("failed to complete options: %w", err)
		}

		if err := a.opts.Validate(); err != nil {
			return err
		}
	}

	log.Info("Starting application", "name", a.name)

	if a.run != nil {
		return a.run()
	}

	return nil
}
