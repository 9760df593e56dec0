// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

// Command kickstart-machine writes the machine section of a job provenance
// record as XML.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/antimetal/kickstart/internal/config"
	"github.com/antimetal/kickstart/internal/report"
	"github.com/antimetal/kickstart/pkg/machine"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) (err error) {
	var (
		flags            config.Flags
		verbosity        int
		listProviders    bool
		listCapabilities bool
	)

	flagSet := pflag.NewFlagSet("kickstart-machine", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flags.AddFlags(flagSet)
	flagSet.CountVarP(&verbosity, "verbose", "v", "Increase log verbosity, repeatable")
	flagSet.BoolVar(&listProviders, "list-providers", false, "List registered machine providers and exit")
	flagSet.BoolVar(&listCapabilities, "list-capabilities", false,
		"List the capabilities available on this platform and exit")

	if err = flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument: %s", extra[0])
	}

	logger, sync, err := newLogger(verbosity)
	if err != nil {
		return err
	}
	defer sync()

	if listProviders {
		for _, name := range machine.Providers() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}
	if listCapabilities {
		for _, c := range machine.DefaultCapabilities().List() {
			fmt.Fprintln(stdout, c)
		}
		return nil
	}

	cfg, err := flags.Resolve(logger.WithName("config"))
	if err != nil {
		return err
	}

	caps, err := cfg.Capabilities(machine.DefaultCapabilities())
	if err != nil {
		return err
	}
	paths := cfg.Paths()

	logger.V(1).Info("Writing machine report",
		"providers", cfg.Providers,
		"capabilities", caps.List(),
		"proc", paths.Proc,
		"sys", paths.Sys,
	)

	out := stdout
	if cfg.Output != "" {
		f, createErr := os.Create(cfg.Output)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer closeOutput(f, &err)
		out = f
	}

	bw := bufio.NewWriter(out)
	err = report.Write(bw, logger, report.Options{
		Providers:    cfg.Providers,
		Tag:          cfg.Tag,
		Indent:       cfg.Indent,
		Document:     cfg.Document,
		Root:         cfg.Root,
		Probe:        machine.NewHostProbe(paths),
		Capabilities: caps,
		HostPaths:    paths,
	})
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// closeOutput closes c and stores its error in err unless err already
// holds an earlier failure. Some filesystems only report write errors on
// close.
func closeOutput(c io.Closer, err *error) {
	if closeErr := c.Close(); closeErr != nil && *err == nil {
		*err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
}

// newLogger builds a development zap logger on stderr. Each -v enables the
// next logr V-level.
func newLogger(verbosity int) (logr.Logger, func(), error) {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zapConfig.DisableStacktrace = verbosity == 0

	zapLog, err := zapConfig.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("failed to create logger: %w", err)
	}

	logger := zapr.NewLogger(zapLog)
	machine.SetRegistryLogger(logger.WithName("machine.registry"))
	return logger, func() { _ = zapLog.Sync() }, nil
}
