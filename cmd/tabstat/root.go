// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/poetlib/tabstat/compare"
	"github.com/poetlib/tabstat/runorder"
	"github.com/poetlib/tabstat/tabload"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the configuration and logger shared by all subcommands.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:          "tabstat",
		Short:        "Parse and compare benchmark table reports",
		Long:         "Tabstat parses benchmark reports written as ASCII tables and compares them across compiler and variant runs.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	f := rootCmd.PersistentFlags()
	f.String("config", "", "read settings from the YAML `file`")
	f.String("log-level", "info", "minimum log `level`: debug, info, warn or error")
	f.String("results-root", "results", "`directory` of results laid out as <compiler>/<variant>/<bench>.{json,txt}")
	f.Int("parallelism", 0, "maximum number of reports read at once (0 means GOMAXPROCS)")
	f.StringSlice("text-exts", tabload.DefaultTextExts, "file `extensions` parsed as text reports")
	f.StringSlice("compilers", runorder.DefaultCompilers, "compiler preference `order`")
	f.StringSlice("variants", runorder.DefaultVariants, "variant preference `order`")
	f.Bool("fail-empty", false, "exit with an error if no results are found")
	f.StringSlice("runs", nil, "only compare these `runs`, given as compiler/variant")

	a.bind(f, "config", "config")
	a.bind(f, "log-level", "log-level")
	a.bind(f, "results-root", "results-root")
	a.bind(f, "parallelism", "parallelism")
	a.bind(f, "text-exts", "text-exts")
	a.bind(f, "order.compilers", "compilers")
	a.bind(f, "order.variants", "variants")
	a.bind(f, "fail-empty", "fail-empty")
	a.bind(f, "runs", "runs")

	// register subcommands
	rootCmd.AddCommand(a.parseCmd())
	rootCmd.AddCommand(a.compareCmd())
	rootCmd.AddCommand(a.chartCmd())
	rootCmd.AddCommand(a.asmCmd())

	return rootCmd
}

// bind binds configuration key to the flag called name.
func (a *app) bind(flags *pflag.FlagSet, key, name string) {
	a.v.BindPFlag(key, flags.Lookup(name))
}

// setup reads the environment and configuration file and builds the
// logger. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("TABSTAT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	log, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// newLogger returns a console logger writing to w.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("bad log level: %w", err)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func (a *app) policy() *runorder.Preference {
	return &runorder.Preference{
		Compilers: a.v.GetStringSlice("order.compilers"),
		Variants:  a.v.GetStringSlice("order.variants"),
	}
}

func (a *app) resultsRoot() string {
	return a.v.GetString("results-root")
}

// summaryPath returns the value of key, or name in the results
// root's summary directory if key is unset.
func (a *app) summaryPath(key, name string) string {
	if p := a.v.GetString(key); p != "" {
		return p
	}
	return filepath.Join(a.resultsRoot(), "summary", name)
}

// load loads the results tree. If it is empty, load returns a nil Set
// after warning the user, or an error with --fail-empty.
func (a *app) load(ctx context.Context, cmd *cobra.Command) (*tabload.Set, error) {
	root := a.resultsRoot()
	set, err := tabload.Load(ctx, root, tabload.Options{
		TextExts:    a.v.GetStringSlice("text-exts"),
		Parallelism: a.v.GetInt("parallelism"),
		Logger:      a.log,
	})
	if err != nil {
		return nil, err
	}
	if n := len(set.Diagnostics()); n > 0 {
		a.warn(cmd, "Skipped %d unreadable report(s) under %s", n, root)
	}
	if set.Len() == 0 {
		if a.v.GetBool("fail-empty") {
			return nil, fmt.Errorf("no benchmark results found under %s", root)
		}
		a.warn(cmd, "No benchmark results found under %s", root)
		return nil, nil
	}
	return set, nil
}

// matrix loads the results tree and aligns it into a comparison. It
// returns a nil Matrix if there are no results.
func (a *app) matrix(ctx context.Context, cmd *cobra.Command) (*compare.Matrix, error) {
	set, err := a.load(ctx, cmd)
	if err != nil || set == nil {
		return nil, err
	}
	var src compare.Source = set
	if names := a.v.GetStringSlice("runs"); len(names) > 0 {
		keep := make(map[runorder.Key]bool)
		for _, name := range names {
			key, err := runorder.ParseKey(name)
			if err != nil {
				return nil, err
			}
			keep[key] = true
		}
		src = runFilter{set, keep}
	}
	b := compare.NewBuilder(a.policy())
	b.AddSet(src)
	m := b.Matrix()
	a.log.Debug("built comparison",
		zap.Int("benchmarks", len(set.Benchmarks())),
		zap.Int("runs", len(m.Runs)),
		zap.Int("rows", len(m.Rows)))
	return m, nil
}

// runFilter restricts a Source to a set of runs.
type runFilter struct {
	compare.Source
	keep map[runorder.Key]bool
}

func (f runFilter) Runs(bench string) []runorder.Key {
	var out []runorder.Key
	for _, key := range f.Source.Runs(bench) {
		if f.keep[key] {
			out = append(out, key)
		}
	}
	return out
}

func (a *app) success(cmd *cobra.Command, format string, args ...any) {
	pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln(format, args...)
}

func (a *app) warn(cmd *cobra.Command, format string, args ...any) {
	pterm.Warning.WithWriter(cmd.ErrOrStderr()).Printfln(format, args...)
}

// writeFile creates path and its parent directories and fills it
// using write.
func writeFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return w.Flush()
}
