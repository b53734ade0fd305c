package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tmplfmt/internal/cache"
	"tmplfmt/internal/config"
	"tmplfmt/internal/diag"
	"tmplfmt/internal/driver"
	"tmplfmt/internal/highlight"
	"tmplfmt/internal/source"
	"tmplfmt/internal/trace"
)

func runFormat(cmd *cobra.Command, args []string) error {
	opts, cfg, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseUIMode(uiValue)
	if err != nil {
		return err
	}
	pathValue, err := cmd.Root().PersistentFlags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := source.ParsePathMode(pathValue)
	if err != nil {
		return fmt.Errorf("invalid --path-mode: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	if cfg.Cache.Enabled || clearCache {
		c, err := openCache(cfg.Cache.Dir)
		if err != nil {
			return err
		}
		if clearCache {
			if err := c.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache %s: %w", c.Dir(), err)
			}
		}
		if cfg.Cache.Enabled {
			opts.Cache = c
		}
	}

	profiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := profiling.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to write profiles: %v\n", err)
		}
	}()

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	root := trace.Begin(tracer, trace.ScopeDriver, "tmplfmt", 0)
	ctx := trace.WithSpan(cmd.Context(), root)

	fs := source.NewFileSet()
	ids, err := driver.Load(fs, args, cmd.InOrStdin())
	if err != nil {
		root.End("load failed")
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var results []driver.Result
	if !quiet && mode.drawsOn(stderr, len(ids)) {
		results, err = runWithUI(ctx, stderr, fs, opts, ids)
	} else {
		results, err = driver.New(fs, opts).ProcessAll(ctx, ids)
	}
	root.SetInt("inputs", len(ids)).End("")
	if err != nil {
		return err
	}

	hl := highlight.New(colored)
	var errs []error
	for _, res := range results {
		if !quiet {
			printDiagnostics(stderr, fs, pathMode, res.Bag)
		}
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		fmt.Fprintln(stdout, hl.Brackets(res.Output))
	}

	if showStats {
		printStats(stderr, results)
	}
	if showTimings {
		printTimings(stderr, results)
	}

	if len(errs) > 0 {
		dumpTrace(stderr, tracer)
		return errors.Join(errs...)
	}
	return nil
}

// resolveOptions merges defaults, the configuration file and explicitly set
// flags, in that order of increasing priority.
func resolveOptions(cmd *cobra.Command) (driver.Options, config.Config, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return driver.Options{}, config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Discover(configPath, ".")
	if err != nil {
		return driver.Options{}, config.Config{}, err
	}

	if err := rangeFlag(cmd, "min-params", config.CheckMinParams, &cfg.Format.MinParams); err != nil {
		return driver.Options{}, config.Config{}, err
	}
	if err := rangeFlag(cmd, "indent", config.CheckIndent, &cfg.Format.Indent); err != nil {
		return driver.Options{}, config.Config{}, err
	}
	if err := rangeFlag(cmd, "max-passes", config.CheckMaxPasses, &cfg.Rewrite.MaxPasses); err != nil {
		return driver.Options{}, config.Config{}, err
	}
	if flags.Changed("preserve-lines") {
		if cfg.Format.PreserveLines, err = flags.GetBool("preserve-lines"); err != nil {
			return driver.Options{}, config.Config{}, fmt.Errorf("failed to get preserve-lines flag: %w", err)
		}
	}
	if flags.Changed("no-rewrite") {
		noRewrite, err := flags.GetBool("no-rewrite")
		if err != nil {
			return driver.Options{}, config.Config{}, fmt.Errorf("failed to get no-rewrite flag: %w", err)
		}
		cfg.Rewrite.Enabled = !noRewrite
	}
	if flags.Changed("cache") {
		if cfg.Cache.Enabled, err = flags.GetBool("cache"); err != nil {
			return driver.Options{}, config.Config{}, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}

	table, err := cfg.Table()
	if err != nil {
		return driver.Options{}, config.Config{}, err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, config.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	return driver.Options{
		MinParams:      cfg.Format.MinParams,
		Indent:         cfg.IndentUnit(),
		Rewrite:        cfg.Rewrite.Enabled,
		MaxPasses:      cfg.Rewrite.MaxPasses,
		PreserveLines:  cfg.Format.PreserveLines,
		Table:          table,
		Literals:       cfg.Literals(),
		MaxDiagnostics: maxDiagnostics,
	}, cfg, nil
}

// rangeFlag copies an explicitly set integer flag into dst after checking
// its range. Unset flags leave the configured value alone.
func rangeFlag(cmd *cobra.Command, name string, check func(int) error, dst *int) error {
	flags := cmd.Flags()
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if err := check(v); err != nil {
		return fmt.Errorf("invalid --%s: %w", name, err)
	}
	*dst = v
	return nil
}

func openCache(dir string) (*cache.Cache, error) {
	var (
		c   *cache.Cache
		err error
	)
	if dir == "" {
		c, err = cache.OpenDefault("tmplfmt")
	} else {
		c, err = cache.Open(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return c, nil
}

func printDiagnostics(out io.Writer, fs *source.FileSet, mode source.PathMode, bag *diag.Bag) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if text := diag.FormatShortDiagnostics(bag.Items(), fs, mode, false); text != "" {
		fmt.Fprintln(out, text)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(out, "... %d more diagnostics suppressed (--max-diagnostics)\n", n)
	}
}
