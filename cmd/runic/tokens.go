package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"runic/internal/diag"
	"runic/internal/diagfmt"
	"runic/internal/driver"
	"runic/internal/observ"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] file...",
	Short: "Tokenize source files",
	Long:  `Tokens runs the rule engine over the given files and prints the token streams`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("rules", "", "ruleset TOML file (default: built-in vocabulary)")
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokensCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = all CPUs)")
	tokensCmd.Flags().Bool("no-cache", false, "bypass the token cache")
	tokensCmd.Flags().String("progress", "auto", "live progress display (auto|on|off)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	rulesPath, _ := cmd.Flags().GetString("rules")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	progressFlag, _ := cmd.Flags().GetString("progress")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	progressMode, err := readProgressMode(progressFlag)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()

	phase := timer.Begin("ruleset")
	rs := driver.DefaultRuleSet()
	if rulesPath != "" {
		rs, err = driver.LoadRuleSet(rulesPath)
		if err != nil {
			return err
		}
	}
	timer.End(phase, rulesPath)

	opts := driver.Options{Jobs: jobs}
	if !noCache {
		cache, cerr := driver.OpenCache("runic")
		if cerr == nil {
			opts.Cache = cache
		}
		// Недоступный кэш не мешает токенизации.
	}

	phase = timer.Begin("tokenize")
	var results []driver.FileResult
	if shouldShowProgress(progressMode) && !quiet {
		results, err = runTokenizeWithUI(cmd.Context(), "tokenizing", args, rs, opts)
	} else {
		results, err = driver.TokenizeAll(cmd.Context(), args, rs, opts)
	}
	timer.End(phase, fmt.Sprintf("%d files", len(args)))
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			var d *diag.Diagnostic
			if errors.As(res.Err, &d) {
				d.RenderTo(os.Stderr)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			}
			continue
		}
		if quiet {
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(os.Stdout, "// %s\n", res.Path)
		}
		switch format {
		case "pretty":
			err = diagfmt.FormatTokensPretty(os.Stdout, res.Source, res.Tokens)
		case "json":
			err = diagfmt.FormatTokensJSON(os.Stdout, res.Source, res.Tokens)
		}
		if err != nil {
			return err
		}
	}

	if timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if failed > 0 {
		// Диагностика уже напечатана, дублировать её в ошибке команды незачем.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
