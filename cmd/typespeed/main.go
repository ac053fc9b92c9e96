// Package main provides the CLI entrypoint for typespeed.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typespeed/internal/config"
	"github.com/verte-zerg/typespeed/internal/generator"
	"github.com/verte-zerg/typespeed/internal/model"
	"github.com/verte-zerg/typespeed/internal/session"
	"github.com/verte-zerg/typespeed/internal/stats"
	"github.com/verte-zerg/typespeed/internal/tui"
	"github.com/verte-zerg/typespeed/internal/wordlist"
)

const defaultLogLevel = "warn"

var (
	testTime      int
	testWordsFile string
	testSample    int
	testSeed      int64
	testJSON      bool
	logLevel      string
	logFile       string

	scoreText  string
	scoreTyped string
	scoreTime  int
	scoreJSON  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typespeed",
		Short:         "Timed typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}
	rootCmd.Flags().IntVar(&testTime, "time", session.DefaultTimeLimit, "test length in seconds")
	rootCmd.Flags().StringVar(&testWordsFile, "words-file", "", "word list file, one word per line (default: bundled list)")
	rootCmd.Flags().IntVar(&testSample, "sample", 0, "pick this many random words instead of the whole list")
	rootCmd.Flags().Int64Var(&testSeed, "seed", 0, "random seed for --sample (0: time based)")
	rootCmd.Flags().BoolVar(&testJSON, "json", false, "print the last result as JSON on exit")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newWordsCmd())
	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadTestConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	source := wordlist.Resolve(cfg.WordsFile)
	gen := newGenerator(cfg)
	m, err := tui.NewModel(cfg, source, gen, logger)
	if err != nil {
		return wordListLoadError(source, err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if !cfg.JSON {
		return nil
	}
	res, ok := m.LastResult()
	if !ok {
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

func loadTestConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	applyConfig(flags.Changed("time"), &testTime, fileCfg.Test.TimeLimit)
	applyConfig(flags.Changed("words-file"), &testWordsFile, fileCfg.Test.WordsFile)
	applyConfig(flags.Changed("sample"), &testSample, fileCfg.Test.Sample)
	applyConfig(flags.Changed("seed"), &testSeed, fileCfg.Test.Seed)
	applyConfig(flags.Changed("log-level"), &logLevel, fileCfg.Log.Level)
	applyConfig(flags.Changed("log-file"), &logFile, fileCfg.Log.File)

	cfg := model.Config{
		TimeLimit: testTime,
		WordsFile: testWordsFile,
		Sample:    testSample,
		Seed:      testSeed,
		LogLevel:  strings.ToLower(logLevel),
		LogFile:   logFile,
		JSON:      testJSON,
	}
	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newGenerator(cfg model.Config) *generator.Generator {
	if cfg.Sample > 0 {
		return generator.NewSampling(cfg.Sample, cfg.Seed)
	}
	return generator.New()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a typed text against a sample text",
		Args:  cobra.NoArgs,
		RunE:  runScoreCmd,
	}
	cmd.Flags().StringVar(&scoreText, "text", "", "file with the sample text")
	cmd.Flags().StringVar(&scoreTyped, "typed", "", "file with the typed text")
	cmd.Flags().IntVar(&scoreTime, "time", session.DefaultTimeLimit, "test length in seconds")
	cmd.Flags().BoolVar(&scoreJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("typed")
	return cmd
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	if err := config.Validate(model.Config{TimeLimit: scoreTime, LogLevel: defaultLogLevel}); err != nil {
		return err
	}
	generated, err := os.ReadFile(scoreText)
	if err != nil {
		return fmt.Errorf("failed to read sample text: %w", err)
	}
	typed, err := os.ReadFile(scoreTyped)
	if err != nil {
		return fmt.Errorf("failed to read typed text: %w", err)
	}
	res := stats.Score(string(generated), string(typed), scoreTime)
	res.Words = stats.Breakdown(string(generated), string(typed))
	if scoreJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	return stats.RenderResult(cmd.OutOrStdout(), res, stats.TerminalWidth(os.Stdout))
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Print the resolved word list source and sample text",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&testWordsFile, "words-file", "", "word list file, one word per line (default: bundled list)")
	cmd.Flags().IntVar(&testSample, "sample", 0, "pick this many random words instead of the whole list")
	cmd.Flags().Int64Var(&testSeed, "seed", 0, "random seed for --sample (0: time based)")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadTestConfig(cmd)
	if err != nil {
		return err
	}
	source := wordlist.Resolve(cfg.WordsFile)
	words, err := source.Load()
	if err != nil {
		return wordListLoadError(source, fmt.Errorf("failed to load word list from %s: %w", source.Describe(), err))
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "source: %s (%d words)\n\n", source.Describe(), len(words)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out, newGenerator(cfg).Text(words)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLogger(level, path string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	var w io.Writer = os.Stderr
	noColor := !term.IsTerminal(int(os.Stderr.Fd()))
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		noColor = true
		closeFn = func() {
			if cerr := f.Close(); cerr != nil {
				// Best-effort close of the log file.
				_ = cerr
			}
		}
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
	return logger, closeFn, nil
}

func writeJSON(w io.Writer, res model.ScoreResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func applyConfig[T any](changed bool, target, value *T) {
	if value == nil || changed {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typespeed configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# time = %d               # Test length in seconds
# words-file = ""         # Word list file, one word per line (default: bundled list)
# sample = 0              # Pick this many random words instead of the whole list
# seed = 0                # Random seed for sample (0: time based)

[log]
# level = %q          # debug, info, warn, error
# file = %q
`,
		session.DefaultTimeLimit,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func wordListLoadError(source wordlist.Source, err error) error {
	lines := []string{err.Error()}
	switch {
	case errors.Is(err, wordlist.ErrEmptyResource):
		lines = append(lines, fmt.Sprintf("%s has no words; add one word per line", source.Describe()))
	case errors.Is(err, wordlist.ErrResourceUnavailable):
		lines = append(lines, fmt.Sprintf("expected word list at: %s", source.Describe()))
	}
	if _, ok := source.(wordlist.FileSource); ok {
		lines = append(lines, "Fix --words-file or drop it to use the bundled list.")
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
