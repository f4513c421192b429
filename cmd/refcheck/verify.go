package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"refcheck/internal/citation"
	"refcheck/internal/clipboard"
	"refcheck/internal/config"
	"refcheck/internal/pdfref"
	"refcheck/internal/provider"
	"refcheck/internal/verify"

	"github.com/spf13/cobra"
)

var (
	verifyPDFPath    string
	verifyConfigPath string
	verifyDelay      time.Duration
	verifyTimeout    time.Duration
	verifyCopy       bool
)

func init() {
	verifyCmd.Flags().StringVar(&verifyPDFPath, "pdf", "", "Verify the reference section of a PDF instead of a text file")
	verifyCmd.Flags().StringVar(&verifyConfigPath, "config", "", "Config file path (default ~/.config/refcheck/config.yaml)")
	verifyCmd.Flags().DurationVar(&verifyDelay, "delay", 0, "Delay between citations (overrides config)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 0, "Per-request HTTP timeout (overrides config)")
	verifyCmd.Flags().BoolVar(&verifyCopy, "copy", false, "Copy verified citations to the clipboard")
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Verify a list of citations",
	Long: `Verify a list of citations, one per line.

Each non-blank line is stripped of its leading enumeration marker ([1], 1.,
or (1)), searched in every enabled provider, and classified:

  verified    a provider returned a title matching the citation
  suspicious  a provider found a record, but its title differs
  not_found   no provider found anything

Input comes from a file argument, stdin, or the reference section of a PDF
via --pdf.

Examples:
  refcheck verify references.txt
  pbpaste | refcheck verify --human
  refcheck verify --pdf paper.pdf --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfgPath := verifyConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if cmd.Flags().Changed("delay") {
		cfg.DelayMS = int(verifyDelay / time.Millisecond)
	}
	if verifyTimeout > 0 {
		cfg.TimeoutSec = int(verifyTimeout / time.Second)
	}

	text, err := readInput(args)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	lines := citation.SplitLines(text)
	if len(lines) == 0 {
		exitWithError(ExitDataError, "no citations in input")
	}

	providers := buildProviders(cfg)
	if len(providers) == 0 {
		exitWithError(ExitConfigError, "no providers enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := verify.Options{Delay: cfg.Delay()}
	if humanOutput {
		fmt.Fprintf(os.Stderr, "Checking %d citations...\n", len(lines))
		opts.OnProgress = func(percent int) {
			fmt.Fprintf(os.Stderr, "\r%3d%%", percent)
			if percent == 100 {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	records, verifyErr := verify.Verify(ctx, lines, providers, opts)
	if verifyErr != nil {
		fmt.Fprintf(os.Stderr, "\ninterrupted after %d of %d citations\n", len(records), len(lines))
	}

	result := buildVerifyResult(records)

	if humanOutput {
		printVerifyResultHuman(result)
	} else {
		outputJSON(result)
	}

	if verifyCopy {
		copyVerified(records)
	}

	if verifyErr != nil {
		os.Exit(ExitError)
	}
	return nil
}

// readInput returns the citation text from --pdf, a file argument, or stdin.
func readInput(args []string) (string, error) {
	if verifyPDFPath != "" {
		return pdfref.ExtractReferences(config.ExpandPath(verifyPDFPath))
	}

	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// buildProviders assembles the enabled providers from config.
func buildProviders(cfg *config.Config) []provider.Provider {
	hc := &http.Client{Timeout: cfg.Timeout()}

	var providers []provider.Provider

	if cfg.OpenAlex.Enabled {
		opts := []provider.Option{provider.WithHTTPClient(hc)}
		if cfg.OpenAlex.BaseURL != "" {
			opts = append(opts, provider.WithBaseURL(cfg.OpenAlex.BaseURL))
		}
		var oaOpts []provider.OpenAlexOption
		if cfg.Mailto != "" {
			oaOpts = append(oaOpts, provider.WithMailto(cfg.Mailto))
		}
		providers = append(providers, provider.NewOpenAlex(opts, oaOpts...))
	}

	if cfg.CrossRef.Enabled {
		opts := []provider.Option{provider.WithHTTPClient(hc)}
		if cfg.CrossRef.BaseURL != "" {
			opts = append(opts, provider.WithBaseURL(cfg.CrossRef.BaseURL))
		}
		providers = append(providers, provider.NewCrossRef(opts...))
	}

	return providers
}

// copyVerified copies the original text of verified citations to the clipboard.
func copyVerified(records []verify.Record) {
	var lines []string
	for _, rec := range records {
		if rec.Status == citation.StatusVerified {
			lines = append(lines, rec.Original)
		}
	}
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "nothing verified, clipboard unchanged")
		return
	}

	if err := clipboard.Copy(strings.Join(lines, "\n")); err != nil {
		fmt.Fprintf(os.Stderr, "copying to clipboard: %v\n", err)
		return
	}
	if humanOutput {
		fmt.Fprintf(os.Stderr, "copied %d verified citations to clipboard\n", len(lines))
	}
}
