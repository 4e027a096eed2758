// tarja blacks out Brazilian tax identifiers (CPF/CNPJ) in PDF documents.
//
// The redaction is destructive: committed regions are removed from the
// page, not drawn over. Text pages, pages with fragmented text spans and
// scanned pages are all covered (the latter via Tesseract OCR).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/unidoc/unipdf/v3/common/license"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgpd-tools/tarja/internal/redact"
)

// Version is set by ldflags during build.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tarja: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		dpi        float64
		langs      []string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:     "tarja -i entrada.pdf -o saida.pdf",
		Short:   "Permanently black out CPF/CNPJ numbers in a PDF",
		Version: Version,
		Long: `tarja locates Brazilian tax identifiers (CPF and CNPJ) in a PDF and
produces a copy with every occurrence destructively blacked out.

Identifiers are found by three independent strategies: native text search,
literal re-search for text fragmented across rendering spans, and OCR over
rasterized pages for scanned content. An OCR failure aborts the run rather
than risk an under-redacted output.

Set UNIDOC_LICENSE_API_KEY to activate a unipdf license.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
				if err := license.SetMeteredKey(key); err != nil {
					return fmt.Errorf("unipdf license: %w", err)
				}
			}

			cfg := redact.Config{
				InputPath:  inputPath,
				OutputPath: outputPath,
				DPI:        dpi,
				Languages:  langs,
			}
			sum, err := redact.Run(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d page(s), %d region(s) redacted on %d page(s)\n",
				outputPath, sum.Pages, sum.Regions, sum.Redacted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "source PDF path")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "redacted output path")
	cmd.Flags().Float64Var(&dpi, "dpi", redact.DefaultDPI, "OCR rasterization resolution")
	cmd.Flags().StringSliceVar(&langs, "lang", redact.DefaultLanguages, "Tesseract language codes")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cobra.CheckErr(cmd.MarkFlagRequired("input"))
	cobra.CheckErr(cmd.MarkFlagRequired("output"))

	return cmd
}

// newLogger builds a console zap logger at the requested level, writing to
// stderr so stdout stays clean for the summary line.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core), nil
}
