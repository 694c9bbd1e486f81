package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/relabs-tech/novatel_gps/internal/analyze"
	"github.com/relabs-tech/novatel_gps/internal/logging"
)

var (
	rootCmd = &cobra.Command{
		Use:   "novatel-analyze [capture]",
		Short: "Decode NovAtel OEM binary logs",
		Long: "novatel-analyze decodes a raw NovAtel OEM4 binary capture (a file, stdin with \"-\", " +
			"or hex pasted interactively) and prints every frame and every dropped frame.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := analyze.Options{
				JSON:       asJSON,
				MaxPayload: maxPayload,
				Logger:     log.Logger,
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				return runInteractive(ctx, cmd.InOrStdin(), out, opts)
			case asHex:
				_, err := analyze.Hex(ctx, args[0], out, opts)
				return err
			case args[0] == "-":
				_, err := analyze.Stream(ctx, cmd.InOrStdin(), out, opts)
				return err
			default:
				return runFile(ctx, args[0], out, opts)
			}
		},
	}

	asHex      bool
	asJSON     bool
	maxPayload int
	logLevel   string
)

func init() {
	rootCmd.Flags().BoolVar(&asHex, "hex", false, "treat the argument as a hex-encoded byte string")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print one JSON object per frame")
	rootCmd.PersistentFlags().IntVar(&maxPayload, "max-payload", 0, "largest accepted message_length (0 for the default)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for dropped-frame diagnostics")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		logging.New(cmd.ErrOrStderr(), "novatel_analyze", logLevel)
	}
}

func main() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("novatel-analyze failed")
	}
}

func runFile(ctx context.Context, path string, out io.Writer, opts analyze.Options) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = analyze.Stream(ctx, f, out, opts)
	return err
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer, opts analyze.Options) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	log.Info().Msg("novatel analyze mode. Paste a hex frame and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := analyze.Hex(ctx, line, out, opts); err != nil {
			log.Error().Err(err).Msg("failed to decode frame")
		}
	}
	return scanner.Err()
}
