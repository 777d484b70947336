package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luxfi/reconstruct/pkg/document"
	"github.com/luxfi/reconstruct/pkg/math/field"
	"github.com/luxfi/reconstruct/pkg/math/radix"
	"github.com/luxfi/reconstruct/pkg/reconstruct"
)

var (
	// Global flags
	configFile string
	verbose    bool

	logger zerolog.Logger

	// Root command
	rootCmd = &cobra.Command{
		Use:   "reconstruct-cli",
		Short: "Recover threshold secrets from their shares",
		Long: `A CLI for recovering the secret of a threshold secret-sharing scheme
from k of its shares, using exact rational Lagrange interpolation or
interpolation over a prime field.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	// Subcommands
	recoverCmd = &cobra.Command{
		Use:   "recover [documents...]",
		Short: "Recover the secret of each share document",
		Long: `Recover the secret (the constant term of the sharing polynomial) of every
share document. Documents are JSON, YAML or CBOR, chosen by file extension.
Without arguments the documents listed in the configuration are used.`,
		RunE: runRecover,
	}

	decodeCmd = &cobra.Command{
		Use:   "decode <value>",
		Short: "Decode a share value written in a given base",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}

	convertCmd = &cobra.Command{
		Use:   "convert <document>",
		Short: "Convert a share document between JSON, YAML and CBOR",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Run interpolation benchmarks",
		Long:  `Time exact reconstruction for several thresholds and coordinate sizes`,
		RunE:  runBenchmark,
	}

	selftestCmd = &cobra.Command{
		Use:   "selftest",
		Short: "Run built-in reconstruction checks",
		Long:  `Run fixed functional and edge-case checks against the reconstruction core`,
		RunE:  runSelfTest,
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Simulate reconstruction on random polynomials",
		Long:  `Check exactness, order invariance, base round trips and duplicate rejection on random inputs`,
		RunE:  runSimulation,
	}

	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Display supported bases, fields and formats",
		RunE:  runInfo,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Recover flags
	recoverCmd.Flags().Int("output-base", 10, "Base used to print secrets (2-36)")
	recoverCmd.Flags().String("field", "", "Override every document's field: rational, secp256k1, p256, mersenne127 or a prime")
	recoverCmd.Flags().IntP("workers", "w", 0, "Documents processed concurrently (0 = unbounded)")
	recoverCmd.Flags().Bool("json", false, "Print results as JSON")

	// Decode flags
	decodeCmd.Flags().IntP("base", "b", 10, "Base of the value (2-36)")
	decodeCmd.Flags().Int("output-base", 10, "Base used to print the value (2-36)")

	// Convert flags
	convertCmd.Flags().StringP("format", "f", "json", "Output format: json, yaml, cbor")
	convertCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	// Benchmark flags
	benchCmd.Flags().Int("iterations", 10, "Number of benchmark iterations")
	benchCmd.Flags().IntSlice("thresholds", []int{3, 7, 15, 31}, "Thresholds to benchmark")
	benchCmd.Flags().IntSlice("bits", []int{64, 256, 1024}, "Coefficient sizes in bits")

	// Self-test flags
	selftestCmd.Flags().String("suite", "all", "Suite to run: functional, edge, all")

	// Simulate flags
	simulateCmd.Flags().String("scenario", "all", "Scenario: exactness, order, roundtrip, duplicates, all")
	simulateCmd.Flags().Int("rounds", 100, "Number of simulation rounds")
	simulateCmd.Flags().Int64("seed", 1, "Random seed")
	simulateCmd.Flags().Int("max-threshold", 12, "Largest threshold sampled")

	// Add subcommands
	rootCmd.AddCommand(recoverCmd, decodeCmd, convertCmd, benchCmd,
		selftestCmd, simulateCmd, infoCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger. Every flag of the
// running command can also be set in the config file or as RECONSTRUCT_<FLAG>.
func setup(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("reconstruct")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level := zerolog.InfoLevel
	if verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	if configFile != "" {
		logger.Debug().Str("config", viper.ConfigFileUsed()).Msg("configuration loaded")
	}
	return nil
}

type resultJSON struct {
	Name        string `json:"name"`
	K           int    `json:"k"`
	N           int    `json:"n,omitempty"`
	Field       string `json:"field,omitempty"`
	Secret      string `json:"secret,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Error       string `json:"error,omitempty"`
}

func runRecover(cmd *cobra.Command, args []string) error {
	outputBase := viper.GetInt("output-base")
	if !radix.ValidBase(outputBase) {
		return fmt.Errorf("%w: --output-base %d", radix.ErrInvalidBase, outputBase)
	}

	paths := args
	if len(paths) == 0 {
		paths = viper.GetStringSlice("documents")
	}
	if len(paths) == 0 {
		return errors.New("no share documents given")
	}

	// Load documents; a document that cannot be read is reported like a
	// failed reconstruction and does not stop the others.
	var (
		scenarios []reconstruct.Scenario
		loaded    []int
		loadErrs  []error
		failed    = make(map[int]reconstruct.Result)
	)
	for i, path := range paths {
		s, err := document.Load(path)
		if err != nil {
			loadErrs = append(loadErrs, err)
			failed[i] = reconstruct.Result{Name: path, Err: err}
			continue
		}
		scenarios = append(scenarios, s)
		loaded = append(loaded, i)
	}

	runner := &reconstruct.Runner{
		Workers: viper.GetInt("workers"),
		Field:   viper.GetString("field"),
		Log:     logger,
	}
	ran, runErr := runner.Run(cmd.Context(), scenarios)
	results := mergeResults(len(paths), loaded, ran, failed)

	out := cmd.OutOrStdout()
	if viper.GetBool("json") {
		if err := printJSON(out, results, outputBase); err != nil {
			return err
		}
	} else {
		printResults(out, results, outputBase)
	}

	return errors.Join(append(loadErrs, runErr)...)
}

// mergeResults places run results (ran[i] belongs to path index loaded[i])
// and load failures back into path order.
func mergeResults(n int, loaded []int, ran []reconstruct.Result, failed map[int]reconstruct.Result) []reconstruct.Result {
	out := make([]reconstruct.Result, n)
	for i, idx := range loaded {
		out[idx] = ran[i]
	}
	for idx, res := range failed {
		out[idx] = res
	}
	return out
}

func printResults(w io.Writer, results []reconstruct.Result, base int) {
	fmt.Fprintf(w, "=== Secret Reconstruction ===\n\n")
	for _, res := range results {
		fmt.Fprintf(w, "=== %s ===\n", res.Name)
		if res.Err != nil {
			fmt.Fprintf(w, "✗ FAILED: %v\n\n", res.Err)
			continue
		}
		fmt.Fprintf(w, "Secret (Constant Term): %s\n", formatInt(res.Secret, base))
		if verbose {
			fmt.Fprintf(w, "Threshold: %d\n", res.K)
			if res.Field != "" {
				fmt.Fprintf(w, "Field: %s\n", res.Field)
			}
			fmt.Fprintf(w, "Fingerprint: %s\n", hex.EncodeToString(res.Fingerprint))
			fmt.Fprintf(w, "Elapsed: %v\n", res.Elapsed)
		}
		fmt.Fprintln(w)
	}
}

func printJSON(w io.Writer, results []reconstruct.Result, base int) error {
	out := make([]resultJSON, len(results))
	for i, res := range results {
		out[i] = resultJSON{
			Name:  res.Name,
			K:     res.K,
			N:     res.N,
			Field: res.Field,
		}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
			continue
		}
		out[i].Secret = formatInt(res.Secret, base)
		out[i].Fingerprint = hex.EncodeToString(res.Fingerprint)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatInt writes n in base, with a leading minus sign for negative values.
func formatInt(n *big.Int, base int) string {
	abs := new(big.Int).Abs(n)
	s, err := radix.Encode(abs, base)
	if err != nil {
		return n.String()
	}
	if n.Sign() < 0 {
		return "-" + s
	}
	return s
}

func runDecode(cmd *cobra.Command, args []string) error {
	base, _ := cmd.Flags().GetInt("base")
	outputBase, _ := cmd.Flags().GetInt("output-base")
	if !radix.ValidBase(outputBase) {
		return fmt.Errorf("%w: --output-base %d", radix.ErrInvalidBase, outputBase)
	}

	n, err := radix.Decode(args[0], base)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatInt(n, outputBase))
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	outputFile, _ := cmd.Flags().GetString("output")

	format, err := document.ParseFormat(formatName)
	if err != nil {
		return err
	}
	s, err := document.Load(args[0])
	if err != nil {
		return err
	}
	data, err := document.Encode(s, format)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if outputFile == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	logger.Info().Str("input", args[0]).Str("output", outputFile).Str("format", string(format)).Msg("document converted")
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Secret Reconstruction CLI v1.0.0\n\n")

	fmt.Fprintf(w, "Share Value Bases:\n")
	fmt.Fprintf(w, "  - %d through %d (digits 0-9 then A-Z, case-insensitive)\n\n", radix.MinBase, radix.MaxBase)

	fmt.Fprintf(w, "Fields:\n")
	fmt.Fprintf(w, "  - %s: exact rational interpolation (default)\n", field.Rational)
	for _, name := range field.Names() {
		m, _ := field.Parse(name)
		fmt.Fprintf(w, "  - %s: GF(p), p has %d bits\n", name, m.BitLen())
	}
	fmt.Fprintf(w, "  - any odd prime, decimal or 0x-prefixed\n\n")

	fmt.Fprintf(w, "Document Formats:\n")
	fmt.Fprintf(w, "  - json, yaml (.yml), cbor\n\n")

	if verbose {
		fmt.Fprintf(w, "Configuration File: %s\n", viper.ConfigFileUsed())
		fmt.Fprintf(w, "Documents: %s\n", strings.Join(viper.GetStringSlice("documents"), ", "))
	}
	return nil
}
