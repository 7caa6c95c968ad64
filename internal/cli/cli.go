// Package cli implements the x12 command line interface: parsing and
// validating X12 files into JSON segment or model output, plus the
// API server entry point.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/healthx12/x12"
	"github.com/healthx12/x12/internal/config"
	"github.com/healthx12/x12/internal/httpapi"
)

// options holds the root command's flag values
type options struct {
	segments   bool
	models     bool
	exclude    bool
	pretty     bool
	configFile string
}

// fileResult pairs a parsed input file with its JSON payload and
// validation outcome
type fileResult struct {
	File  string `json:"file"`
	Data  any    `json:"data"`
	Valid bool   `json:"valid"`
}

// NewRootCommand builds the x12 CLI
func NewRootCommand(out io.Writer, logger *slog.Logger) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "x12 [file ...]",
		Short: "Parse and validate ASC X12 005010 healthcare EDI files",
		Long: `The x12 CLI parses and validates X12 messages.
Messages are returned in JSON format in either a segment or transactional format.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if cfg.Pretty {
				opts.pretty = true
			}
			if cfg.ExcludeEmpty {
				opts.exclude = true
			}
			return runParse(cmd.Context(), out, logger, opts, args)
		},
	}
	addParseFlags(root.Flags(), opts)
	root.MarkFlagsMutuallyExclusive("segments", "models")

	root.AddCommand(newServeCommand(logger, opts))
	root.AddCommand(newTransactionsCommand(out))
	return root
}

func addParseFlags(flags *pflag.FlagSet, opts *options) {
	flags.BoolVarP(
		&opts.segments, "segments", "s", false,
		"return X12 segments",
	)
	flags.BoolVarP(
		&opts.models, "models", "m", false,
		"return X12 models (default)",
	)
	flags.BoolVarP(
		&opts.exclude, "exclude", "x", false,
		"exclude absent fields from model output",
	)
	flags.BoolVarP(
		&opts.pretty, "pretty", "p", false,
		"pretty print output",
	)
	flags.StringVarP(
		&opts.configFile, "config", "c", "",
		"path to a YAML config file",
	)
}

// runParse parses each input file, in parallel for multiple files,
// and writes a single JSON document. It returns an error when any
// model carries an error-severity diagnostic, so the process exits
// non-zero on invalid input.
func runParse(
	ctx context.Context,
	out io.Writer,
	logger *slog.Logger,
	opts *options,
	files []string,
) error {
	results := make([]*fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := parseFile(file, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var output any
	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
			logger.Warn("validation failed", "file", r.File)
		}
	}
	if len(results) == 1 {
		output = results[0].Data
	} else {
		output = results
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(output); err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf(
			"%d of %d file(s) failed validation", invalid, len(results),
		)
	}
	return nil
}

func parseFile(path string, opts *options) (*fileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	if opts.segments {
		data, err := readSegments(f)
		if err != nil {
			return nil, err
		}
		return &fileResult{File: path, Data: data, Valid: true}, nil
	}

	models, err := x12.Models(f)
	if err != nil {
		return nil, err
	}
	valid := true
	data := make([]map[string]any, 0, len(models))
	for _, m := range models {
		if !m.Valid() {
			valid = false
		}
		payload := m.Payload()
		if opts.exclude {
			raw, err := m.JSON(true)
			if err != nil {
				return nil, err
			}
			payload = map[string]any{}
			if err := json.Unmarshal(raw, &payload); err != nil {
				return nil, err
			}
		}
		entry := map[string]any{
			"transactionSetCode": m.TransactionCode,
			"controlNumber":      m.ControlNumber,
			"version":            m.Version,
			"valid":              m.Valid(),
			"payload":            payload,
		}
		if len(m.Diagnostics) > 0 {
			entry["diagnostics"] = m.Diagnostics
		}
		data = append(data, entry)
	}
	return &fileResult{File: path, Data: data, Valid: valid}, nil
}

// readSegments maps each tokenized segment to position-keyed fields
// (ISA00, ISA01, ...), matching segment mode output
func readSegments(r io.Reader) ([]map[string]string, error) {
	tokenizer, err := x12.Segments(r)
	if err != nil {
		return nil, err
	}
	var out []map[string]string
	for {
		token, err := tokenizer.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		segment := make(map[string]string, len(token.Fields))
		for i, v := range token.Fields {
			segment[fmt.Sprintf("%s%02d", token.ID, i)] = v
		}
		out = append(out, segment)
	}
	return out, nil
}

// newServeCommand starts the HTTP API server
func newServeCommand(logger *slog.Logger, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the x12 HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			server := httpapi.New(cfg.Addr(), logger)
			return server.ListenAndServe(cmd.Context())
		},
	}
}

// newTransactionsCommand lists the supported transaction sets
func newTransactionsCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "transactions",
		Short: "List supported transaction sets",
		RunE: func(_ *cobra.Command, _ []string) error {
			supported := x12.SupportedTransactions()
			sort.Strings(supported)
			_, err := fmt.Fprintln(out, strings.Join(supported, "\n"))
			return err
		},
	}
}
