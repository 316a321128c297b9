// Package cmd — extract command.
// This is the main command that orchestrates the pipeline:
// stage → upload → parse → split/normalize → render → write.
//
// It handles flag validation, renderer selection, and the scoped
// temp-file staging of the input document.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gaurav-prasanna/tabpipe/core"
	"github.com/gaurav-prasanna/tabpipe/core/config"
	"github.com/gaurav-prasanna/tabpipe/core/document"
	"github.com/gaurav-prasanna/tabpipe/core/output"
	"github.com/gaurav-prasanna/tabpipe/core/parse"
	"github.com/gaurav-prasanna/tabpipe/core/render"
	"github.com/gaurav-prasanna/tabpipe/core/session"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagText      bool
	flagTables    bool
	flagJSON      bool
	flagMarkdown  bool
	flagPDF       bool
	flagAPIKey    string
	flagConfig    string
	flagOutputDir string
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract text and tables from a PDF",
	Long: `Extract uploads a PDF to the parsing service, waits for the parse to
finish, and writes the requested outputs. The document is parsed once;
every requested format renders from the same result.

Pass "-" as the file argument to read the PDF from stdin.

Examples:
  tabpipe extract report.pdf --text --json
  tabpipe extract report.pdf --tables --output_dir ./out
  cat report.pdf | tabpipe extract - --json --api-key $TABPIPE_API_KEY`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Output format flags (at least one required).
	extractCmd.Flags().BoolVar(&flagText, "text", false, "Write page-segmented plain text (.txt)")
	extractCmd.Flags().BoolVar(&flagTables, "tables", false, "Write text with fixed-width table grids (.tables.txt)")
	extractCmd.Flags().BoolVar(&flagJSON, "json", false, "Write normalized tables as JSON (.json)")
	extractCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Write per-page Markdown (.md)")
	extractCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Write a report PDF of the extracted content (.pdf)")

	// Service and output configuration.
	extractCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Parsing service API key (or "+config.EnvAPIKey+")")
	extractCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a TOML config file")
	extractCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	source := args[0]

	renderers := selectRenderers()
	if len(renderers) == 0 {
		return fmt.Errorf("at least one output format is required: --text, --tables, --json, --markdown, or --pdf")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAPIKey != "" {
		cfg.API.Key = flagAPIKey
	}
	if flagOutputDir != "" {
		cfg.Output.Dir = flagOutputDir
	}
	if cfg.API.Key == "" {
		return fmt.Errorf("an API key is required (--api-key, config file, or %s)", config.EnvAPIKey)
	}

	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	parser := parse.New(cfg.API.Key, parse.Options{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.TimeoutDuration(),
		PollInterval: cfg.API.PollIntervalDuration(),
	})

	ctx := context.Background()

	// Stage the document to a temp file for the duration of the run.
	// The file is removed when the run finishes, whatever the outcome.
	staged, cleanup, err := stage(source)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintf(os.Stdout, "Uploading %s...\n", source)
	fileID, err := parser.Upload(ctx, staged)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	fmt.Fprintln(os.Stdout, "Parsing document...")
	result, err := parser.Parse(ctx, fileID)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	doc, err := document.New().Build(result)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Parsed %d page(s)\n", len(doc.Pages))

	// One parse feeds every requested format. The cache hands the built
	// result to each render without another round trip to the service.
	cache := session.NewCache()
	cache.Put(source, doc)
	defer cache.Invalidate(source)

	if errCount := renderAll(renderers, cache, writer, source); errCount > 0 {
		return fmt.Errorf("%d output(s) failed", errCount)
	}
	return nil
}

// renderAll renders every requested format from the cached result and
// writes the artifacts. Failures are reported and counted; one bad
// format never blocks the remaining ones.
func renderAll(renderers []core.Renderer, cache *session.Cache, writer *output.Writer, source string) int {
	var errCount int
	for _, renderer := range renderers {
		cached, ok := cache.Get(source)
		if !ok {
			fmt.Fprintf(os.Stderr, "  ✗ Result for %s missing from cache\n", source)
			errCount++
			continue
		}

		data, err := renderer.Render(cached)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Render error (%s): %v\n", renderer.Extension(), err)
			errCount++
			continue
		}

		path, err := writer.Write(source, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	}
	return errCount
}

// stage copies the input document to a temporary file and returns its
// path along with a cleanup function. source may be "-" for stdin.
func stage(source string) (string, func(), error) {
	var in io.Reader
	if source == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(source)
		if err != nil {
			return "", nil, fmt.Errorf("opening %s: %w", source, err)
		}
		defer f.Close()
		in = f
	}

	tmp, err := os.CreateTemp("", "tabpipe-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("staging %s: %w", source, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("staging %s: %w", source, err)
	}
	return tmp.Name(), cleanup, nil
}

// selectRenderers returns one renderer per requested format flag, in a
// fixed order so output messages are stable.
func selectRenderers() []core.Renderer {
	var renderers []core.Renderer
	if flagText {
		renderers = append(renderers, render.NewTextRenderer())
	}
	if flagTables {
		renderers = append(renderers, render.NewTablesRenderer())
	}
	if flagJSON {
		renderers = append(renderers, render.NewJSONRenderer())
	}
	if flagMarkdown {
		renderers = append(renderers, render.NewMarkdownRenderer())
	}
	if flagPDF {
		renderers = append(renderers, render.NewPDFRenderer())
	}
	return renderers
}
