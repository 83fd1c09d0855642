package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/f3rmion/scribe/internal/importer"
	"github.com/f3rmion/scribe/internal/lexicon"
)

var (
	inspectLimit  int
	inspectFix    bool
	inspectOutput string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Validate a lexicon file without importing it",
	Long: `Check that a lexicon file can be imported and show what it contains:
  - File size and the grammar that parsed it (document or JSON Lines)
  - Entries found and records skipped for lacking a head word
  - Lines that could not be parsed
  - The first entries

With --fix the cleaned text (byte order mark, comment lines and trailing
commas removed) is written next to the input.

Examples:
  scribe inspect CET4_1.json
  scribe inspect words.jsonl -n 10
  scribe inspect broken.json --fix`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVarP(&inspectLimit, "limit", "n", 5, "Number of sample entries to show")
	inspectCmd.Flags().BoolVar(&inspectFix, "fix", false, "Write the cleaned file")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "Output file for --fix (default <name>_fixed<ext>)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := inspectOptions{
		Limit: inspectLimit,
		Load:  lexicon.LoadOptions{SnippetLength: cfg.Import.SnippetLength},
	}
	if inspectFix {
		opts.FixTo = inspectOutput
		if opts.FixTo == "" {
			opts.FixTo = fixedPath(args[0])
		}
	}

	return inspect(commandContext(cmd), cmd.OutOrStdout(), args[0], opts)
}

type inspectOptions struct {
	Limit int
	Load  lexicon.LoadOptions
	FixTo string
}

func fixedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_fixed" + ext
}

// inspect reports on the lexicon at path. It returns an error when the
// file cannot be imported.
func inspect(ctx context.Context, w io.Writer, path string, opts inspectOptions) error {
	fmt.Fprintf(w, "Inspecting: %s\n\n", path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading lexicon file: %w", err)
	}
	fmt.Fprintf(w, "Size:     %d bytes\n", info.Size())

	text, err := importer.FileReader{}.ReadText(ctx, path)
	if err != nil {
		return err
	}

	imp, err := lexicon.Load(text, opts.Load)

	var malformed *lexicon.MalformedError
	if errors.As(err, &malformed) {
		fmt.Fprintf(w, "Result:   malformed\n")
		fmt.Fprintf(w, "Cause:    %s\n", malformed.Cause)
		fmt.Fprintf(w, "Lines:    %d could not be parsed\n", malformed.LineErrors)
		fmt.Fprintf(w, "\nFile starts with:\n%s\n", indent(malformed.Snippet))
		return err
	}
	if imp == nil {
		return err
	}

	fmt.Fprintf(w, "Grammar:  %s\n", imp.Grammar)
	fmt.Fprintf(w, "Entries:  %d\n", len(imp.Entries))
	fmt.Fprintf(w, "Skipped:  %d (no head word)\n", imp.Skipped+imp.Ignored)
	if imp.LineErrors > 0 {
		fmt.Fprintf(w, "Bad lines: %d\n", imp.LineErrors)
		for _, d := range imp.Diagnostics {
			fmt.Fprintf(w, "  %s\n", d)
		}
		if more := imp.LineErrors - len(imp.Diagnostics); more > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", more)
		}
	}
	if err != nil {
		return err
	}

	limit := min(opts.Limit, len(imp.Entries))
	if limit > 0 {
		fmt.Fprintf(w, "\nSample Entries (first %d):\n", limit)
		for _, e := range imp.Entries[:limit] {
			line := e.Word
			if e.Phonetic != "" {
				line += "  /" + e.Phonetic + "/"
			}
			if e.Definitions != "" {
				line += "  " + e.Definitions
			}
			fmt.Fprintf(w, "  %s\n", runewidth.Truncate(line, 76, "..."))
		}
	}

	if opts.FixTo != "" {
		cleaned := lexicon.Clean(text)
		if err := os.WriteFile(opts.FixTo, []byte(cleaned), 0644); err != nil {
			return fmt.Errorf("writing fixed file: %w", err)
		}
		fmt.Fprintf(w, "\nCleaned file written to %s (%d -> %d bytes)\n", opts.FixTo, len(text), len(cleaned))
	}

	return nil
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
