package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/indexmd/indexmd/internal/browse"
	"github.com/indexmd/indexmd/internal/config"
	"github.com/indexmd/indexmd/internal/export"
	"github.com/indexmd/indexmd/internal/index"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "indexmd [file]",
	Short: "Back-of-book index generator for Markdown",
	Long: `Scans a Markdown document for {^...} index marks, replaces them with
anchor spans, and inserts a sorted hierarchical index at the {index}
placeholder (or at the end of the document).

Reads from stdin when no file is given or when file is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

var browseCmd = &cobra.Command{
	Use:   "browse [file]",
	Short: "Browse the index of a document interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(browseCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "", "Write output to file instead of stdout")
	rootCmd.PersistentFlags().StringP("concordance", "c", "", "Apply a concordance file before indexing")
	rootCmd.PersistentFlags().Bool("latex", false, "Convert LaTeX \\index{} commands to marks first")
	rootCmd.PersistentFlags().Bool("section", false, "Use section numbers as locators instead of ids")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose progress reporting")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress warnings")

	rootCmd.Flags().Bool("index-only", false, "Print only the rendered index, not the document")
	rootCmd.Flags().Bool("html", false, "Render the result as a standalone HTML page")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("section_mode", rootCmd.PersistentFlags().Lookup("section"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v || config.GetVerbose() {
		config.SetVerbose(true)
		level = slog.LevelDebug
	}
	if q, _ := cmd.Flags().GetBool("quiet"); q {
		config.SetShowWarnings(false)
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(name string) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// prepare loads the document and runs the optional LaTeX and concordance
// passes, returning the document ready for indexing.
func prepare(cmd *cobra.Command, args []string, ix *index.Index, log *slog.Logger) (string, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	doc, err := readInput(name)
	if err != nil {
		return "", err
	}

	if latex, _ := cmd.Flags().GetBool("latex"); latex {
		var n int
		doc, n = index.ConvertLaTeX(doc)
		log.Info(fmt.Sprintf("converted %d LaTeX index commands", n))
	}

	if concPath, _ := cmd.Flags().GetString("concordance"); concPath != "" {
		text, err := os.ReadFile(concPath)
		if err != nil {
			return "", fmt.Errorf("reading concordance %s: %w", concPath, err)
		}
		rules, err := index.ParseConcordance(string(text))
		if err != nil {
			return "", fmt.Errorf("parsing concordance %s: %w", concPath, err)
		}
		doc = ix.ApplyConcordance(doc, rules)
		log.Info(fmt.Sprintf("applied %d concordance rules", len(rules)))
	}

	return doc, nil
}

func writeOutput(cmd *cobra.Command, content string) error {
	out, _ := cmd.Flags().GetString("output")
	if out == "" || out == "-" {
		_, err := io.WriteString(os.Stdout, content)
		return err
	}
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	if section, _ := cmd.Flags().GetBool("section"); section {
		config.SetSectionMode(true)
	}
	log := newLogger(cmd)
	ix := index.New(config.Options(), log)

	doc, err := prepare(cmd, args, ix, log)
	if err != nil {
		return err
	}

	annotated := ix.Process(doc)

	result := annotated
	if indexOnly, _ := cmd.Flags().GetBool("index-only"); indexOnly {
		result = ix.RenderHTML()
		if result != "" {
			result += "\n"
		}
	}

	if asHTML, _ := cmd.Flags().GetBool("html"); asHTML {
		title := "Index"
		if len(args) > 0 {
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		result, err = export.Page(title, result)
		if err != nil {
			return err
		}
	}

	return writeOutput(cmd, result)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if section, _ := cmd.Flags().GetBool("section"); section {
		config.SetSectionMode(true)
	}
	// The TUI owns the terminal, so nothing but errors may reach stderr.
	config.SetShowWarnings(false)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ix := index.New(config.Options(), log)

	doc, err := prepare(cmd, args, ix, log)
	if err != nil {
		return err
	}

	ix.Process(doc)

	return browse.Run(ix)
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
