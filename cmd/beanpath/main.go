// Package main provides the beanpath CLI: inspect YAML documents as
// object graphs and batch-edit them with path-addressed scripts.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"beanpath/internal/batch"
	"beanpath/mutate"
	"beanpath/walk"
)

var (
	input      string
	scriptFile string
	output     string
	dump       bool
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "beanpath",
	Short: "Inspect and edit object graphs by property path",
	Long: `beanpath treats a YAML document as an object graph addressable by
property paths like spec.containers[0].name and lets you list every
reachable object or apply a batch of path-addressed edits.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the path of every object reachable in a document",
	RunE:  runPaths,
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a YAML edit script to a document",
	Long: `Reads an edit script (a list of path/value rules), applies every
rule to the input document and writes the result back. Without
--output the input file is overwritten.`,
	RunE: runApply,
}

var getCmd = &cobra.Command{
	Use:   "get [path]",
	Short: "Print the value at a path in a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	pathsCmd.Flags().StringVarP(&input, "input", "i", "", "Input YAML document (required)")
	pathsCmd.MarkFlagRequired("input")

	applyCmd.Flags().StringVarP(&scriptFile, "script", "s", "", "Edit script file (required)")
	applyCmd.Flags().StringVarP(&input, "input", "i", "", "Input YAML document (required)")
	applyCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to in-place)")
	applyCmd.Flags().BoolVar(&dump, "dump", false, "Dump the resulting graph to stderr")
	applyCmd.MarkFlagRequired("script")
	applyCmd.MarkFlagRequired("input")

	getCmd.Flags().StringVarP(&input, "input", "i", "", "Input YAML document (required)")
	getCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(pathsCmd, applyCmd, getCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadDocument(file string) (map[string]any, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", file, err)
	}

	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", file, err)
	}
	return doc, nil
}

func runPaths(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	m, err := walk.Collect(doc, nil)
	if err != nil {
		return err
	}
	logger.Debug("walk finished", zap.Int("objects", m.Len()))

	for _, p := range m.Paths() {
		if p.IsEmpty() {
			fmt.Println("(root)")
			continue
		}
		fmt.Println(p)
	}
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	script, err := batch.LoadFile(scriptFile)
	if err != nil {
		return err
	}

	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	if err := script.Apply(doc); err != nil {
		return err
	}
	logger.Debug("script applied", zap.Int("rules", len(script.Set)))

	if dump {
		spew.Fdump(os.Stderr, doc)
	}

	out := output
	if out == "" {
		out = input
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write result %s: %w", out, err)
	}

	fmt.Printf("applied %d rule(s): %s\n", len(script.Set), out)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	value, err := mutate.GetString(doc, args[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
