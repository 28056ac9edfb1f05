package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/bigo/internal/config"
	"github.com/standardbeagle/bigo/internal/debug"
	"github.com/standardbeagle/bigo/internal/engine"
	"github.com/standardbeagle/bigo/internal/grammar"
	"github.com/standardbeagle/bigo/internal/mcp"
	"github.com/standardbeagle/bigo/internal/types"
	"github.com/standardbeagle/bigo/internal/version"
)

func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config-dir"))
	if err != nil {
		return nil, err
	}

	if dir := c.String("models-dir"); dir != "" {
		cfg.Models.Dir = dir
	}
	if c.Bool("no-default-models") {
		cfg.Models.UseDefaults = false
	}
	if c.IsSet("watch") {
		cfg.Models.Watch = c.Bool("watch")
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "bigo",
		Usage:                  "Estimate time and space complexity of code snippets",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Aliases: []string{"c"},
				Usage:   "Directory containing " + config.ConfigFileName,
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "models-dir",
				Usage: "Model artifact directory (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "no-default-models",
				Usage: "Disable the compiled-in model set; without artifacts every analysis is heuristic-only",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload model artifacts when they change on disk",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Analyze a file (or stdin with -) and print the complexity estimate",
				ArgsUsage: "<file|->",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "Language hint; inferred from the file extension when omitted",
					},
					&cli.BoolFlag{
						Name:  "rules-only",
						Usage: "Skip the model ensemble and use only the heuristic rules",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the raw JSON result",
					},
				},
				Action: runAnalyze,
			},
			{
				Name:   "serve",
				Usage:  "Run the MCP server over stdio",
				Action: runServe,
			},
			{
				Name:   "models",
				Usage:  "List the loaded model set",
				Action: runModels,
			},
			{
				Name:  "languages",
				Usage: "List registered language grammars",
				Action: func(c *cli.Context) error {
					for _, lang := range grammar.Registered() {
						fmt.Println(lang)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAnalyze(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument (or - for stdin)")
	}

	code, language, err := readInput(c.Args().First(), c.String("language"))
	if err != nil {
		return err
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx := c.Context
	var result *types.Result
	if c.Bool("rules-only") {
		result, err = eng.AnalyzeRules(ctx, code, language)
	} else {
		result, err = eng.Analyze(ctx, code, language)
	}
	if err != nil {
		return err
	}

	if c.Bool("json") {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printResult(result)
	return nil
}

func readInput(arg, languageFlag string) (code, language string, err error) {
	language = languageFlag
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), language, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", err
	}
	if language == "" {
		language = languageFromExtension(arg)
	}
	return string(data), language, nil
}

func languageFromExtension(path string) string {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return ""
	}
	switch path[dot+1:] {
	case "py":
		return "python"
	case "cpp", "cc", "cxx", "hpp", "c", "h":
		return "cpp"
	case "java":
		return "java"
	case "js", "mjs", "cjs", "jsx":
		return "javascript"
	case "ts", "tsx":
		return "typescript"
	case "go":
		return "go"
	case "rs":
		return "rust"
	case "cs":
		return "csharp"
	case "php":
		return "php"
	case "zig":
		return "zig"
	default:
		return ""
	}
}

func printResult(result *types.Result) {
	fmt.Printf("Time:       %s\n", result.TimeComplexity)
	fmt.Printf("Space:      %s\n", result.SpaceComplexity)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	fmt.Printf("Method:     %s\n", result.AnalysisMethod)

	fmt.Println("\nBreakdown:")
	for _, line := range result.Breakdown {
		fmt.Printf("  - %s\n", line)
	}

	if len(result.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}

	if result.ModelAgreement != nil {
		fmt.Println("\nModel agreement (time):")
		for class, count := range result.ModelAgreement.TimePredictions {
			fmt.Printf("  %-12s %d\n", class, count)
		}
	}
}

func runModels(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	registry := eng.Registry()
	fmt.Printf("Loaded models: %d\n", registry.Size())
	for _, id := range registry.ModelIDs() {
		fmt.Printf("  %s\n", id)
	}
	if fp := registry.Fingerprint(); fp != 0 {
		fmt.Printf("Artifact fingerprint: %016x\n", fp)
	} else {
		fmt.Println("Artifact fingerprint: (compiled-in defaults)")
	}
	return nil
}

func runServe(c *cli.Context) error {
	// Stdio belongs to the MCP transport; diagnostics go to a log file.
	debug.SetMCPMode(true)
	if _, err := debug.InitDebugLogFile(); err == nil {
		defer debug.CloseDebugLog()
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eng.Watch(ctx); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	server := mcp.NewServer(eng)
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(ctx)
	}()

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		cancel()
		select {
		case <-errChan:
		case <-time.After(2 * time.Second):
		}
		return nil
	}
}
