/*
lexhnd runs unsupervised lexicon induction over a newline-delimited
wordlist via Minimum Description Length iterative refinement.

Each run alternates lexicon refinement and corpus resegmentation,
proposing new lexical candidates by joining adjacent segments from
the previous iteration's segmentation and retaining the most frequent
joins. The CLI prints a per-iteration table of prior, posterior, total
description length H, and ΔH from the previous iteration.

# Config

Runtime tunables (lexicon capacity/load factor, minseg length ceiling,
iteration count, new words per iteration) are managed via a
config.toml file, which is created with defaults if one does not
exist. -iterations, -words and -pair-join-bootstrap override the
file's values when given.

# Report

-report writes one msgpack-encoded IterationReport per iteration to
the given path, a persisted replay of the run independent of the
core's own (intentionally unpersisted) state.

# Explain

-explain <prefix> lists every entry of the final iteration's lexicon
sharing that prefix, backed by a patricia trie over the lexicon.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bastiangx/lexhnd/internal/logger"
	"github.com/bastiangx/lexhnd/internal/wordlist"
	"github.com/bastiangx/lexhnd/pkg/config"
	"github.com/bastiangx/lexhnd/pkg/induction"
	"github.com/bastiangx/lexhnd/pkg/report"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	Version = "0.1.0"
	AppName = "lexhnd"
	gh      = "https://github.com/bastiangx/lexhnd"
)

func main() {
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	corpusPath := flag.String("corpus", "", "Path to a newline-delimited wordlist")
	iterations := flag.Int("iterations", defaultConfig.Induction.Iterations, "Number of induction iterations to run")
	newWords := flag.Int("words", defaultConfig.Induction.NewWords, "New candidate words admitted per iteration")
	pairJoin := flag.Bool("pair-join-bootstrap", defaultConfig.Induction.PairJoinBootstrap, "Pair-join iteration 0's bootstrap segmentation instead of pushing raw segments")
	reportPath := flag.String("report", defaultConfig.CLI.ReportPath, "Write a msgpack IterationReport per iteration to this path")
	explainPrefix := flag.String("explain", "", "List final-lexicon entries sharing this prefix and exit")
	debugMode := flag.Bool("v", false, "Toggle verbose mode")

	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *showVersion {
		printVersion()
		return
	}

	if *corpusPath == "" {
		fmt.Fprintln(os.Stderr, "lexhnd: -corpus is required (path to a newline-delimited wordlist)")
		os.Exit(1)
	}

	cfg, configPath, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("using config file: %s", configPath)

	// Flags given on the command line override the config file.
	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if !setFlags["iterations"] {
		*iterations = cfg.Induction.Iterations
	}
	if !setFlags["words"] {
		*newWords = cfg.Induction.NewWords
	}
	if !setFlags["pair-join-bootstrap"] {
		*pairJoin = cfg.Induction.PairJoinBootstrap
	}

	corpus, err := wordlist.Load(*corpusPath)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
		os.Exit(1)
	}
	log.Debugf("loaded %d corpus entries from %s", len(corpus), *corpusPath)

	opts := induction.Options{
		Iterations:        *iterations,
		NewWordsPerIter:   *newWords,
		LexiconCapacity:   cfg.Lexicon.InitialCapacity,
		LoadFactor:        cfg.Lexicon.LoadFactor,
		MinsegMaxLength:   cfg.Minseg.MaxLength,
		JoinCeiling:       cfg.Minseg.JoinCeiling,
		PairJoinBootstrap: *pairJoin,
		Logger:            logger.New("induction"),
	}

	result, err := induction.Run(corpus, opts)
	if err != nil {
		log.Fatalf("induction run failed: %v", err)
		os.Exit(1)
	}

	printIterationTable(result)

	if *reportPath != "" {
		reports := report.Build(result)
		if err := report.WriteFile(*reportPath, reports); err != nil {
			log.Fatalf("failed to write report: %v", err)
			os.Exit(1)
		}
		log.Debugf("wrote %d iteration records to %s", len(reports), *reportPath)
	}

	if *explainPrefix != "" {
		explain(result, *explainPrefix)
	}
}

func loadConfig(configFile string) (*config.Config, string, error) {
	if configFile != "" {
		cfg, err := config.LoadConfig(configFile)
		return cfg, configFile, err
	}
	path := "config.toml"
	cfg, err := config.InitConfig(path)
	return cfg, path, err
}

// printVersion renders the -version banner via a charmbracelet/log
// logger with lipgloss-styled adaptive-color value fields.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[lexhnd] MDL lexicon induction")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("Find out more at", "gh", gh)
}

// printIterationTable pretty-prints per-iteration (prior, posterior,
// H, ΔH).
func printIterationTable(result *induction.Result) {
	headerStyle := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"})

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-5s %12s %12s %12s %12s", "iter", "prior", "posterior", "H", "ΔH")))

	var prevH float64
	for i := range result.Lexicons {
		h := result.Priors[i] + result.Posteriors[i]
		var deltaH float64
		if i > 0 {
			deltaH = h - prevH
		}
		line := fmt.Sprintf("%-5d %12.4f %12.4f %12.4f %12.4f", i, result.Priors[i], result.Posteriors[i], h, deltaH)
		fmt.Println(rowStyle.Render(line))
		prevH = h
	}
}

// explain lists every entry of the final iteration's lexicon sharing
// prefix, via a VisitSubtree traversal of the lexicon's patricia trie.
func explain(result *induction.Result, prefix string) {
	if len(result.Lexicons) == 0 {
		return
	}
	final := result.Lexicons[len(result.Lexicons)-1]
	trie := final.PrefixTrie()

	fmt.Printf("entries sharing prefix %q:\n", prefix)
	err := trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		count, _ := item.(uint64)
		fmt.Printf("  %-20s count=%d\n", string(p), count)
		return nil
	})
	if err != nil {
		log.Errorf("error visiting trie subtree: %v", err)
	}
}
