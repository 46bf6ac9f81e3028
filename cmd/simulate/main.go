// Package main provides the command line entry point for running simulations.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/diamond-odds/internal/cache"
	"github.com/yourusername/diamond-odds/internal/config"
	"github.com/yourusername/diamond-odds/internal/datasource"
	"github.com/yourusername/diamond-odds/internal/factors"
	"github.com/yourusername/diamond-odds/internal/logger"
	"github.com/yourusername/diamond-odds/internal/odds"
	"github.com/yourusername/diamond-odds/internal/service"
	"github.com/yourusername/diamond-odds/internal/simulation"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config

	count   int
	seed    int64
	workers int
	slateOn string

	probability float64
	american    int
	decimalOdds float64
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	gameCmd.Flags().IntVarP(&count, "count", "n", 0, "Number of simulated games (0 uses the configured default)")
	gameCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the configured seed)")
	gameCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker goroutines (0 uses the configured value)")

	slateCmd.Flags().StringVar(&slateOn, "date", "", "Slate date (YYYY-MM-DD, defaults to today UTC)")
	slateCmd.Flags().IntVarP(&count, "count", "n", 0, "Number of simulated games per matchup")

	oddsCmd.Flags().Float64Var(&probability, "probability", 0, "Win probability in (0,1)")
	oddsCmd.Flags().IntVar(&american, "american", 0, "American odds")
	oddsCmd.Flags().Float64Var(&decimalOdds, "decimal", 0, "Decimal odds")
	oddsCmd.MarkFlagsMutuallyExclusive("probability", "american", "decimal")
	oddsCmd.MarkFlagsOneRequired("probability", "american", "decimal")

	rootCmd.AddCommand(gameCmd, slateCmd, oddsCmd)
}

type conversion struct {
	American    int     `json:"american"`
	Decimal     string  `json:"decimal"`
	Probability float64 `json:"probability"`
}

var rootCmd = &cobra.Command{
	Use:     "simulate",
	Short:   "Monte Carlo MLB game simulator",
	Long:    `Simulates MLB games from SportsDataIO data and converts between odds formats.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
}

var gameCmd = &cobra.Command{
	Use:   "game <game-id>",
	Short: "Simulate a single game",
	Args:  cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if workers > 0 {
			cfg.Simulation.Workers = workers
		}
		simulator, _, err := buildServices()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		result, err := simulator.Run(ctx, service.SimulationRequest{GameID: args[0], Count: count, Seed: seed})
		if err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}
		return printJSON(result)
	},
}

var slateCmd = &cobra.Command{
	Use:   "slate",
	Short: "Simulate every game on a date and compare against sportsbook lines",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().UTC()
		if slateOn != "" {
			parsed, err := time.Parse("2006-01-02", slateOn)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			date = parsed
		}

		_, slate, err := buildServices()
		if err != nil {
			return err
		}

		report, err := slate.RunSlate(cmd.Context(), date, count)
		if err != nil {
			return fmt.Errorf("slate failed: %w", err)
		}
		return printJSON(report)
	},
}

var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Convert between probability, American and decimal odds",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			prob float64
			line int
			err  error
		)
		switch {
		case cmd.Flags().Changed("probability"):
			prob = probability
			line, err = odds.ProbabilityToAmericanOdds(probability)
		case cmd.Flags().Changed("american"):
			line = american
			prob, err = odds.AmericanToImplied(american)
		default:
			line, err = odds.DecimalToAmerican(decimalOdds)
			if err == nil {
				prob, err = odds.DecimalToImplied(decimalOdds)
			}
		}
		if err != nil {
			return err
		}

		dec, err := odds.DecimalOdds(line)
		if err != nil {
			return err
		}
		return printJSON(conversion{American: line, Decimal: dec.StringFixed(2), Probability: prob})
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if config.SecretsEnabled() {
		if err := config.LoadSecretsFromAWS(context.Background(), cfg); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLoggerWithOutput(cfg.App.LogLevel, os.Stderr)
	return nil
}

func buildServices() (*service.SimulationService, *service.SlateService, error) {
	client, err := datasource.NewFromConfig(cfg, appLog)
	if err != nil {
		return nil, nil, err
	}

	ttl := time.Duration(cfg.Cache.GameTTLSeconds) * time.Second
	provider := cache.NewCachedGameProvider(client, client, cache.New("games", ttl, ttl))
	engine := simulation.NewEngine(simulation.FromConfig(&cfg.Simulation), logger.NewSimulationLogger(appLog))
	auditLog := logger.NewAuditLogger(appLog)

	simulator := service.NewSimulationService(
		provider,
		factors.NewAnalyzer(provider),
		engine,
		service.DefaultRatingSource(),
		nil,
		nil,
		service.SimulationServiceConfig{DefaultCount: cfg.Simulation.DefaultCount},
		logger.NewFactorLogger(appLog),
		auditLog,
	)
	slate := service.NewSlateService(
		client,
		client,
		simulator,
		service.NewMarketComparer(cfg.Market.EdgeThreshold, auditLog),
		nil,
		nil,
		logger.NewSimulationLogger(appLog),
	)
	return simulator, slate, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
