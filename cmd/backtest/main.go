package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/alphaforge-lab/swingtrader/internal/backtest"
	"github.com/alphaforge-lab/swingtrader/internal/logger"
	"github.com/alphaforge-lab/swingtrader/internal/types"
	"github.com/alphaforge-lab/swingtrader/internal/version"
	"github.com/alphaforge-lab/swingtrader/pkg/marketdata/datasource"
)

// runAction loads the daily bars, runs the backtest and writes the result
// report to the results folder.
func runAction(ctx context.Context, cmd *cli.Command) error {
	symbol := cmd.String("symbol")
	dataPath := cmd.String("data")

	config := backtest.DefaultConfig()

	if configPath := cmd.String("config"); configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read engine config: %w", err)
		}

		config, err = backtest.ParseConfig(raw)
		if err != nil {
			return fmt.Errorf("failed to parse engine config: %w", err)
		}
	}

	params := types.DefaultParameters()

	if paramsPath := cmd.String("params"); paramsPath != "" {
		raw, err := os.ReadFile(paramsPath)
		if err != nil {
			return fmt.Errorf("failed to read parameters: %w", err)
		}

		params, err = types.ParseParameters(raw)
		if err != nil {
			return fmt.Errorf("failed to parse parameters: %w", err)
		}
	}

	engineLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer engineLogger.Sync()

	source, err := datasource.NewDataSource(":memory:", engineLogger)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}
	defer source.Close()

	if err := source.Initialize(dataPath); err != nil {
		return fmt.Errorf("failed to open %s: %w", dataPath, err)
	}

	prices, err := source.ReadPriceSeries(symbol)
	if err != nil {
		return fmt.Errorf("failed to load price series: %w", err)
	}

	engine, err := backtest.NewEngine(config, engineLogger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	result, err := engine.Run(symbol, prices, params)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	resultsFolder := config.ResultsFolder
	if resultsFolder == "" {
		resultsFolder = "results"
	}

	if err := os.MkdirAll(resultsFolder, 0755); err != nil {
		return fmt.Errorf("failed to create results folder: %w", err)
	}

	resultPath := filepath.Join(resultsFolder, fmt.Sprintf("%s_%s.yaml", symbol, result.ID))
	if err := types.WriteResult(resultPath, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	fmt.Printf("%s: final equity %.2f, %d trades, win rate %.1f%%, diagnosis %s\n",
		symbol, result.FinalEquity, result.TradeCount, result.WinRatePct, result.Diagnosis.Status)
	fmt.Printf("Result written to %s\n", resultPath)

	return nil
}

// schemaAction prints the JSON schema for the parameters file.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	schema, err := types.ParametersJSONSchema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "backtest",
		Usage:   "Run the swing trading rule over stored daily bars",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Ticker symbol to backtest",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the Parquet file of daily bars",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   "Path to a YAML parameters file (defaults to the built-in parameter set)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML engine config file",
			},
		},
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for the parameters file",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
