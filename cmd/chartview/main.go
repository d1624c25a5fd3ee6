package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/marketglass/chartcore/internal/analysis"
	"github.com/marketglass/chartcore/internal/datasource"
	"github.com/marketglass/chartcore/internal/livefeed"
	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/internal/types"
)

// chartAction wires the data layer, the analysis engine and the chart TUI
// together and runs the program. A --file flag selects file mode over a
// DuckDB view; without it candles come live from Binance.
func chartAction(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.String("file")
	symbol := cmd.String("symbol")
	timeframe := types.Timeframe(cmd.String("timeframe"))
	chartConfigPath := cmd.String("chart-config")
	analysisConfigPath := cmd.String("analysis-config")

	// The TUI owns the terminal, so logs stay out of the way.
	appLogger := logger.NewNopLogger()

	chartConfig, err := loadChartConfig(chartConfigPath, timeframe)
	if err != nil {
		return err
	}

	analysisConfig, err := loadAnalysisConfig(analysisConfigPath)
	if err != nil {
		return err
	}

	engine, err := analysis.NewEngine(analysisConfig, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create analysis engine: %w", err)
	}

	var (
		source datasource.CandleSource
		feed   livefeed.Feed
	)

	if filePath != "" {
		source, err = datasource.NewCandleSource(":memory:", appLogger)
		if err != nil {
			return fmt.Errorf("failed to open data source: %w", err)
		}
		defer source.Close()

		if err := source.Initialize(filePath); err != nil {
			return fmt.Errorf("failed to load candle file: %w", err)
		}
	} else {
		feed = livefeed.NewBinanceFeed(appLogger)
	}

	model := NewModel(source, feed, engine, chartConfig, symbol, appLogger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

// loadChartConfig reads the YAML chart configuration when given, falling
// back to defaults, and pins the starting timeframe from the flag.
func loadChartConfig(path string, timeframe types.Timeframe) (types.ChartConfig, error) {
	config := types.DefaultChartConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("failed to read chart config: %w", err)
		}

		parsed, err := types.ParseChartConfig(string(content))
		if err != nil {
			return config, fmt.Errorf("invalid chart config: %w", err)
		}

		config = *parsed
	}

	if timeframe != "" {
		config.Timeframe = timeframe

		if err := config.Validate(); err != nil {
			return config, fmt.Errorf("invalid timeframe %q: %w", timeframe, err)
		}
	}

	return config, nil
}

func loadAnalysisConfig(path string) (analysis.Config, error) {
	if path == "" {
		return analysis.DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return analysis.Config{}, fmt.Errorf("failed to read analysis config: %w", err)
	}

	config, err := analysis.ParseConfig(string(content))
	if err != nil {
		return analysis.Config{}, fmt.Errorf("invalid analysis config: %w", err)
	}

	return *config, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "chartview",
		Usage: "Interactive candlestick chart with SMC overlays",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Parquet or CSV candle file; omit to stream live from Binance",
			},
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Initial symbol for the symbol prompt",
				Value:   "BTCUSDT",
			},
			&cli.StringFlag{
				Name:    "timeframe",
				Aliases: []string{"t"},
				Usage:   "Initial timeframe (1m, 5m, 15m, 30m, 1h, 4h, 1d)",
				Value:   "15m",
			},
			&cli.StringFlag{
				Name:  "chart-config",
				Usage: "YAML chart configuration file",
			},
			&cli.StringFlag{
				Name:  "analysis-config",
				Usage: "YAML analysis configuration file",
			},
		},
		Action: chartAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
