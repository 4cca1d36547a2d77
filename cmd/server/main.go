package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/alphaforge-lab/swingtrader/internal/backtest"
	"github.com/alphaforge-lab/swingtrader/internal/logger"
	"github.com/alphaforge-lab/swingtrader/internal/server"
	"github.com/alphaforge-lab/swingtrader/pkg/marketdata/datasource"
)

func main() {
	addrFlag := flag.String("addr", ":8080", "Address to listen on")
	dataFlag := flag.String("data", "", "Path to the Parquet file of daily bars (required)")
	configFlag := flag.String("config", "", "Path to a YAML engine config file")

	flag.Parse()

	if *dataFlag == "" {
		fmt.Println("Error: --data flag is required")
		flag.Usage()
		os.Exit(1)
	}

	config := backtest.DefaultConfig()

	if *configFlag != "" {
		raw, err := os.ReadFile(*configFlag)
		if err != nil {
			log.Fatalf("Failed to read engine config: %v", err)
		}

		config, err = backtest.ParseConfig(raw)
		if err != nil {
			log.Fatalf("Failed to parse engine config: %v", err)
		}
	}

	serverLogger, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer serverLogger.Sync()

	source, err := datasource.NewDataSource(":memory:", serverLogger)
	if err != nil {
		log.Fatalf("Failed to create data source: %v", err)
	}
	defer source.Close()

	if err := source.Initialize(*dataFlag); err != nil {
		log.Fatalf("Failed to open %s: %v", *dataFlag, err)
	}

	engine, err := backtest.NewEngine(config, serverLogger)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	apiServer := server.NewServer(engine, source, serverLogger)

	if err := apiServer.ListenAndServe(*addrFlag); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
