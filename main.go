package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/scooter-qa/courier-contract-tests/config"
	"github.com/scooter-qa/courier-contract-tests/couriertests"
	"github.com/scooter-qa/courier-contract-tests/fixtures"
	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/scooterapi"
)

const statusQueryTimeout = time.Second * 10

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	mainDebugLogger := framework.NullLogger()
	if cfg.DebugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	generator := fixtures.NewGenerator()
	if cfg.HasSeed {
		generator = fixtures.NewSeededGenerator(cfg.Seed)
	}
	mainDebugLogger.Printf("Generating test data with seed %d", generator.Seed())

	client, err := scooterapi.NewClient(scooterapi.Config{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		RequestIDs: cfg.RequestIDs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}

	if err := client.WithLogger(mainDebugLogger).AwaitService(context.Background(), statusQueryTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, cfg.Filters)

	fmt.Println("Running test suite")

	testLogger := &framework.ConsoleTestLogger{
		DebugOutputOnFailure: cfg.Debug || cfg.DebugAll,
		DebugOutputOnSuccess: cfg.DebugAll,
	}

	started := time.Now()
	results := couriertests.RunTestSuite(
		couriertests.Env{Client: client, Fixtures: generator},
		cfg.Filters.AsFilter,
		testLogger,
	)

	fmt.Println()
	framework.PrintResults(os.Stdout, results, time.Since(started))
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun the failed tests with the same data:")
		fmt.Println("  " + reproCommand(os.Args[0], cfg, generator.Seed(), results.Failures))
		os.Exit(1)
	}
}
