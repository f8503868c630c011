package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"mediaload/internal/config"
	"mediaload/internal/loader"
	"mediaload/internal/metrics"
	"mediaload/internal/metrics/datadog"
	"mediaload/internal/storage"

	// register all backends with the storage factory.
	// config specifies which to use but we build in support for all of them.
	_ "mediaload/internal/storage/all"
)

// main loads the run config, optionally initializes a metrics backend,
// waits for the database, and executes the load.
//
// Exit status: non-zero only for config or startup problems. Per-record
// failures are data, not process, errors; they end in the ledger summary
// and the process still exits 0.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/load.json", "run config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (datadog, none)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	run, err := config.LoadFile(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.Validate(run)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → none.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "datadog":
		jobName := run.Job
		if jobName == "" {
			jobName = "catalog_load"
		}

		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName:    jobName,
			Tags:       datadog.ParseTagsCSV(os.Getenv("METRICS_TAGS")),
			FlushEvery: 60 * time.Second,
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			log.Printf("metrics: backend=%v job_name=%v", backendName, jobName)
			metrics.SetBackend(b)
			defer func() {
				if err := b.Close(); err != nil {
					log.Printf("metrics: datadog close/flush error: %v", err)
				}
			}()
		}

	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	if !storage.Registered(run.Storage.Kind) {
		fatalf("unsupported storage.kind=%s", run.Storage.Kind)
	}

	store := openStore(ctx, storage.Config{
		Kind: run.Storage.Kind,
		DSN:  os.ExpandEnv(run.Storage.DSN),
	}, *verbose)
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		fatalf("ensure schema: %v", err)
	}

	ledger := loader.NewLedger(log.Default())
	if err := loader.New(store, ledger).Run(ctx, loader.Inputs{
		Shops:      run.Inputs.Shops,
		Categories: run.Inputs.Categories,
		Reviews:    run.Inputs.Reviews,
	}); err != nil {
		log.Fatalf("%v", err)
	}

	ledger.LogSummary()
	if err := metrics.Flush(); err != nil {
		log.Printf("metrics: flush error: %v", err)
	}

	if *verbose {
		log.Printf("completed in %s (%d failures)", time.Since(start).Truncate(time.Millisecond), ledger.Total())
	}
}

// openStore retries the initial open/ping until the database is reachable.
// This is the only place the loader blocks indefinitely: a database that
// never comes up keeps the run from starting.
func openStore(ctx context.Context, cfg storage.Config, verbose bool) *storage.Store {
	for attempt := 1; ; attempt++ {
		store, err := storage.Open(ctx, cfg)
		if err == nil {
			if verbose {
				log.Printf("storage: connected kind=%s (attempt %d)", cfg.Kind, attempt)
			}
			return store
		}
		log.Printf("storage: connect failed (attempt %d): %v; retrying", attempt, err)
		time.Sleep(3 * time.Second)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
