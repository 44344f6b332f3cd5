// Command setup seeds the plan catalog and optionally a well-known dev API
// key into a freshly migrated database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edvin/jobboard/internal/config"
	"github.com/edvin/jobboard/internal/core"
	"github.com/edvin/jobboard/internal/db"
)

type seedConfig struct {
	Plans []planDef `yaml:"plans"`
}

type planDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	TrialDays   int    `yaml:"trial_days"`
	AmountCents int64  `yaml:"amount_cents"`
	Interval    string `yaml:"interval"`
}

func main() {
	seedPath := flag.String("config", "seeds/plans.yaml", "Plan seed file")
	devAPIKey := flag.String("dev-api-key", "", "Create a dev API key with this raw value")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read seed file: %v\n", err)
		os.Exit(1)
	}

	var seed seedConfig
	if err := yaml.Unmarshal(data, &seed); err != nil {
		fmt.Fprintf(os.Stderr, "parse seed file: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	for _, p := range seed.Plans {
		_, err := pool.Exec(ctx,
			`INSERT INTO plans (id, name, trial_days, amount_cents, interval, created_at)
			 VALUES ($1, $2, $3, $4, $5, now())
			 ON CONFLICT (id) DO UPDATE
			 SET name = $2, trial_days = $3, amount_cents = $4, interval = $5`,
			p.ID, p.Name, p.TrialDays, p.AmountCents, p.Interval,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed plan %s: %v\n", p.ID, err)
			os.Exit(1)
		}
		fmt.Printf("Plan %q: seeded\n", p.ID)
	}

	if *devAPIKey != "" {
		svc := core.NewAPIKeyService(pool)
		if _, err := svc.CreateWithRawKey(ctx, "dev", *devAPIKey); err != nil {
			fmt.Fprintf(os.Stderr, "create dev api key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Dev API key created")
	}
}
