// Command nomura-admin is the operator CLI for the storefront: seeding
// the starter catalog, minting accounts, and catalog maintenance. It
// talks to Redis directly through the engine facade, not the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	nomurahome "github.com/shirwani/chloe-nomura-home"
	"github.com/shirwani/chloe-nomura-home/internal/config"
)

var (
	flagAddrs    []string
	flagPassword string
	flagEnv      string
)

var rootCmd = &cobra.Command{
	Use:   "nomura-admin",
	Short: "Operator tools for the Chloe Nomura Home storefront",
	Long: `nomura-admin seeds the starter catalog, creates accounts, and runs
catalog maintenance against the storefront's Redis store.

Connection is resolved from --addr when given, otherwise from the YAML
config for --env (the same files the API server reads).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&flagAddrs, "addr", nil, "Redis address (repeatable); overrides config")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "Redis password; overrides config")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", config.GetEnv(), "Config environment (development, production, local)")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(backfillCmd)
}

// connect builds an engine client from the resolved connection flags.
// The caller owns Close.
func connect(ctx context.Context) (*nomurahome.Client, error) {
	addrs := flagAddrs
	password := flagPassword
	if len(addrs) == 0 {
		cfg, err := config.Load(flagEnv)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", flagEnv, err)
		}
		addrs = cfg.Redis.Addrs
		if password == "" {
			password = cfg.Redis.Password
		}
	}

	client, err := nomurahome.New(ctx, nomurahome.WithRedis(addrs, password))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return client, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
