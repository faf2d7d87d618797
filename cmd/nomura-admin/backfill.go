package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill-categories",
	Short: "Infer categories for uncategorized items",
	Long: `Scan the catalog and assign a category to every item that has none,
inferred from the listing's name and description. Items that match no
category keyword are filed under Other.`,
	RunE: runBackfill,
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	updated, err := client.Inventory().BackfillCategories(ctx)
	if err != nil {
		return fmt.Errorf("backfill categories: %w", err)
	}

	fmt.Printf("Backfilled %d items\n", updated)
	return nil
}
