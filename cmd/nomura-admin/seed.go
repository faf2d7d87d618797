package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	nomurahome "github.com/shirwani/chloe-nomura-home"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter furniture catalog",
	Long: `Seed the store with the starter catalog of eleven furniture listings.

Items carry stable ids, so re-running the command skips listings that
already exist instead of duplicating them. Categories are inferred from
each listing's name and description on insert.`,
	RunE: runSeed,
}

// The starter catalog. Stable ids keep the command idempotent; blank
// categories are inferred on insert.
var seedItems = []nomurahome.ItemDraft{
	{
		ID:    "black-nightstand-set",
		Name:  "Set of beautiful nightstands",
		Price: 175,
		Description: "Gorgeous set of nightstands in black with bronze pulls.\n" +
			"Perfect beside a bed or sofa. Dimensions: 24 x 18 x 30. Local pickup in Tyngsboro, MA.",
		Images: []string{
			"/static/_images/black_nightstands_scene1.jpg",
			"/static/_images/black_nightstands_scene2.jpg",
			"/static/_images/black_nightstands_scene3.jpg",
		},
	},
	{
		ID:    "walnut-side-table",
		Name:  "Mid-Century Walnut Side Table",
		Price: 220,
		Description: "Solid walnut side table with tapered legs and lower shelf.\n" +
			"Perfect next to a reading chair or sofa.",
		Images: []string{
			"/static/_images/walnut_side_table_scene1.jpg",
			"/static/_images/walnut_side_table_scene2.jpg",
			"/static/_images/walnut_side_table_scene3.jpg",
		},
	},
	{
		ID:    "oak-coffee-table",
		Name:  "Rustic Oak Coffee Table",
		Price: 340,
		Description: "Low-profile rustic oak coffee table with chunky legs and smooth top.\n" +
			"Beautiful centerpiece for a living room.",
		Images: []string{
			"/static/_images/oak_coffee_table_scene1.jpg",
			"/static/_images/oak_coffee_table_scene2.jpg",
			"/static/_images/oak_coffee_table_scene3.jpg",
		},
	},
	{
		ID:    "farmhouse-console",
		Name:  "Farmhouse Console Table",
		Price: 295,
		Description: "Long farmhouse console table with turned legs and lower shelf.\n" +
			"Works great in entryways or behind a sofa.",
		Images: []string{
			"/static/_images/farmhouse_console_scene1.jpg",
			"/static/_images/farmhouse_console_scene2.jpg",
			"/static/_images/farmhouse_console_scene3.jpg",
		},
	},
	{
		ID:    "spindle-chairs",
		Name:  "Pair of Spindle-Back Dining Chairs",
		Price: 180,
		Description: "Set of two solid wood spindle-back dining chairs in a warm honey finish.\n" +
			"Comfortable and sturdy.",
		Images: []string{
			"/static/_images/spindle_chairs_scene1.jpg",
			"/static/_images/spindle_chairs_scene2.jpg",
			"/static/_images/spindle_chairs_scene3.jpg",
		},
	},
	{
		ID:    "whitewashed-nightstand",
		Name:  "Whitewashed Nightstand with Drawer",
		Price: 165,
		Description: "Whitewashed solid wood nightstand with single drawer and open shelf.\n" +
			"Soft, coastal-inspired finish.",
		Images: []string{
			"/static/_images/whitewashed_nightstand_scene1.jpg",
			"/static/_images/whitewashed_nightstand_scene2.jpg",
			"/static/_images/whitewashed_nightstand_scene3.jpg",
		},
	},
	{
		ID:    "round-pedestal-table",
		Name:  "Round Pedestal Side Table",
		Price: 210,
		Description: "Round pedestal side table in rich espresso stain.\n" +
			"Great between two accent chairs or as a plant stand.",
		Images: []string{
			"/static/_images/round_pedestal_table_scene1.jpg",
			"/static/_images/round_pedestal_table_scene2.jpg",
			"/static/_images/round_pedestal_table_scene3.jpg",
		},
	},
	{
		ID:    "reclaimed-coffee-table",
		Name:  "Reclaimed Wood Coffee Table",
		Price: 385,
		Description: "Reclaimed wood coffee table with visible grain and character.\n" +
			"Metal base provides a modern industrial touch.",
		Images: []string{
			"/static/_images/reclaimed_coffee_table_scene1.jpg",
			"/static/_images/reclaimed_coffee_table_scene2.jpg",
			"/static/_images/reclaimed_coffee_table_scene3.jpg",
		},
	},
	{
		ID:    "slim-console",
		Name:  "Slim Entryway Console Table",
		Price: 260,
		Description: "Slim solid wood console table ideal for narrow hallways.\n" +
			"Includes two small drawers for keys and mail.",
		Images: []string{
			"/static/_images/slim_console_scene1.jpg",
			"/static/_images/slim_console_scene2.jpg",
			"/static/_images/slim_console_scene3.jpg",
		},
	},
	{
		ID:    "ladder-back-chairs",
		Name:  "Set of Ladder-Back Chairs",
		Price: 310,
		Description: "Set of four ladder-back dining chairs with woven rush seats.\n" +
			"Classic farmhouse look with updated finish.",
		Images: []string{
			"/static/_images/ladder_back_chairs_scene1.jpg",
			"/static/_images/ladder_back_chairs_scene2.jpg",
			"/static/_images/ladder_back_chairs_scene3.jpg",
		},
	},
	{
		ID:    "two-tone-coffee-table",
		Name:  "Two-Tone Coffee Table with Shelf",
		Price: 275,
		Description: "Two-tone coffee table with natural wood top and painted base.\n" +
			"Lower shelf provides extra storage for baskets or books.",
		Images: []string{
			"/static/_images/two_tone_coffee_table_scene1.jpg",
			"/static/_images/two_tone_coffee_table_scene2.jpg",
			"/static/_images/two_tone_coffee_table_scene3.jpg",
		},
	},
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	inventory := client.Inventory()
	created, skipped := 0, 0
	for _, draft := range seedItems {
		it, err := inventory.Create(ctx, draft)
		if err != nil {
			if errors.Is(err, nomurahome.ErrItemExists) {
				fmt.Printf("  - %-40s skipped (exists)\n", draft.ID)
				skipped++
				continue
			}
			return fmt.Errorf("seed %s: %w", draft.ID, err)
		}
		fmt.Printf("  + %-40s %-14s $%.0f\n", it.ID, it.Category, it.Price)
		created++
	}

	fmt.Printf("\nSeeded %d items (%d already present)\n", created, skipped)
	return nil
}
