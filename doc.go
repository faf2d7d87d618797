// Package nomurahome provides the embedded engine behind the Chloe
// Nomura Home storefront: a furniture catalog on Redis with hybrid
// (keyword + embedding) search, shopping carts, checkout, and customer
// accounts.
//
// # Connecting
//
//	client, err := nomurahome.New(ctx,
//	    nomurahome.WithRedis([]string{"localhost:6379"}, ""),
//	    nomurahome.WithEmbedder(embedder),
//	)
//	if err != nil { ... }
//	defer client.Close()
//
// # Catalog and search
//
//	item, _ := client.Inventory().Create(ctx, nomurahome.ItemDraft{
//	    ID:    "oak-chair-1",
//	    Name:  "Oak Chair",
//	    Price: 129,
//	})
//	hits, _ := client.Search().Query("solid oak chair").TopK(5).Do(ctx)
//
// # Carts and checkout
//
//	_ = client.Carts().AddLine(ctx, cartID, "oak-chair-1", 1)
//	order, _ := client.Checkout().CreateSale(ctx, cartID,
//	    nomurahome.Customer{Email: "kai@example.com"}, 25, "card", "")
//
// Without an embedder the catalog, carts, and checkout work normally;
// search fails with ErrEmbedderNotConfigured.
package nomurahome
