// Package sdk provides a Go client for the alsobought recommendation
// service HTTP API.
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//
//	_, _ = client.UpsertProduct(ctx, "p1", sdk.ProductFields{
//	    Title:    "Eco Water Bottle",
//	    Brand:    "AquaCo",
//	    Category: "Outdoors",
//	})
//	_ = client.RecordPurchases(ctx, "u1", []string{"p1", "p3"})
//
//	recs, _ := client.Recommendations(ctx, "u1", 5)
//	for _, r := range recs {
//	    fmt.Println(r.ProductID, r.Score, r.Explanation)
//	}
//
// Server-side failures are returned as *APIError; not-found responses
// additionally match ErrNotFound via errors.Is.
package sdk
