package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"stockroom/internal/inventory"
	"stockroom/internal/model"
	"stockroom/internal/service"
)

// samplecsv writes a product CSV that the bulk upload endpoint accepts.
// Categories and vendors come from the seeded defaults so every row
// imports against a fresh store.
func main() {
	out := flag.String("out", "data/sample-products.csv", "output file")
	count := flag.Int("n", 24, "number of products")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := sampleProducts(*count, time.Now())

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer file.Close()

	if err := inventory.ExportProducts(file, products, time.Local); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(products))
	fmt.Println("\nUpload it with:")
	fmt.Printf("  curl -b cookies.txt -F file=@%s http://localhost:8080/api/products/bulk-upload\n", *out)
}

func sampleProducts(n int, now time.Time) []model.Product {
	products := make([]model.Product, 0, n)
	for i := 0; i < n; i++ {
		category := service.DefaultCategories[i%len(service.DefaultCategories)]
		vendor := service.DefaultVendors[(i*3)%len(service.DefaultVendors)]

		buying := float64(10 + (i*37)%190)
		selling := inventory.Round2(buying * (1 + float64(5+(i*7)%40)/100))
		quantity := 20 + (i*11)%80

		products = append(products, model.Product{
			ProductCode:      fmt.Sprintf("SKU-%04d", i+1),
			Name:             fmt.Sprintf("%s item %d", category, i+1),
			Category:         category,
			Vendor:           vendor,
			BuyingPrice:      buying,
			SellingPrice:     selling,
			Quantity:         quantity,
			Sold:             (i * 5) % quantity,
			ProfitPercentage: inventory.ProfitPercentage(buying, selling),
			CreatedAt:        now,
		})
	}
	return products
}
