package main

import (
	"context"
	"log"

	"go-galon-gas/internal/model"
	"go-galon-gas/internal/repository"
	"go-galon-gas/pkg/kvstore"

	"github.com/joho/godotenv"
)

// Seeds the starter catalog into an empty store. Running against a store
// that already has products is a no-op.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	store, err := kvstore.ConnectRedis()
	if err != nil {
		log.Fatal("Failed to connect to KV store: ", err)
	}

	ctx := context.Background()
	productRepo := repository.NewProductRepo(store)

	existing, err := productRepo.FindAll(ctx)
	if err != nil {
		log.Fatal("Failed to list products: ", err)
	}
	if len(existing) > 0 {
		log.Printf("Catalog already has %d products, nothing to do", len(existing))
		return
	}

	for _, p := range defaultCatalog() {
		product := p
		if err := productRepo.Create(ctx, &product); err != nil {
			log.Fatalf("Failed to seed product %q: %v", p.Name, err)
		}
		log.Printf("Seeded %s (%s)", product.Name, product.ID)
	}

	log.Println("Catalog seeded")
}

func defaultCatalog() []model.Product {
	return []model.Product{
		{
			Name:        "Galon Air Aqua 19L",
			Description: "Air mineral berkualitas tinggi, higienis dan segar untuk kebutuhan sehari-hari",
			Price:       21000,
			Image:       "https://images.unsplash.com/photo-1739200445580-b32f168899a5?w=1080",
			Category:    model.CategoryGalon,
			InStock:     true,
			Popular:     true,
		},
		{
			Name:        "Tabung Gas 3kg",
			Description: "Tabung gas LPG 3kg untuk kebutuhan memasak rumah tangga, aman dan berkualitas",
			Price:       23000,
			Image:       "https://images.unsplash.com/photo-1596465664095-f1f622965562?w=1080",
			Category:    model.CategoryGas,
			InStock:     true,
			Popular:     true,
		},
		{
			Name:        "Galon Air Isi Ulang",
			Description: "Galon isi ulang ekonomis untuk kebutuhan sehari-hari, hemat dan praktis",
			Price:       6000,
			Image:       "https://images.unsplash.com/photo-1739200445580-b32f168899a5?w=1080",
			Category:    model.CategoryGalon,
			InStock:     true,
		},
		{
			Name:        "Tabung Gas 12kg",
			Description: "Tabung gas LPG 12kg untuk kebutuhan komersial dan rumah tangga besar",
			Price:       217000,
			Image:       "https://images.unsplash.com/photo-1596465664095-f1f622965562?w=1080",
			Category:    model.CategoryGas,
			InStock:     true,
		},
		{
			Name:        "Galon Air Vit",
			Description: "Air mineral dengan harga ekonomis dan segar untuk kebutuhan sehari-hari",
			Price:       17000,
			Image:       "https://images.unsplash.com/photo-1739200445580-b32f168899a5?w=1080",
			Category:    model.CategoryGalon,
			InStock:     true,
			Popular:     true,
		},
		{
			Name:        "Tabung Gas 5.5kg",
			Description: "Tabung gas LPG 5.5kg cocok untuk kebutuhan menengah",
			Price:       110000,
			Image:       "https://images.unsplash.com/photo-1596465664095-f1f622965562?w=1080",
			Category:    model.CategoryGas,
			InStock:     true,
		},
	}
}
