package shop

import "github.com/shopspring/decimal"

// Seed is the default working set used when no durable store exists yet:
// the ten-guitar catalog and the single admin account. It is not written to
// disk until the first mutation.
func Seed() Snapshot {
	return Snapshot{
		Users: []User{},
		Admins: []Admin{
			{ID: 1, Email: "admin@guitar.com", Password: "admin123", Name: "Admin"},
		},
		Products: []Product{
			{ID: 1, Name: "Fender Stratocaster Classic", Category: "Electric", Price: decimal.NewFromInt(168999), Quantity: 5, Image: "/images/guitar1.jpg", Description: "Iconic electric guitar with timeless design", Brand: "Fender", Year: "1965"},
			{ID: 2, Name: "Gibson Les Paul Standard", Category: "Electric", Price: decimal.NewFromInt(259999), Quantity: 3, Image: "/images/guitar2.jpg", Description: "Premium electric guitar with warm tone", Brand: "Gibson", Year: "1959"},
			{ID: 3, Name: "Taylor 814ce", Category: "Acoustic", Price: decimal.NewFromInt(415999), Quantity: 2, Image: "/images/guitar3.jpg", Description: "High-end acoustic guitar with exceptional clarity", Brand: "Taylor", Year: "2023"},
			{ID: 4, Name: "Martin D-45", Category: "Acoustic", Price: decimal.NewFromInt(389999), Quantity: 4, Image: "/images/guitar4.jpg", Description: "Legendary dreadnought acoustic guitar", Brand: "Martin", Year: "1933"},
			{ID: 5, Name: "Ibanez JEM77P", Category: "Electric", Price: decimal.NewFromInt(207999), Quantity: 6, Image: "/images/guitar5.jpg", Description: "Signature model with unique design", Brand: "Ibanez", Year: "1990"},
			{ID: 6, Name: "PRS Custom 24", Category: "Electric", Price: decimal.NewFromInt(584999), Quantity: 2, Image: "/images/guitar6.jpg", Description: "Handcrafted excellence in every detail", Brand: "PRS", Year: "1985"},
			{ID: 7, Name: "Epiphone SG", Category: "Electric", Price: decimal.NewFromInt(58499), Quantity: 8, Image: "/images/guitar7.jpg", Description: "Affordable solid-body electric guitar", Brand: "Epiphone", Year: "1961"},
			{ID: 8, Name: "Yamaha LL16", Category: "Acoustic", Price: decimal.NewFromInt(259999), Quantity: 3, Image: "/images/guitar8.jpg", Description: "Reliable acoustic guitar for professionals", Brand: "Yamaha", Year: "2000"},
			{ID: 9, Name: "Fender Jazzmaster Vintage", Category: "Electric", Price: decimal.NewFromInt(233999), Quantity: 2, Image: "/images/guitar9.jpg", Description: "Vintage-style offset electric guitar", Brand: "Fender", Year: "1958"},
			{ID: 10, Name: "Guild D-40 Traditional", Category: "Acoustic", Price: decimal.NewFromInt(376999), Quantity: 1, Image: "/images/guitar10.jpg", Description: "Premium crafted acoustic masterpiece", Brand: "Guild", Year: "1953"},
		},
		Orders: []Order{},
	}
}
