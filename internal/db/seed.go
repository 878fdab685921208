package db

import (
	"context"

	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/hplussport-catalog/pkg/e"
)

type seedProduct struct {
	name      string
	sku       string
	price     string
	available bool
}

type seedCategory struct {
	name     string
	products []seedProduct
}

var sampleCatalog = []seedCategory{
	{"Active Wear - Men", []seedProduct{
		{"Grunge Skater Jeans", "AMSKJ", "68.00", true},
		{"Polo Shirt", "AMPS", "35.00", true},
		{"Skater Graphic T-Shirt", "AMSGT", "33.00", true},
		{"Slicker Jacket", "AMSJ", "125.00", true},
		{"Thermal Fleece Jacket", "AMTFJ", "60.00", true},
		{"Unisex Thermal Vest", "AMTV", "95.00", true},
		{"V-Neck Pullover", "AMVNP", "65.00", false},
	}},
	{"Active Wear - Women", []seedProduct{
		{"Bamboo Thermal Ski Coat", "AWBTSC", "99.00", true},
		{"Cross-Back Training Tank", "AWCBTT", "19.00", false},
		{"Fleece Crew Sweatshirt", "AWFCS", "42.00", true},
	}},
	{"Mineral Water", []seedProduct{
		{"Blueberry Mineral Water", "MWB", "2.80", true},
		{"Lemon-Lime Mineral Water", "MWLL", "2.80", true},
		{"Orange Mineral Water", "MWO", "2.80", true},
	}},
	{"Publications", []seedProduct{
		{"Calorie Counting", "PCC", "16.99", true},
		{"Stretching for Runners", "PSR", "11.99", true},
	}},
	{"Supplements", []seedProduct{
		{"Whey Protein", "SWP", "12.00", true},
	}},
}

// Seed fills an empty catalog with sample categories and products.
// It reports whether anything was inserted.
func Seed(ctx context.Context, ex Execer, d Dialect) (bool, error) {
	var count int
	if err := ex.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}
	if count > 0 {
		return false, nil
	}

	insertCategory := "INSERT INTO categories (name) VALUES (" + d.Placeholder(1) + ")"
	insertProduct := "INSERT INTO products (name, sku, price, is_available, category_id) VALUES (" +
		d.Placeholder(1) + ", " + d.Placeholder(2) + ", " + d.Placeholder(3) + ", " +
		d.Placeholder(4) + ", " + d.Placeholder(5) + ")"

	for _, c := range sampleCatalog {
		categoryID, err := d.InsertReturningID(ctx, ex, insertCategory, c.name)
		if err != nil {
			return false, err
		}
		for _, p := range c.products {
			if _, err := ex.ExecContext(ctx, insertProduct,
				p.name, p.sku, decimal.RequireFromString(p.price), p.available, categoryID); err != nil {
				return false, e.Wrap(whereami.WhereAmI(), err)
			}
		}
	}

	return true, nil
}
