package db

import (
	"context"
	"fmt"

	"github.com/jimlawless/whereami"

	"github.com/rogerio-castellano/hplussport-catalog/pkg/e"
)

// EnsureCreated creates the catalog tables when they do not exist yet.
// There is no versioning; existing tables are left as they are.
func EnsureCreated(ctx context.Context, ex Execer, d Dialect) error {
	for _, stmt := range schema(d) {
		if _, err := ex.ExecContext(ctx, stmt); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}
	return nil
}

func schema(d Dialect) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS categories (
	id %s,
	name VARCHAR(255) NOT NULL
)`, d.autoIncrementPK()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS products (
	id %s,
	name VARCHAR(255) NOT NULL,
	sku VARCHAR(255) NOT NULL,
	price DECIMAL(18,2) NOT NULL,
	is_available BOOLEAN NOT NULL,
	category_id INT NOT NULL,
	FOREIGN KEY (category_id) REFERENCES categories(id)
)`, d.autoIncrementPK()),
	}
}
