// Package mockdata generates demo data contexts for templates rendered
// without a real data file, shaped after the e-commerce dashboards this
// renderer was built for.
package mockdata

import (
	"github.com/brianvoe/gofakeit/v7"
)

// Generate produces a deterministic data context for the given seed: the
// same seed always yields the same store, products and orders, which keeps
// preview reloads stable.
func Generate(seed uint64) map[string]interface{} {
	faker := gofakeit.New(seed)

	products := make([]map[string]interface{}, 0, 6)
	for i := 0; i < 6; i++ {
		products = append(products, map[string]interface{}{
			"name":  faker.ProductName(),
			"price": faker.Price(9.90, 499.90),
			"sku":   faker.LetterN(3) + faker.DigitN(5),
			"stock": faker.Number(0, 200),
		})
	}

	orders := make([]map[string]interface{}, 0, 4)
	for i := 0; i < 4; i++ {
		orders = append(orders, map[string]interface{}{
			"id":       faker.Number(10000, 99999),
			"customer": faker.Name(),
			"total":    faker.Price(19.90, 1999.90),
			"status":   faker.RandomString([]string{"pago", "pendente", "enviado", "entregue"}),
		})
	}

	return map[string]interface{}{
		"store": map[string]interface{}{
			"name":   faker.Company(),
			"domain": faker.DomainName(),
			"email":  faker.Email(),
		},
		"name":     faker.Company(),
		"title":    faker.ProductName(),
		"products": products,
		"orders":   orders,
		"visitors": faker.Number(100, 50000),
		"revenue":  faker.Price(1000, 100000),
	}
}
