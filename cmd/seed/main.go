package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/internal/shopclient"
)

type seedProduct struct {
	name   string
	price  float64
	weight float64
}

var demoProducts = []seedProduct{
	{"desk lamp", 35, 1.2},
	{"office chair", 240, 15},
	{"standing desk", 620, 38},
	{"monitor", 310, 6.5},
	{"keyboard", 85, 0.9},
	{"laptop", 2000, 1},
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	baseURL := getEnv("SHOP_SERVICE_URL", "http://localhost:8080")
	client := shopclient.New(baseURL, logger)

	var productIDs []string
	for _, p := range demoProducts {
		location, err := client.CreateProduct(p.name, p.price, p.weight)
		if err != nil {
			logger.WithError(err).WithField("name", p.name).Fatal("Failed to seed product")
		}
		productIDs = append(productIDs, strings.TrimPrefix(location, "/products/"))
	}

	logger.WithField("count", len(productIDs)).Info("Products seeded")

	// One demo order over the first few products, to give the
	// dashboard something to show.
	location, err := client.CreateOrder(productIDs[:3])
	if err != nil {
		logger.WithError(err).Fatal("Failed to seed order")
	}
	logger.WithField("location", location).Info("Demo order created")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
