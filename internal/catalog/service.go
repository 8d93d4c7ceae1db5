package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/internal/storage"
	"github.com/jmorgan-io/shop-service/internal/validation"
	"github.com/jmorgan-io/shop-service/pkg/models"
)

// CreateProductRequest carries the fields of a new product. Price and
// weight are pointers so a missing field can be told apart from zero.
type CreateProductRequest struct {
	Name   string   `json:"name"`
	Price  *float64 `json:"price"`
	Weight *float64 `json:"weight"`
}

// Service owns the product catalog.
type Service struct {
	store  storage.ProductStore
	logger *logrus.Logger
}

func NewService(store storage.ProductStore, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	errs := &validation.Errors{}
	if req.Name == "" {
		errs.Add("name", `"name" is required`)
	}
	if req.Price == nil {
		errs.Add("price", `"price" is required`)
	} else if *req.Price < 0 {
		errs.Add("price", `"price" must be non-negative`)
	}
	if req.Weight == nil {
		errs.Add("weight", `"weight" is required`)
	} else if *req.Weight < 0 {
		errs.Add("weight", `"weight" must be non-negative`)
	}
	if errs.HasErrors() {
		return nil, errs
	}

	product := &models.Product{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Price:     *req.Price,
		Weight:    *req.Weight,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price,
		"weight":     product.Weight,
	}).Info("Product created")

	return product, nil
}

// List returns all products, optionally sorted by one of the entity
// fields. An unknown sort key leaves the stored order untouched.
func (s *Service) List(ctx context.Context, sortBy string) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	switch sortBy {
	case "name":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	case "price":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "weight":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Weight < products[j].Weight })
	}

	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.GetProduct(ctx, id)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAllProducts(ctx); err != nil {
		return err
	}
	s.logger.Info("All products deleted")
	return nil
}
