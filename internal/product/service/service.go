// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	producterrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/store"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/abgdnv/productcatalog/pkg/messaging/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const defaultPublishTimeout = 2 * time.Second

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Create validates the candidate and adds it under a newly assigned ID.
	// Returns a *ValidationError if the candidate breaks a field rule.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update overwrites the product with the given ID.
	// Checks run in order: ErrIDMismatch, *ValidationError, ErrProductNotFound.
	Update(ctx context.Context, id int64, product ProductDto) error

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// ProductCreateDto represents the data transfer object for creating a new product.
// An id sent by the client is not part of it and is ignored.
type ProductCreateDto struct {
	Name     string `json:"name"     validate:"notblank,min=3,max=100"`
	Price    Price  `json:"price"    validate:"required,gte=0.01"`
	Quantity int32  `json:"quantity" validate:"required,min=1"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"     validate:"notblank,min=3,max=100"`
	Price    Price  `json:"price"    validate:"required,gte=0.01"`
	Quantity int32  `json:"quantity" validate:"required,min=1"`
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository     store.ProductStore
	validator      *Validator
	publisher      messaging.Publisher
	publishTimeout time.Duration
	operations     metric.Int64Counter
	logger         *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithPublishTimeout bounds each event publish.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// NewService creates a new instance of ProductService with the provided repository.
// Lifecycle events go to publisher and operation counts to meter.
func NewService(repo store.ProductStore, publisher messaging.Publisher, meter metric.Meter, logger *slog.Logger, opts ...Option) *Service {
	logger = logger.With("component", "service")
	operations, err := meter.Int64Counter("products.operations",
		metric.WithDescription("Product operations by kind and outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		logger.Error("Failed to create operations counter, metrics disabled", "error", err)
		operations = noop.Int64Counter{}
	}
	s := &Service{
		repository:     repo,
		validator:      NewValidator(),
		publisher:      publisher,
		publishTimeout: defaultPublishTimeout,
		operations:     operations,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	s.record(ctx, "list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	s.record(ctx, "get", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// Create validates and stores a new product, then publishes products.created.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if err := s.validator.Validate(product); err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}
	p, err := s.repository.Create(ctx, product.Name, product.Price.Decimal, product.Quantity)
	s.record(ctx, "create", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(ctx, events.ProductCreatedEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   p.Quantity,
		OccurredAt: time.Now().UTC(),
	})
	return toDto(p), nil
}

// Update overwrites an existing product, then publishes products.updated.
func (s *Service) Update(ctx context.Context, id int64, product ProductDto) error {
	if product.ID != id {
		s.record(ctx, "update", producterrors.ErrIDMismatch)
		return producterrors.ErrIDMismatch
	}
	if err := s.validator.Validate(product); err != nil {
		s.record(ctx, "update", err)
		return err
	}
	updated, err := s.repository.Update(ctx, id, product.Name, product.Price.Decimal, product.Quantity)
	s.record(ctx, "update", err)
	if err != nil {
		return fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	s.publish(ctx, events.ProductUpdatedEvent{
		ProductID:  updated.ID,
		Name:       updated.Name,
		Price:      updated.Price,
		Quantity:   updated.Quantity,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// DeleteByID deletes a product by its ID, then publishes products.deleted.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	err := s.repository.DeleteByID(ctx, id)
	s.record(ctx, "delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}

	s.publish(ctx, events.ProductDeletedEvent{
		ProductID:  id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// publish never fails the operation; the mutation has already happened.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish product event", "subject", event.Subject(), "error", err)
	}
}

func (s *Service) record(ctx context.Context, operation string, err error) {
	s.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome(err)),
	))
}

func outcome(err error) string {
	var validationErr *producterrors.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, producterrors.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, producterrors.ErrIDMismatch):
		return "id_mismatch"
	case errors.As(err, &validationErr):
		return "invalid"
	default:
		return "error"
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:       product.ID,
		Name:     product.Name,
		Price:    NewPrice(product.Price),
		Quantity: product.Quantity,
	}
}
