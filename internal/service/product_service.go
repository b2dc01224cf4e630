package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"techstore/internal/cache"
	"techstore/internal/catalog"
	"techstore/internal/model"
	"techstore/internal/repository"
	"techstore/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService with a cache-aside read path.
type productService struct {
	productRepo repository.ProductRepository
	cache       cache.Cache
	images      storage.ImageStore
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	productCache cache.Cache,
	images storage.ImageStore,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		cache:       productCache,
		images:      images,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("service", "product").Logger(),
		now:         time.Now,
	}
}

func cacheKey(id uuid.UUID) string {
	return "product:" + id.String()
}

// List retrieves products with pagination, attaching the additive price-range
// preview to each.
func (s *productService) List(ctx context.Context, limit, offset int) ([]model.ProductListItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	items := make([]model.ProductListItem, 0, len(products))
	for i := range products {
		from, to := catalog.PriceRange(&products[i])
		items = append(items, model.ProductListItem{
			Product:   products[i],
			PriceFrom: from,
			PriceTo:   to,
		})
	}

	return items, nil
}

// GetByID retrieves a single product, consulting the cache first. Cache
// failures degrade to database reads, never to request failures.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if data, err := s.cache.Get(ctx, cacheKey(id)); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id.String()).Msg("cache read failed")
	} else if data != nil {
		var p model.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		s.logger.Warn().Str("product_id", id.String()).Msg("discarding malformed cache entry")
	}

	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}

	if data, err := json.Marshal(p); err == nil {
		if err := s.cache.Set(ctx, cacheKey(id), data, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("product_id", id.String()).Msg("cache write failed")
		}
	}

	return p, nil
}

// Create creates a product, normalising its option schema at the boundary.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, model.NewValidationError("Request body is required")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" || req.Price == nil {
		return nil, model.NewValidationError("Name, description, price required")
	}
	if *req.Price < 0 {
		return nil, model.NewValidationError("Price must not be negative")
	}

	category := req.Category
	if category == "" {
		category = "General"
	}

	stock := 10
	if req.Stock != nil && *req.Stock >= 0 {
		stock = *req.Stock
	}

	now := s.now()
	p := &model.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    category,
		Image:       req.Image,
		Images:      emptyIfNil(req.Images),
		Stock:       stock,
		Keywords:    emptyIfNil(req.Keywords),
		Options:     catalog.NormalizeOptions(req.Options),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("product created")
	return p, nil
}

// Update applies a partial update, re-normalising options when they are
// submitted, and invalidates the cache entry.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, model.NewValidationError("Request body is required")
	}

	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, model.NewValidationError("Price must not be negative")
		}
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Keywords != nil {
		p.Keywords = req.Keywords
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Stock != nil && *req.Stock >= 0 {
		p.Stock = *req.Stock
	}
	if req.Options != nil {
		p.Options = catalog.NormalizeOptions(req.Options)
	}
	p.UpdatedAt = s.now()

	if err := s.productRepo.Update(ctx, p); err != nil {
		if model.ErrorCode(err) == model.ErrCodeNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidate(ctx, id)
	return p, nil
}

// Delete removes a product, its cache entry and its stored images.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return model.ErrProductNotFound
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	for _, url := range append([]string{p.Image}, p.Images...) {
		if url != "" {
			_ = s.images.Remove(ctx, url)
		}
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// UploadImage stores image bytes and attaches the URL as the primary image.
func (s *productService) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, data []byte) (*model.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}

	url, err := s.images.Put(ctx, filename, contentType, data)
	if err != nil {
		if model.ErrorCode(err) != "" {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("image upload failed")
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	p.Image = url
	p.UpdatedAt = s.now()
	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidate(ctx, id)
	return p, nil
}

// RemoveImage detaches an image URL from the product and removes the stored
// object.
func (s *productService) RemoveImage(ctx context.Context, id uuid.UUID, url string) (*model.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img != url {
			images = append(images, img)
		}
	}
	p.Images = images
	if p.Image == url {
		p.Image = ""
	}
	p.UpdatedAt = s.now()

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	_ = s.images.Remove(ctx, url)
	s.invalidate(ctx, id)
	return p, nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id.String()).Msg("cache invalidation failed")
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
