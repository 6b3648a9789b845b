package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"backoffice-service/internal/events"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
)

// ProductService handles catalog products and their variants, including
// optimistic-concurrency resolution on edits and deletes.
type ProductService interface {
	CreateProduct(req *models.CreateProductRequest) (*models.Product, error)
	GetProduct(id uuid.UUID) (*models.Product, error)
	ListProducts(filters models.ProductFilters) ([]models.Product, int64, error)
	ListArchivedProducts() ([]models.Product, error)
	ListProductsByVendor(vendorID uuid.UUID) ([]models.Product, error)
	UpdateProduct(id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ArchiveProduct(id uuid.UUID) error
	ProductOptions(selectedID *uuid.UUID) ([]models.SelectOption, error)

	AddVariant(productID uuid.UUID, req *models.CreateVariantRequest) (*models.ProductVariant, error)
	GetVariant(id uuid.UUID) (*models.ProductVariant, error)
	ListVariants(productID uuid.UUID) ([]models.ProductVariant, error)
	UpdateVariant(id uuid.UUID, req *models.UpdateVariantRequest) (*models.ProductVariant, error)
	DeleteVariant(id uuid.UUID, observedVersion int64) error
}

type productService struct {
	repo            *repository.ProductRepository
	eventsPublisher *events.Publisher
}

// NewProductService creates a new product service
func NewProductService(repo *repository.ProductRepository, eventsPublisher *events.Publisher) ProductService {
	return &productService{repo: repo, eventsPublisher: eventsPublisher}
}

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// generateSlug converts a name into a URL-friendly handle
func generateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func validateProduct(name, description string) *ValidationError {
	var fields []models.FieldError
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		fields = append(fields, models.FieldError{Field: "name", Message: "Product name must be at least 3 characters long"})
	}
	if len(name) > 200 {
		fields = append(fields, models.FieldError{Field: "name", Message: "Product name cannot be more than 200 characters long"})
	}
	if len(description) > 200 {
		fields = append(fields, models.FieldError{Field: "description", Message: "Product description cannot be more than 200 characters long"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateVariant(unitPrice float64, stockQuantity int, options []models.VariantOptionInput) *ValidationError {
	var fields []models.FieldError
	if unitPrice <= 0 {
		fields = append(fields, models.FieldError{Field: "unitPrice", Message: "Unit price cannot be less than or equal to $0"})
	}
	if stockQuantity < 0 {
		fields = append(fields, models.FieldError{Field: "stockQuantity", Message: "Stock quantity cannot be negative"})
	}
	if len(options) == 0 {
		fields = append(fields, models.FieldError{Field: "options", Message: "At least one option is required"})
	}
	for i, opt := range options {
		if len(strings.TrimSpace(opt.Name)) < 3 {
			fields = append(fields, models.FieldError{
				Field:   fmt.Sprintf("options[%d].name", i),
				Message: "Option name must be at least 3 characters long",
			})
		}
		if len(strings.TrimSpace(opt.Value)) < 3 {
			fields = append(fields, models.FieldError{
				Field:   fmt.Sprintf("options[%d].value", i),
				Message: "Option value must be at least 3 characters long",
			})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CreateProduct creates a new product
func (s *productService) CreateProduct(req *models.CreateProductRequest) (*models.Product, error) {
	if err := validateProduct(req.Name, req.Description); err != nil {
		return nil, err
	}

	handle := req.Handle
	if handle == "" {
		handle = generateSlug(req.Name)
	}
	exists, err := s.repo.HandleExists(handle, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check product handle: %w", err)
	}
	if exists {
		return nil, validationError("handle", "A product with this handle already exists")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Handle:      handle,
		Description: req.Description,
		IsActive:    isActive,
		CategoryID:  req.CategoryID,
		VendorID:    req.VendorID,
		RowVersion:  1,
	}
	if err := s.repo.Create(product); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, validationError("categoryId", "Category or vendor does not exist")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// GetProduct retrieves a product by id, archived or not
func (s *productService) GetProduct(id uuid.UUID) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// ListProducts retrieves the active product listing
func (s *productService) ListProducts(filters models.ProductFilters) ([]models.Product, int64, error) {
	return s.repo.List(filters)
}

// ListArchivedProducts retrieves soft-deleted products
func (s *productService) ListArchivedProducts() ([]models.Product, error) {
	return s.repo.ListArchived()
}

// ListProductsByVendor retrieves a vendor's products
func (s *productService) ListProductsByVendor(vendorID uuid.UUID) ([]models.Product, error) {
	return s.repo.ListByVendor(vendorID)
}

// UpdateProduct applies an edit through the concurrency resolver. On a
// version conflict the returned error carries a per-field diff against
// the now-current values and the refreshed row version, so the caller
// can re-display the client's proposed values against the new baseline.
func (s *productService) UpdateProduct(id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := validateProduct(req.Name, req.Description); err != nil {
		return nil, err
	}

	handle := req.Handle
	if handle == "" {
		handle = generateSlug(req.Name)
	}
	exists, err := s.repo.HandleExists(handle, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to check product handle: %w", err)
	}
	if exists {
		return nil, validationError("handle", "A product with this handle already exists")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"handle":      handle,
		"description": req.Description,
		"is_active":   isActive,
		"category_id": req.CategoryID,
		"vendor_id":   req.VendorID,
	}

	err = s.repo.UpdateConditional(id, req.RowVersion, updates)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, s.productConflict(id, req)
		}
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, validationError("categoryId", "Category or vendor does not exist")
		}
		return nil, err
	}

	return s.repo.GetByID(id)
}

// productConflict builds the field-level conflict report for a product
// edit. Foreign keys resolve to display names, not raw ids.
func (s *productService) productConflict(id uuid.UUID, req *models.UpdateProductRequest) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return deletedConflict()
		}
		return err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	diff := &conflictDiff{}
	diff.compare("name", current.Name, strings.TrimSpace(req.Name))
	diff.compare("handle", current.Handle, req.Handle)
	diff.compare("description", current.Description, req.Description)
	diff.compare("isActive", formatBool(current.IsActive), formatBool(isActive))
	if current.CategoryID != req.CategoryID {
		diff.compare("categoryId", s.repo.NameForCategory(current.CategoryID), s.repo.NameForCategory(req.CategoryID))
	}
	if current.VendorID != req.VendorID {
		diff.compare("vendorId", s.repo.NameForVendor(current.VendorID), s.repo.NameForVendor(req.VendorID))
	}

	return &VersionConflictError{
		Message:        "the product was modified by another user after you got the original values",
		CurrentVersion: current.RowVersion,
		Conflicts:      diff.conflicts,
	}
}

// ArchiveProduct soft-deletes a product
func (s *productService) ArchiveProduct(id uuid.UUID) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Archive(id); err != nil {
		return err
	}
	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishProductArchived(context.Background(), id.String(), product.Name)
	}
	return nil
}

// ProductOptions returns the product selection-list payload
func (s *productService) ProductOptions(selectedID *uuid.UUID) ([]models.SelectOption, error) {
	products, _, err := s.repo.List(models.ProductFilters{Page: 1, Limit: 1000})
	if err != nil {
		return nil, err
	}
	options := make([]models.SelectOption, 0, len(products))
	for _, p := range products {
		options = append(options, models.SelectOption{
			Value:    p.ID.String(),
			Label:    p.Name,
			Selected: selectedID != nil && p.ID == *selectedID,
		})
	}
	return options, nil
}

// AddVariant creates a variant with its option set
func (s *productService) AddVariant(productID uuid.UUID, req *models.CreateVariantRequest) (*models.ProductVariant, error) {
	if err := validateVariant(req.UnitPrice, req.StockQuantity, req.Options); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(productID); err != nil {
		return nil, err
	}

	policy := req.InventoryPolicy
	if policy == "" {
		policy = models.InventoryPolicyDeny
	}
	status := req.Status
	if status == "" {
		status = models.VariantStatusActive
	}

	variant := &models.ProductVariant{
		ID:              uuid.New(),
		ProductID:       productID,
		SKU:             req.SKU,
		Barcode:         req.Barcode,
		UnitPrice:       req.UnitPrice,
		CompareAtPrice:  req.CompareAtPrice,
		Weight:          req.Weight,
		StockQuantity:   req.StockQuantity,
		InventoryPolicy: policy,
		Status:          status,
		RowVersion:      1,
	}
	for _, opt := range req.Options {
		variant.Options = append(variant.Options, models.VariantOption{
			ID:    uuid.New(),
			Name:  strings.TrimSpace(opt.Name),
			Value: strings.TrimSpace(opt.Value),
		})
	}

	if err := s.repo.CreateVariant(variant); err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return variant, nil
}

// GetVariant retrieves a variant by id
func (s *productService) GetVariant(id uuid.UUID) (*models.ProductVariant, error) {
	return s.repo.GetVariantByID(id)
}

// ListVariants retrieves all variants of a product
func (s *productService) ListVariants(productID uuid.UUID) ([]models.ProductVariant, error) {
	return s.repo.ListVariantsByProduct(productID)
}

// UpdateVariant applies a variant edit through the concurrency resolver.
// The options collection is replaced in full, never diffed.
func (s *productService) UpdateVariant(id uuid.UUID, req *models.UpdateVariantRequest) (*models.ProductVariant, error) {
	if err := validateVariant(req.UnitPrice, req.StockQuantity, req.Options); err != nil {
		return nil, err
	}

	policy := req.InventoryPolicy
	if policy == "" {
		policy = models.InventoryPolicyDeny
	}
	status := req.Status
	if status == "" {
		status = models.VariantStatusActive
	}

	updates := map[string]interface{}{
		"sku":              req.SKU,
		"barcode":          req.Barcode,
		"unit_price":       req.UnitPrice,
		"compare_at_price": req.CompareAtPrice,
		"weight":           req.Weight,
		"stock_quantity":   req.StockQuantity,
		"inventory_policy": policy,
		"status":           status,
	}

	options := make([]models.VariantOption, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, models.VariantOption{
			Name:  strings.TrimSpace(opt.Name),
			Value: strings.TrimSpace(opt.Value),
		})
	}

	err := s.repo.UpdateVariantConditional(id, req.RowVersion, updates, options)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, s.variantConflict(id, req)
		}
		return nil, err
	}

	return s.repo.GetVariantByID(id)
}

// variantConflict builds the field-level conflict report for a variant edit
func (s *productService) variantConflict(id uuid.UUID, req *models.UpdateVariantRequest) error {
	current, err := s.repo.GetVariantByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrVariantNotFound) {
			return deletedConflict()
		}
		return err
	}

	diff := &conflictDiff{}
	diff.compare("sku", current.SKU, req.SKU)
	diff.compare("barcode", current.Barcode, req.Barcode)
	diff.compare("unitPrice", formatMoney(current.UnitPrice), formatMoney(req.UnitPrice))
	diff.compare("compareAtPrice", formatOptionalMoney(current.CompareAtPrice), formatOptionalMoney(req.CompareAtPrice))
	diff.compare("stockQuantity", fmt.Sprintf("%d", current.StockQuantity), fmt.Sprintf("%d", req.StockQuantity))
	diff.compare("inventoryPolicy", string(current.InventoryPolicy), string(req.InventoryPolicy))
	diff.compare("status", string(current.Status), string(req.Status))

	return &VersionConflictError{
		Message:        "the variant was modified by another user after you got the original values",
		CurrentVersion: current.RowVersion,
		Conflicts:      diff.conflicts,
	}
}

// DeleteVariant removes a variant through a conditioned delete. A
// conflicting delete yields a generic refresh/retry message; there are
// no proposed values to diff when the intent is removal.
func (s *productService) DeleteVariant(id uuid.UUID, observedVersion int64) error {
	err := s.repo.DeleteVariantConditional(id, observedVersion)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return retryConflict()
		}
		return err
	}
	return nil
}
