package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"backoffice-service/internal/events"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
)

// VendorService handles supplier records and their archive lifecycle
type VendorService interface {
	CreateVendor(req *models.CreateVendorRequest) (*models.Vendor, error)
	GetVendor(id uuid.UUID) (*models.Vendor, error)
	ListVendors() ([]models.Vendor, error)
	ListArchivedVendors() ([]models.Vendor, error)
	UpdateVendor(id uuid.UUID, req *models.UpdateVendorRequest) (*models.Vendor, error)
	ArchiveVendor(id uuid.UUID) error
	VendorOptions(selectedID *uuid.UUID) ([]models.SelectOption, error)
}

type vendorService struct {
	repo            *repository.VendorRepository
	eventsPublisher *events.Publisher
}

// NewVendorService creates a new vendor service
func NewVendorService(repo *repository.VendorRepository, eventsPublisher *events.Publisher) VendorService {
	return &vendorService{repo: repo, eventsPublisher: eventsPublisher}
}

var (
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// validateVendor enforces the vendor field rules, including the
// cross-field rule that tax exemption and an EIN come as a pair: an
// exempt vendor must carry an EIN, and an EIN is only meaningful on an
// exempt vendor.
func validateVendor(name, contactName, phone, email, ein string, isTaxExempt bool) *ValidationError {
	var fields []models.FieldError
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		fields = append(fields, models.FieldError{Field: "name", Message: "Vendor name must be at least 3 characters long"})
	}
	if len(name) > 200 {
		fields = append(fields, models.FieldError{Field: "name", Message: "Vendor name cannot be more than 200 characters long"})
	}
	if len(contactName) > 200 {
		fields = append(fields, models.FieldError{Field: "contactName", Message: "Contact name cannot be more than 200 characters long"})
	}
	if phone != "" && !phoneRegex.MatchString(phone) {
		fields = append(fields, models.FieldError{Field: "phone", Message: "Phone number must be exactly 10 digits"})
	}
	if email != "" && !emailRegex.MatchString(email) {
		fields = append(fields, models.FieldError{Field: "email", Message: "Email address is not valid"})
	}
	if isTaxExempt && strings.TrimSpace(ein) == "" {
		fields = append(fields, models.FieldError{Field: "ein", Message: "EIN is required when the vendor is tax exempt"})
	}
	if !isTaxExempt && strings.TrimSpace(ein) != "" {
		fields = append(fields, models.FieldError{Field: "isTaxExempt", Message: "A vendor with an EIN must be marked tax exempt"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CreateVendor creates a new vendor
func (s *vendorService) CreateVendor(req *models.CreateVendorRequest) (*models.Vendor, error) {
	if err := validateVendor(req.Name, req.ContactName, req.Phone, req.Email, req.EIN, req.IsTaxExempt); err != nil {
		return nil, err
	}

	vendor := &models.Vendor{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		EIN:         req.EIN,
		IsTaxExempt: req.IsTaxExempt,
		RowVersion:  1,
	}
	if err := s.repo.Create(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// GetVendor retrieves a vendor by id
func (s *vendorService) GetVendor(id uuid.UUID) (*models.Vendor, error) {
	return s.repo.GetByID(id)
}

// ListVendors retrieves active vendors
func (s *vendorService) ListVendors() ([]models.Vendor, error) {
	return s.repo.List(false)
}

// ListArchivedVendors retrieves archived vendors
func (s *vendorService) ListArchivedVendors() ([]models.Vendor, error) {
	return s.repo.List(true)
}

// UpdateVendor applies an edit through the concurrency resolver
func (s *vendorService) UpdateVendor(id uuid.UUID, req *models.UpdateVendorRequest) (*models.Vendor, error) {
	if err := validateVendor(req.Name, req.ContactName, req.Phone, req.Email, req.EIN, req.IsTaxExempt); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":          strings.TrimSpace(req.Name),
		"contact_name":  req.ContactName,
		"phone":         req.Phone,
		"email":         req.Email,
		"ein":           req.EIN,
		"is_tax_exempt": req.IsTaxExempt,
	}

	err := s.repo.UpdateConditional(id, req.RowVersion, updates)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, s.vendorConflict(id, req)
		}
		return nil, err
	}

	return s.repo.GetByID(id)
}

// vendorConflict builds the field-level conflict report for a vendor edit
func (s *vendorService) vendorConflict(id uuid.UUID, req *models.UpdateVendorRequest) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return deletedConflict()
		}
		return err
	}

	diff := &conflictDiff{}
	diff.compare("name", current.Name, strings.TrimSpace(req.Name))
	diff.compare("contactName", current.ContactName, req.ContactName)
	diff.compare("phone", current.Phone, req.Phone)
	diff.compare("email", current.Email, req.Email)
	diff.compare("ein", current.EIN, req.EIN)
	diff.compare("isTaxExempt", formatBool(current.IsTaxExempt), formatBool(req.IsTaxExempt))

	return &VersionConflictError{
		Message:        "the vendor was modified by another user after you got the original values",
		CurrentVersion: current.RowVersion,
		Conflicts:      diff.conflicts,
	}
}

// ArchiveVendor archives a vendor; its products stay in the catalog
func (s *vendorService) ArchiveVendor(id uuid.UUID) error {
	vendor, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Archive(id); err != nil {
		return err
	}
	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishVendorArchived(context.Background(), id.String(), vendor.Name)
	}
	return nil
}

// VendorOptions returns the vendor selection-list payload
func (s *vendorService) VendorOptions(selectedID *uuid.UUID) ([]models.SelectOption, error) {
	vendors, err := s.repo.List(false)
	if err != nil {
		return nil, err
	}
	options := make([]models.SelectOption, 0, len(vendors))
	for _, v := range vendors {
		options = append(options, models.SelectOption{
			Value:    v.ID.String(),
			Label:    v.Name,
			Selected: selectedID != nil && v.ID == *selectedID,
		})
	}
	return options, nil
}
