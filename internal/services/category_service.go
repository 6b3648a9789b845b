package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice-service/internal/events"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
)

// CategoryService maintains and queries the self-referencing category
// hierarchy: ancestor paths for breadcrumbs, an indented flat ordering
// for selection widgets, and the guarded delete.
type CategoryService interface {
	CreateCategory(req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategory(id uuid.UUID) (*models.Category, string, error)
	ListCategories(page, limit int) ([]models.Category, int64, error)
	GetTree() ([]models.Category, error)
	UpdateCategory(id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(id uuid.UUID) error

	AncestorPath(id uuid.UUID) (string, error)
	SelectableTree(selectedID *uuid.UUID) ([]models.SelectOption, error)
	CanDelete(id uuid.UUID) (bool, error)
}

type categoryService struct {
	repo            *repository.CategoryRepository
	eventsPublisher *events.Publisher
}

// NewCategoryService creates a new category service
func NewCategoryService(repo *repository.CategoryRepository, eventsPublisher *events.Publisher) CategoryService {
	return &categoryService{repo: repo, eventsPublisher: eventsPublisher}
}

func validateCategoryName(name string) *ValidationError {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return validationError("name", "Category name must be at least 3 characters long")
	}
	if len(name) > 100 {
		return validationError("name", "Category name cannot be more than 100 characters long")
	}
	return nil
}

// validateParent rejects parent assignments that would make a category
// its own ancestor. The walk follows the new parent's chain root-ward;
// finding the category being (re)parented means a cycle.
func (s *categoryService) validateParent(categoryID *uuid.UUID, parentID uuid.UUID) error {
	current := parentID
	for depth := 0; depth < models.MaxCategoryDepth; depth++ {
		if categoryID != nil && current == *categoryID {
			return validationError("parentId", "A category cannot be its own ancestor")
		}
		parent, err := s.repo.GetByID(current)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				if depth == 0 {
					return validationError("parentId", "Parent category not found")
				}
				return nil
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return validationError("parentId", fmt.Sprintf("Category nesting cannot exceed %d levels", models.MaxCategoryDepth))
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(req *models.CreateCategoryRequest) (*models.Category, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if err := s.validateParent(nil, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		ParentID: req.ParentID,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishCategoryCreated(context.Background(), category.ID.String(), category.Name)
	}
	return category, nil
}

// GetCategory retrieves a category together with its full ancestor path
func (s *categoryService) GetCategory(id uuid.UUID) (*models.Category, string, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	path, err := s.AncestorPath(id)
	if err != nil {
		return nil, "", err
	}
	return category, path, nil
}

// ListCategories retrieves categories with pagination
func (s *categoryService) ListCategories(page, limit int) ([]models.Category, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetAll(limit, offset)
}

// GetTree returns the nested category hierarchy starting at the roots
func (s *categoryService) GetTree() ([]models.Category, error) {
	roots, err := s.repo.GetRoots()
	if err != nil {
		return nil, err
	}
	for i := range roots {
		if err := s.loadChildren(&roots[i], 0); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

func (s *categoryService) loadChildren(category *models.Category, depth int) error {
	if depth >= models.MaxCategoryDepth {
		return nil
	}
	children, err := s.repo.GetChildren(category.ID)
	if err != nil {
		return err
	}
	for i := range children {
		if err := s.loadChildren(&children[i], depth+1); err != nil {
			return err
		}
	}
	category.Children = children
	return nil
}

// UpdateCategory renames and/or reparents a category
func (s *categoryService) UpdateCategory(id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validateCategoryName(*req.Name); err != nil {
			return nil, err
		}
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.ParentID != nil {
		if err := s.validateParent(&id, *req.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = req.ParentID
	}

	if err := s.repo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishCategoryUpdated(context.Background(), category.ID.String(), category.Name)
	}
	return category, nil
}

// CanDelete reports whether a category is a leaf. Product references are
// not pre-checked here; the storage layer's foreign key constraint is
// the authority and surfaces as a referential-integrity error on delete.
func (s *categoryService) CanDelete(id uuid.UUID) (bool, error) {
	count, err := s.repo.CountChildren(id)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// DeleteCategory removes a childless category. Deleting a category that
// products still reference fails with ErrForeignKeyViolation.
func (s *categoryService) DeleteCategory(id uuid.UUID) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	canDelete, err := s.CanDelete(id)
	if err != nil {
		return err
	}
	if !canDelete {
		return ErrCategoryHasChildren
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishCategoryDeleted(context.Background(), id.String(), category.Name)
	}
	return nil
}

// AncestorPath walks parent links root-ward and returns the names joined
// oldest-to-newest by " > ". Unknown ids yield an empty string. The walk
// is bounded so a corrupt parent chain cannot loop forever.
func (s *categoryService) AncestorPath(id uuid.UUID) (string, error) {
	names := make([]string, 0, 8)
	current := id
	for depth := 0; depth < models.MaxCategoryDepth; depth++ {
		category, err := s.repo.GetByID(current)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				break
			}
			return "", err
		}
		names = append(names, category.Name)
		if category.ParentID == nil {
			break
		}
		current = *category.ParentID
	}

	// Reverse: collected leaf-to-root, rendered root-to-leaf
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " > "), nil
}

// SelectableTree emits the hierarchy as a pre-order flat list for
// selection widgets, each label prefixed "-- " per level of depth.
func (s *categoryService) SelectableTree(selectedID *uuid.UUID) ([]models.SelectOption, error) {
	roots, err := s.repo.GetRoots()
	if err != nil {
		return nil, err
	}

	options := make([]models.SelectOption, 0, len(roots))
	for _, root := range roots {
		options, err = s.appendSubtree(options, root, selectedID, 0)
		if err != nil {
			return nil, err
		}
	}
	return options, nil
}

func (s *categoryService) appendSubtree(options []models.SelectOption, category models.Category, selectedID *uuid.UUID, depth int) ([]models.SelectOption, error) {
	if depth >= models.MaxCategoryDepth {
		return options, nil
	}

	options = append(options, models.SelectOption{
		Value:    category.ID.String(),
		Label:    strings.Repeat("-- ", depth) + category.Name,
		Selected: selectedID != nil && category.ID == *selectedID,
	})

	children, err := s.repo.GetChildren(category.ID)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		options, err = s.appendSubtree(options, child, selectedID, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return options, nil
}
