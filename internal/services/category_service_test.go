package services

import (
	"testing"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCategory(t *testing.T, svc CategoryService, name string, parentID *uuid.UUID) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return category
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := newCategoryService(t, setupTestDB(t))

	_, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: "ab"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Fields[0].Field)

	_, err = svc.CreateCategory(&models.CreateCategoryRequest{Name: "   ab   "})
	assert.ErrorAs(t, err, &verr, "length is checked after trimming")
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	svc := newCategoryService(t, setupTestDB(t))

	missing := uuid.New()
	_, err := svc.CreateCategory(&models.CreateCategoryRequest{Name: "Fasteners", ParentID: &missing})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "parentId", verr.Fields[0].Field)
}

func TestAncestorPath(t *testing.T) {
	svc := newCategoryService(t, setupTestDB(t))

	hardware := createCategory(t, svc, "Hardware", nil)
	fasteners := createCategory(t, svc, "Fasteners", &hardware.ID)
	bolts := createCategory(t, svc, "Bolts", &fasteners.ID)

	path, err := svc.AncestorPath(bolts.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hardware > Fasteners > Bolts", path)

	path, err = svc.AncestorPath(hardware.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hardware", path)

	path, err = svc.AncestorPath(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, path, "unknown ids yield an empty path")
}

func TestSelectableTreeIndentation(t *testing.T) {
	svc := newCategoryService(t, setupTestDB(t))

	hardware := createCategory(t, svc, "Hardware", nil)
	fasteners := createCategory(t, svc, "Fasteners", &hardware.ID)
	bolts := createCategory(t, svc, "Bolts", &fasteners.ID)

	options, err := svc.SelectableTree(&bolts.ID)
	require.NoError(t, err)
	require.Len(t, options, 3)

	assert.Equal(t, "Hardware", options[0].Label)
	assert.Equal(t, "-- Fasteners", options[1].Label)
	assert.Equal(t, "-- -- Bolts", options[2].Label)

	assert.False(t, options[0].Selected)
	assert.True(t, options[2].Selected)
}

func TestUpdateCategoryRejectsCycles(t *testing.T) {
	svc := newCategoryService(t, setupTestDB(t))

	hardware := createCategory(t, svc, "Hardware", nil)
	fasteners := createCategory(t, svc, "Fasteners", &hardware.ID)
	bolts := createCategory(t, svc, "Bolts", &fasteners.ID)

	// Reparenting the root under its own grandchild would form a cycle
	_, err := svc.UpdateCategory(hardware.ID, &models.UpdateCategoryRequest{ParentID: &bolts.ID})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "parentId", verr.Fields[0].Field)

	// Self-parenting is the degenerate cycle
	_, err = svc.UpdateCategory(hardware.ID, &models.UpdateCategoryRequest{ParentID: &hardware.ID})
	assert.ErrorAs(t, err, &verr)

	// A legitimate reparent still works
	tools := createCategory(t, svc, "Tools", nil)
	updated, err := svc.UpdateCategory(tools.ID, &models.UpdateCategoryRequest{ParentID: &hardware.ID})
	require.NoError(t, err)
	assert.Equal(t, hardware.ID, *updated.ParentID)
}

func TestDeleteCategoryWithChildren(t *testing.T) {
	svc := newCategoryService(t, setupTestDB(t))

	hardware := createCategory(t, svc, "Hardware", nil)
	createCategory(t, svc, "Fasteners", &hardware.ID)

	canDelete, err := svc.CanDelete(hardware.ID)
	require.NoError(t, err)
	assert.False(t, canDelete)

	err = svc.DeleteCategory(hardware.ID)
	assert.ErrorIs(t, err, ErrCategoryHasChildren)
}

func TestDeleteCategoryReferencedByProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newCategoryService(t, db)

	product, _ := seedCatalog(t, db)

	err := svc.DeleteCategory(product.CategoryID)
	assert.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	// Still present after the failed delete
	_, _, err = svc.GetCategory(product.CategoryID)
	assert.NoError(t, err)
}

func TestDeleteLeafCategory(t *testing.T) {
	svc := newCategoryService(t, setupTestDB(t))

	hardware := createCategory(t, svc, "Hardware", nil)
	fasteners := createCategory(t, svc, "Fasteners", &hardware.ID)

	require.NoError(t, svc.DeleteCategory(fasteners.ID))

	_, _, err := svc.GetCategory(fasteners.ID)
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)

	// Parent becomes deletable once its last child is gone
	canDelete, err := svc.CanDelete(hardware.ID)
	require.NoError(t, err)
	assert.True(t, canDelete)
}

func TestGetTree(t *testing.T) {
	svc := newCategoryService(t, setupTestDB(t))

	hardware := createCategory(t, svc, "Hardware", nil)
	fasteners := createCategory(t, svc, "Fasteners", &hardware.ID)
	createCategory(t, svc, "Bolts", &fasteners.ID)
	createCategory(t, svc, "Tools", nil)

	tree, err := svc.GetTree()
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, "Hardware", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Fasteners", tree[0].Children[0].Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Bolts", tree[0].Children[0].Children[0].Name)
	assert.Equal(t, "Tools", tree[1].Name)
}
