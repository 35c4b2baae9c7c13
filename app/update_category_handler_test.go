package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryRepo struct {
	Repository
	category domain.Category
	err      error
	updated  *domain.Category
}

func (r *categoryRepo) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	return r.category, r.err
}

func (r *categoryRepo) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	r.updated = &category
	return category, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateCategory_AppliesOnlyProvidedFields(t *testing.T) {
	repo := &categoryRepo{category: domain.Category{
		ID:       "c-1",
		Name:     "Plumbing",
		Active:   true,
		Featured: false,
	}}
	handler := NewUpdateCategoryHandler(repo)

	res, err := handler.Handle(context.Background(), &UpdateCategoryRequest{
		CategoryID: "c-1",
		Featured:   boolPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, "Plumbing", res.Category.Name)
	assert.True(t, res.Category.Active)
	assert.True(t, res.Category.Featured)
	require.NotNil(t, repo.updated)
}

func TestUpdateCategory_EmptyNameRejected(t *testing.T) {
	repo := &categoryRepo{category: domain.Category{ID: "c-1", Name: "Plumbing"}}
	handler := NewUpdateCategoryHandler(repo)

	_, err := handler.Handle(context.Background(), &UpdateCategoryRequest{
		CategoryID: "c-1",
		Name:       strPtr(""),
	})

	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Nil(t, repo.updated)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	repo := &categoryRepo{err: sql.ErrNoRows}
	handler := NewUpdateCategoryHandler(repo)

	_, err := handler.Handle(context.Background(), &UpdateCategoryRequest{
		CategoryID: "missing",
		Name:       strPtr("Baking"),
	})

	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}
