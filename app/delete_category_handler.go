package app

import (
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

type DeleteCategoryHandler struct {
	repository Repository
}

func NewDeleteCategoryHandler(repository Repository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{
		repository: repository,
	}
}

type DeleteCategoryRequest struct {
	CategoryID string `params:"id"`
}

type DeleteCategoryResponse struct {
}

func (h DeleteCategoryHandler) Handle(ctx context.Context, req *DeleteCategoryRequest) (*DeleteCategoryResponse, error) {
	if _, err := h.repository.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"category.destroy.not_found",
				"Category not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"category.destroy.failed",
			"Failed to retrieve category",
			nil,
		)
	}

	if err := h.repository.DeleteCategory(ctx, req.CategoryID); err != nil {
		return nil, httperror.InternalServerError(
			"category.destroy.delete_failed",
			"An error occurred while deleting the category",
			nil,
		)
	}

	return &DeleteCategoryResponse{}, nil
}
