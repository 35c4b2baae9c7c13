package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

type UpdateCategoryHandler struct {
	repository Repository
}

func NewUpdateCategoryHandler(repository Repository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{
		repository: repository,
	}
}

// UpdateCategoryRequest uses named optional fields; only non-nil fields are
// applied to the stored record.
type UpdateCategoryRequest struct {
	CategoryID string `params:"id" validate:"required"`

	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId" validate:"omitempty,uuid"`
	Active      *bool   `json:"active"`
	Featured    *bool   `json:"featured"`
}

type UpdateCategoryResponse struct {
	Category domain.Category `json:"category"`
}

func (h UpdateCategoryHandler) Handle(ctx context.Context, req *UpdateCategoryRequest) (*UpdateCategoryResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"category.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"category.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	category, err := h.repository.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"category.update.not_found",
				"Category not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"category.update.failed",
			"Failed to retrieve category",
			nil,
		)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.ParentID != nil {
		category.ParentID = req.ParentID
	}
	if req.Active != nil {
		category.Active = *req.Active
	}
	if req.Featured != nil {
		category.Featured = *req.Featured
	}
	category.UpdatedAt = time.Now()

	updated, err := h.repository.UpdateCategory(ctx, category)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.update.update_failed",
			"An error occurred while updating the category",
			nil,
		)
	}

	return &UpdateCategoryResponse{
		Category: updated,
	}, nil
}
