package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"

	"github.com/go-playground/validator/v10"
)

type CreateCategoryHandler struct {
	repository Repository
}

func NewCreateCategoryHandler(repository Repository) *CreateCategoryHandler {
	return &CreateCategoryHandler{
		repository: repository,
	}
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required" db:"name"`
	Description *string `json:"description" db:"description"`
	ParentID    *string `json:"parentId" validate:"omitempty,uuid" db:"parent_id"`
	Active      bool    `json:"active" db:"active"`
	Featured    bool    `json:"featured" db:"featured"`
}

type CreateCategoryResponse struct {
	Category domain.Category `json:"category"`
}

func (h CreateCategoryHandler) Handle(ctx context.Context, req *CreateCategoryRequest) (*CreateCategoryResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"category.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"category.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	category, err := h.repository.CreateCategory(ctx, req)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.create.create_failed",
			"An error occurred while creating the category",
			nil,
		)
	}

	return &CreateCategoryResponse{
		Category: category,
	}, nil
}
