package app

import (
	"burpp/pkg/httperror"
	"context"
)

type RemoveFavoriteHandler struct {
	repository Repository
}

func NewRemoveFavoriteHandler(repository Repository) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{
		repository: repository,
	}
}

type RemoveFavoriteRequest struct {
	VendorID string `params:"id"`
}

type RemoveFavoriteResponse struct {
}

func (h RemoveFavoriteHandler) Handle(ctx context.Context, req *RemoveFavoriteRequest) (*RemoveFavoriteResponse, error) {
	userID := ctx.Value("UserID").(string)

	if err := h.repository.DeleteFavorite(ctx, userID, req.VendorID); err != nil {
		return nil, httperror.InternalServerError(
			"favorite.destroy.delete_failed",
			"An error occurred while removing the favorite",
			nil,
		)
	}

	return &RemoveFavoriteResponse{}, nil
}
