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

type reviewRepo struct {
	Repository
	vendor         domain.VendorProfile
	vendorErr      error
	existingReview *domain.Review
	created        *domain.Review
}

func (r *reviewRepo) GetVendor(ctx context.Context, id string) (domain.VendorProfile, error) {
	return r.vendor, r.vendorErr
}

func (r *reviewRepo) GetCustomerReview(ctx context.Context, vendorID, customerID string) (domain.Review, error) {
	if r.existingReview != nil {
		return *r.existingReview, nil
	}
	return domain.Review{}, sql.ErrNoRows
}

func (r *reviewRepo) CreateReview(ctx context.Context, vendorID, customerID string, rating int, comment *string) (domain.Review, error) {
	review := domain.Review{
		ID:         "r-1",
		VendorID:   vendorID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    comment,
	}
	r.created = &review
	return review, nil
}

func reviewCtx(userID string) context.Context {
	return context.WithValue(context.Background(), "UserID", userID)
}

func TestCreateReview_Succeeds(t *testing.T) {
	repo := &reviewRepo{vendor: domain.VendorProfile{ID: "v-1", UserID: "vendor-user"}}
	handler := NewCreateReviewHandler(repo, nil)

	res, err := handler.Handle(reviewCtx("customer-1"), &CreateReviewRequest{
		VendorID: "v-1",
		Rating:   5,
	})

	require.NoError(t, err)
	assert.Equal(t, "v-1", res.Review.VendorID)
	assert.Equal(t, "customer-1", res.Review.CustomerID)
	assert.Equal(t, 5, res.Review.Rating)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	repo := &reviewRepo{vendor: domain.VendorProfile{ID: "v-1", UserID: "vendor-user"}}
	handler := NewCreateReviewHandler(repo, nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := handler.Handle(reviewCtx("customer-1"), &CreateReviewRequest{
			VendorID: "v-1",
			Rating:   rating,
		})

		var httpErr *httperror.Error
		require.ErrorAs(t, err, &httpErr, "rating %d should be rejected", rating)
		assert.Equal(t, 400, httpErr.Status)
	}
}

func TestCreateReview_VendorNotFound(t *testing.T) {
	repo := &reviewRepo{vendorErr: sql.ErrNoRows}
	handler := NewCreateReviewHandler(repo, nil)

	_, err := handler.Handle(reviewCtx("customer-1"), &CreateReviewRequest{
		VendorID: "missing",
		Rating:   4,
	})

	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestCreateReview_OwnProfileForbidden(t *testing.T) {
	repo := &reviewRepo{vendor: domain.VendorProfile{ID: "v-1", UserID: "vendor-user"}}
	handler := NewCreateReviewHandler(repo, nil)

	_, err := handler.Handle(reviewCtx("vendor-user"), &CreateReviewRequest{
		VendorID: "v-1",
		Rating:   5,
	})

	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Status)
}

func TestCreateReview_DuplicateConflict(t *testing.T) {
	repo := &reviewRepo{
		vendor:         domain.VendorProfile{ID: "v-1", UserID: "vendor-user"},
		existingReview: &domain.Review{ID: "r-0", VendorID: "v-1", CustomerID: "customer-1"},
	}
	handler := NewCreateReviewHandler(repo, nil)

	_, err := handler.Handle(reviewCtx("customer-1"), &CreateReviewRequest{
		VendorID: "v-1",
		Rating:   3,
	})

	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
	assert.Nil(t, repo.created)
}
