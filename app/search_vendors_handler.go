package app

import (
	"burpp/domain"
	"burpp/pkg/geo"
	"burpp/pkg/geocode"
	"burpp/pkg/httperror"
	"context"

	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 12
	maxSearchLimit     = 100
)

type SearchVendorsHandler struct {
	repository Repository
	geocoder   geocode.Geocoder
}

func NewSearchVendorsHandler(repository Repository, geocoder geocode.Geocoder) *SearchVendorsHandler {
	return &SearchVendorsHandler{
		repository: repository,
		geocoder:   geocoder,
	}
}

type SearchVendorsRequest struct {
	Category    string `query:"category"`
	Location    string `query:"q"`
	Page        int    `query:"page"`
	Limit       int    `query:"limit"`
	BypassCache bool   `query:"bypass_cache"`
}

type SearchVendorsResponse struct {
	Vendors []domain.VendorProfile `json:"vendors"`
	Count   int                    `json:"count"`
	Page    int                    `json:"page"`
	Limit   int                    `json:"limit"`
	HasMore bool                   `json:"hasMore"`
}

func (h *SearchVendorsHandler) Handle(ctx context.Context, req *SearchVendorsRequest) (*SearchVendorsResponse, error) {
	page := max(req.Page, 1)
	limit := req.Limit
	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	offset := (page - 1) * limit

	// Location resolution is best-effort. An unresolvable or failing geocode
	// drops the location constraint instead of failing the search.
	point := h.resolveLocation(ctx, req.Location, req.BypassCache)

	if point == nil {
		return h.searchWithoutLocation(ctx, req.Category, page, limit, offset)
	}

	vendors, err := h.repository.GetApprovedVendors(ctx, req.Category)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.search.failed",
			"Failed to retrieve vendors",
			nil,
		)
	}

	matched := filterByServiceArea(filterByCategory(vendors, req.Category), *point)

	pageSlice := paginate(matched, offset, limit)

	return &SearchVendorsResponse{
		Vendors: pageSlice,
		Count:   len(matched),
		Page:    page,
		Limit:   limit,
		HasMore: offset+len(pageSlice) < len(matched),
	}, nil
}

func (h *SearchVendorsHandler) resolveLocation(ctx context.Context, location string, bypassCache bool) *geocode.Point {
	if location == "" {
		return nil
	}

	point, err := h.geocoder.Geocode(ctx, location, bypassCache)
	if err != nil {
		zap.L().Warn("Geocoding failed, searching without location constraint",
			zap.String("location", location),
			zap.Error(err),
		)
		return nil
	}
	return point
}

func (h *SearchVendorsHandler) searchWithoutLocation(ctx context.Context, categoryID string, page, limit, offset int) (*SearchVendorsResponse, error) {
	vendors, err := h.repository.GetApprovedVendorsPage(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.search.failed",
			"Failed to retrieve vendors",
			nil,
		)
	}

	total, err := h.repository.CountApprovedVendors(ctx, categoryID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.search.count_failed",
			"Failed to count vendors",
			nil,
		)
	}

	vendors = filterByCategory(vendors, categoryID)

	return &SearchVendorsResponse{
		Vendors: vendors,
		Count:   total,
		Page:    page,
		Limit:   limit,
		HasMore: offset+len(vendors) < total,
	}, nil
}

// filterByCategory re-applies the category membership check on rows the data
// layer already filtered, guarding against partial-match looseness in the
// underlying array operator.
func filterByCategory(vendors []domain.VendorProfile, categoryID string) []domain.VendorProfile {
	if categoryID == "" {
		return vendors
	}

	matched := make([]domain.VendorProfile, 0, len(vendors))
	for _, v := range vendors {
		if v.HasCategory(categoryID) {
			matched = append(matched, v)
		}
	}
	return matched
}

// filterByServiceArea selects vendors serving the search point. Virtual-only
// vendors are included unconditionally. In-person vendors with a qualifying
// service area are included when the point falls within their radius; a
// vendor offering both service types is held to the radius rule whenever it
// has qualifying coordinates and falls back to the virtual bypass only when
// it lacks them. Vendors offering neither type, and in-person vendors
// missing coordinates or radius, are excluded. Input order is preserved
// within each group, virtual first.
func filterByServiceArea(vendors []domain.VendorProfile, point geocode.Point) []domain.VendorProfile {
	virtual := make([]domain.VendorProfile, 0, len(vendors))
	inPerson := make([]domain.VendorProfile, 0, len(vendors))

	for _, v := range vendors {
		if v.OffersInPersonServices && v.HasServiceArea() {
			d := geo.Distance(point.Lat, point.Lng, *v.Latitude, *v.Longitude)
			if d <= *v.ServiceRadius {
				inPerson = append(inPerson, v)
			}
			continue
		}

		if v.OffersVirtualServices {
			virtual = append(virtual, v)
		}
	}

	return append(virtual, inPerson...)
}

func paginate(vendors []domain.VendorProfile, offset, limit int) []domain.VendorProfile {
	if offset >= len(vendors) {
		return []domain.VendorProfile{}
	}

	end := min(offset+limit, len(vendors))
	return vendors[offset:end]
}
