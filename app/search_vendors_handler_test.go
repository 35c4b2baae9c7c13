package app

import (
	"burpp/domain"
	"burpp/pkg/geocode"
	"burpp/pkg/httperror"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchRepo stubs only the repository methods the search path touches.
type searchRepo struct {
	Repository
	vendors []domain.VendorProfile
	err     error
}

func (r *searchRepo) GetApprovedVendors(ctx context.Context, categoryID string) ([]domain.VendorProfile, error) {
	return r.vendors, r.err
}

func (r *searchRepo) GetApprovedVendorsPage(ctx context.Context, categoryID string, limit, offset int) ([]domain.VendorProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	if offset >= len(r.vendors) {
		return []domain.VendorProfile{}, nil
	}
	end := min(offset+limit, len(r.vendors))
	return r.vendors[offset:end], nil
}

func (r *searchRepo) CountApprovedVendors(ctx context.Context, categoryID string) (int, error) {
	return len(r.vendors), r.err
}

// fixedGeocoder always resolves to the same point; nil means unresolvable.
type fixedGeocoder struct {
	point *geocode.Point
}

func (g fixedGeocoder) Geocode(ctx context.Context, query string, bypassCache bool) (*geocode.Point, error) {
	return g.point, nil
}

func floatPtr(f float64) *float64 { return &f }

// austin is the search point used throughout; georgetown sits roughly 25
// miles north of it.
var (
	austin     = geocode.Point{Lat: 30.2672, Lng: -97.7431}
	georgetown = geocode.Point{Lat: 30.6333, Lng: -97.6770}
)

func inPersonVendor(id string, lat, lng, radius float64) domain.VendorProfile {
	return domain.VendorProfile{
		ID:                     id,
		AdminApproved:          true,
		OffersInPersonServices: true,
		Latitude:               floatPtr(lat),
		Longitude:              floatPtr(lng),
		ServiceRadius:          floatPtr(radius),
	}
}

func virtualVendor(id string) domain.VendorProfile {
	return domain.VendorProfile{
		ID:                    id,
		AdminApproved:         true,
		OffersVirtualServices: true,
	}
}

func search(t *testing.T, repo Repository, g geocode.Geocoder, req *SearchVendorsRequest) *SearchVendorsResponse {
	t.Helper()
	res, err := NewSearchVendorsHandler(repo, g).Handle(context.Background(), req)
	require.NoError(t, err)
	return res
}

func vendorIDs(vendors []domain.VendorProfile) []string {
	ids := make([]string, 0, len(vendors))
	for _, v := range vendors {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestSearchVendors_InPersonAtSearchPointIncluded(t *testing.T) {
	repo := &searchRepo{vendors: []domain.VendorProfile{
		inPersonVendor("at-point", austin.Lat, austin.Lng, 10),
	}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Equal(t, []string{"at-point"}, vendorIDs(res.Vendors))
	assert.Equal(t, 1, res.Count)
}

func TestSearchVendors_InPersonOutsideRadiusExcluded(t *testing.T) {
	// Georgetown is ~25 miles from the search point; a 10 mile radius
	// cannot cover it.
	repo := &searchRepo{vendors: []domain.VendorProfile{
		inPersonVendor("too-far", georgetown.Lat, georgetown.Lng, 10),
	}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Empty(t, res.Vendors)
	assert.Equal(t, 0, res.Count)
}

func TestSearchVendors_InPersonWideRadiusIncluded(t *testing.T) {
	repo := &searchRepo{vendors: []domain.VendorProfile{
		inPersonVendor("wide", georgetown.Lat, georgetown.Lng, 50),
	}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Equal(t, []string{"wide"}, vendorIDs(res.Vendors))
}

func TestSearchVendors_VirtualOnlyAlwaysIncluded(t *testing.T) {
	repo := &searchRepo{vendors: []domain.VendorProfile{
		virtualVendor("remote"),
	}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Equal(t, []string{"remote"}, vendorIDs(res.Vendors))
}

func TestSearchVendors_BothTypesWithCoordinatesHeldToRadius(t *testing.T) {
	// Offering virtual services is not a free pass once the vendor has a
	// qualifying in-person service area.
	outside := inPersonVendor("hybrid-far", georgetown.Lat, georgetown.Lng, 10)
	outside.OffersVirtualServices = true

	inside := inPersonVendor("hybrid-near", austin.Lat, austin.Lng, 10)
	inside.OffersVirtualServices = true

	repo := &searchRepo{vendors: []domain.VendorProfile{outside, inside}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Equal(t, []string{"hybrid-near"}, vendorIDs(res.Vendors))
}

func TestSearchVendors_BothTypesWithoutCoordinatesUsesVirtualBypass(t *testing.T) {
	hybrid := virtualVendor("hybrid-no-coords")
	hybrid.OffersInPersonServices = true

	repo := &searchRepo{vendors: []domain.VendorProfile{hybrid}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Equal(t, []string{"hybrid-no-coords"}, vendorIDs(res.Vendors))
}

func TestSearchVendors_NeitherServiceTypeExcluded(t *testing.T) {
	repo := &searchRepo{vendors: []domain.VendorProfile{
		{ID: "inactive", AdminApproved: true},
	}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Empty(t, res.Vendors)
}

func TestSearchVendors_InPersonMissingAreaExcluded(t *testing.T) {
	noRadius := inPersonVendor("no-radius", austin.Lat, austin.Lng, 0)
	noCoords := domain.VendorProfile{
		ID:                     "no-coords",
		AdminApproved:          true,
		OffersInPersonServices: true,
		ServiceRadius:          floatPtr(10),
	}

	repo := &searchRepo{vendors: []domain.VendorProfile{noRadius, noCoords}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Empty(t, res.Vendors)
}

func TestSearchVendors_BadCoordinatesExcludeOnlyThatVendor(t *testing.T) {
	bad := inPersonVendor("bad-lat", 200, austin.Lng, 10)
	good := inPersonVendor("good", austin.Lat, austin.Lng, 10)

	repo := &searchRepo{vendors: []domain.VendorProfile{bad, good}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Equal(t, []string{"good"}, vendorIDs(res.Vendors))
}

func TestSearchVendors_CategoryMembershipRechecked(t *testing.T) {
	plumber := inPersonVendor("plumber", austin.Lat, austin.Lng, 10)
	plumber.ServiceCategories = []string{"cat-plumbing"}

	baker := inPersonVendor("baker", austin.Lat, austin.Lng, 10)
	baker.ServiceCategories = []string{"cat-baking"}

	repo := &searchRepo{vendors: []domain.VendorProfile{plumber, baker}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{
		Category: "cat-plumbing",
		Location: "austin tx",
	})

	assert.Equal(t, []string{"plumber"}, vendorIDs(res.Vendors))
}

func TestSearchVendors_VirtualPrecedeInPersonInStableOrder(t *testing.T) {
	repo := &searchRepo{vendors: []domain.VendorProfile{
		inPersonVendor("ip-1", austin.Lat, austin.Lng, 10),
		virtualVendor("v-1"),
		inPersonVendor("ip-2", austin.Lat, austin.Lng, 10),
		virtualVendor("v-2"),
	}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{Location: "austin tx"})

	assert.Equal(t, []string{"v-1", "v-2", "ip-1", "ip-2"}, vendorIDs(res.Vendors))
}

func TestSearchVendors_Pagination(t *testing.T) {
	vendors := make([]domain.VendorProfile, 0, 25)
	for i := 0; i < 25; i++ {
		vendors = append(vendors, inPersonVendor(fmt.Sprintf("v-%02d", i), austin.Lat, austin.Lng, 10))
	}
	repo := &searchRepo{vendors: vendors}

	page1 := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{
		Location: "austin tx", Page: 1, Limit: 12,
	})
	assert.Len(t, page1.Vendors, 12)
	assert.Equal(t, 25, page1.Count)
	assert.True(t, page1.HasMore)

	page3 := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{
		Location: "austin tx", Page: 3, Limit: 12,
	})
	assert.Len(t, page3.Vendors, 1)
	assert.Equal(t, 25, page3.Count)
	assert.False(t, page3.HasMore)

	page4 := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{
		Location: "austin tx", Page: 4, Limit: 12,
	})
	assert.Empty(t, page4.Vendors)
	assert.False(t, page4.HasMore)
}

func TestSearchVendors_UnresolvableLocationFallsBackToUnrestricted(t *testing.T) {
	// The vendor is nowhere near any resolvable point, but with no location
	// constraint it still comes back through data-layer pagination.
	repo := &searchRepo{vendors: []domain.VendorProfile{
		inPersonVendor("anywhere", georgetown.Lat, georgetown.Lng, 1),
	}}

	res := search(t, repo, fixedGeocoder{nil}, &SearchVendorsRequest{Location: "xyzzy nowhere"})

	assert.Equal(t, []string{"anywhere"}, vendorIDs(res.Vendors))
	assert.Equal(t, 1, res.Count)
	assert.False(t, res.HasMore)
}

func TestSearchVendors_EmptyLocationSkipsGeocoding(t *testing.T) {
	repo := &searchRepo{vendors: []domain.VendorProfile{virtualVendor("v-1")}}

	res := search(t, repo, fixedGeocoder{&austin}, &SearchVendorsRequest{})

	assert.Equal(t, []string{"v-1"}, vendorIDs(res.Vendors))
}

func TestSearchVendors_RepositoryErrorIsServerError(t *testing.T) {
	repo := &searchRepo{err: errors.New("connection refused")}

	_, err := NewSearchVendorsHandler(repo, fixedGeocoder{&austin}).
		Handle(context.Background(), &SearchVendorsRequest{Location: "austin tx"})

	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Status)
}

func TestSearchVendors_DefaultsPageAndLimit(t *testing.T) {
	repo := &searchRepo{vendors: []domain.VendorProfile{virtualVendor("v-1")}}

	res := search(t, repo, fixedGeocoder{nil}, &SearchVendorsRequest{Page: -3, Limit: 0})

	assert.Equal(t, 1, res.Page)
	assert.Equal(t, defaultSearchLimit, res.Limit)
}
