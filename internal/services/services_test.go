package services_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/apiclient"
	"storeadmin/internal/domain"
	"storeadmin/internal/repos"
	"storeadmin/internal/sandbox"
	"storeadmin/internal/services"
)

type env struct {
	client *apiclient.Client
	faults *sandbox.Faults
	ctx    context.Context
}

func setup(t *testing.T) env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	faults := sandbox.NewFaults(nil)
	srv, err := sandbox.NewSeeded(faults)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)

	c := apiclient.New(ts.URL)
	tok, err := c.Login(context.Background(), domain.Credentials{UserName: "admin", Password: "admin123"})
	require.NoError(t, err)
	return env{client: c, faults: faults, ctx: apiclient.WithToken(context.Background(), tok)}
}

func TestBrandStoreMatchesRemoteAfterWrites(t *testing.T) {
	e := setup(t)
	svc := services.NewBrandService(e.client)

	_, err := svc.List(e.ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Create(e.ctx, domain.BrandInput{Name: "Nokia"}))
	fresh, err := e.client.ListBrands(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, svc.Sync.Snapshot())

	id := fresh[len(fresh)-1].ID
	require.NoError(t, svc.Update(e.ctx, id, domain.BrandInput{Name: "HMD"}))
	fresh, _ = e.client.ListBrands(e.ctx)
	assert.Equal(t, fresh, svc.Sync.Snapshot())

	require.NoError(t, svc.Delete(e.ctx, id))
	for _, b := range svc.Sync.Snapshot() {
		assert.NotEqual(t, id, b.ID)
	}
	assert.Equal(t, services.StateIdle, svc.Sync.Status().State)
}

func TestFailedCreateLeavesStoreUnchanged(t *testing.T) {
	e := setup(t)
	svc := services.NewColorService(e.client, 0)

	before, err := svc.List(e.ctx, "", 1)
	require.NoError(t, err)
	version := svc.Sync.Status().Version

	e.faults.Set(sandbox.ModeFailWrites)
	err = svc.Create(e.ctx, domain.ColorInput{Name: "Teal"})
	require.Error(t, err)
	assert.True(t, apiclient.IsKind(err, apiclient.KindServer))

	st := svc.Sync.Status()
	assert.Equal(t, services.StateFailed, st.State)
	assert.Equal(t, err, st.LastError)
	assert.Equal(t, version, st.Version)
	assert.Equal(t, before, svc.Sync.Snapshot())
}

func TestBlankColorIsRejectedLocally(t *testing.T) {
	api := &countingColors{}
	svc := services.NewColorService(api, 0)
	err := svc.Create(context.Background(), domain.ColorInput{Name: "  "})
	assert.ErrorIs(t, err, services.ErrBlankColor)
	err = svc.Update(context.Background(), 1, domain.ColorInput{})
	assert.ErrorIs(t, err, services.ErrBlankColor)
	assert.Zero(t, api.calls)
}

func TestColorListUsesDefaultPaging(t *testing.T) {
	api := &countingColors{}
	svc := services.NewColorService(api, 0)
	_, err := svc.List(context.Background(), " bla ", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.ColorQuery{ColorName: "bla", PageNumber: 1, PageSize: 20}, api.lastQuery)
}

func TestFailedReloadKeepsPreviousContents(t *testing.T) {
	api := &flakyBrands{items: []domain.Brand{{ID: 1, Name: "A"}}}
	svc := services.NewBrandService(api)
	_, err := svc.List(context.Background())
	require.NoError(t, err)

	api.failList = true
	got, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, []domain.Brand{{ID: 1, Name: "A"}}, got)
	assert.Equal(t, services.StateFailed, svc.Sync.Status().State)

	api.failList = false
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.NoError(t, svc.Sync.Status().LastError)
}

func TestSubCategoryWriteReloadsOwningCategory(t *testing.T) {
	e := setup(t)
	svc := services.NewSubCategoryService(e.client)

	_, err := svc.List(e.ctx)
	require.NoError(t, err)
	phones, err := svc.ListByCategory(e.ctx, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Create(e.ctx, domain.SubCategoryInput{Name: "Tablets", CategoryID: 1}))
	got := svc.ForCategory(1).Snapshot()
	assert.Len(t, got, len(phones)+1)

	fresh, err := e.client.ListSubCategories(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, svc.All.Snapshot())

	added := got[len(got)-1]
	require.NoError(t, svc.Update(e.ctx, 1, added.ID, "Tabs"))
	assert.Equal(t, "Tabs", svc.ForCategory(1).Snapshot()[len(got)-1].Name)

	require.NoError(t, svc.Delete(e.ctx, 1, added.ID))
	assert.Len(t, svc.ForCategory(1).Snapshot(), len(phones))
}

func TestProductWritesKeepQuery(t *testing.T) {
	e := setup(t)
	svc := services.NewProductService(e.client, 0)

	page, err := svc.List(e.ctx, domain.ProductQuery{BrandID: 1})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, 50, svc.Query().PageSize)
	assert.NotEmpty(t, page.Brands)

	in := domain.ProductInput{
		Name: "iPad", Code: "IPAD-1", Price: decimal.RequireFromString("499"),
		Quantity: 2, BrandID: 1, ColorID: 1, SubCategoryID: 1,
	}
	require.NoError(t, svc.Create(e.ctx, in))
	assert.Len(t, svc.Page().Products, 2)

	fresh, err := e.client.ListProducts(e.ctx, svc.Query())
	require.NoError(t, err)
	assert.Equal(t, fresh.Products, svc.Sync.Snapshot())

	id := svc.Page().Products[1].ID
	require.NoError(t, svc.Delete(e.ctx, id))
	assert.Len(t, svc.Page().Products, 1)
}

func TestAuthLifecycle(t *testing.T) {
	e := setup(t)
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	auth := services.NewAuthService(e.client, repos.NewSQLSessionRepo(db))
	ctx := context.Background()

	assert.False(t, auth.IsAuthenticated(ctx, "sid"))
	assert.ErrorIs(t, auth.Login(ctx, "sid", "", ""), services.ErrMissingCreds)
	assert.ErrorIs(t, auth.Login(ctx, "sid", "admin", "nope"), services.ErrBadCreds)
	assert.False(t, auth.IsAuthenticated(ctx, "sid"))

	require.NoError(t, auth.Login(ctx, "sid", "admin", "admin123"))
	assert.True(t, auth.IsAuthenticated(ctx, "sid"))
	assert.NotEmpty(t, auth.Token(ctx, "sid"))
	assert.False(t, auth.IsAuthenticated(ctx, "other"))

	require.NoError(t, auth.Logout(ctx, "sid"))
	assert.False(t, auth.IsAuthenticated(ctx, "sid"))
	assert.Empty(t, auth.Token(ctx, "sid"))
}

type countingColors struct {
	calls     int
	lastQuery domain.ColorQuery
}

func (c *countingColors) ListColors(_ context.Context, q domain.ColorQuery) ([]domain.Color, error) {
	c.lastQuery = q
	return []domain.Color{}, nil
}
func (c *countingColors) CreateColor(context.Context, domain.ColorInput) error { c.calls++; return nil }
func (c *countingColors) UpdateColor(context.Context, int, domain.ColorInput) error {
	c.calls++
	return nil
}
func (c *countingColors) DeleteColor(context.Context, int) error { c.calls++; return nil }

type flakyBrands struct {
	items    []domain.Brand
	failList bool
}

func (f *flakyBrands) ListBrands(context.Context) ([]domain.Brand, error) {
	if f.failList {
		return nil, errors.New("connection refused")
	}
	return f.items, nil
}
func (f *flakyBrands) CreateBrand(context.Context, domain.BrandInput) error      { return nil }
func (f *flakyBrands) UpdateBrand(context.Context, int, domain.BrandInput) error { return nil }
func (f *flakyBrands) DeleteBrand(context.Context, int) error                    { return nil }
