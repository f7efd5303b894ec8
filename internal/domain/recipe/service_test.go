package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
)

type fakeRepo struct {
	recipes map[id.ID]*Recipe

	saveLinesCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{recipes: make(map[id.ID]*Recipe)}
}

func (f *fakeRepo) Create(_ context.Context, r *Recipe) error {
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, recipeID id.ID) (*Recipe, error) {
	return f.recipes[recipeID], nil
}

func (f *fakeRepo) GetActiveByProduct(_ context.Context, productID id.ID) (*Recipe, error) {
	var oldest *Recipe
	for _, r := range f.recipes {
		if r.ProductID != productID || r.DeletionMark {
			continue
		}
		if oldest == nil || r.CreatedAt.Before(oldest.CreatedAt) {
			oldest = r
		}
	}
	return oldest, nil
}

func (f *fakeRepo) ListByProduct(_ context.Context, productID id.ID) ([]*Recipe, error) {
	var out []*Recipe
	for _, r := range f.recipes {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) SaveLines(_ context.Context, r *Recipe) error {
	f.saveLinesCalls++
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, recipeID id.ID) error {
	delete(f.recipes, recipeID)
	return nil
}

type fakeProducts struct {
	known map[id.ID]bool
}

func (f *fakeProducts) Exists(_ context.Context, productID id.ID) error {
	if !f.known[productID] {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(productID id.ID) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	products := &fakeProducts{known: map[id.ID]bool{productID: true}}
	return NewService(repo, products, passthroughTxManager{}), repo
}

func TestCreate_StoresRecipeWithLines(t *testing.T) {
	productID := id.New()
	svc, repo := newTestService(productID)

	r := NewRecipe(productID)
	r.AddLine(id.New(), types.MustQuantity("100"))
	r.AddSupplyLine(id.New(), types.MustQuantity("1"))

	require.NoError(t, svc.Create(context.Background(), r))

	stored := repo.recipes[r.ID]
	require.NotNil(t, stored)
	assert.Len(t, stored.Lines, 1)
	assert.Len(t, stored.SupplyLines, 1)
	assert.Equal(t, 1, stored.Lines[0].LineNo)
}

func TestCreate_RejectsUnknownProduct(t *testing.T) {
	svc, _ := newTestService(id.New())

	r := NewRecipe(id.New())
	r.AddLine(id.New(), types.MustQuantity("100"))

	err := svc.Create(context.Background(), r)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_RejectsEmptyLines(t *testing.T) {
	productID := id.New()
	svc, _ := newTestService(productID)

	err := svc.Create(context.Background(), NewRecipe(productID))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreate_RejectsNonPositiveRate(t *testing.T) {
	productID := id.New()
	svc, _ := newTestService(productID)

	r := NewRecipe(productID)
	r.AddLine(id.New(), types.MustQuantity("0"))

	err := svc.Create(context.Background(), r)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestGetActiveByProduct_OldestWins(t *testing.T) {
	productID := id.New()
	svc, repo := newTestService(productID)

	first := NewRecipe(productID)
	first.AddLine(id.New(), types.MustQuantity("100"))
	require.NoError(t, svc.Create(context.Background(), first))

	second := NewRecipe(productID)
	second.CreatedAt = first.CreatedAt.Add(1)
	second.AddLine(id.New(), types.MustQuantity("200"))
	repo.recipes[second.ID] = second

	active, err := svc.GetActiveByProduct(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)
}

func TestGetActiveByProduct_NilWhenNone(t *testing.T) {
	productID := id.New()
	svc, _ := newTestService(productID)

	active, err := svc.GetActiveByProduct(context.Background(), productID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestUpdateLines_ReplacesLineSet(t *testing.T) {
	productID := id.New()
	svc, repo := newTestService(productID)

	r := NewRecipe(productID)
	r.AddLine(id.New(), types.MustQuantity("100"))
	require.NoError(t, svc.Create(context.Background(), r))

	r.Lines = nil
	r.SupplyLines = nil
	r.AddLine(id.New(), types.MustQuantity("150"))
	r.AddLine(id.New(), types.MustQuantity("25"))

	require.NoError(t, svc.UpdateLines(context.Background(), r))
	assert.Equal(t, 1, repo.saveLinesCalls)
	assert.Len(t, repo.recipes[r.ID].Lines, 2)
}

func TestDelete_UnknownRecipeFails(t *testing.T) {
	svc, _ := newTestService(id.New())

	err := svc.Delete(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecipe_ToleratesUnlinkedSupplyLines(t *testing.T) {
	r := NewRecipe(id.New())
	r.AddLine(id.New(), types.MustQuantity("100"))
	r.SupplyLines = append(r.SupplyLines, SupplyLine{
		LineID:  id.New(),
		LineNo:  1,
		PerUnit: types.MustQuantity("2"),
	})

	require.NoError(t, r.Validate(context.Background()))
	assert.True(t, r.Usable())
}
