package production

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
	"espetaria/internal/core/id"
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/employee"
	"espetaria/internal/domain/catalogs/product"
	"espetaria/internal/domain/catalogs/supply"
	"espetaria/internal/domain/recipe"
	"espetaria/pkg/numerator"
)

// fakeRepo keeps stock levels and ledger rows in memory. failOn triggers a
// storage fault at a chosen write step for the atomicity tests.
type fakeRepo struct {
	productStocks     map[id.ID]types.Quantity
	rawMaterialStocks map[id.ID]types.Quantity
	supplyStocks      map[id.ID]types.Quantity

	records      []*ProductionRecord
	productMoves []entity.StockMovement
	rmMoves      []entity.RawMaterialMovement
	supplyMoves  []entity.SupplyMovement

	failOn string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		productStocks:     map[id.ID]types.Quantity{},
		rawMaterialStocks: map[id.ID]types.Quantity{},
		supplyStocks:      map[id.ID]types.Quantity{},
	}
}

func (f *fakeRepo) snapshot() *fakeRepo {
	cp := newFakeRepo()
	for k, v := range f.productStocks {
		cp.productStocks[k] = v
	}
	for k, v := range f.rawMaterialStocks {
		cp.rawMaterialStocks[k] = v
	}
	for k, v := range f.supplyStocks {
		cp.supplyStocks[k] = v
	}
	cp.records = append(cp.records, f.records...)
	cp.productMoves = append(cp.productMoves, f.productMoves...)
	cp.rmMoves = append(cp.rmMoves, f.rmMoves...)
	cp.supplyMoves = append(cp.supplyMoves, f.supplyMoves...)
	return cp
}

func (f *fakeRepo) restore(s *fakeRepo) {
	f.productStocks = s.productStocks
	f.rawMaterialStocks = s.rawMaterialStocks
	f.supplyStocks = s.supplyStocks
	f.records = s.records
	f.productMoves = s.productMoves
	f.rmMoves = s.rmMoves
	f.supplyMoves = s.supplyMoves
}

func (f *fakeRepo) CreateRecord(_ context.Context, rec *ProductionRecord) error {
	if f.failOn == "record" {
		return errors.New("storage fault")
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, recordID id.ID) (*ProductionRecord, error) {
	for _, r := range f.records {
		if r.ID == recordID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) List(_ context.Context, _ ListFilter) ([]*ProductionRecord, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeRepo) adjust(stocks map[id.ID]types.Quantity, key id.ID, delta types.Quantity) (StockChange, error) {
	prev, ok := stocks[key]
	if !ok {
		return StockChange{}, errors.New("row not found")
	}
	next := prev.Add(delta)
	stocks[key] = next
	return StockChange{Previous: prev, New: next}, nil
}

func (f *fakeRepo) AdjustProductStock(_ context.Context, productID id.ID, delta types.Quantity) (StockChange, error) {
	if f.failOn == "product-stock" {
		return StockChange{}, errors.New("storage fault")
	}
	return f.adjust(f.productStocks, productID, delta)
}

func (f *fakeRepo) AdjustRawMaterialStock(_ context.Context, rawMaterialID id.ID, delta types.Quantity) (StockChange, error) {
	if f.failOn == "raw-material-stock" {
		return StockChange{}, errors.New("storage fault")
	}
	return f.adjust(f.rawMaterialStocks, rawMaterialID, delta)
}

func (f *fakeRepo) AdjustSupplyStock(_ context.Context, supplyID id.ID, delta types.Quantity) (StockChange, error) {
	if f.failOn == "supply-stock" {
		return StockChange{}, errors.New("storage fault")
	}
	return f.adjust(f.supplyStocks, supplyID, delta)
}

func (f *fakeRepo) AppendStockMovements(_ context.Context, movements []entity.StockMovement) error {
	if f.failOn == "product-movements" {
		return errors.New("storage fault")
	}
	f.productMoves = append(f.productMoves, movements...)
	return nil
}

func (f *fakeRepo) AppendRawMaterialMovements(_ context.Context, movements []entity.RawMaterialMovement) error {
	if f.failOn == "raw-material-movements" {
		return errors.New("storage fault")
	}
	f.rmMoves = append(f.rmMoves, movements...)
	return nil
}

func (f *fakeRepo) AppendSupplyMovements(_ context.Context, movements []entity.SupplyMovement) error {
	if f.failOn == "supply-movements" {
		return errors.New("storage fault")
	}
	f.supplyMoves = append(f.supplyMoves, movements...)
	return nil
}

func (f *fakeRepo) MovementsByRecord(_ context.Context, recordID id.ID) (*MovementHistory, error) {
	h := &MovementHistory{}
	for _, m := range f.productMoves {
		if m.ProductionID == recordID {
			h.Product = append(h.Product, m)
		}
	}
	for _, m := range f.rmMoves {
		if m.ProductionID == recordID {
			h.RawMaterials = append(h.RawMaterials, m)
		}
	}
	for _, m := range f.supplyMoves {
		if m.ProductionID == recordID {
			h.Supplies = append(h.Supplies, m)
		}
	}
	return h, nil
}

func (f *fakeRepo) MovementsForProduct(_ context.Context, productID id.ID, _, _ int) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range f.productMoves {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) MovementsForRawMaterial(_ context.Context, rawMaterialID id.ID, _, _ int) ([]entity.RawMaterialMovement, error) {
	var out []entity.RawMaterialMovement
	for _, m := range f.rmMoves {
		if m.RawMaterialID == rawMaterialID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) MovementsForSupply(_ context.Context, supplyID id.ID, _, _ int) ([]entity.SupplyMovement, error) {
	var out []entity.SupplyMovement
	for _, m := range f.supplyMoves {
		if m.SupplyID == supplyID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxManager snapshots the repo before the unit of work and restores it
// when the work fails, mirroring a database rollback.
type fakeTxManager struct {
	repo *fakeRepo
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := f.repo.snapshot()
	if err := fn(ctx); err != nil {
		f.repo.restore(snap)
		return err
	}
	return nil
}

type fakeProducts struct {
	byID map[id.ID]*product.Product
}

func (f *fakeProducts) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

type fakeEmployees struct {
	byID map[id.ID]*employee.Employee
}

func (f *fakeEmployees) GetByID(_ context.Context, employeeID id.ID) (*employee.Employee, error) {
	e, ok := f.byID[employeeID]
	if !ok {
		return nil, apperror.NewNotFound("employee", employeeID)
	}
	return e, nil
}

type fakeRecipes struct {
	byProduct map[id.ID]*recipe.Recipe
}

func (f *fakeRecipes) GetActiveByProduct(_ context.Context, productID id.ID) (*recipe.Recipe, error) {
	return f.byProduct[productID], nil
}

// fixture is the Espeto de Carne scenario: a recipe of 100 g Carne and one
// Palito per unit, stocks 50 kg and 1000 un.
type fixture struct {
	svc  *Service
	repo *fakeRepo

	emp    *employee.Employee
	prod   *product.Product
	carne  *rawmaterial
	palito supply.Ref

	recipes    *fakeRecipes
	subRecipes *fakeRecipeSource
}

type rawmaterial struct {
	ID   id.ID
	Name string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newFakeRepo()

	emp := employee.NewEmployee("EM-001", "Maria")
	prod := product.NewProduct("PD-001", "Espeto de Carne")
	prod.CurrentStock = types.MustQuantity("40")
	repo.productStocks[prod.ID] = prod.CurrentStock

	carne := &rawmaterial{ID: id.New(), Name: "Carne"}
	repo.rawMaterialStocks[carne.ID] = types.MustQuantity("50")

	palito := supply.Ref{ID: id.New(), Name: "Palito", Unit: "un", CurrentStock: types.MustQuantity("1000")}
	repo.supplyStocks[palito.ID] = palito.CurrentStock

	rcp := recipe.NewRecipe(prod.ID)
	rcp.AddLine(carne.ID, types.MustQuantity("100"))
	rcp.Lines[0].RawMaterialName = carne.Name
	rcp.Lines[0].RawMaterialStock = types.MustQuantity("50")
	rcp.AddSupplyLine(palito.ID, types.MustQuantity("1"))
	rcp.SupplyLines[0].Resolved = &palito

	recipes := &fakeRecipes{byProduct: map[id.ID]*recipe.Recipe{prod.ID: rcp}}
	subRecipes := &fakeRecipeSource{recipes: map[id.ID]*supply.SupplyRecipe{}}

	svc := NewService(
		repo,
		&fakeProducts{byID: map[id.ID]*product.Product{prod.ID: prod}},
		&fakeEmployees{byID: map[id.ID]*employee.Employee{emp.ID: emp}},
		recipes,
		subRecipes,
		&fakeTxManager{repo: repo},
		&numerator.MockGenerator{},
		nil,
	)

	return &fixture{
		svc:        svc,
		repo:       repo,
		emp:        emp,
		prod:       prod,
		carne:      carne,
		palito:     palito,
		recipes:    recipes,
		subRecipes: subRecipes,
	}
}

func (f *fixture) request(quantity string) *RecordRequest {
	return &RecordRequest{
		EmployeeID:       f.emp.ID,
		ProductID:        f.prod.ID,
		QuantityProduced: types.MustQuantity(quantity),
		CreatedBy:        "maria",
	}
}

func TestRecord_EndToEnd(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.Record(context.Background(), f.request("300"))
	require.NoError(t, err)
	require.NotNil(t, summary.Record)

	// Carne: 50 - 30 = 20 kg
	assert.True(t, f.repo.rawMaterialStocks[f.carne.ID].Equal(types.MustQuantity("20")))
	// Palito: 1000 - 300 = 700 un
	assert.True(t, f.repo.supplyStocks[f.palito.ID].Equal(types.MustQuantity("700")))
	// Espeto de Carne: 40 + 300 = 340
	assert.True(t, f.repo.productStocks[f.prod.ID].Equal(types.MustQuantity("340")))

	// exactly one movement per tier, all referencing the same record
	require.Len(t, f.repo.productMoves, 1)
	require.Len(t, f.repo.rmMoves, 1)
	require.Len(t, f.repo.supplyMoves, 1)

	recID := summary.Record.ID
	assert.Equal(t, recID, f.repo.productMoves[0].ProductionID)
	assert.Equal(t, recID, f.repo.rmMoves[0].ProductionID)
	assert.Equal(t, recID, f.repo.supplyMoves[0].ProductionID)

	entry := f.repo.productMoves[0]
	assert.Equal(t, entity.MovementEntry, entry.Type)
	assert.True(t, entry.Quantity.Equal(types.MustQuantity("300")))
	assert.True(t, entry.Consistent())

	exit := f.repo.rmMoves[0]
	assert.Equal(t, entity.MovementExit, exit.Type)
	assert.True(t, exit.Quantity.Equal(types.MustQuantity("-30")))
	assert.Equal(t, "Production of 300 Espeto de Carne", exit.Reason)
	assert.True(t, exit.Consistent())

	out := f.repo.supplyMoves[0]
	assert.Equal(t, entity.SupplyMovementOut, out.Type)
	assert.Equal(t, entity.SupplyReasonProduction, out.Reason)
	assert.True(t, out.Magnitude().Equal(types.MustQuantity("300")))
	assert.True(t, out.Consistent())

	// summary mirrors the committed state
	assert.True(t, summary.ProductStockBefore.Equal(types.MustQuantity("40")))
	assert.True(t, summary.ProductStockAfter.Equal(types.MustQuantity("340")))
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, ShiftFullDay, summary.Record.Shift)
}

func TestRecord_CompoundSupplyExpansion(t *testing.T) {
	f := newFixture(t)

	caixa := supply.Ref{ID: id.New(), Name: "Caixa Montada", Unit: "un", CurrentStock: types.MustQuantity("200")}
	papelao := supply.Ref{ID: id.New(), Name: "Papelão", Unit: "un", CurrentStock: types.MustQuantity("100")}
	f.repo.supplyStocks[caixa.ID] = caixa.CurrentStock
	f.repo.supplyStocks[papelao.ID] = papelao.CurrentStock

	rcp := f.recipes.byProduct[f.prod.ID]
	rcp.AddSupplyLine(caixa.ID, types.MustQuantity("1"))
	rcp.SupplyLines[1].Resolved = &caixa

	f.subRecipes.recipes[caixa.ID] = subRecipe(caixa.ID, "10", recipeItem(papelao, "2"))

	_, err := f.svc.Record(context.Background(), f.request("50"))
	require.NoError(t, err)

	// 50 caixas consumed directly; factor 50/10 = 5 drives 10 papelões
	assert.True(t, f.repo.supplyStocks[caixa.ID].Equal(types.MustQuantity("150")))
	assert.True(t, f.repo.supplyStocks[papelao.ID].Equal(types.MustQuantity("90")))

	var papelaoMove *entity.SupplyMovement
	for i := range f.repo.supplyMoves {
		if f.repo.supplyMoves[i].SupplyID == papelao.ID {
			papelaoMove = &f.repo.supplyMoves[i]
		}
	}
	require.NotNil(t, papelaoMove)
	assert.Contains(t, papelaoMove.Notes, "Caixa Montada")
}

func TestRecord_NegativeStockNeverBlocks(t *testing.T) {
	f := newFixture(t)
	f.repo.rawMaterialStocks[f.carne.ID] = types.MustQuantity("10")
	f.recipes.byProduct[f.prod.ID].Lines[0].RawMaterialStock = types.MustQuantity("10")

	summary, err := f.svc.Record(context.Background(), f.request("300"))
	require.NoError(t, err)

	// 10 - 30 = -20, exactly, no clamping
	assert.True(t, f.repo.rawMaterialStocks[f.carne.ID].Equal(types.MustQuantity("-20")))
	require.Len(t, f.repo.rmMoves, 1)
	assert.True(t, f.repo.rmMoves[0].NewStock.Equal(types.MustQuantity("-20")))

	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, "Carne", summary.Warnings[0].Name)
	assert.True(t, summary.Warnings[0].Resulting.Equal(types.MustQuantity("-20")))
}

func TestRecord_AtomicRollbackOnPartialFailure(t *testing.T) {
	f := newFixture(t)
	// fail after raw material writes, before supply movements land
	f.repo.failOn = "supply-movements"

	_, err := f.svc.Record(context.Background(), f.request("300"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeCommitFailed))

	// nothing from the attempt is observable
	assert.Empty(t, f.repo.records)
	assert.Empty(t, f.repo.productMoves)
	assert.Empty(t, f.repo.rmMoves)
	assert.Empty(t, f.repo.supplyMoves)
	assert.True(t, f.repo.rawMaterialStocks[f.carne.ID].Equal(types.MustQuantity("50")))
	assert.True(t, f.repo.supplyStocks[f.palito.ID].Equal(types.MustQuantity("1000")))
	assert.True(t, f.repo.productStocks[f.prod.ID].Equal(types.MustQuantity("40")))
}

func TestRecord_RecipeMissing(t *testing.T) {
	f := newFixture(t)
	delete(f.recipes.byProduct, f.prod.ID)

	_, err := f.svc.Record(context.Background(), f.request("10"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeRecipeMissing))
	assert.Contains(t, err.Error(), "Espeto de Carne")

	// nothing persisted, stocks untouched
	assert.Empty(t, f.repo.records)
	assert.True(t, f.repo.rawMaterialStocks[f.carne.ID].Equal(types.MustQuantity("50")))
}

func TestRecord_RecipeWithoutIngredientLines(t *testing.T) {
	f := newFixture(t)
	empty := recipe.NewRecipe(f.prod.ID)
	empty.AddSupplyLine(f.palito.ID, types.MustQuantity("1"))
	f.recipes.byProduct[f.prod.ID] = empty

	_, err := f.svc.Record(context.Background(), f.request("10"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeRecipeMissing))
}

func TestRecord_EmployeeNotFound(t *testing.T) {
	f := newFixture(t)

	req := f.request("10")
	req.EmployeeID = id.New()

	_, err := f.svc.Record(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
	assert.Empty(t, f.repo.records)
}

func TestRecord_InvalidQuantityFailsFast(t *testing.T) {
	f := newFixture(t)

	req := f.request("300")
	req.QuantityProduced = types.MustQuantity("0")

	_, err := f.svc.Record(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidQuantity))
	assert.Empty(t, f.repo.records)
}

func TestRecord_DateAndShiftOverrides(t *testing.T) {
	f := newFixture(t)

	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	req := f.request("10")
	req.Date = &date
	req.Shift = ShiftMorning

	summary, err := f.svc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, date, summary.Record.Date)
	assert.Equal(t, ShiftMorning, summary.Record.Shift)
}

func TestMovements_GroupsLedgerByRecord(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.Record(context.Background(), f.request("300"))
	require.NoError(t, err)

	history, err := f.svc.Movements(context.Background(), summary.Record.ID)
	require.NoError(t, err)
	assert.Len(t, history.Product, 1)
	assert.Len(t, history.RawMaterials, 1)
	assert.Len(t, history.Supplies, 1)
}
