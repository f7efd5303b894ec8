package production

import (
	"context"
	"fmt"
	"time"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
	"espetaria/internal/core/id"
	"espetaria/internal/core/tx"
	"espetaria/internal/domain/catalogs/employee"
	"espetaria/internal/domain/catalogs/product"
	"espetaria/internal/domain/catalogs/supply"
	"espetaria/internal/domain/recipe"
	"espetaria/pkg/logger"
	"espetaria/pkg/numerator"
)

// ProductSource resolves finished products for the engine.
type ProductSource interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// EmployeeSource resolves the acting employee.
type EmployeeSource interface {
	GetByID(ctx context.Context, employeeID id.ID) (*employee.Employee, error)
}

// Auditor receives the committed production event for the audit archive.
// Audit failures are logged, not propagated: the production is already
// committed when the auditor runs.
type Auditor interface {
	RecordProduction(ctx context.Context, summary *ProductionSummary) error
}

// Service is the production engine entry point.
type Service struct {
	repo      Repository
	products  ProductSource
	employees EmployeeSource
	recipes   recipe.Reader
	supplies  supply.RecipeSource
	txManager tx.Manager
	numerator numerator.Generator
	auditor   Auditor
}

// NewService wires the engine with its collaborators. auditor may be nil.
func NewService(
	repo Repository,
	products ProductSource,
	employees EmployeeSource,
	recipes recipe.Reader,
	supplies supply.RecipeSource,
	txManager tx.Manager,
	gen numerator.Generator,
	auditor Auditor,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		employees: employees,
		recipes:   recipes,
		supplies:  supplies,
		txManager: txManager,
		numerator: gen,
		auditor:   auditor,
	}
}

// Record runs one production event end to end: validate the request, read
// the production context, plan and expand the consumption, evaluate
// advisory warnings, then commit the record with every stock mutation and
// ledger movement in a single transaction.
//
// Validation and read failures happen before anything is written. Once the
// transaction starts, either every write lands or none does; a failed
// commit is therefore always safe to retry.
func (s *Service) Record(ctx context.Context, req *RecordRequest) (*ProductionSummary, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	prodCtx, err := s.loadContext(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	plan, err := computeConsumption(prodCtx, req.QuantityProduced)
	if err != nil {
		return nil, err
	}

	if err := expandCompoundSupplies(ctx, s.supplies, plan); err != nil {
		return nil, err
	}

	warnings := evaluateStock(plan)

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PR"), nil, time.Now())
	if err != nil {
		return nil, apperror.NewCommitFailed(err)
	}

	rec := newRecord(req, number)

	var productStock StockChange
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		productStock, err = s.commit(ctx, rec, prodCtx, plan)
		return err
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewCommitFailed(err)
	}

	summary := summarize(rec, prodCtx.Product.Name, productStock.Previous, productStock.New, plan, warnings)

	logger.Info(ctx, "production recorded",
		"record_id", rec.ID,
		"number", rec.Number,
		"product", prodCtx.Product.Name,
		"employee", emp.Name,
		"quantity", req.QuantityProduced,
		"warnings", len(warnings),
	)

	if s.auditor != nil {
		if auditErr := s.auditor.RecordProduction(ctx, summary); auditErr != nil {
			logger.Warn(ctx, "production audit write failed",
				"record_id", rec.ID, "error", auditErr)
		}
	}

	return summary, nil
}

// loadContext reads the product and its active recipe with all line
// snapshots. A product without a usable recipe cannot be produced.
func (s *Service) loadContext(ctx context.Context, productID id.ID) (*ProductionContext, error) {
	prod, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	rcp, err := s.recipes.GetActiveByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if rcp == nil || !rcp.Usable() {
		return nil, apperror.NewRecipeMissing(prod.Name)
	}

	return &ProductionContext{Product: prod, Recipe: rcp}, nil
}

// commit performs every write of one production inside the caller's
// transaction: the record header, a stock adjustment plus one ledger
// movement per consumed raw material, supply and compound ingredient, and
// finally the finished product entry.
func (s *Service) commit(ctx context.Context, rec *ProductionRecord, prodCtx *ProductionContext, plan *ConsumptionPlan) (StockChange, error) {
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return StockChange{}, err
	}

	exitReason := fmt.Sprintf("Production of %s %s", plan.QuantityProduced, prodCtx.Product.Name)

	rmMovements := make([]entity.RawMaterialMovement, 0, len(plan.RawMaterials))
	for _, rm := range plan.RawMaterials {
		change, err := s.repo.AdjustRawMaterialStock(ctx, rm.RawMaterialID, rm.NeededKg.Neg())
		if err != nil {
			return StockChange{}, err
		}
		m := entity.NewRawMaterialMovement(rec.ID, rm.RawMaterialID, rm.NeededKg.Neg(), change.Previous, exitReason, rec.CreatedBy)
		if !m.NewStock.Equal(change.New) {
			return StockChange{}, fmt.Errorf("raw material ledger out of sync for %s: %s != %s", rm.Name, m.NewStock, change.New)
		}
		rmMovements = append(rmMovements, m)
	}
	if len(rmMovements) > 0 {
		if err := s.repo.AppendRawMaterialMovements(ctx, rmMovements); err != nil {
			return StockChange{}, err
		}
	}

	supplyMovements := make([]entity.SupplyMovement, 0, len(plan.Supplies)+len(plan.Ingredients))
	for _, sc := range plan.Supplies {
		change, err := s.repo.AdjustSupplyStock(ctx, sc.SupplyID, sc.NeededUnits.Neg())
		if err != nil {
			return StockChange{}, err
		}
		m := entity.NewSupplyMovement(rec.ID, sc.SupplyID, sc.NeededUnits.Neg(), change.Previous, entity.SupplyReasonProduction, "", rec.CreatedBy)
		if !m.NewStock.Equal(change.New) {
			return StockChange{}, fmt.Errorf("supply ledger out of sync for %s: %s != %s", sc.Name, m.NewStock, change.New)
		}
		supplyMovements = append(supplyMovements, m)
	}
	for _, ic := range plan.Ingredients {
		change, err := s.repo.AdjustSupplyStock(ctx, ic.SupplyID, ic.NeededUnits.Neg())
		if err != nil {
			return StockChange{}, err
		}
		notes := fmt.Sprintf("Consumed by compound supply %s", ic.ParentName)
		m := entity.NewSupplyMovement(rec.ID, ic.SupplyID, ic.NeededUnits.Neg(), change.Previous, entity.SupplyReasonProduction, notes, rec.CreatedBy)
		if !m.NewStock.Equal(change.New) {
			return StockChange{}, fmt.Errorf("supply ledger out of sync for %s: %s != %s", ic.Name, m.NewStock, change.New)
		}
		supplyMovements = append(supplyMovements, m)
	}
	if len(supplyMovements) > 0 {
		if err := s.repo.AppendSupplyMovements(ctx, supplyMovements); err != nil {
			return StockChange{}, err
		}
	}

	productChange, err := s.repo.AdjustProductStock(ctx, rec.ProductID, plan.QuantityProduced)
	if err != nil {
		return StockChange{}, err
	}
	entry := entity.NewStockMovement(rec.ID, rec.ProductID, plan.QuantityProduced, productChange.Previous, exitReason, rec.CreatedBy)
	if !entry.NewStock.Equal(productChange.New) {
		return StockChange{}, fmt.Errorf("product ledger out of sync for %s: %s != %s", prodCtx.Product.Name, entry.NewStock, productChange.New)
	}
	if err := s.repo.AppendStockMovements(ctx, []entity.StockMovement{entry}); err != nil {
		return StockChange{}, err
	}

	return productChange, nil
}

// GetByID loads one production record.
func (s *Service) GetByID(ctx context.Context, recordID id.ID) (*ProductionRecord, error) {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NewNotFound("production record", recordID)
	}
	return rec, nil
}

// List returns production records matching the filter with a total count.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*ProductionRecord, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}

// Movements returns the ledger written for one production record.
func (s *Service) Movements(ctx context.Context, recordID id.ID) (*MovementHistory, error) {
	if _, err := s.GetByID(ctx, recordID); err != nil {
		return nil, err
	}
	return s.repo.MovementsByRecord(ctx, recordID)
}

// MovementsForProduct pages a product's ledger, newest first.
func (s *Service) MovementsForProduct(ctx context.Context, productID id.ID, limit, offset int) ([]entity.StockMovement, error) {
	if limit <= 0 {
		limit = DefaultListFilter().Limit
	}
	return s.repo.MovementsForProduct(ctx, productID, limit, offset)
}

// MovementsForRawMaterial pages a raw material's ledger, newest first.
func (s *Service) MovementsForRawMaterial(ctx context.Context, rawMaterialID id.ID, limit, offset int) ([]entity.RawMaterialMovement, error) {
	if limit <= 0 {
		limit = DefaultListFilter().Limit
	}
	return s.repo.MovementsForRawMaterial(ctx, rawMaterialID, limit, offset)
}

// MovementsForSupply pages a supply's ledger, newest first.
func (s *Service) MovementsForSupply(ctx context.Context, supplyID id.ID, limit, offset int) ([]entity.SupplyMovement, error) {
	if limit <= 0 {
		limit = DefaultListFilter().Limit
	}
	return s.repo.MovementsForSupply(ctx, supplyID, limit, offset)
}
