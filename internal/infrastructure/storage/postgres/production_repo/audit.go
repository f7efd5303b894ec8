package production_repo

import (
	"context"
	"encoding/json"
	"fmt"

	"espetaria/internal/domain/production"
	"espetaria/internal/infrastructure/storage/postgres"
)

// ProductionAuditor archives the full production summary, so the ledger
// can be cross-checked against what the caller was shown.
type ProductionAuditor struct {
	store *postgres.AuditStore
}

// NewProductionAuditor creates a new production auditor.
func NewProductionAuditor(store *postgres.AuditStore) *ProductionAuditor {
	return &ProductionAuditor{store: store}
}

var _ production.Auditor = (*ProductionAuditor)(nil)

// RecordProduction implements production.Auditor.
func (a *ProductionAuditor) RecordProduction(ctx context.Context, summary *production.ProductionSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	return a.store.Log(ctx, postgres.AuditEntry{
		EntityType:  "production_record",
		EntityID:    summary.Record.ID,
		Action:      "produce",
		PerformedBy: summary.Record.CreatedBy,
		Payload:     payload,
	})
}
