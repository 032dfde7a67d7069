package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/infrastructure/persistence/models"
)

// GormConsumptionRepository implements ConsumptionRepository using GORM.
// Records are written wholesale per document and link, and are never
// removed when the claiming document is deleted.
type GormConsumptionRepository struct {
	db *gorm.DB
}

// NewGormConsumptionRepository creates a new GormConsumptionRepository
func NewGormConsumptionRepository(db *gorm.DB) *GormConsumptionRepository {
	return &GormConsumptionRepository{db: db}
}

// ReplaceForDocument swaps the document's records on one link for the given claims
func (r *GormConsumptionRepository) ReplaceForDocument(ctx context.Context, link string, documentID uuid.UUID, claims []procurement.Consumption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link = ? AND document_id = ?", link, documentID).
			Delete(&models.ConsumptionRecordModel{}).Error; err != nil {
			return err
		}
		if len(claims) == 0 {
			return nil
		}
		records := make([]models.ConsumptionRecordModel, len(claims))
		for i, c := range claims {
			records[i] = models.ConsumptionRecordModel{
				ID:          uuid.New(),
				Link:        link,
				DocumentID:  documentID,
				UpstreamKey: c.UpstreamKey,
				Item:        c.Item,
				Quantity:    c.Quantity,
			}
		}
		return tx.Create(&records).Error
	})
}

// SumByUpstream totals recorded quantities per item against one upstream key,
// excluding the document identified by excludeID
func (r *GormConsumptionRepository) SumByUpstream(ctx context.Context, link, upstreamKey string, excludeID uuid.UUID) (procurement.ConsumedQuantities, error) {
	type itemSum struct {
		Item  string
		Total decimal.Decimal
	}
	var sums []itemSum
	if err := r.db.WithContext(ctx).
		Model(&models.ConsumptionRecordModel{}).
		Select("item, SUM(quantity) AS total").
		Where("link = ? AND upstream_key = ? AND document_id <> ?", link, upstreamKey, excludeID).
		Group("item").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	consumed := make(procurement.ConsumedQuantities, len(sums))
	for _, s := range sums {
		consumed[s.Item] = s.Total
	}
	return consumed, nil
}

// Ensure GormConsumptionRepository implements ConsumptionRepository
var _ procurement.ConsumptionRepository = (*GormConsumptionRepository)(nil)
