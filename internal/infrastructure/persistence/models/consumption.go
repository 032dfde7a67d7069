package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionRecordModel is the persistence model for one downstream
// document's claim against an upstream line. Records are not read back
// as aggregates, only summed, so there is no domain conversion here.
type ConsumptionRecordModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Link        string          `gorm:"not null;index:idx_consumption_upstream"`
	DocumentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	UpstreamKey string          `gorm:"not null;index:idx_consumption_upstream"`
	Item        string          `gorm:"not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
}

// TableName returns the table name for GORM
func (ConsumptionRecordModel) TableName() string {
	return "consumption_records"
}
