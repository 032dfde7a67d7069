package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// Optional dates are stored as NULL rather than the zero time
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeVal(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

// RequisitionModel is the persistence model for the Requisition aggregate
type RequisitionModel struct {
	OwnedAggregateModel
	DRNumber        string                 `gorm:"type:varchar(10);not null;uniqueIndex"`
	Date            time.Time              `gorm:"not null;index"`
	Department      string                 `gorm:"type:varchar(200);not null"`
	RequisitionType string                 `gorm:"type:varchar(100);not null"`
	HeaderRemarks   string                 `gorm:"type:varchar(150)"`
	Items           []RequisitionItemModel `gorm:"foreignKey:RequisitionID;references:ID"`
}

// TableName returns the table name for GORM
func (RequisitionModel) TableName() string {
	return "requisitions"
}

// RequisitionItemModel is one requisition line
type RequisitionItemModel struct {
	ID                 uint64          `gorm:"primaryKey;autoIncrement"`
	RequisitionID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position           int             `gorm:"not null"`
	Level3ItemCategory string          `gorm:"type:varchar(200);not null"`
	ItemName           string          `gorm:"type:varchar(200);not null"`
	UOM                string          `gorm:"type:varchar(50);not null"`
	Quantity           decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Rate               decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Remarks            string          `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (RequisitionItemModel) TableName() string {
	return "requisition_items"
}

// ToDomain converts the persistence model to the domain aggregate
func (m *RequisitionModel) ToDomain() *procurement.Requisition {
	r := &procurement.Requisition{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		RequisitionHeader: procurement.RequisitionHeader{
			DRNumber:        m.DRNumber,
			Date:            m.Date,
			Department:      m.Department,
			RequisitionType: m.RequisitionType,
			HeaderRemarks:   m.HeaderRemarks,
		},
		Items: make([]procurement.RequisitionItem, len(m.Items)),
	}
	for i, item := range m.Items {
		r.Items[i] = procurement.RequisitionItem{
			Level3ItemCategory: item.Level3ItemCategory,
			ItemName:           item.ItemName,
			UOM:                item.UOM,
			Quantity:           item.Quantity,
			Rate:               item.Rate,
			Amount:             item.Amount,
			Remarks:            item.Remarks,
		}
	}
	return r
}

// RequisitionModelFromDomain creates a persistence model from the aggregate
func RequisitionModelFromDomain(r *procurement.Requisition) *RequisitionModel {
	m := &RequisitionModel{
		DRNumber:        r.DRNumber,
		Date:            r.Date,
		Department:      r.Department,
		RequisitionType: r.RequisitionType,
		HeaderRemarks:   r.HeaderRemarks,
		Items:           make([]RequisitionItemModel, len(r.Items)),
	}
	m.FromDomainOwnedAggregateRoot(r.OwnedAggregateRoot)
	for i, item := range r.Items {
		m.Items[i] = RequisitionItemModel{
			RequisitionID:      r.ID,
			Position:           i,
			Level3ItemCategory: item.Level3ItemCategory,
			ItemName:           item.ItemName,
			UOM:                item.UOM,
			Quantity:           item.Quantity,
			Rate:               item.Rate,
			Amount:             item.Amount,
			Remarks:            item.Remarks,
		}
	}
	return m
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate
type PurchaseOrderModel struct {
	OwnedAggregateModel
	PONumber        string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Date            time.Time               `gorm:"not null;index"`
	PODelivery      string                  `gorm:"type:varchar(200);not null"`
	RequisitionType string                  `gorm:"type:varchar(100);not null"`
	Supplier        string                  `gorm:"type:varchar(200);not null"`
	Store           string                  `gorm:"type:varchar(200)"`
	Payment         string                  `gorm:"type:varchar(200)"`
	Purchaser       string                  `gorm:"type:varchar(200)"`
	Remarks         string                  `gorm:"type:varchar(150)"`
	Rows            []PurchaseOrderRowModel `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderRowModel is one purchase order line
type PurchaseOrderRowModel struct {
	ID                 uint64          `gorm:"primaryKey;autoIncrement"`
	PurchaseOrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position           int             `gorm:"not null"`
	Requisition        string          `gorm:"type:varchar(50)"`
	Department         string          `gorm:"type:varchar(200);not null"`
	Category           string          `gorm:"type:varchar(200);not null"`
	Name               string          `gorm:"type:varchar(200);not null"`
	UOM                string          `gorm:"type:varchar(50);not null"`
	Quantity           decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Rate               decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	ExcludingTaxAmount decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	GSTPercent         decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	GSTAmount          decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	OtherChargesAmount decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	RowRemarks         string          `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (PurchaseOrderRowModel) TableName() string {
	return "purchase_order_rows"
}

// ToDomain converts the persistence model to the domain aggregate
func (m *PurchaseOrderModel) ToDomain() *procurement.PurchaseOrder {
	po := &procurement.PurchaseOrder{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		PurchaseOrderHeader: procurement.PurchaseOrderHeader{
			PONumber:        m.PONumber,
			Date:            m.Date,
			PODelivery:      m.PODelivery,
			RequisitionType: m.RequisitionType,
			Supplier:        m.Supplier,
			Store:           m.Store,
			Payment:         m.Payment,
			Purchaser:       m.Purchaser,
			Remarks:         m.Remarks,
		},
		Rows: make([]procurement.PurchaseOrderRow, len(m.Rows)),
	}
	for i, row := range m.Rows {
		po.Rows[i] = procurement.PurchaseOrderRow{
			Requisition:        row.Requisition,
			Department:         row.Department,
			Category:           row.Category,
			Name:               row.Name,
			UOM:                row.UOM,
			Quantity:           row.Quantity,
			Rate:               row.Rate,
			ExcludingTaxAmount: row.ExcludingTaxAmount,
			GSTPercent:         row.GSTPercent,
			GSTAmount:          row.GSTAmount,
			DiscountAmount:     row.DiscountAmount,
			OtherChargesAmount: row.OtherChargesAmount,
			TotalAmount:        row.TotalAmount,
			RowRemarks:         row.RowRemarks,
		}
	}
	return po
}

// PurchaseOrderModelFromDomain creates a persistence model from the aggregate
func PurchaseOrderModelFromDomain(po *procurement.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{
		PONumber:        po.PONumber,
		Date:            po.Date,
		PODelivery:      po.PODelivery,
		RequisitionType: po.RequisitionType,
		Supplier:        po.Supplier,
		Store:           po.Store,
		Payment:         po.Payment,
		Purchaser:       po.Purchaser,
		Remarks:         po.Remarks,
		Rows:            make([]PurchaseOrderRowModel, len(po.Rows)),
	}
	m.FromDomainOwnedAggregateRoot(po.OwnedAggregateRoot)
	for i, row := range po.Rows {
		m.Rows[i] = PurchaseOrderRowModel{
			PurchaseOrderID:    po.ID,
			Position:           i,
			Requisition:        row.Requisition,
			Department:         row.Department,
			Category:           row.Category,
			Name:               row.Name,
			UOM:                row.UOM,
			Quantity:           row.Quantity,
			Rate:               row.Rate,
			ExcludingTaxAmount: row.ExcludingTaxAmount,
			GSTPercent:         row.GSTPercent,
			GSTAmount:          row.GSTAmount,
			DiscountAmount:     row.DiscountAmount,
			OtherChargesAmount: row.OtherChargesAmount,
			TotalAmount:        row.TotalAmount,
			RowRemarks:         row.RowRemarks,
		}
	}
	return m
}
