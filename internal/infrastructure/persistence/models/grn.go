package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/procurement"
)

// GRNModel is the persistence model for the GRN aggregate
type GRNModel struct {
	OwnedAggregateModel
	GRNNumber             string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Date                  time.Time     `gorm:"not null;index"`
	SupplierChallanNumber string        `gorm:"type:varchar(100)"`
	SupplierChallanDate   *time.Time    `gorm:""`
	Supplier              string        `gorm:"type:varchar(200);not null"`
	InwardNumber          string        `gorm:"type:varchar(100)"`
	InwardDate            *time.Time    `gorm:""`
	Remarks               string        `gorm:"type:varchar(150)"`
	Rows                  []GRNRowModel `gorm:"foreignKey:GRNID;references:ID"`
}

// TableName returns the table name for GORM
func (GRNModel) TableName() string {
	return "grns"
}

// GRNRowModel is one goods receipt line
type GRNRowModel struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	GRNID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"not null"`
	PONo         string          `gorm:"type:varchar(50);not null;index"`
	Department   string          `gorm:"type:varchar(200)"`
	Category     string          `gorm:"type:varchar(200);not null"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Unit         string          `gorm:"type:varchar(50);not null"`
	POQty        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PreviousQty  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalancePOQty decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	ReceivedQty  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	RowRemarks   string          `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (GRNRowModel) TableName() string {
	return "grn_rows"
}

// ToDomain converts the persistence model to the domain aggregate
func (m *GRNModel) ToDomain() *procurement.GRN {
	g := &procurement.GRN{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		GRNHeader: procurement.GRNHeader{
			GRNNumber:             m.GRNNumber,
			Date:                  m.Date,
			SupplierChallanNumber: m.SupplierChallanNumber,
			SupplierChallanDate:   timeVal(m.SupplierChallanDate),
			Supplier:              m.Supplier,
			InwardNumber:          m.InwardNumber,
			InwardDate:            timeVal(m.InwardDate),
			Remarks:               m.Remarks,
		},
		Rows: make([]procurement.GRNRow, len(m.Rows)),
	}
	for i, row := range m.Rows {
		g.Rows[i] = procurement.GRNRow{
			PONo:         row.PONo,
			Department:   row.Department,
			Category:     row.Category,
			Name:         row.Name,
			Unit:         row.Unit,
			POQty:        row.POQty,
			PreviousQty:  row.PreviousQty,
			BalancePOQty: row.BalancePOQty,
			ReceivedQty:  row.ReceivedQty,
			RowRemarks:   row.RowRemarks,
		}
	}
	return g
}

// GRNModelFromDomain creates a persistence model from the aggregate
func GRNModelFromDomain(g *procurement.GRN) *GRNModel {
	m := &GRNModel{
		GRNNumber:             g.GRNNumber,
		Date:                  g.Date,
		SupplierChallanNumber: g.SupplierChallanNumber,
		SupplierChallanDate:   timePtr(g.SupplierChallanDate),
		Supplier:              g.Supplier,
		InwardNumber:          g.InwardNumber,
		InwardDate:            timePtr(g.InwardDate),
		Remarks:               g.Remarks,
		Rows:                  make([]GRNRowModel, len(g.Rows)),
	}
	m.FromDomainOwnedAggregateRoot(g.OwnedAggregateRoot)
	for i, row := range g.Rows {
		m.Rows[i] = GRNRowModel{
			GRNID:        g.ID,
			Position:     i,
			PONo:         row.PONo,
			Department:   row.Department,
			Category:     row.Category,
			Name:         row.Name,
			Unit:         row.Unit,
			POQty:        row.POQty,
			PreviousQty:  row.PreviousQty,
			BalancePOQty: row.BalancePOQty,
			ReceivedQty:  row.ReceivedQty,
			RowRemarks:   row.RowRemarks,
		}
	}
	return m
}

// GRNReturnModel is the persistence model for the GRNReturn aggregate
type GRNReturnModel struct {
	OwnedAggregateModel
	GRNRNumber string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	GRNRDate   time.Time           `gorm:"not null;index"`
	GRNNumber  string              `gorm:"type:varchar(50);not null;index"`
	GRNDate    *time.Time          `gorm:""`
	Remarks    string              `gorm:"type:varchar(150)"`
	Rows       []GRNReturnRowModel `gorm:"foreignKey:GRNReturnID;references:ID"`
}

// TableName returns the table name for GORM
func (GRNReturnModel) TableName() string {
	return "grn_returns"
}

// GRNReturnRowModel is one goods return line
type GRNReturnRowModel struct {
	ID                uint64          `gorm:"primaryKey;autoIncrement"`
	GRNReturnID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position          int             `gorm:"not null"`
	Action            string          `gorm:"type:varchar(50)"`
	SerialNo          string          `gorm:"type:varchar(50)"`
	Category          string          `gorm:"type:varchar(200);not null"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Unit              string          `gorm:"type:varchar(50);not null"`
	GRNQty            decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PreviousReturnQty decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalanceGRNQty     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	ReturnQty         decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	RowRemarks        string          `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (GRNReturnRowModel) TableName() string {
	return "grn_return_rows"
}

// ToDomain converts the persistence model to the domain aggregate
func (m *GRNReturnModel) ToDomain() *procurement.GRNReturn {
	gr := &procurement.GRNReturn{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		GRNReturnHeader: procurement.GRNReturnHeader{
			GRNRNumber: m.GRNRNumber,
			GRNRDate:   m.GRNRDate,
			GRNNumber:  m.GRNNumber,
			GRNDate:    timeVal(m.GRNDate),
			Remarks:    m.Remarks,
		},
		Rows: make([]procurement.GRNReturnRow, len(m.Rows)),
	}
	for i, row := range m.Rows {
		gr.Rows[i] = procurement.GRNReturnRow{
			Action:            row.Action,
			SerialNo:          row.SerialNo,
			Category:          row.Category,
			Name:              row.Name,
			Unit:              row.Unit,
			GRNQty:            row.GRNQty,
			PreviousReturnQty: row.PreviousReturnQty,
			BalanceGRNQty:     row.BalanceGRNQty,
			ReturnQty:         row.ReturnQty,
			RowRemarks:        row.RowRemarks,
		}
	}
	return gr
}

// GRNReturnModelFromDomain creates a persistence model from the aggregate
func GRNReturnModelFromDomain(gr *procurement.GRNReturn) *GRNReturnModel {
	m := &GRNReturnModel{
		GRNRNumber: gr.GRNRNumber,
		GRNRDate:   gr.GRNRDate,
		GRNNumber:  gr.GRNNumber,
		GRNDate:    timePtr(gr.GRNDate),
		Remarks:    gr.Remarks,
		Rows:       make([]GRNReturnRowModel, len(gr.Rows)),
	}
	m.FromDomainOwnedAggregateRoot(gr.OwnedAggregateRoot)
	for i, row := range gr.Rows {
		m.Rows[i] = GRNReturnRowModel{
			GRNReturnID:       gr.ID,
			Position:          i,
			Action:            row.Action,
			SerialNo:          row.SerialNo,
			Category:          row.Category,
			Name:              row.Name,
			Unit:              row.Unit,
			GRNQty:            row.GRNQty,
			PreviousReturnQty: row.PreviousReturnQty,
			BalanceGRNQty:     row.BalanceGRNQty,
			ReturnQty:         row.ReturnQty,
			RowRemarks:        row.RowRemarks,
		}
	}
	return m
}
