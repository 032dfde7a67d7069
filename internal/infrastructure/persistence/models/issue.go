package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/procurement"
)

// IssueModel is the persistence model for the Issue aggregate
type IssueModel struct {
	OwnedAggregateModel
	IssueNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_issues_issue_number,where:issue_number <> ''"`
	GRNNumber         string          `gorm:"type:varchar(50);not null;index"`
	IssueDate         time.Time       `gorm:"not null;index"`
	Store             string          `gorm:"type:varchar(200)"`
	RequisitionType   string          `gorm:"type:varchar(100)"`
	IssueToUnit       string          `gorm:"type:varchar(200);not null"`
	IssueToDepartment string          `gorm:"type:varchar(200);not null"`
	DemandNo          string          `gorm:"type:varchar(50)"`
	VehicleType       string          `gorm:"type:varchar(100)"`
	VehicleNo         string          `gorm:"type:varchar(100)"`
	Driver            string          `gorm:"type:varchar(200)"`
	Remarks           string          `gorm:"type:varchar(150)"`
	Rows              []IssueRowModel `gorm:"foreignKey:IssueID;references:ID"`
}

// TableName returns the table name for GORM
func (IssueModel) TableName() string {
	return "issues"
}

// IssueRowModel is one material issue line
type IssueRowModel struct {
	ID                 uint64          `gorm:"primaryKey;autoIncrement"`
	IssueID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position           int             `gorm:"not null"`
	Action             string          `gorm:"type:varchar(50)"`
	SerialNo           string          `gorm:"type:varchar(50)"`
	Level3ItemCategory string          `gorm:"type:varchar(200);not null"`
	ItemName           string          `gorm:"type:varchar(200);not null"`
	UOM                string          `gorm:"type:varchar(50);not null"`
	GRNQty             decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PreviousIssueQty   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalanceQty         decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	IssueQty           decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	RowRemarks         string          `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (IssueRowModel) TableName() string {
	return "issue_rows"
}

// ToDomain converts the persistence model to the domain aggregate
func (m *IssueModel) ToDomain() *procurement.Issue {
	is := &procurement.Issue{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		IssueHeader: procurement.IssueHeader{
			IssueNumber:       m.IssueNumber,
			GRNNumber:         m.GRNNumber,
			IssueDate:         m.IssueDate,
			Store:             m.Store,
			RequisitionType:   m.RequisitionType,
			IssueToUnit:       m.IssueToUnit,
			IssueToDepartment: m.IssueToDepartment,
			DemandNo:          m.DemandNo,
			VehicleType:       m.VehicleType,
			VehicleNo:         m.VehicleNo,
			Driver:            m.Driver,
			Remarks:           m.Remarks,
		},
		Rows: make([]procurement.IssueRow, len(m.Rows)),
	}
	for i, row := range m.Rows {
		is.Rows[i] = procurement.IssueRow{
			Action:             row.Action,
			SerialNo:           row.SerialNo,
			Level3ItemCategory: row.Level3ItemCategory,
			ItemName:           row.ItemName,
			UOM:                row.UOM,
			GRNQty:             row.GRNQty,
			PreviousIssueQty:   row.PreviousIssueQty,
			BalanceQty:         row.BalanceQty,
			IssueQty:           row.IssueQty,
			RowRemarks:         row.RowRemarks,
		}
	}
	return is
}

// IssueModelFromDomain creates a persistence model from the aggregate
func IssueModelFromDomain(is *procurement.Issue) *IssueModel {
	m := &IssueModel{
		IssueNumber:       is.IssueNumber,
		GRNNumber:         is.GRNNumber,
		IssueDate:         is.IssueDate,
		Store:             is.Store,
		RequisitionType:   is.RequisitionType,
		IssueToUnit:       is.IssueToUnit,
		IssueToDepartment: is.IssueToDepartment,
		DemandNo:          is.DemandNo,
		VehicleType:       is.VehicleType,
		VehicleNo:         is.VehicleNo,
		Driver:            is.Driver,
		Remarks:           is.Remarks,
		Rows:              make([]IssueRowModel, len(is.Rows)),
	}
	m.FromDomainOwnedAggregateRoot(is.OwnedAggregateRoot)
	for i, row := range is.Rows {
		m.Rows[i] = IssueRowModel{
			IssueID:            is.ID,
			Position:           i,
			Action:             row.Action,
			SerialNo:           row.SerialNo,
			Level3ItemCategory: row.Level3ItemCategory,
			ItemName:           row.ItemName,
			UOM:                row.UOM,
			GRNQty:             row.GRNQty,
			PreviousIssueQty:   row.PreviousIssueQty,
			BalanceQty:         row.BalanceQty,
			IssueQty:           row.IssueQty,
			RowRemarks:         row.RowRemarks,
		}
	}
	return m
}

// IssueReturnModel is the persistence model for the IssueReturn aggregate
type IssueReturnModel struct {
	OwnedAggregateModel
	IRNumber string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	IRDate   time.Time             `gorm:"not null;index"`
	DRNumber string                `gorm:"type:varchar(50);not null;index"`
	DRDate   *time.Time            `gorm:""`
	Remarks  string                `gorm:"type:varchar(150)"`
	Rows     []IssueReturnRowModel `gorm:"foreignKey:IssueReturnID;references:ID"`
}

// TableName returns the table name for GORM
func (IssueReturnModel) TableName() string {
	return "issue_returns"
}

// IssueReturnRowModel is one issue return line
type IssueReturnRowModel struct {
	ID                 uint64          `gorm:"primaryKey;autoIncrement"`
	IssueReturnID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position           int             `gorm:"not null"`
	Action             string          `gorm:"type:varchar(50)"`
	SerialNo           string          `gorm:"type:varchar(50)"`
	Level3ItemCategory string          `gorm:"type:varchar(200);not null"`
	ItemName           string          `gorm:"type:varchar(200);not null"`
	Unit               string          `gorm:"type:varchar(50);not null"`
	IssueQty           decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PreviousReturnQty  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalanceIssueQty    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	ReturnQty          decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	RowRemarks         string          `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (IssueReturnRowModel) TableName() string {
	return "issue_return_rows"
}

// ToDomain converts the persistence model to the domain aggregate
func (m *IssueReturnModel) ToDomain() *procurement.IssueReturn {
	ir := &procurement.IssueReturn{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		IssueReturnHeader: procurement.IssueReturnHeader{
			IRNumber: m.IRNumber,
			IRDate:   m.IRDate,
			DRNumber: m.DRNumber,
			DRDate:   timeVal(m.DRDate),
			Remarks:  m.Remarks,
		},
		Rows: make([]procurement.IssueReturnRow, len(m.Rows)),
	}
	for i, row := range m.Rows {
		ir.Rows[i] = procurement.IssueReturnRow{
			Action:             row.Action,
			SerialNo:           row.SerialNo,
			Level3ItemCategory: row.Level3ItemCategory,
			ItemName:           row.ItemName,
			Unit:               row.Unit,
			IssueQty:           row.IssueQty,
			PreviousReturnQty:  row.PreviousReturnQty,
			BalanceIssueQty:    row.BalanceIssueQty,
			ReturnQty:          row.ReturnQty,
			RowRemarks:         row.RowRemarks,
		}
	}
	return ir
}

// IssueReturnModelFromDomain creates a persistence model from the aggregate
func IssueReturnModelFromDomain(ir *procurement.IssueReturn) *IssueReturnModel {
	m := &IssueReturnModel{
		IRNumber: ir.IRNumber,
		IRDate:   ir.IRDate,
		DRNumber: ir.DRNumber,
		DRDate:   timePtr(ir.DRDate),
		Remarks:  ir.Remarks,
		Rows:     make([]IssueReturnRowModel, len(ir.Rows)),
	}
	m.FromDomainOwnedAggregateRoot(ir.OwnedAggregateRoot)
	for i, row := range ir.Rows {
		m.Rows[i] = IssueReturnRowModel{
			IssueReturnID:      ir.ID,
			Position:           i,
			Action:             row.Action,
			SerialNo:           row.SerialNo,
			Level3ItemCategory: row.Level3ItemCategory,
			ItemName:           row.ItemName,
			Unit:               row.Unit,
			IssueQty:           row.IssueQty,
			PreviousReturnQty:  row.PreviousReturnQty,
			BalanceIssueQty:    row.BalanceIssueQty,
			ReturnQty:          row.ReturnQty,
			RowRemarks:         row.RowRemarks,
		}
	}
	return m
}
