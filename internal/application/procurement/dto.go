package procurement

import (
	"time"

	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Dates cross the API as DD-MM-YYYY strings and are parsed at the DTO
// boundary; domain types carry time.Time.

// ==================== Requisition DTOs ====================

// RequisitionItemInput is one line of a requisition request
type RequisitionItemInput struct {
	Level3ItemCategory string          `json:"level3ItemCategory" binding:"required"`
	ItemName           string          `json:"itemName" binding:"required"`
	UOM                string          `json:"uom" binding:"required"`
	Quantity           decimal.Decimal `json:"quantity" binding:"required"`
	Rate               decimal.Decimal `json:"rate"`
	Amount             decimal.Decimal `json:"amount"`
	Remarks            string          `json:"remarks" binding:"max=150"`
}

// RequisitionRequest creates or fully replaces a requisition
type RequisitionRequest struct {
	DRNumber        string                 `json:"drNumber" binding:"required,max=10"`
	Date            string                 `json:"date" binding:"required"`
	Department      string                 `json:"department" binding:"required"`
	RequisitionType string                 `json:"requisitionType" binding:"required"`
	HeaderRemarks   string                 `json:"headerRemarks" binding:"max=150"`
	Items           []RequisitionItemInput `json:"items" binding:"required,min=1,dive"`
}

func (r RequisitionRequest) toDomain() (procurement.RequisitionHeader, []procurement.RequisitionItem, error) {
	date, err := shared.ParseDocDate(r.Date)
	if err != nil {
		return procurement.RequisitionHeader{}, nil, err
	}
	header := procurement.RequisitionHeader{
		DRNumber:        r.DRNumber,
		Date:            date,
		Department:      r.Department,
		RequisitionType: r.RequisitionType,
		HeaderRemarks:   r.HeaderRemarks,
	}
	items := make([]procurement.RequisitionItem, 0, len(r.Items))
	for _, in := range r.Items {
		items = append(items, procurement.RequisitionItem{
			Level3ItemCategory: in.Level3ItemCategory,
			ItemName:           in.ItemName,
			UOM:                in.UOM,
			Quantity:           in.Quantity,
			Rate:               in.Rate,
			Amount:             in.Amount,
			Remarks:            in.Remarks,
		})
	}
	return header, items, nil
}

// RequisitionItemResponse is one line of a requisition response
type RequisitionItemResponse struct {
	Level3ItemCategory string          `json:"level3ItemCategory"`
	ItemName           string          `json:"itemName"`
	UOM                string          `json:"uom"`
	Quantity           decimal.Decimal `json:"quantity"`
	Rate               decimal.Decimal `json:"rate"`
	Amount             decimal.Decimal `json:"amount"`
	Remarks            string          `json:"remarks"`
}

// RequisitionResponse is the read model of a requisition
type RequisitionResponse struct {
	ID              string                    `json:"id"`
	DRNumber        string                    `json:"drNumber"`
	Date            string                    `json:"date"`
	Department      string                    `json:"department"`
	RequisitionType string                    `json:"requisitionType"`
	HeaderRemarks   string                    `json:"headerRemarks"`
	Items           []RequisitionItemResponse `json:"items"`
	CreatedBy       string                    `json:"createdBy"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

func toRequisitionResponse(r *procurement.Requisition) *RequisitionResponse {
	items := make([]RequisitionItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, RequisitionItemResponse{
			Level3ItemCategory: it.Level3ItemCategory,
			ItemName:           it.ItemName,
			UOM:                it.UOM,
			Quantity:           it.Quantity,
			Rate:               it.Rate,
			Amount:             it.Amount,
			Remarks:            it.Remarks,
		})
	}
	return &RequisitionResponse{
		ID:              r.ID.String(),
		DRNumber:        r.DRNumber,
		Date:            shared.FormatDocDate(r.Date),
		Department:      r.Department,
		RequisitionType: r.RequisitionType,
		HeaderRemarks:   r.HeaderRemarks,
		Items:           items,
		CreatedBy:       r.CreatedBy.String(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ==================== Purchase Order DTOs ====================

// PurchaseOrderRowInput is one line of a purchase order request. Monetary
// fields other than rate are optional; missing values are derived.
type PurchaseOrderRowInput struct {
	Requisition        string          `json:"requisition"`
	Department         string          `json:"department" binding:"required"`
	Category           string          `json:"category" binding:"required"`
	Name               string          `json:"name" binding:"required"`
	UOM                string          `json:"uom" binding:"required"`
	Quantity           decimal.Decimal `json:"quantity" binding:"required"`
	Rate               decimal.Decimal `json:"rate"`
	ExcludingTaxAmount decimal.Decimal `json:"excludingTaxAmount"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	OtherChargesAmount decimal.Decimal `json:"otherChargesAmount"`
	RowRemarks         string          `json:"rowRemarks" binding:"max=150"`
}

// PurchaseOrderRequest creates or fully replaces a purchase order
type PurchaseOrderRequest struct {
	PONumber        string                  `json:"poNumber" binding:"required"`
	Date            string                  `json:"date" binding:"required"`
	PODelivery      string                  `json:"poDelivery" binding:"required"`
	RequisitionType string                  `json:"requisitionType" binding:"required"`
	Supplier        string                  `json:"supplier" binding:"required"`
	Store           string                  `json:"store" binding:"required"`
	Payment         string                  `json:"payment" binding:"required"`
	Purchaser       string                  `json:"purchaser" binding:"required"`
	Remarks         string                  `json:"remarks" binding:"max=150"`
	Rows            []PurchaseOrderRowInput `json:"rows" binding:"required,min=1,dive"`
}

func (r PurchaseOrderRequest) toDomain() (procurement.PurchaseOrderHeader, []procurement.PurchaseOrderRow, error) {
	date, err := shared.ParseDocDate(r.Date)
	if err != nil {
		return procurement.PurchaseOrderHeader{}, nil, err
	}
	header := procurement.PurchaseOrderHeader{
		PONumber:        r.PONumber,
		Date:            date,
		PODelivery:      r.PODelivery,
		RequisitionType: r.RequisitionType,
		Supplier:        r.Supplier,
		Store:           r.Store,
		Payment:         r.Payment,
		Purchaser:       r.Purchaser,
		Remarks:         r.Remarks,
	}
	rows := make([]procurement.PurchaseOrderRow, 0, len(r.Rows))
	for _, in := range r.Rows {
		rows = append(rows, procurement.PurchaseOrderRow{
			Requisition:        in.Requisition,
			Department:         in.Department,
			Category:           in.Category,
			Name:               in.Name,
			UOM:                in.UOM,
			Quantity:           in.Quantity,
			Rate:               in.Rate,
			ExcludingTaxAmount: in.ExcludingTaxAmount,
			DiscountAmount:     in.DiscountAmount,
			OtherChargesAmount: in.OtherChargesAmount,
			RowRemarks:         in.RowRemarks,
		})
	}
	return header, rows, nil
}

// PurchaseOrderRowResponse is one line of a purchase order response
type PurchaseOrderRowResponse struct {
	Requisition        string          `json:"requisition"`
	Department         string          `json:"department"`
	Category           string          `json:"category"`
	Name               string          `json:"name"`
	UOM                string          `json:"uom"`
	Quantity           decimal.Decimal `json:"quantity"`
	Rate               decimal.Decimal `json:"rate"`
	ExcludingTaxAmount decimal.Decimal `json:"excludingTaxAmount"`
	GSTPercent         decimal.Decimal `json:"gstPercent"`
	GSTAmount          decimal.Decimal `json:"gstAmount"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	OtherChargesAmount decimal.Decimal `json:"otherChargesAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	RowRemarks         string          `json:"rowRemarks"`
}

// PurchaseOrderResponse is the read model of a purchase order
type PurchaseOrderResponse struct {
	ID              string                     `json:"id"`
	PONumber        string                     `json:"poNumber"`
	Date            string                     `json:"date"`
	PODelivery      string                     `json:"poDelivery"`
	RequisitionType string                     `json:"requisitionType"`
	Supplier        string                     `json:"supplier"`
	Store           string                     `json:"store"`
	Payment         string                     `json:"payment"`
	Purchaser       string                     `json:"purchaser"`
	Remarks         string                     `json:"remarks"`
	Rows            []PurchaseOrderRowResponse `json:"rows"`
	TotalAmount     decimal.Decimal            `json:"totalAmount"`
	CreatedBy       string                     `json:"createdBy"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

func toPurchaseOrderResponse(po *procurement.PurchaseOrder) *PurchaseOrderResponse {
	rows := make([]PurchaseOrderRowResponse, 0, len(po.Rows))
	for _, row := range po.Rows {
		rows = append(rows, PurchaseOrderRowResponse{
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
		})
	}
	return &PurchaseOrderResponse{
		ID:              po.ID.String(),
		PONumber:        po.PONumber,
		Date:            shared.FormatDocDate(po.Date),
		PODelivery:      po.PODelivery,
		RequisitionType: po.RequisitionType,
		Supplier:        po.Supplier,
		Store:           po.Store,
		Payment:         po.Payment,
		Purchaser:       po.Purchaser,
		Remarks:         po.Remarks,
		Rows:            rows,
		TotalAmount:     po.TotalAmount(),
		CreatedBy:       po.CreatedBy.String(),
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}
}

// ==================== GRN DTOs ====================

// GRNRowInput is one line of a goods receipt request
type GRNRowInput struct {
	PONo         string          `json:"poNo"`
	Department   string          `json:"department" binding:"required"`
	Category     string          `json:"category" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
	POQty        decimal.Decimal `json:"poQty"`
	PreviousQty  decimal.Decimal `json:"previousQty"`
	BalancePOQty decimal.Decimal `json:"balancePoQty"`
	ReceivedQty  decimal.Decimal `json:"receivedQty" binding:"required"`
	RowRemarks   string          `json:"rowRemarks" binding:"max=150"`
}

// GRNRequest creates or fully replaces a goods receipt note
type GRNRequest struct {
	GRNNumber             string        `json:"grnNumber" binding:"required"`
	Date                  string        `json:"date" binding:"required"`
	SupplierChallanNumber string        `json:"supplierChallanNumber"`
	SupplierChallanDate   string        `json:"supplierChallanDate"`
	Supplier              string        `json:"supplier" binding:"required"`
	InwardNumber          string        `json:"inwardNumber"`
	InwardDate            string        `json:"inwardDate"`
	Remarks               string        `json:"remarks" binding:"max=150"`
	Rows                  []GRNRowInput `json:"rows" binding:"required,min=1,dive"`
}

func (r GRNRequest) toDomain() (procurement.GRNHeader, []procurement.GRNRow, error) {
	date, err := shared.ParseDocDate(r.Date)
	if err != nil {
		return procurement.GRNHeader{}, nil, err
	}
	challanDate, err := parseOptionalDate(r.SupplierChallanDate)
	if err != nil {
		return procurement.GRNHeader{}, nil, err
	}
	inwardDate, err := parseOptionalDate(r.InwardDate)
	if err != nil {
		return procurement.GRNHeader{}, nil, err
	}
	header := procurement.GRNHeader{
		GRNNumber:             r.GRNNumber,
		Date:                  date,
		SupplierChallanNumber: r.SupplierChallanNumber,
		SupplierChallanDate:   challanDate,
		Supplier:              r.Supplier,
		InwardNumber:          r.InwardNumber,
		InwardDate:            inwardDate,
		Remarks:               r.Remarks,
	}
	rows := make([]procurement.GRNRow, 0, len(r.Rows))
	for _, in := range r.Rows {
		rows = append(rows, procurement.GRNRow{
			PONo:         in.PONo,
			Department:   in.Department,
			Category:     in.Category,
			Name:         in.Name,
			Unit:         in.Unit,
			POQty:        in.POQty,
			PreviousQty:  in.PreviousQty,
			BalancePOQty: in.BalancePOQty,
			ReceivedQty:  in.ReceivedQty,
			RowRemarks:   in.RowRemarks,
		})
	}
	return header, rows, nil
}

// GRNRowResponse is one line of a goods receipt response
type GRNRowResponse struct {
	PONo         string          `json:"poNo"`
	Department   string          `json:"department"`
	Category     string          `json:"category"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	POQty        decimal.Decimal `json:"poQty"`
	PreviousQty  decimal.Decimal `json:"previousQty"`
	BalancePOQty decimal.Decimal `json:"balancePoQty"`
	ReceivedQty  decimal.Decimal `json:"receivedQty"`
	RowRemarks   string          `json:"rowRemarks"`
}

// GRNResponse is the read model of a goods receipt note
type GRNResponse struct {
	ID                    string           `json:"id"`
	GRNNumber             string           `json:"grnNumber"`
	Date                  string           `json:"date"`
	SupplierChallanNumber string           `json:"supplierChallanNumber"`
	SupplierChallanDate   string           `json:"supplierChallanDate"`
	Supplier              string           `json:"supplier"`
	InwardNumber          string           `json:"inwardNumber"`
	InwardDate            string           `json:"inwardDate"`
	Remarks               string           `json:"remarks"`
	Rows                  []GRNRowResponse `json:"rows"`
	CreatedBy             string           `json:"createdBy"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

func toGRNResponse(g *procurement.GRN) *GRNResponse {
	rows := make([]GRNRowResponse, 0, len(g.Rows))
	for _, row := range g.Rows {
		rows = append(rows, GRNRowResponse{
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
		})
	}
	return &GRNResponse{
		ID:                    g.ID.String(),
		GRNNumber:             g.GRNNumber,
		Date:                  shared.FormatDocDate(g.Date),
		SupplierChallanNumber: g.SupplierChallanNumber,
		SupplierChallanDate:   formatOptionalDate(g.SupplierChallanDate),
		Supplier:              g.Supplier,
		InwardNumber:          g.InwardNumber,
		InwardDate:            formatOptionalDate(g.InwardDate),
		Remarks:               g.Remarks,
		Rows:                  rows,
		CreatedBy:             g.CreatedBy.String(),
		CreatedAt:             g.CreatedAt,
		UpdatedAt:             g.UpdatedAt,
	}
}

// ==================== GRN Return DTOs ====================

// GRNReturnRowInput is one line of a GRN return request
type GRNReturnRowInput struct {
	Action            string          `json:"action"`
	SerialNo          string          `json:"serialNo"`
	Category          string          `json:"category" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	Unit              string          `json:"unit" binding:"required"`
	GRNQty            decimal.Decimal `json:"grnQty"`
	PreviousReturnQty decimal.Decimal `json:"previousReturnQty"`
	BalanceGRNQty     decimal.Decimal `json:"balanceGrnQty"`
	ReturnQty         decimal.Decimal `json:"returnQty" binding:"required"`
	RowRemarks        string          `json:"rowRemarks" binding:"max=150"`
}

// GRNReturnRequest creates or fully replaces a GRN return
type GRNReturnRequest struct {
	GRNRNumber string              `json:"grnrNumber" binding:"required"`
	GRNRDate   string              `json:"grnrDate" binding:"required"`
	GRNNumber  string              `json:"grnNumber" binding:"required"`
	GRNDate    string              `json:"grnDate"`
	Remarks    string              `json:"remarks" binding:"max=150"`
	Rows       []GRNReturnRowInput `json:"rows" binding:"required,min=1,dive"`
}

func (r GRNReturnRequest) toDomain() (procurement.GRNReturnHeader, []procurement.GRNReturnRow, error) {
	grnrDate, err := shared.ParseDocDate(r.GRNRDate)
	if err != nil {
		return procurement.GRNReturnHeader{}, nil, err
	}
	grnDate, err := parseOptionalDate(r.GRNDate)
	if err != nil {
		return procurement.GRNReturnHeader{}, nil, err
	}
	header := procurement.GRNReturnHeader{
		GRNRNumber: r.GRNRNumber,
		GRNRDate:   grnrDate,
		GRNNumber:  r.GRNNumber,
		GRNDate:    grnDate,
		Remarks:    r.Remarks,
	}
	rows := make([]procurement.GRNReturnRow, 0, len(r.Rows))
	for _, in := range r.Rows {
		rows = append(rows, procurement.GRNReturnRow{
			Action:            in.Action,
			SerialNo:          in.SerialNo,
			Category:          in.Category,
			Name:              in.Name,
			Unit:              in.Unit,
			GRNQty:            in.GRNQty,
			PreviousReturnQty: in.PreviousReturnQty,
			BalanceGRNQty:     in.BalanceGRNQty,
			ReturnQty:         in.ReturnQty,
			RowRemarks:        in.RowRemarks,
		})
	}
	return header, rows, nil
}

// GRNReturnRowResponse is one line of a GRN return response
type GRNReturnRowResponse struct {
	Action            string          `json:"action"`
	SerialNo          string          `json:"serialNo"`
	Category          string          `json:"category"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	GRNQty            decimal.Decimal `json:"grnQty"`
	PreviousReturnQty decimal.Decimal `json:"previousReturnQty"`
	BalanceGRNQty     decimal.Decimal `json:"balanceGrnQty"`
	ReturnQty         decimal.Decimal `json:"returnQty"`
	RowRemarks        string          `json:"rowRemarks"`
}

// GRNReturnResponse is the read model of a GRN return
type GRNReturnResponse struct {
	ID         string                 `json:"id"`
	GRNRNumber string                 `json:"grnrNumber"`
	GRNRDate   string                 `json:"grnrDate"`
	GRNNumber  string                 `json:"grnNumber"`
	GRNDate    string                 `json:"grnDate"`
	Remarks    string                 `json:"remarks"`
	Rows       []GRNReturnRowResponse `json:"rows"`
	CreatedBy  string                 `json:"createdBy"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

func toGRNReturnResponse(gr *procurement.GRNReturn) *GRNReturnResponse {
	rows := make([]GRNReturnRowResponse, 0, len(gr.Rows))
	for _, row := range gr.Rows {
		rows = append(rows, GRNReturnRowResponse{
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
		})
	}
	return &GRNReturnResponse{
		ID:         gr.ID.String(),
		GRNRNumber: gr.GRNRNumber,
		GRNRDate:   shared.FormatDocDate(gr.GRNRDate),
		GRNNumber:  gr.GRNNumber,
		GRNDate:    formatOptionalDate(gr.GRNDate),
		Remarks:    gr.Remarks,
		Rows:       rows,
		CreatedBy:  gr.CreatedBy.String(),
		CreatedAt:  gr.CreatedAt,
		UpdatedAt:  gr.UpdatedAt,
	}
}

// ==================== Issue DTOs ====================

// IssueRowInput is one line of an issue request
type IssueRowInput struct {
	Action             string          `json:"action"`
	SerialNo           string          `json:"serialNo"`
	Level3ItemCategory string          `json:"level3ItemCategory" binding:"required"`
	ItemName           string          `json:"itemName" binding:"required"`
	UOM                string          `json:"uom" binding:"required"`
	GRNQty             decimal.Decimal `json:"grnQty"`
	PreviousIssueQty   decimal.Decimal `json:"previousIssueQty"`
	BalanceQty         decimal.Decimal `json:"balanceQty"`
	IssueQty           decimal.Decimal `json:"issueQty" binding:"required"`
	RowRemarks         string          `json:"rowRemarks" binding:"max=150"`
}

// IssueRequest creates or fully replaces an issue
type IssueRequest struct {
	IssueNumber       string          `json:"issueNumber"`
	GRNNumber         string          `json:"grnNumber"`
	IssueDate         string          `json:"issueDate" binding:"required"`
	Store             string          `json:"store" binding:"required"`
	RequisitionType   string          `json:"requisitionType" binding:"required"`
	IssueToUnit       string          `json:"issueToUnit" binding:"required"`
	IssueToDepartment string          `json:"issueToDepartment" binding:"required"`
	DemandNo          string          `json:"demandNo" binding:"required"`
	VehicleType       string          `json:"vehicleType"`
	VehicleNo         string          `json:"vehicleNo"`
	Driver            string          `json:"driver"`
	Remarks           string          `json:"remarks" binding:"max=150"`
	Rows              []IssueRowInput `json:"rows" binding:"required,min=1,dive"`
}

func (r IssueRequest) toDomain() (procurement.IssueHeader, []procurement.IssueRow, error) {
	issueDate, err := shared.ParseDocDate(r.IssueDate)
	if err != nil {
		return procurement.IssueHeader{}, nil, err
	}
	header := procurement.IssueHeader{
		IssueNumber:       r.IssueNumber,
		GRNNumber:         r.GRNNumber,
		IssueDate:         issueDate,
		Store:             r.Store,
		RequisitionType:   r.RequisitionType,
		IssueToUnit:       r.IssueToUnit,
		IssueToDepartment: r.IssueToDepartment,
		DemandNo:          r.DemandNo,
		VehicleType:       r.VehicleType,
		VehicleNo:         r.VehicleNo,
		Driver:            r.Driver,
		Remarks:           r.Remarks,
	}
	rows := make([]procurement.IssueRow, 0, len(r.Rows))
	for _, in := range r.Rows {
		rows = append(rows, procurement.IssueRow{
			Action:             in.Action,
			SerialNo:           in.SerialNo,
			Level3ItemCategory: in.Level3ItemCategory,
			ItemName:           in.ItemName,
			UOM:                in.UOM,
			GRNQty:             in.GRNQty,
			PreviousIssueQty:   in.PreviousIssueQty,
			BalanceQty:         in.BalanceQty,
			IssueQty:           in.IssueQty,
			RowRemarks:         in.RowRemarks,
		})
	}
	return header, rows, nil
}

// IssueRowResponse is one line of an issue response
type IssueRowResponse struct {
	Action             string          `json:"action"`
	SerialNo           string          `json:"serialNo"`
	Level3ItemCategory string          `json:"level3ItemCategory"`
	ItemName           string          `json:"itemName"`
	UOM                string          `json:"uom"`
	GRNQty             decimal.Decimal `json:"grnQty"`
	PreviousIssueQty   decimal.Decimal `json:"previousIssueQty"`
	BalanceQty         decimal.Decimal `json:"balanceQty"`
	IssueQty           decimal.Decimal `json:"issueQty"`
	RowRemarks         string          `json:"rowRemarks"`
}

// IssueResponse is the read model of an issue
type IssueResponse struct {
	ID                string             `json:"id"`
	IssueNumber       string             `json:"issueNumber"`
	GRNNumber         string             `json:"grnNumber"`
	IssueDate         string             `json:"issueDate"`
	Store             string             `json:"store"`
	RequisitionType   string             `json:"requisitionType"`
	IssueToUnit       string             `json:"issueToUnit"`
	IssueToDepartment string             `json:"issueToDepartment"`
	DemandNo          string             `json:"demandNo"`
	VehicleType       string             `json:"vehicleType"`
	VehicleNo         string             `json:"vehicleNo"`
	Driver            string             `json:"driver"`
	Remarks           string             `json:"remarks"`
	Rows              []IssueRowResponse `json:"rows"`
	CreatedBy         string             `json:"createdBy"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

func toIssueResponse(is *procurement.Issue) *IssueResponse {
	rows := make([]IssueRowResponse, 0, len(is.Rows))
	for _, row := range is.Rows {
		rows = append(rows, IssueRowResponse{
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
		})
	}
	return &IssueResponse{
		ID:                is.ID.String(),
		IssueNumber:       is.IssueNumber,
		GRNNumber:         is.GRNNumber,
		IssueDate:         shared.FormatDocDate(is.IssueDate),
		Store:             is.Store,
		RequisitionType:   is.RequisitionType,
		IssueToUnit:       is.IssueToUnit,
		IssueToDepartment: is.IssueToDepartment,
		DemandNo:          is.DemandNo,
		VehicleType:       is.VehicleType,
		VehicleNo:         is.VehicleNo,
		Driver:            is.Driver,
		Remarks:           is.Remarks,
		Rows:              rows,
		CreatedBy:         is.CreatedBy.String(),
		CreatedAt:         is.CreatedAt,
		UpdatedAt:         is.UpdatedAt,
	}
}

// ==================== Issue Return DTOs ====================

// IssueReturnRowInput is one line of an issue return request
type IssueReturnRowInput struct {
	Action             string          `json:"action"`
	SerialNo           string          `json:"serialNo"`
	Level3ItemCategory string          `json:"level3ItemCategory" binding:"required"`
	ItemName           string          `json:"itemName" binding:"required"`
	Unit               string          `json:"unit" binding:"required"`
	IssueQty           decimal.Decimal `json:"issueQty"`
	PreviousReturnQty  decimal.Decimal `json:"previousReturnQty"`
	BalanceIssueQty    decimal.Decimal `json:"balanceIssueQty"`
	ReturnQty          decimal.Decimal `json:"returnQty" binding:"required"`
	RowRemarks         string          `json:"rowRemarks" binding:"max=150"`
}

// IssueReturnRequest creates or fully replaces an issue return
type IssueReturnRequest struct {
	IRNumber string                `json:"irNumber" binding:"required"`
	IRDate   string                `json:"irDate" binding:"required"`
	DRNumber string                `json:"drNumber" binding:"required"`
	DRDate   string                `json:"drDate"`
	Remarks  string                `json:"remarks" binding:"max=150"`
	Rows     []IssueReturnRowInput `json:"rows" binding:"required,min=1,dive"`
}

func (r IssueReturnRequest) toDomain() (procurement.IssueReturnHeader, []procurement.IssueReturnRow, error) {
	irDate, err := shared.ParseDocDate(r.IRDate)
	if err != nil {
		return procurement.IssueReturnHeader{}, nil, err
	}
	drDate, err := parseOptionalDate(r.DRDate)
	if err != nil {
		return procurement.IssueReturnHeader{}, nil, err
	}
	header := procurement.IssueReturnHeader{
		IRNumber: r.IRNumber,
		IRDate:   irDate,
		DRNumber: r.DRNumber,
		DRDate:   drDate,
		Remarks:  r.Remarks,
	}
	rows := make([]procurement.IssueReturnRow, 0, len(r.Rows))
	for _, in := range r.Rows {
		rows = append(rows, procurement.IssueReturnRow{
			Action:             in.Action,
			SerialNo:           in.SerialNo,
			Level3ItemCategory: in.Level3ItemCategory,
			ItemName:           in.ItemName,
			Unit:               in.Unit,
			IssueQty:           in.IssueQty,
			PreviousReturnQty:  in.PreviousReturnQty,
			BalanceIssueQty:    in.BalanceIssueQty,
			ReturnQty:          in.ReturnQty,
			RowRemarks:         in.RowRemarks,
		})
	}
	return header, rows, nil
}

// IssueReturnRowResponse is one line of an issue return response
type IssueReturnRowResponse struct {
	Action             string          `json:"action"`
	SerialNo           string          `json:"serialNo"`
	Level3ItemCategory string          `json:"level3ItemCategory"`
	ItemName           string          `json:"itemName"`
	Unit               string          `json:"unit"`
	IssueQty           decimal.Decimal `json:"issueQty"`
	PreviousReturnQty  decimal.Decimal `json:"previousReturnQty"`
	BalanceIssueQty    decimal.Decimal `json:"balanceIssueQty"`
	ReturnQty          decimal.Decimal `json:"returnQty"`
	RowRemarks         string          `json:"rowRemarks"`
}

// IssueReturnResponse is the read model of an issue return
type IssueReturnResponse struct {
	ID        string                   `json:"id"`
	IRNumber  string                   `json:"irNumber"`
	IRDate    string                   `json:"irDate"`
	DRNumber  string                   `json:"drNumber"`
	DRDate    string                   `json:"drDate"`
	Remarks   string                   `json:"remarks"`
	Rows      []IssueReturnRowResponse `json:"rows"`
	CreatedBy string                   `json:"createdBy"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func toIssueReturnResponse(ir *procurement.IssueReturn) *IssueReturnResponse {
	rows := make([]IssueReturnRowResponse, 0, len(ir.Rows))
	for _, row := range ir.Rows {
		rows = append(rows, IssueReturnRowResponse{
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
		})
	}
	return &IssueReturnResponse{
		ID:        ir.ID.String(),
		IRNumber:  ir.IRNumber,
		IRDate:    shared.FormatDocDate(ir.IRDate),
		DRNumber:  ir.DRNumber,
		DRDate:    formatOptionalDate(ir.DRDate),
		Remarks:   ir.Remarks,
		Rows:      rows,
		CreatedBy: ir.CreatedBy.String(),
		CreatedAt: ir.CreatedAt,
		UpdatedAt: ir.UpdatedAt,
	}
}

// ==================== helpers ====================

func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return shared.ParseDocDate(value)
}

func formatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return shared.FormatDocDate(t)
}
