package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/infrastructure/persistence/models"
)

// GormRequisitionRepository implements RequisitionRepository using GORM
type GormRequisitionRepository struct {
	db *gorm.DB
}

// NewGormRequisitionRepository creates a new GormRequisitionRepository
func NewGormRequisitionRepository(db *gorm.DB) *GormRequisitionRepository {
	return &GormRequisitionRepository{db: db}
}

// FindByID finds a requisition by its ID
func (r *GormRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Requisition, error) {
	var model models.RequisitionModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a requisition by its DR number
func (r *GormRequisitionRepository) FindByNumber(ctx context.Context, drNumber string) (*procurement.Requisition, error) {
	var model models.RequisitionModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		First(&model, "dr_number = ?", drNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNumber checks whether a DR number is already taken
func (r *GormRequisitionRepository) ExistsByNumber(ctx context.Context, drNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RequisitionModel{}).
		Where("dr_number = ?", drNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds requisitions matching the filter
func (r *GormRequisitionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.Requisition, error) {
	var rowModels []models.RequisitionModel
	query := r.db.WithContext(ctx).Model(&models.RequisitionModel{})
	query = r.applyFilter(query, filter)
	if err := query.Preload("Items", orderByPosition).Find(&rowModels).Error; err != nil {
		return nil, err
	}
	result := make([]procurement.Requisition, len(rowModels))
	for i, model := range rowModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// Count counts requisitions matching the filter
func (r *GormRequisitionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RequisitionModel{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a requisition. Item rows carry no identity of
// their own, so they are replaced wholesale in document order. A unique
// violation on the DR number comes back as ErrDuplicateKey.
func (r *GormRequisitionRepository) Save(ctx context.Context, req *procurement.Requisition) error {
	return translateWriteError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RequisitionModelFromDomain(req)

		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		if err := tx.Where("requisition_id = ?", req.ID).
			Delete(&models.RequisitionItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// Delete deletes a requisition and its item rows
func (r *GormRequisitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("requisition_id = ?", id).
			Delete(&models.RequisitionItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.RequisitionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormRequisitionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Whitelist validation prevents SQL injection through sort params
	sortField := ValidateSortField(filter.OrderBy, RequisitionSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRequisitionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("dr_number ILIKE ? OR department ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "requisition_type":
			query = query.Where("requisition_type = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("date <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormRequisitionRepository implements RequisitionRepository
var _ procurement.RequisitionRepository = (*GormRequisitionRepository)(nil)
