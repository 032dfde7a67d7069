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

// GormIssueReturnRepository implements IssueReturnRepository using GORM
type GormIssueReturnRepository struct {
	db *gorm.DB
}

// NewGormIssueReturnRepository creates a new GormIssueReturnRepository
func NewGormIssueReturnRepository(db *gorm.DB) *GormIssueReturnRepository {
	return &GormIssueReturnRepository{db: db}
}

// FindByID finds an issue return by its ID
func (r *GormIssueReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.IssueReturn, error) {
	var model models.IssueReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Rows", orderByPosition).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an issue return by its IR number
func (r *GormIssueReturnRepository) FindByNumber(ctx context.Context, irNumber string) (*procurement.IssueReturn, error) {
	var model models.IssueReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Rows", orderByPosition).
		First(&model, "ir_number = ?", irNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNumber checks whether an IR number is already taken
func (r *GormIssueReturnRepository) ExistsByNumber(ctx context.Context, irNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.IssueReturnModel{}).
		Where("ir_number = ?", irNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds issue returns matching the filter
func (r *GormIssueReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.IssueReturn, error) {
	var returnModels []models.IssueReturnModel
	query := r.db.WithContext(ctx).Model(&models.IssueReturnModel{})
	query = r.applyFilter(query, filter)
	if err := query.Preload("Rows", orderByPosition).Find(&returnModels).Error; err != nil {
		return nil, err
	}
	returns := make([]procurement.IssueReturn, len(returnModels))
	for i, model := range returnModels {
		returns[i] = *model.ToDomain()
	}
	return returns, nil
}

// Count counts issue returns matching the filter
func (r *GormIssueReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.IssueReturnModel{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an issue return, replacing its rows wholesale.
// A unique violation on the return number comes back as ErrDuplicateKey.
func (r *GormIssueReturnRepository) Save(ctx context.Context, ir *procurement.IssueReturn) error {
	return translateWriteError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.IssueReturnModelFromDomain(ir)

		if err := tx.Omit("Rows").Save(model).Error; err != nil {
			return err
		}

		if err := tx.Where("issue_return_id = ?", ir.ID).
			Delete(&models.IssueReturnRowModel{}).Error; err != nil {
			return err
		}
		if len(model.Rows) > 0 {
			if err := tx.Create(&model.Rows).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// Delete deletes an issue return and its rows
func (r *GormIssueReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_return_id = ?", id).
			Delete(&models.IssueReturnRowModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.IssueReturnModel{}, "id = ?", id)
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
func (r *GormIssueReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, IssueReturnSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormIssueReturnRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("ir_number ILIKE ? OR dr_number ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "dr_number":
			query = query.Where("dr_number = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("ir_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("ir_date <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormIssueReturnRepository implements IssueReturnRepository
var _ procurement.IssueReturnRepository = (*GormIssueReturnRepository)(nil)
