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

// GormGRNReturnRepository implements GRNReturnRepository using GORM
type GormGRNReturnRepository struct {
	db *gorm.DB
}

// NewGormGRNReturnRepository creates a new GormGRNReturnRepository
func NewGormGRNReturnRepository(db *gorm.DB) *GormGRNReturnRepository {
	return &GormGRNReturnRepository{db: db}
}

// FindByID finds a GRN return by its ID
func (r *GormGRNReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.GRNReturn, error) {
	var model models.GRNReturnModel
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

// FindByNumber finds a GRN return by its GRNR number
func (r *GormGRNReturnRepository) FindByNumber(ctx context.Context, grnrNumber string) (*procurement.GRNReturn, error) {
	var model models.GRNReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Rows", orderByPosition).
		First(&model, "grnr_number = ?", grnrNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNumber checks whether a GRNR number is already taken
func (r *GormGRNReturnRepository) ExistsByNumber(ctx context.Context, grnrNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GRNReturnModel{}).
		Where("grnr_number = ?", grnrNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds GRN returns matching the filter
func (r *GormGRNReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.GRNReturn, error) {
	var returnModels []models.GRNReturnModel
	query := r.db.WithContext(ctx).Model(&models.GRNReturnModel{})
	query = r.applyFilter(query, filter)
	if err := query.Preload("Rows", orderByPosition).Find(&returnModels).Error; err != nil {
		return nil, err
	}
	returns := make([]procurement.GRNReturn, len(returnModels))
	for i, model := range returnModels {
		returns[i] = *model.ToDomain()
	}
	return returns, nil
}

// Count counts GRN returns matching the filter
func (r *GormGRNReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.GRNReturnModel{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a GRN return, replacing its rows wholesale.
// A unique violation on the return number comes back as ErrDuplicateKey.
func (r *GormGRNReturnRepository) Save(ctx context.Context, gr *procurement.GRNReturn) error {
	return translateWriteError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.GRNReturnModelFromDomain(gr)

		if err := tx.Omit("Rows").Save(model).Error; err != nil {
			return err
		}

		if err := tx.Where("grn_return_id = ?", gr.ID).
			Delete(&models.GRNReturnRowModel{}).Error; err != nil {
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

// Delete deletes a GRN return and its rows
func (r *GormGRNReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grn_return_id = ?", id).
			Delete(&models.GRNReturnRowModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.GRNReturnModel{}, "id = ?", id)
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
func (r *GormGRNReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, GRNReturnSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormGRNReturnRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("grnr_number ILIKE ? OR grn_number ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "grn_number":
			query = query.Where("grn_number = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("grnr_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("grnr_date <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormGRNReturnRepository implements GRNReturnRepository
var _ procurement.GRNReturnRepository = (*GormGRNReturnRepository)(nil)
