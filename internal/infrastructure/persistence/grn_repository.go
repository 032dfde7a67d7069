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

// GormGRNRepository implements GRNRepository using GORM
type GormGRNRepository struct {
	db *gorm.DB
}

// NewGormGRNRepository creates a new GormGRNRepository
func NewGormGRNRepository(db *gorm.DB) *GormGRNRepository {
	return &GormGRNRepository{db: db}
}

// FindByID finds a GRN by its ID
func (r *GormGRNRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.GRN, error) {
	var model models.GRNModel
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

// FindByNumber finds a GRN by its GRN number
func (r *GormGRNRepository) FindByNumber(ctx context.Context, grnNumber string) (*procurement.GRN, error) {
	var model models.GRNModel
	if err := r.db.WithContext(ctx).
		Preload("Rows", orderByPosition).
		First(&model, "grn_number = ?", grnNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNumber checks whether a GRN number is already taken
func (r *GormGRNRepository) ExistsByNumber(ctx context.Context, grnNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GRNModel{}).
		Where("grn_number = ?", grnNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds GRNs matching the filter
func (r *GormGRNRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.GRN, error) {
	var grnModels []models.GRNModel
	query := r.db.WithContext(ctx).Model(&models.GRNModel{})
	query = r.applyFilter(query, filter)
	if err := query.Preload("Rows", orderByPosition).Find(&grnModels).Error; err != nil {
		return nil, err
	}
	grns := make([]procurement.GRN, len(grnModels))
	for i, model := range grnModels {
		grns[i] = *model.ToDomain()
	}
	return grns, nil
}

// Count counts GRNs matching the filter
func (r *GormGRNRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.GRNModel{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a GRN, replacing its rows wholesale.
// A unique violation on the GRN number comes back as ErrDuplicateKey.
func (r *GormGRNRepository) Save(ctx context.Context, grn *procurement.GRN) error {
	return translateWriteError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.GRNModelFromDomain(grn)

		if err := tx.Omit("Rows").Save(model).Error; err != nil {
			return err
		}

		if err := tx.Where("grn_id = ?", grn.ID).
			Delete(&models.GRNRowModel{}).Error; err != nil {
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

// Delete deletes a GRN and its rows
func (r *GormGRNRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grn_id = ?", id).
			Delete(&models.GRNRowModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.GRNModel{}, "id = ?", id)
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
func (r *GormGRNRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, GRNSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormGRNRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("grn_number ILIKE ? OR supplier ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "supplier":
			query = query.Where("supplier = ?", value)
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

// Ensure GormGRNRepository implements GRNRepository
var _ procurement.GRNRepository = (*GormGRNRepository)(nil)
