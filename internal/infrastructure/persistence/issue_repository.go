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

// GormIssueRepository implements IssueRepository using GORM
type GormIssueRepository struct {
	db *gorm.DB
}

// NewGormIssueRepository creates a new GormIssueRepository
func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{db: db}
}

// FindByID finds an issue by its ID
func (r *GormIssueRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Issue, error) {
	var model models.IssueModel
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

// FindByNumber finds an issue by its demand number
func (r *GormIssueRepository) FindByNumber(ctx context.Context, demandNo string) (*procurement.Issue, error) {
	var model models.IssueModel
	if err := r.db.WithContext(ctx).
		Preload("Rows", orderByPosition).
		First(&model, "demand_no = ?", demandNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNumber checks whether a demand number is already taken
func (r *GormIssueRepository) ExistsByNumber(ctx context.Context, demandNo string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.IssueModel{}).
		Where("demand_no = ?", demandNo).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds issues matching the filter
func (r *GormIssueRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.Issue, error) {
	var issueModels []models.IssueModel
	query := r.db.WithContext(ctx).Model(&models.IssueModel{})
	query = r.applyFilter(query, filter)
	if err := query.Preload("Rows", orderByPosition).Find(&issueModels).Error; err != nil {
		return nil, err
	}
	issues := make([]procurement.Issue, len(issueModels))
	for i, model := range issueModels {
		issues[i] = *model.ToDomain()
	}
	return issues, nil
}

// Count counts issues matching the filter
func (r *GormIssueRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.IssueModel{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an issue, replacing its rows wholesale.
// A unique violation on the demand number comes back as ErrDuplicateKey.
func (r *GormIssueRepository) Save(ctx context.Context, is *procurement.Issue) error {
	return translateWriteError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.IssueModelFromDomain(is)

		if err := tx.Omit("Rows").Save(model).Error; err != nil {
			return err
		}

		if err := tx.Where("issue_id = ?", is.ID).
			Delete(&models.IssueRowModel{}).Error; err != nil {
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

// Delete deletes an issue and its rows
func (r *GormIssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).
			Delete(&models.IssueRowModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.IssueModel{}, "id = ?", id)
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
func (r *GormIssueRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, IssueSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormIssueRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("demand_no ILIKE ? OR issue_number ILIKE ? OR grn_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "grn_number":
			query = query.Where("grn_number = ?", value)
		case "issue_to_department":
			query = query.Where("issue_to_department = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormIssueRepository implements IssueRepository
var _ procurement.IssueRepository = (*GormIssueRepository)(nil)
