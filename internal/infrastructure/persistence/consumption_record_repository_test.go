package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/procure/backend/internal/domain/procurement"
)

// newMockConsumptionRepository creates a GormConsumptionRepository with a mocked SQL connection
func newMockConsumptionRepository(t *testing.T) (*GormConsumptionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return NewGormConsumptionRepository(gormDB), mock, mockDB
}

func TestGormConsumptionRepository_ReplaceForDocument(t *testing.T) {
	t.Run("replaces existing records with new claims", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "consumption_records" WHERE link = \$1 AND document_id = \$2`).
			WithArgs(procurement.LinkPOToGRN, documentID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "consumption_records"`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		claims := []procurement.Consumption{
			{UpstreamKey: "PO-1", Item: "Rice", Quantity: decimal.NewFromInt(40)},
			{UpstreamKey: "PO-1", Item: "Flour", Quantity: decimal.NewFromInt(10)},
		}

		err := repo.ReplaceForDocument(context.Background(), procurement.LinkPOToGRN, documentID, claims)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clears records when no claims remain", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "consumption_records" WHERE link = \$1 AND document_id = \$2`).
			WithArgs(procurement.LinkGRNToIssue, documentID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		err := repo.ReplaceForDocument(context.Background(), procurement.LinkGRNToIssue, documentID, nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormConsumptionRepository_SumByUpstream(t *testing.T) {
	t.Run("sums quantities per item excluding the editing document", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		excludeID := uuid.New()

		rows := sqlmock.NewRows([]string{"item", "total"}).
			AddRow("Rice", decimal.NewFromInt(60)).
			AddRow("Flour", decimal.NewFromInt(25))

		mock.ExpectQuery(`SELECT item, SUM\(quantity\) AS total FROM "consumption_records" WHERE link = \$1 AND upstream_key = \$2 AND document_id <> \$3 GROUP BY "item"`).
			WithArgs(procurement.LinkPOToGRN, "PO-1", excludeID).
			WillReturnRows(rows)

		consumed, err := repo.SumByUpstream(context.Background(), procurement.LinkPOToGRN, "PO-1", excludeID)

		assert.NoError(t, err)
		require.Len(t, consumed, 2)
		assert.True(t, consumed["Rice"].Equal(decimal.NewFromInt(60)))
		assert.True(t, consumed["Flour"].Equal(decimal.NewFromInt(25)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty map when nothing is consumed", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		excludeID := uuid.New()

		mock.ExpectQuery(`SELECT item, SUM\(quantity\) AS total FROM "consumption_records"`).
			WithArgs(procurement.LinkIssueToIssueRtrn, "DN-9", excludeID).
			WillReturnRows(sqlmock.NewRows([]string{"item", "total"}))

		consumed, err := repo.SumByUpstream(context.Background(), procurement.LinkIssueToIssueRtrn, "DN-9", excludeID)

		assert.NoError(t, err)
		assert.Empty(t, consumed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
