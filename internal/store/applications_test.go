package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStore_GetSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	startDate := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT applicant_id, credit_score").
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{
			"applicant_id", "credit_score", "monthly_income", "monthly_debt_payments",
			"loan_amount", "property_value",
		}).AddRow("applicant-001", 750, 10000.0, 2000.0, 375000.0, 500000.0))

	mock.ExpectQuery("FROM employment_history").
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"employer", "position", "start_date", "current"}).
			AddRow("Acme Corp", "Engineer", startDate, true))

	mock.ExpectQuery("FROM assets").
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"asset_type", "description", "value"}).
			AddRow("checking", "", 25000.0).
			AddRow("savings", "emergency fund", 35000.0))

	mock.ExpectQuery("FROM documents").
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_type", "status"}).
			AddRow("doc-001", "PAY_STUB", "verified"))

	store := NewApplicationStore(db)
	snapshot, err := store.GetSnapshot(context.Background(), "app-001")

	require.NoError(t, err)
	assert.Equal(t, "app-001", snapshot.ID)
	assert.Equal(t, "applicant-001", snapshot.ApplicantID)
	assert.Equal(t, 750, snapshot.CreditScore)
	assert.InDelta(t, 10000, snapshot.MonthlyIncome, 0.001)

	require.Len(t, snapshot.EmploymentHistory, 1)
	assert.Equal(t, "Acme Corp", snapshot.EmploymentHistory[0].Employer)

	require.Len(t, snapshot.Assets, 2)
	assert.InDelta(t, 60000, snapshot.TotalAssetValue(), 0.001)

	require.Len(t, snapshot.Documents, 1)
	assert.Equal(t, "doc-001", snapshot.Documents[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_GetSnapshot_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT applicant_id, credit_score").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	store := NewApplicationStore(db)
	snapshot, err := store.GetSnapshot(context.Background(), "missing")

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_GetSnapshot_EmptyRelations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT applicant_id, credit_score").
		WithArgs("app-002").
		WillReturnRows(sqlmock.NewRows([]string{
			"applicant_id", "credit_score", "monthly_income", "monthly_debt_payments",
			"loan_amount", "property_value",
		}).AddRow("applicant-002", 0, 0.0, 0.0, 100000.0, 0.0))

	mock.ExpectQuery("FROM employment_history").WithArgs("app-002").
		WillReturnRows(sqlmock.NewRows([]string{"employer", "position", "start_date", "current"}))
	mock.ExpectQuery("FROM assets").WithArgs("app-002").
		WillReturnRows(sqlmock.NewRows([]string{"asset_type", "description", "value"}))
	mock.ExpectQuery("FROM documents").WithArgs("app-002").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_type", "status"}))

	store := NewApplicationStore(db)
	snapshot, err := store.GetSnapshot(context.Background(), "app-002")

	require.NoError(t, err)
	assert.Empty(t, snapshot.EmploymentHistory)
	assert.Empty(t, snapshot.Assets)
	assert.Empty(t, snapshot.Documents)
	assert.NoError(t, mock.ExpectationsWereMet())
}
