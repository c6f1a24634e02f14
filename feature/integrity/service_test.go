package integrity

import (
	"context"
	"errors"
	"testing"

	"returns-bridge/core/database"
	"returns-bridge/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lineItemTable = `CREATE TABLE CAD_IPE (
	IPE_COD INTEGER PRIMARY KEY AUTOINCREMENT,
	REV_COD INTEGER, PED_COD INTEGER, CUP_REF varchar(50), PRO_DES varchar(255),
	IPE_VTL decimal(10,2), IPE_STA INTEGER, IPE_DFP INTEGER, IPE_DDV datetime,
	USU_DEV varchar(50), CUP_COD varchar(50), UNI_COD varchar(50),
	REMARCADO_PROX_MES boolean
)`

// setupSQLite opens an in-memory database, optionally creating CAD_IPE.
func setupSQLite(t *testing.T, withTable bool) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	if withTable {
		require.NoError(t, db.Exec(lineItemTable).Error)
	}
	return db
}

func TestService_Schema(t *testing.T) {
	svc := NewService(database.Static{DB: setupSQLite(t, true)}, nil, "", "", zap.NewNop())

	report, err := svc.CheckSchema(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "CAD_IPE", report.Table)
}

func TestService_SchemaUnavailable(t *testing.T) {
	svc := NewService(database.Static{}, nil, "", "", zap.NewNop())

	_, err := svc.CheckSchema(context.Background())
	assert.ErrorIs(t, err, database.ErrUnavailable)
}

func TestService_Storage(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(database.Static{}, mockClient, "test-bucket", "us-east-1", zap.NewNop())

	t.Run("CheckStorage", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil).Once()

		report, err := svc.CheckStorage(context.Background())
		assert.NoError(t, err)
		assert.False(t, report.Exists)
	})

	t.Run("FixStorage", func(t *testing.T) {
		mockClient.On("MakeBucket", mock.Anything, "test-bucket", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil).Once()

		assert.NoError(t, svc.FixStorage(context.Background()))
	})

	t.Run("FixStorageError", func(t *testing.T) {
		mockClient.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(errors.New("denied")).Once()

		assert.Error(t, svc.FixStorage(context.Background()))
	})

	mockClient.AssertExpectations(t)
}

func TestService_StorageDisabled(t *testing.T) {
	svc := NewService(database.Static{}, nil, "", "", zap.NewNop())

	_, err := svc.CheckStorage(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, svc.FixStorage(context.Background()), ErrStorageDisabled)
}
