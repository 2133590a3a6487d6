package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/store"
)

// newMockDB returns a database handle whose Begin/Commit/Rollback calls are
// scripted through sqlmock. The stores themselves are testify mocks; only
// the transaction lifecycle runs against the fake connection.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, dbMock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, dbMock
}

func newCategoryService(
	t *testing.T,
	categoryStore *MockCategoryStore,
	taskStore *MockTaskStore,
	db *sql.DB,
) CategoryService {
	t.Helper()
	svc, err := NewCategoryService(categoryStore, taskStore, db, nil)
	require.NoError(t, err)
	return svc
}

func TestNewCategoryService(t *testing.T) {
	t.Parallel()

	db, _ := newMockDB(t)

	t.Run("nil category store", func(t *testing.T) {
		_, err := NewCategoryService(nil, &MockTaskStore{}, db, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil task store", func(t *testing.T) {
		_, err := NewCategoryService(&MockCategoryStore{}, nil, db, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil db", func(t *testing.T) {
		_, err := NewCategoryService(&MockCategoryStore{}, &MockTaskStore{}, nil, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("valid dependencies", func(t *testing.T) {
		svc, err := NewCategoryService(&MockCategoryStore{}, &MockTaskStore{}, db, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestCategoryServiceList(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns categories", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		categories := []*domain.Category{newTestCategory(t, userID, "Home")}
		categoryStore.On("ListForUser", mock.Anything, userID).Return(categories, nil)

		got, err := svc.List(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, categories, got)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		storeErr := errors.New("connection reset")
		categoryStore.On("ListForUser", mock.Anything, userID).Return(nil, storeErr)

		got, err := svc.List(context.Background(), userID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestCategoryServiceGet(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("owned category", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		category := newTestCategory(t, userID, "Home")
		categoryStore.On("GetByID", mock.Anything, category.ID).Return(category, nil)

		got, err := svc.Get(context.Background(), userID, category.ID)
		require.NoError(t, err)
		assert.Equal(t, category, got)
	})

	t.Run("foreign category", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		category := newTestCategory(t, uuid.New(), "Home")
		categoryStore.On("GetByID", mock.Anything, category.ID).Return(category, nil)

		got, err := svc.Get(context.Background(), userID, category.ID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("missing category", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		categoryID := uuid.New()
		categoryStore.On("GetByID", mock.Anything, categoryID).
			Return(nil, store.ErrCategoryNotFound)

		got, err := svc.Get(context.Background(), userID, categoryID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	})
}

func TestCategoryServiceCreate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("creates category", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		categoryStore.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
			return c.UserID == userID && c.Name == "Work"
		})).Return(nil)

		category, err := svc.Create(context.Background(), userID, "Work")
		require.NoError(t, err)
		assert.Equal(t, "Work", category.Name)
		categoryStore.AssertExpectations(t)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		category, err := svc.Create(context.Background(), userID, "   ")
		assert.Nil(t, category)
		assert.ErrorIs(t, err, domain.ErrEmptyCategoryName)
		categoryStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		categoryStore.On("Create", mock.Anything, mock.Anything).
			Return(store.ErrCategoryNameExists)

		category, err := svc.Create(context.Background(), userID, "Work")
		assert.Nil(t, category)
		assert.ErrorIs(t, err, store.ErrCategoryNameExists)
	})
}

func TestCategoryServiceRename(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("renames owned category", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		category := newTestCategory(t, userID, "Home")
		categoryStore.On("GetByID", mock.Anything, category.ID).Return(category, nil)
		categoryStore.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
			return c.ID == category.ID && c.Name == "Household"
		})).Return(nil)

		got, err := svc.Rename(context.Background(), userID, category.ID, "Household")
		require.NoError(t, err)
		assert.Equal(t, "Household", got.Name)
	})

	t.Run("foreign category", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		category := newTestCategory(t, uuid.New(), "Home")
		categoryStore.On("GetByID", mock.Anything, category.ID).Return(category, nil)

		got, err := svc.Rename(context.Background(), userID, category.ID, "Household")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrNotOwned)
		categoryStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, &MockTaskStore{}, db)

		category := newTestCategory(t, userID, "Home")
		categoryStore.On("GetByID", mock.Anything, category.ID).Return(category, nil)
		categoryStore.On("Update", mock.Anything, mock.Anything).
			Return(store.ErrCategoryNameExists)

		got, err := svc.Rename(context.Background(), userID, category.ID, "Work")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrCategoryNameExists)
	})
}

func TestCategoryServiceDelete(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("detaches tasks and deletes in one transaction", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		taskStore := &MockTaskStore{}
		db, dbMock := newMockDB(t)
		svc := newCategoryService(t, categoryStore, taskStore, db)

		category := newTestCategory(t, userID, "Home")
		categoryStore.On("GetByID", mock.Anything, category.ID).Return(category, nil)

		dbMock.ExpectBegin()
		taskStore.On("WithTx", mock.Anything).Return(taskStore)
		categoryStore.On("WithTx", mock.Anything).Return(categoryStore)
		taskStore.On("ClearCategory", mock.Anything, category.ID, userID).Return(nil)
		categoryStore.On("Delete", mock.Anything, category.ID).Return(nil)
		dbMock.ExpectCommit()

		err := svc.Delete(context.Background(), userID, category.ID)
		require.NoError(t, err)
		taskStore.AssertExpectations(t)
		categoryStore.AssertExpectations(t)
	})

	t.Run("rolls back when detaching fails", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		taskStore := &MockTaskStore{}
		db, dbMock := newMockDB(t)
		svc := newCategoryService(t, categoryStore, taskStore, db)

		category := newTestCategory(t, userID, "Home")
		categoryStore.On("GetByID", mock.Anything, category.ID).Return(category, nil)

		clearErr := errors.New("connection reset")
		dbMock.ExpectBegin()
		taskStore.On("WithTx", mock.Anything).Return(taskStore)
		categoryStore.On("WithTx", mock.Anything).Return(categoryStore)
		taskStore.On("ClearCategory", mock.Anything, category.ID, userID).Return(clearErr)
		dbMock.ExpectRollback()

		err := svc.Delete(context.Background(), userID, category.ID)
		assert.ErrorIs(t, err, clearErr)
		categoryStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("foreign category never starts a transaction", func(t *testing.T) {
		t.Parallel()
		categoryStore := &MockCategoryStore{}
		taskStore := &MockTaskStore{}
		db, _ := newMockDB(t)
		svc := newCategoryService(t, categoryStore, taskStore, db)

		category := newTestCategory(t, uuid.New(), "Home")
		categoryStore.On("GetByID", mock.Anything, category.ID).Return(category, nil)

		err := svc.Delete(context.Background(), userID, category.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})
}
