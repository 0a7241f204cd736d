package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsRepository_Balance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPointsRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userID := "user-1"

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\)`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(850)))

		balance, err := repo.Balance(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(850), balance)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty ledger sums to zero", func(t *testing.T) {
		userID := "user-2"

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\)`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

		balance, err := repo.Balance(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\)`).
			WithArgs("user-3").
			WillReturnError(errors.New("database error"))

		_, err := repo.Balance(ctx, "user-3")
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPointsRepository_Accrue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPointsRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO point_transactions`).
			WithArgs("user-1", "registro", int64(100), domain.TransactionTypeAccrual).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Accrue(ctx, "user-1", "registro", 100)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO point_transactions`).
			WithArgs("user-1", "referido", int64(50), domain.TransactionTypeAccrual).
			WillReturnError(errors.New("database error"))

		err := repo.Accrue(ctx, "user-1", "referido", 50)
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPointsRepository_SettleWithLock(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPointsRepository(mock)
	ctx := context.Background()

	userID := "user-1"
	orderID := "order-1"

	t.Run("Success - earn and spend", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(userID, orderID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\)`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(800)))
		mock.ExpectExec(`INSERT INTO point_transactions`).
			WithArgs(userID, orderID, int64(750), domain.TransactionTypeAccrual).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO point_transactions`).
			WithArgs(userID, orderID, int64(-500), domain.TransactionTypeRedemption).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err := repo.SettleWithLock(ctx, userID, orderID, 750, 500)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - earn only", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(userID, orderID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\)`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))
		mock.ExpectExec(`INSERT INTO point_transactions`).
			WithArgs(userID, orderID, int64(200), domain.TransactionTypeAccrual).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err := repo.SettleWithLock(ctx, userID, orderID, 200, 0)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient balance writes nothing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(userID, orderID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\)`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(100)))
		mock.ExpectRollback()

		err := repo.SettleWithLock(ctx, userID, orderID, 0, 150)
		assert.ErrorIs(t, err, ErrInsufficientPoints)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already applied settlement is a no-op", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(userID, orderID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectCommit()

		err := repo.SettleWithLock(ctx, userID, orderID, 750, 500)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin error", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("database error"))

		err := repo.SettleWithLock(ctx, userID, orderID, 100, 0)
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPointsRepository_GetRedemptions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPointsRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userID := "user-1"
		now := time.Now()

		rows := pgxmock.NewRows([]string{"id", "user_id", "reference", "amount", "type", "created_at"}).
			AddRow(int64(2), userID, "order-2", int64(500), domain.TransactionTypeRedemption, now).
			AddRow(int64(1), userID, "order-1", int64(300), domain.TransactionTypeRedemption, now.Add(-time.Hour))

		mock.ExpectQuery(`SELECT id, user_id, reference, ABS\(amount\)`).
			WithArgs(userID, domain.TransactionTypeRedemption).
			WillReturnRows(rows)

		transactions, err := repo.GetRedemptions(ctx, userID)
		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, "order-2", transactions[0].Reference)
		assert.Equal(t, int64(500), transactions[0].Amount)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No redemptions", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id, reference, ABS\(amount\)`).
			WithArgs("user-2", domain.TransactionTypeRedemption).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "reference", "amount", "type", "created_at"}))

		transactions, err := repo.GetRedemptions(ctx, "user-2")
		require.NoError(t, err)
		assert.Empty(t, transactions)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
