package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	t.Run("NoPayments", func(t *testing.T) {
		assert.Equal(t, DuesStatusPending, DeriveStatus(50000, 0))
	})

	t.Run("PartialPayment", func(t *testing.T) {
		assert.Equal(t, DuesStatusPartial, DeriveStatus(50000, 20000))
	})

	t.Run("ExactPayment", func(t *testing.T) {
		assert.Equal(t, DuesStatusPaid, DeriveStatus(50000, 50000))
	})

	t.Run("Overpayment", func(t *testing.T) {
		assert.Equal(t, DuesStatusPaid, DeriveStatus(50000, 60000))
	})

	t.Run("OnePartialThenRemainder", func(t *testing.T) {
		assert.Equal(t, DuesStatusPartial, DeriveStatus(50000, 30000))
		assert.Equal(t, DuesStatusPaid, DeriveStatus(50000, 30000+20000))
	})
}

func TestReconcile(t *testing.T) {
	dues := &Dues{ID: 7, Month: 3, Year: 2025, Amount: 50000}

	t.Run("PendingKeepsFullRemaining", func(t *testing.T) {
		v := Reconcile(dues, 0)
		assert.Equal(t, DuesStatusPending, v.Status)
		assert.Equal(t, int64(50000), v.RemainingAmount)
		assert.Equal(t, int64(0), v.TotalPaid)
	})

	t.Run("PartialReducesRemaining", func(t *testing.T) {
		v := Reconcile(dues, 20000)
		assert.Equal(t, DuesStatusPartial, v.Status)
		assert.Equal(t, int64(30000), v.RemainingAmount)
	})

	t.Run("OverpaymentClampsRemainingAtZero", func(t *testing.T) {
		v := Reconcile(dues, 65000)
		assert.Equal(t, DuesStatusPaid, v.Status)
		assert.Equal(t, int64(0), v.RemainingAmount)
		// Overpayment stays visible through the total.
		assert.Equal(t, int64(65000), v.TotalPaid)
	})

	t.Run("CopiesPeriodAndID", func(t *testing.T) {
		v := Reconcile(dues, 0)
		assert.Equal(t, int32(7), v.DuesID)
		assert.Equal(t, 3, v.Month)
		assert.Equal(t, 2025, v.Year)
	})
}

func TestSumPayments(t *testing.T) {
	assert.Equal(t, int64(0), SumPayments(nil))
	assert.Equal(t, int64(45000), SumPayments([]Payment{
		{Amount: 20000},
		{Amount: 25000},
	}))
}

func TestDuesBalanceView(t *testing.T) {
	b := DuesBalance{
		Dues:      Dues{ID: 3, Month: 11, Year: 2024, Amount: 10000},
		TotalPaid: 10000,
	}
	v := b.View()
	assert.Equal(t, DuesStatusPaid, v.Status)
	assert.Equal(t, int64(0), v.RemainingAmount)
}

func TestValidateMonth(t *testing.T) {
	assert.NoError(t, ValidateMonth(1))
	assert.NoError(t, ValidateMonth(12))

	err := ValidateMonth(0)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	assert.Error(t, ValidateMonth(13))
	assert.Error(t, ValidateMonth(-1))
}

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ValidateYear(2025))
	assert.Error(t, ValidateYear(1999))
	assert.Error(t, ValidateYear(10000))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(1))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-500))
}
