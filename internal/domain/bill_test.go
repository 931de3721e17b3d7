package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortBillsByDateDesc(t *testing.T) {
	bills := []Bill{
		{ID: "a", Date: "2001-01-01"},
		{ID: "b", Date: "2004-04-04"},
		{ID: "c", Date: "2002-02-02"},
		{ID: "d", Date: "2003-03-03"},
	}

	SortBillsByDateDesc(bills)

	for i := 1; i < len(bills); i++ {
		assert.GreaterOrEqual(t, bills[i-1].Date, bills[i].Date,
			"bills must be ordered most recent first")
	}
	assert.Equal(t, "b", bills[0].ID)
	assert.Equal(t, "a", bills[3].ID)
}

func TestSortBillsByDateDesc_TiesKeepOrder(t *testing.T) {
	bills := []Bill{
		{ID: "first", Date: "2020-05-05"},
		{ID: "second", Date: "2020-05-05"},
	}

	SortBillsByDateDesc(bills)

	assert.Equal(t, "first", bills[0].ID)
	assert.Equal(t, "second", bills[1].ID)
}

func TestHasReceipt(t *testing.T) {
	assert.False(t, Bill{}.HasReceipt())
	assert.True(t, Bill{FileURL: "http://x/img.png"}.HasReceipt())
}
