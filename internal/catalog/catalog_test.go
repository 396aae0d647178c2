package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"MiniShop/internal/apperr"
)

func rec(name, price string, stock int) Record {
	return Record{Name: name, Price: decimal.RequireFromString(price), Description: name + " desc", Stock: stock}
}

func TestLoad_PreservesOrder(t *testing.T) {
	c, err := Load([]Record{rec("Red Pen", "1.50", 3), rec("Blue Pen", "1.25", 0), rec("Widget", "9.99", 2)})
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	all := c.All()
	require.Equal(t, "Red Pen", all[0].Name)
	require.Equal(t, "Blue Pen", all[1].Name)
	require.Equal(t, "Widget", all[2].Name)
	require.Equal(t, 2, all[2].Stock())
}

func TestLoad_RejectsMalformedRecords(t *testing.T) {
	cases := map[string][]Record{
		"blank name":     {rec(" ", "1", 1)},
		"negative price": {rec("A", "1", 1), rec("B", "-0.01", 1)},
		"negative stock": {rec("A", "1", -1)},
		"duplicate name": {rec("A", "1", 1), rec("A", "2", 2)},
	}

	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := Load(records)
			require.Nil(t, c)
			require.ErrorIs(t, err, apperr.ErrInvalidCatalogRecord)
		})
	}
}

func TestLoad_ReportsRecordIndex(t *testing.T) {
	_, err := Load([]Record{rec("A", "1", 1), rec("B", "-1", 1)})

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, 1, e.Record)
	require.Equal(t, "price must not be negative", e.Reason)
}

func TestLoad_NamesAreCaseSensitive(t *testing.T) {
	c, err := Load([]Record{rec("pen", "1", 1), rec("Pen", "1", 1)})
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
}

func TestFindBySubstring(t *testing.T) {
	c, err := Load([]Record{rec("Red Pen", "1", 1), rec("Notebook", "3", 1), rec("Blue PEN", "1", 0)})
	require.NoError(t, err)

	got := c.FindBySubstring("pen")
	require.Len(t, got, 2)
	require.Equal(t, "Red Pen", got[0].Name)
	require.Equal(t, "Blue PEN", got[1].Name)

	require.Empty(t, c.FindBySubstring("stapler"))
	require.Len(t, c.FindBySubstring(""), 3)
}

func TestReserveRestore(t *testing.T) {
	c, err := Load([]Record{rec("Widget", "9.99", 2)})
	require.NoError(t, err)
	w, ok := c.Get("Widget")
	require.True(t, ok)

	require.NoError(t, c.Reserve(w, 2))
	require.Equal(t, 0, w.Stock())

	err = c.Reserve(w, 1)
	require.ErrorIs(t, err, apperr.ErrInsufficientStock)
	require.Equal(t, 0, w.Stock())

	require.ErrorIs(t, c.Reserve(w, 0), apperr.ErrInvalidQuantity)
	require.ErrorIs(t, c.Restore(w, -1), apperr.ErrInvalidQuantity)

	require.NoError(t, c.Restore(w, 2))
	require.Equal(t, 2, w.Stock())
}

func TestReserve_ForeignItem(t *testing.T) {
	a, err := Load([]Record{rec("Widget", "1", 5)})
	require.NoError(t, err)
	b, err := Load([]Record{rec("Widget", "1", 5)})
	require.NoError(t, err)

	w, _ := b.Get("Widget")
	require.ErrorIs(t, a.Reserve(w, 1), errForeignItem)
	require.ErrorIs(t, a.Restore(nil, 1), errNilItem)
	require.Equal(t, 5, w.Stock())
}
