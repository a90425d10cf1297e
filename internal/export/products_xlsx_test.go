package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestWriteProductsXLSX(t *testing.T) {
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	products := []model.Product{
		{ID: 7, Name: "Desk Lamp", Brand: "Lumo", Price: 1999, Rating: 4.5, Quantity: 12, Specs: "LED", Category: json.RawMessage(`["home"]`), Image: "lamp.jpg", CreatedAt: created},
		{ID: 8, Name: "Mug", Brand: "Clay", Price: 500, Quantity: 0, Category: json.RawMessage(`[]`), CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProductsXLSX(&buf, products))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := file.Sheet[ProductsSheet]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	values := func(r *xlsx.Row) []string {
		out := make([]string, 0, len(r.Cells))
		for _, c := range r.Cells {
			out = append(out, c.Value)
		}
		return out
	}

	assert.Equal(t, productHeader, values(sheet.Rows[0]))
	assert.Equal(t, []string{"7", "Desk Lamp", "Lumo", "1999", "4.5", "12", "LED", `["home"]`, "lamp.jpg", "2025-02-03T04:05:06Z"}, values(sheet.Rows[1]))
	assert.Equal(t, "Mug", sheet.Rows[2].Cells[1].Value)
}

func TestWriteProductsXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProductsXLSX(&buf, nil))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	assert.Len(t, file.Sheets[0].Rows, 1)
}
