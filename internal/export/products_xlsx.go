package export

import (
	"io"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"

	"github.com/tealeg/xlsx"
)

const ProductsSheet = "Products"

var productHeader = []string{
	"ID", "Name", "Brand", "Price", "Rating", "Quantity", "Specs", "Category", "Image", "Created At",
}

// WriteProductsXLSX renders the catalog as a single-sheet workbook.
func WriteProductsXLSX(w io.Writer, products []model.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(ProductsSheet)
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range productHeader {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt64(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Brand)
		row.AddCell().SetInt64(p.Price)
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetInt64(p.Quantity)
		row.AddCell().SetString(p.Specs)
		row.AddCell().SetString(string(p.Category))
		row.AddCell().SetString(p.Image)
		row.AddCell().SetString(p.CreatedAt.UTC().Format(time.RFC3339))
	}

	return file.Write(w)
}
