package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler renders the catalog as a spreadsheet for offline review
type ExportHandler struct {
	productService  services.ProductService
	categoryService services.CategoryService
}

func NewExportHandler(productService services.ProductService, categoryService services.CategoryService) *ExportHandler {
	return &ExportHandler{
		productService:  productService,
		categoryService: categoryService,
	}
}

var exportColumns = []string{"Product", "Handle", "Category Path", "Vendor", "SKU", "Options", "Unit Price", "Stock", "Policy", "Status"}

// ExportCatalog streams the active catalog as an XLSX workbook, one row
// per variant with the product's full category path resolved.
// @Summary Export catalog
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /export/catalog [get]
func (h *ExportHandler) ExportCatalog(c *gin.Context) {
	products, _, err := h.productService.ListProducts(models.ProductFilters{Page: 1, Limit: 10000})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Catalog"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	for i, header := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	row := 2
	for _, product := range products {
		path, err := h.categoryService.AncestorPath(product.CategoryID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		vendorName := ""
		if product.Vendor != nil {
			vendorName = product.Vendor.Name
		}

		variants, err := h.productService.ListVariants(product.ID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if len(variants) == 0 {
			h.writeRow(f, sheetName, row, product.Name, product.Handle, path, vendorName, "", "", "", "", "", "")
			row++
			continue
		}

		for _, variant := range variants {
			options := ""
			for i, opt := range variant.Options {
				if i > 0 {
					options += "; "
				}
				options += fmt.Sprintf("%s=%s", opt.Name, opt.Value)
			}
			h.writeRow(f, sheetName, row,
				product.Name, product.Handle, path, vendorName,
				variant.SKU, options,
				fmt.Sprintf("%.2f", variant.UnitPrice),
				fmt.Sprintf("%d", variant.StockQuantity),
				string(variant.InventoryPolicy), string(variant.Status))
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render export")
		return
	}

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) writeRow(f *excelize.File, sheetName string, row int, values ...string) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheetName, cell, value)
	}
}
