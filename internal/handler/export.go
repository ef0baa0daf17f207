package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"account-book/internal/apperr"
	"account-book/internal/logging"
	"account-book/internal/models"
	"account-book/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Date", "Type", "Category", "Title", "Description", "Price"}

func exportRow(l *models.AccountBookLog) []string {
	category := ""
	if name := categoryName(l); name != nil {
		category = *name
	}
	return []string{
		formatTime(l.CreatedAt),
		string(l.Type),
		category,
		l.Title,
		l.Description,
		l.Price.String(),
	}
}

func exportFilename(book *models.AccountBook, ext string) string {
	return fmt.Sprintf("account_book_%d_%s.%s", book.ID, time.Now().Format("20060102"), ext)
}

// Export streams a book's in-use logs as CSV (default) or XLSX.
func (h *BookHandler) Export(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		util.Fail(c, err)
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		util.Fail(c, apperr.InvalidParameter("format", "must be csv or xlsx"))
		return
	}

	book, logs, err := h.Books.Export(c.Request.Context(), ident, id)
	if err != nil {
		util.Fail(c, err)
		return
	}

	if format == "xlsx" {
		writeXLSX(c, book, logs)
		return
	}
	writeCSV(c, book, logs)
}

func writeCSV(c *gin.Context, book *models.AccountBook, logs []models.AccountBookLog) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(book, "csv")))
	c.Status(http.StatusOK)

	// UTF-8 BOM so spreadsheet apps pick the right encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeaders)
	for i := range logs {
		_ = w.Write(exportRow(&logs[i]))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logging.FromGin(c).Error("write csv export", logging.FieldError, err)
	}
}

func writeXLSX(c *gin.Context, book *models.AccountBook, logs []models.AccountBookLog) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Logs"
	index, err := f.NewSheet(sheet)
	if err != nil {
		util.Fail(c, apperr.Internal(err, "create export sheet"))
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r := range logs {
		row := exportRow(&logs[r])
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if col == len(row)-1 {
				_ = f.SetCellValue(sheet, cell, logs[r].Price.InexactFloat64())
				continue
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "C", 14)
	_ = f.SetColWidth(sheet, "D", "D", 24)
	_ = f.SetColWidth(sheet, "E", "E", 40)
	_ = f.SetColWidth(sheet, "F", "F", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(book, "xlsx")))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		logging.FromGin(c).Error("write xlsx export", logging.FieldError, err)
	}
}
