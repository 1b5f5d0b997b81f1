package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"expense-tracker/internal/middleware"
	"expense-tracker/internal/repository"
	"expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 负责账目导出接口
type ExportHandler struct {
	Expenses *repository.ExpenseRepository
}

func NewExportHandler(expenses *repository.ExpenseRepository) *ExportHandler {
	return &ExportHandler{Expenses: expenses}
}

var exportHeaders = []string{"Category", "Amount", "Description", "Date"}

// ExportCSV 导出当前用户的支出为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	expenses, err := h.Expenses.ListByOwner(user.ID)
	if err != nil {
		util.ServerError(c, "export: list expenses", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM（让 Excel 正确识别编码）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for i := range expenses {
		e := &expenses[i]
		writer.Write([]string{
			e.Category,
			e.AmountCent.String(),
			e.Description,
			e.OccurredAt.Format("2006-01-02"),
		})
	}
}

// ExportXLSX 导出当前用户的支出为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	expenses, err := h.Expenses.ListByOwner(user.ID)
	if err != nil {
		util.ServerError(c, "export: list expenses", err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.ServerError(c, "export: new sheet", err)
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range expenses {
		e := &expenses[idx]
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.AmountCent.String())
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.OccurredAt.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 15)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.ServerError(c, "export: write xlsx", err)
	}
}
