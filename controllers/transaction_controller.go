package controllers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"fieldops-backend/models"
)

type TransactionController struct {
	DB *gorm.DB
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db}
}

// GetTransactions lists ledger entries, newest first, optionally filtered
// by item.
func (c *TransactionController) GetTransactions(ctx *fiber.Ctx) error {
	query := c.DB.Order("created_at desc").Limit(ctx.QueryInt("limit", 200))
	if itemID := ctx.QueryInt("item_id", 0); itemID > 0 {
		query = query.Where("item_id = ?", itemID)
	}

	var transactions []models.StockTransaction
	if err := query.Find(&transactions).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"transactions": transactions}})
}

// ExportExcel streams the audit trail as an xlsx download.
func (c *TransactionController) ExportExcel(ctx *fiber.Ctx) error {
	var transactions []models.StockTransaction
	if err := c.DB.Order("created_at").Find(&transactions).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "SKU")
	f.SetCellValue(sheet, "C1", "Kind")
	f.SetCellValue(sheet, "D1", "From")
	f.SetCellValue(sheet, "E1", "To")
	f.SetCellValue(sheet, "F1", "Quantity")
	f.SetCellValue(sheet, "G1", "User")

	for i, txn := range transactions {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), txn.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), txn.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(txn.Kind))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), txn.FromLocation)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), txn.ToLocation)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), txn.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), txn.ActingUser)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock_transactions.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel file")
	}
	return nil
}
