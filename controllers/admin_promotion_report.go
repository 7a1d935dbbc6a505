package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
	"github.com/tealeg/xlsx"
)

type promotionReportRow struct {
	Promotion models.Promotion
	Product   models.Product
	Active    bool
}

func loadPromotionReport() ([]promotionReportRow, error) {
	var promos []models.Promotion
	if err := config.DB.Order("product_id ASC, start_date ASC").Find(&promos).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]promotionReportRow, 0, len(promos))
	for _, promo := range promos {
		var product models.Product
		if err := config.DB.First(&product, promo.ProductID).Error; err != nil {
			// Promotions may outlive their product; report them anyway
			product = models.Product{Name: fmt.Sprintf("(deleted product %d)", promo.ProductID)}
		}
		rows = append(rows, promotionReportRow{
			Promotion: promo,
			Product:   product,
			Active:    !now.Before(promo.StartDate) && !now.After(promo.EndDate),
		})
	}

	return rows, nil
}

// DownloadPromotionReportExcel exports every promotion as an Excel sheet for
// the back office
func DownloadPromotionReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadPromotionReportExcel called")

	rows, err := loadPromotionReport()
	if err != nil {
		utils.LogError("Failed to load promotion report: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Promotions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Product", "Discount", "Start Date", "End Date", "Status"} {
		cell := header.AddCell()
		cell.Value = title
	}

	for _, row := range rows {
		status := "Scheduled"
		if row.Active {
			status = "Active"
		} else if time.Now().After(row.Promotion.EndDate) {
			status = "Expired"
		}

		r := sheet.AddRow()
		r.AddCell().SetInt(int(row.Promotion.ID))
		r.AddCell().Value = row.Product.Name
		r.AddCell().SetFloat(row.Promotion.Discount)
		r.AddCell().Value = utils.FormatPromoTime(row.Promotion.StartDate)
		r.AddCell().Value = utils.FormatPromoTime(row.Promotion.EndDate)
		r.AddCell().Value = status
	}

	filename := fmt.Sprintf("promotions_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel report: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	utils.LogInfo("Excel promotion report generated with %d rows", len(rows))
}

// DownloadPromotionReportPDF exports every promotion as a PDF table
func DownloadPromotionReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadPromotionReportPDF called")

	rows, err := loadPromotionReport()
	if err != nil {
		utils.LogError("Failed to load promotion report: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Mercato Promotion Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 10, "Generated: "+time.Now().Format("2006-01-02 15:04:05"))
	pdf.Ln(12)

	widths := []float64{15, 80, 30, 45, 45, 30}
	titles := []string{"ID", "Product", "Discount", "Start Date", "End Date", "Status"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, title := range titles {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		status := "Scheduled"
		if row.Active {
			status = "Active"
		} else if time.Now().After(row.Promotion.EndDate) {
			status = "Expired"
		}

		pdf.CellFormat(widths[0], 8, fmt.Sprintf("%d", row.Promotion.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 8, row.Product.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%.2f", row.Promotion.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, utils.FormatPromoTime(row.Promotion.StartDate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 8, utils.FormatPromoTime(row.Promotion.EndDate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 8, status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	filename := fmt.Sprintf("promotions_%s.pdf", time.Now().Format("20060102"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/pdf")

	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF report: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	utils.LogInfo("PDF promotion report generated with %d rows", len(rows))
}
