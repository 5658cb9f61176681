// Package invoice renders sale invoices as PDF documents. The renderer
// only formats already-computed values; it never reprices a sale.
package invoice

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/winprintid/pos-api/internal/domain/entity"
	"github.com/winprintid/pos-api/internal/domain/enum"
	"github.com/winprintid/pos-api/pkg/pricing"
)

// CompanyInfo is the letterhead printed at the top of every invoice
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// PaymentInfo is the bank transfer block printed under the total
type PaymentInfo struct {
	BankName      string
	AccountNumber string
	AccountHolder string
}

// Renderer renders sales into PDF invoices
type Renderer struct {
	company CompanyInfo
	payment PaymentInfo
}

// NewRenderer creates an invoice renderer with fixed letterhead and
// payment details
func NewRenderer(company CompanyInfo, payment PaymentInfo) *Renderer {
	return &Renderer{company: company, payment: payment}
}

// FormatRupiah renders a whole-rupiah amount with dot thousand separators,
// e.g. 1234567 becomes "Rp 1.234.567".
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

// Render produces the PDF bytes for a sale. The sale must have its
// customer and items (with products) resolved.
func (r *Renderer) Render(sale *entity.Sale) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(120, 9, r.company.Name)

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 9, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.Cell(120, 5, r.company.Address)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, sale.InvoiceNo, "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(120, 5, fmt.Sprintf("Telp: %s  |  %s", r.company.Phone, r.company.Email))
	pdf.CellFormat(0, 5, sale.CreatedAt.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.Ln(4)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.5)
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	y := pdf.GetY()
	pdf.Line(left, y, pageW-right, y)
	pdf.Ln(5)

	// Bill-to block
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "BILL TO", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	customerName := "Walk-in Customer"
	if sale.Customer != nil {
		customerName = sale.Customer.Name
	}
	pdf.CellFormat(0, 6, customerName, "", 1, "L", false, 0, "")
	if sale.Customer != nil && sale.Customer.Phone != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, *sale.Customer.Phone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	r.renderItemTable(pdf, sale)

	// Total box
	pdf.Ln(3)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 10, "TOTAL AMOUNT", "1", 0, "R", true, 0, "")
	pdf.CellFormat(0, 10, FormatRupiah(sale.TotalPrice), "1", 1, "R", true, 0, "")

	// Payment details
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "PAYMENT DETAILS", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s %s", r.payment.BankName, r.payment.AccountNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("a.n. %s", r.payment.AccountHolder), "", 1, "L", false, 0, "")

	// Footer
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Thank you for your business!", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderItemTable(pdf *gofpdf.Fpdf, sale *entity.Sale) {
	colW := []float64{10, 70, 30, 15, 33, 33}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	headers := []string{"No", "Item", "Size", "Qty", "Unit Price", "Total"}
	aligns := []string{"C", "L", "C", "C", "R", "R"}
	for i, h := range headers {
		pdf.CellFormat(colW[i], 8, h, "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)

	for i, item := range sale.Items {
		name := item.Product.Name
		if item.Description != nil && *item.Description != "" {
			name = fmt.Sprintf("%s - %s", name, *item.Description)
		}

		size := "-"
		if item.PricingType == enum.PricingTypeSize && item.Width != nil && item.Height != nil {
			size = fmt.Sprintf("%g x %g cm", *item.Width, *item.Height)
		}

		// For size-priced lines the stored rate is per cm², so the printed
		// unit price is back-computed from the line total.
		unitPrice := pricing.DisplayUnitPrice(item.PricingType, item.PricePerUnit, item.ItemTotal, item.Quantity)

		cells := []string{
			fmt.Sprintf("%d", i+1),
			name,
			size,
			fmt.Sprintf("%d", item.Quantity),
			FormatRupiah(unitPrice),
			FormatRupiah(item.ItemTotal),
		}
		for j, c := range cells {
			pdf.CellFormat(colW[j], 8, c, "1", 0, aligns[j], false, 0, "")
		}
		pdf.Ln(-1)
	}
}
