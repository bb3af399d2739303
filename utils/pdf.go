package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// TicketRender is everything the PDF needs for one ticket page.
type TicketRender struct {
	QrCode       string
	FestivalName string
	TicketType   string
	Price        float64
	QrPNG        []byte
}

// RenderTicketsPDF composes one page per ticket with the QR image embedded.
func RenderTicketsPDF(orderCode string, customerName string, orderedAt time.Time, tickets []TicketRender) ([]byte, error) {
	if len(tickets) == 0 {
		return nil, fmt.Errorf("no tickets to render for order %s", orderCode)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Festival Tickets "+orderCode, false)

	for i, t := range tickets {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 20)
		pdf.CellFormat(0, 12, t.FestivalName, "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Order %s - %s", orderCode, customerName), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Purchased %s", orderedAt.Format("02-01-2006 15:04")), "", 1, "C", false, 0, "")
		pdf.Ln(4)

		imgName := fmt.Sprintf("qr-%s-%d", t.QrCode, i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(t.QrPNG))
		// centered 80mm QR on an A4 (210mm wide)
		pdf.ImageOptions(imgName, 65, pdf.GetY(), 80, 80, false, opts, 0, "")
		pdf.SetY(pdf.GetY() + 86)

		pdf.SetFont("Courier", "B", 16)
		pdf.CellFormat(0, 10, t.QrCode, "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Type: %s", t.TicketType), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Price: EUR %.2f", t.Price), "", 1, "C", false, 0, "")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, "Show this code at the gate. Each ticket admits one person once.", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
