package helper

import (
	"encoding/json"
	"fmt"
	"log"

	"festival_manager/config"
	"festival_manager/database"
	"festival_manager/model"
	"festival_manager/utils"
)

// SendTicketBundle renders the QR + PDF bundle for a completed order and
// mails it to the customer. Strictly best-effort: the order is already paid
// and persisted, so every failure here is logged and swallowed. Keyed by
// order id so a recovery path can re-invoke it for the same order.
func SendTicketBundle(orderId uint) {
	var order model.Order
	if err := database.DB.Preload("Tickets").First(&order, "id = ?", orderId).Error; err != nil {
		log.Printf("Fulfillment: order %d not found: %v", orderId, err)
		return
	}
	if len(order.Tickets) == 0 {
		log.Printf("Fulfillment: order %d has no tickets", orderId)
		return
	}

	var details model.PaymentDetails
	if err := json.Unmarshal(order.PaymentDetails, &details); err != nil || details.CustomerEmail == "" {
		log.Printf("Fulfillment: order %d has no usable customer email: %v", orderId, err)
		return
	}

	renders := make([]utils.TicketRender, 0, len(order.Tickets))
	for _, ticket := range order.Tickets {
		name := displayNameFor(ticket)

		payload, err := json.Marshal(map[string]any{
			"ticket_code": ticket.QrCode,
			"festival":    name,
			"order_id":    order.ID,
		})
		if err != nil {
			log.Printf("Fulfillment: encode QR payload for %s: %v", ticket.QrCode, err)
			continue
		}
		qrPNG, err := utils.GenerateQRCode(string(payload), 256)
		if err != nil {
			log.Printf("Fulfillment: QR render for %s: %v", ticket.QrCode, err)
			continue
		}

		renders = append(renders, utils.TicketRender{
			QrCode:       ticket.QrCode,
			FestivalName: name,
			TicketType:   ticket.TicketType,
			Price:        ticket.PricePerTicket,
			QrPNG:        qrPNG,
		})
	}

	pdfBytes, err := utils.RenderTicketsPDF(order.PublicCode, details.CustomerName, order.OrderedAt, renders)
	if err != nil {
		log.Printf("Fulfillment: PDF render for order %d: %v", orderId, err)
		return
	}

	data := utils.OrderConfirmationData{
		OrderCode:    order.PublicCode,
		CustomerName: details.CustomerName,
		TotalAmount:  order.TotalPrice,
		TicketCount:  len(order.Tickets),
		DetailLink:   fmt.Sprintf("%s/orders/%d", config.ConfigOr("APP_URL", "http://localhost:8000"), order.ID),
		Items:        bundleItems(order.Tickets),
	}
	if err := utils.SendOrderConfirmationEmail(details.CustomerEmail, details.CustomerName, data, pdfBytes); err != nil {
		log.Printf("Fulfillment: email for order %d to %s failed: %v", orderId, details.CustomerEmail, err)
		return
	}

	log.Printf("Fulfillment: ticket bundle for order %d sent to %s", orderId, details.CustomerEmail)
}

func displayNameFor(ticket model.Ticket) string {
	var details struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(ticket.TicketDetails, &details); err == nil && details.DisplayName != "" {
		return details.DisplayName
	}
	return "Festival Ticket"
}

// bundleItems collapses ticket rows back into display lines for the mail body.
func bundleItems(tickets []model.Ticket) []utils.OrderConfirmationItem {
	type key struct {
		name  string
		price float64
	}
	index := map[key]int{}
	items := []utils.OrderConfirmationItem{}

	for _, t := range tickets {
		k := key{name: displayNameFor(t), price: t.PricePerTicket}
		if i, ok := index[k]; ok {
			items[i].Quantity++
			items[i].LineTotal += t.PricePerTicket
			continue
		}
		index[k] = len(items)
		items = append(items, utils.OrderConfirmationItem{
			DisplayName: k.name,
			Quantity:    1,
			UnitPrice:   t.PricePerTicket,
			LineTotal:   t.PricePerTicket,
		})
	}
	return items
}
