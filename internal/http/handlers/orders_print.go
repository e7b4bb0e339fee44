package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/internal/pricing"
	"github.com/ZainJ5/tipuburger-server/internal/queue"
	"github.com/ZainJ5/tipuburger-server/internal/utils"
	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

// Printing a kitchen slip is what acknowledges an order, so it doubles as
// the Pending -> In-Process transition. Same idea for the pre-bill and
// Dispatched. Orders already past the implied status are left alone.

func (h *Handler) AdminOrderKitchenSlip(w http.ResponseWriter, r *http.Request) {
	h.printOrder(w, r, order.StatusInProcess, renderKitchenSlip, "kitchen-slip")
}

func (h *Handler) AdminOrderPreBill(w http.ResponseWriter, r *http.Request) {
	h.printOrder(w, r, order.StatusDispatched, renderPreBill, "pre-bill")
}

func (h *Handler) AdminOrderReceipt(w http.ResponseWriter, r *http.Request) {
	h.printOrder(w, r, "", renderPreBill, "receipt")
}

func (h *Handler) printOrder(w http.ResponseWriter, r *http.Request, implied order.Status, render func(*order.Order) (*bytes.Buffer, error), kind string) {
	ctx := r.Context()
	id, ok := pathID(r, "orderId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		h.Logger.Error("fetch order", zap.Int64("orderId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch order")
		return
	}

	if implied != "" && o.Status != implied {
		if err := order.Transition(o.Status, implied, ""); err == nil {
			if err := h.Orders.UpdateStatus(ctx, id, implied, ""); err != nil {
				h.Logger.Error("update order status", zap.Int64("orderId", id), zap.Error(err))
			} else {
				o.Status = implied
				h.publishOrderEvent(ctx, queue.EventOrderStatusUpdated, o)
			}
		}
	}

	pdf, err := render(o)
	if err != nil {
		h.Logger.Error("render pdf", zap.Int64("orderId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render document")
		return
	}

	filename := fmt.Sprintf("%s-%s.pdf", kind, sanitizeFilename(o.OrderNumber))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	_, _ = w.Write(pdf.Bytes())
}

// renderKitchenSlip is the kitchen-facing document: items and preparation
// notes only, no amounts.
func renderKitchenSlip(o *order.Order) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(o.CreatedAt)
	pdf.SetModificationDate(o.CreatedAt)
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Tipu Burger & Broast", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Kitchen Slip - %s", o.OrderNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, strings.ToUpper(string(o.OrderType)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, o.CreatedAt.In(utils.RestaurantLocation()).Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Items", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, item := range o.Items {
		pdf.CellFormat(0, 6, fmt.Sprintf("%dx %s", item.Quantity, item.Title), "", 1, "L", false, 0, "")
		if item.SelectedVariation != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("   %s", item.SelectedVariation.Name), "", 1, "L", false, 0, "")
		}
		for _, extra := range item.SelectedExtras {
			pdf.CellFormat(0, 5, fmt.Sprintf("   + %s", extra.Name), "", 1, "L", false, 0, "")
		}
		for _, side := range item.SelectedSideOrders {
			pdf.CellFormat(0, 5, fmt.Sprintf("   + %s (%s)", side.Name, side.Category), "", 1, "L", false, 0, "")
		}
		if item.SpecialInstructions != "" {
			pdf.MultiCell(0, 4, fmt.Sprintf("   Note: %s", item.SpecialInstructions), "", "L", false)
		}
		pdf.Ln(1)
	}

	if o.Instructions != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Order Notes", "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 4, o.Instructions, "", "L", false)
	}
	if o.IsGift {
		pdf.Ln(1)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 5, "GIFT ORDER", "", 1, "L", false, 0, "")
		if o.GiftMessage != "" {
			pdf.SetFont("Arial", "", 9)
			pdf.MultiCell(0, 4, o.GiftMessage, "", "L", false)
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// renderPreBill is the customer-facing document with the full financial
// breakdown. The payment receipt shares the same layout.
func renderPreBill(o *order.Order) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(o.CreatedAt)
	pdf.SetModificationDate(o.CreatedAt)
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Tipu Burger & Broast", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order %s", o.OrderNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, strings.ToUpper(string(o.OrderType)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, o.FullName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, o.Mobile, "", 1, "C", false, 0, "")
	if o.DeliveryAddress != "" {
		pdf.MultiCell(0, 4, o.DeliveryAddress, "", "C", false)
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Placed: %s", o.CreatedAt.In(utils.RestaurantLocation()).Format("02 Jan 2006 15:04")), "", 1, "C", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Items", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, item := range o.Items {
		name := item.Title
		if item.SelectedVariation != nil {
			name = fmt.Sprintf("%s (%s)", name, item.SelectedVariation.Name)
		}
		pdf.CellFormat(130, 5, fmt.Sprintf("%dx %s", item.Quantity, name), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, formatRs(lineAmount(item)), "", 1, "R", false, 0, "")
		for _, extra := range item.SelectedExtras {
			pdf.CellFormat(0, 4, fmt.Sprintf("   + %s %s", extra.Name, formatRs(extra.Price)), "", 1, "L", false, 0, "")
		}
		for _, side := range item.SelectedSideOrders {
			pdf.CellFormat(0, 4, fmt.Sprintf("   + %s %s", side.Name, formatRs(side.Price)), "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Totals", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Subtotal: %s", formatRs(o.Subtotal)), "", 1, "L", false, 0, "")
	if o.Tax > 0 {
		pdf.CellFormat(0, 5, fmt.Sprintf("Tax: %s", formatRs(o.Tax)), "", 1, "L", false, 0, "")
	}
	if o.Discount > 0 {
		label := "Discount"
		if o.PromoCode != "" {
			label = fmt.Sprintf("Discount (%s)", o.PromoCode)
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: -%s", label, formatRs(o.Discount)), "", 1, "L", false, 0, "")
	}
	if fee := pricing.DeliveryFeeOf(o); fee > 0 {
		pdf.CellFormat(0, 5, fmt.Sprintf("Delivery: %s", formatRs(fee)), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %s", formatRs(o.Total)), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Payment: %s", strings.ToUpper(o.PaymentMethod)), "", 1, "L", false, 0, "")
	if o.ChangeRequest > 0 {
		pdf.CellFormat(0, 5, fmt.Sprintf("Change for: %s", formatRs(o.ChangeRequest)), "", 1, "L", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func lineAmount(item order.Item) float64 {
	unit := item.Price
	if item.SelectedVariation != nil {
		unit = item.SelectedVariation.Price
	}
	return unit * float64(item.Quantity)
}

func formatRs(v float64) string {
	return fmt.Sprintf("Rs. %.0f", v)
}

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitizeFilename(value string) string {
	return strings.Trim(filenameRe.ReplaceAllString(value, "_"), "_")
}
