package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/area"
	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/internal/pricing"
	"github.com/ZainJ5/tipuburger-server/internal/queue"
	"github.com/ZainJ5/tipuburger-server/internal/utils"
	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

// PublicOrderCreate handles checkout. The frontend submits multipart form
// data: scalar fields plus an items JSON blob, plus an optional receipt
// image for online payments.
func (h *Handler) PublicOrderCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Form slack beyond the receipt cap covers the text fields.
	if err := r.ParseMultipartForm(h.Config.MaxFileSizeBytes + 1<<20); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart form")
		return
	}

	fullName := formValue(r, "fullName")
	mobile := formValue(r, "mobileNumber")
	if fullName == "" || mobile == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Name and mobile number are required")
		return
	}

	orderType := order.OrderType(strings.ToLower(formValue(r, "orderType")))
	if orderType != order.TypeDelivery && orderType != order.TypePickup {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Valid order type is required (delivery or pickup)")
		return
	}

	deliveryAddress := formValue(r, "deliveryAddress")
	if orderType == order.TypeDelivery && deliveryAddress == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Delivery address is required")
		return
	}

	items, err := order.ParseItemsJSON([]byte(r.FormValue("items")))
	if err != nil || len(items) == 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", order.ErrItemsPayload.Error())
		return
	}

	paymentMethod := strings.ToLower(formValue(r, "paymentMethod"))
	if paymentMethod == "" {
		paymentMethod = "cod"
	}

	receiptURL := ""
	if paymentMethod == "online" {
		receiptURL, err = h.storeReceiptImage(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	areaName := area.ForOrder(formValue(r, "area"), deliveryAddress)
	areaFee := 0.0
	if orderType == order.TypeDelivery {
		directory, err := h.Areas.ActiveDirectory(ctx)
		if err != nil {
			h.Logger.Error("load delivery areas", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
			return
		}
		areaFee = directory.Fee(areaName)
	}

	var promoApplied *pricing.Promo
	promoCode := strings.ToUpper(formValue(r, "promoCode"))
	if promoCode != "" {
		promoApplied, err = h.Promos.Find(ctx, promoCode)
		if err != nil {
			h.Logger.Error("lookup promo code", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
			return
		}
	}
	global, err := h.Promos.GlobalDiscount(ctx)
	if err != nil {
		h.Logger.Error("load global discount", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
		return
	}

	quote := pricing.Compute(pricing.Input{
		Subtotal:  pricing.Subtotal(items),
		Tax:       formFloat(r, "tax"),
		OrderType: orderType,
		AreaFee:   areaFee,
		Promo:     promoApplied,
		Global:    global,
	})

	o := &order.Order{
		BranchID:   formInt64(r, "branchId"),
		BranchName: formValue(r, "branchName"),

		FullName:        fullName,
		Mobile:          mobile,
		AlternateMobile: formValue(r, "alternateMobile"),
		Email:           formValue(r, "email"),

		OrderType:       orderType,
		DeliveryAddress: deliveryAddress,
		Area:            areaName,
		Landmark:        formValue(r, "nearestLandmark"),
		PickupTime:      formValue(r, "pickupTime"),

		Subtotal:    quote.Subtotal,
		Tax:         quote.Tax,
		Discount:    quote.Discount,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,

		PromoCode:                quote.PromoCode,
		PromoDiscount:            quote.PromoDiscount,
		PromoDiscountPercentage:  quote.PromoDiscountPercentage,
		GlobalDiscount:           quote.GlobalDiscount,
		GlobalDiscountPercentage: quote.GlobalDiscountPercentage,

		PaymentMethod:   paymentMethod,
		ReceiptImageURL: receiptURL,
		BankName:        formValue(r, "bankName"),
		ChangeRequest:   formFloat(r, "changeRequest"),

		Status: order.StatusPending,

		IsGift:       formBool(r, "isGift"),
		GiftMessage:  formValue(r, "giftMessage"),
		Instructions: formValue(r, "instructions"),

		Items: items,
	}

	if o.BranchName == "" && o.BranchID > 0 {
		// Branch is returned populated on the created order.
		if err := h.DB.QueryRow(ctx, `select name from branches where id = $1`, o.BranchID).Scan(&o.BranchName); err != nil {
			h.Logger.Warn("resolve branch name", zap.Int64("branchId", o.BranchID), zap.Error(err))
		}
	}

	if err := h.Orders.Create(ctx, o); err != nil {
		h.Logger.Error("insert order", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
		return
	}

	h.publishOrderEvent(ctx, queue.EventOrderCreated, o)

	token := utils.CreateOrderTrackingToken(h.Config.TrackingTokenSecret, o.OrderNumber)
	response.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data": map[string]any{
			"order":         o,
			"trackingToken": token,
		},
		"message": "Order created successfully",
	})
}

func (h *Handler) storeReceiptImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("receiptImage")
	if err != nil {
		return "", fmt.Errorf("Receipt image is required for online payment")
	}
	defer file.Close()

	if header.Size > h.Config.MaxFileSizeBytes {
		return "", fmt.Errorf("Receipt image exceeds the %dMB limit", h.Config.MaxFileSizeBytes/(1<<20))
	}

	data, err := io.ReadAll(io.LimitReader(file, h.Config.MaxFileSizeBytes+1))
	if err != nil {
		return "", fmt.Errorf("Failed to read receipt image")
	}
	if int64(len(data)) > h.Config.MaxFileSizeBytes {
		return "", fmt.Errorf("Receipt image exceeds the %dMB limit", h.Config.MaxFileSizeBytes/(1<<20))
	}

	contentType := utils.DetectContentType(data)
	if !utils.ValidateImageContentType(contentType) {
		return "", fmt.Errorf("Unsupported receipt image type")
	}

	normalized, err := utils.NormalizeReceiptImage(data)
	if err != nil {
		return "", fmt.Errorf("Failed to process receipt image")
	}

	if h.Store == nil {
		return "", fmt.Errorf("Receipt uploads are not configured")
	}

	key := fmt.Sprintf("receipts/%d.jpg", time.Now().UnixNano())
	url, err := h.Store.PutObject(r.Context(), key, normalized, "image/jpeg")
	if err != nil {
		h.Logger.Error("store receipt image", zap.Error(err))
		return "", fmt.Errorf("Failed to store receipt image")
	}
	return url, nil
}
