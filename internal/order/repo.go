package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZainJ5/tipuburger-server/internal/utils"
)

var ErrNotFound = errors.New("Order not found")

type Repo struct {
	DB *pgxpool.Pool
}

// ListFilter mirrors the admin list query string. Zero values mean "all".
type ListFilter struct {
	DateFilter    string
	CustomDate    string
	TypeFilter    string
	Statuses      []Status
	PaymentFilter string
	BranchID      int64
	Page          int
	PageSize      int
}

const orderColumns = `
	id, order_no, branch_id, branch_name,
	full_name, mobile, alternate_mobile, email,
	order_type, delivery_address, area, landmark, pickup_time,
	subtotal, tax, discount, delivery_fee, total,
	promo_code, promo_discount, promo_discount_percentage,
	global_discount, global_discount_percentage,
	payment_method, receipt_image_url, bank_name, change_request,
	status, cancel_reason,
	is_gift, gift_message, instructions,
	created_at, updated_at`

// Create inserts the order and its lines in one transaction and fills in
// ID, OrderNumber, CreatedAt and UpdatedAt. order_no is a serial column,
// so the running TB-<n> counter cannot collide under concurrent checkouts.
func (r *Repo) Create(ctx context.Context, o *Order) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	var orderNo int64
	if err := tx.QueryRow(ctx, `
		insert into orders (
			branch_id, branch_name,
			full_name, mobile, alternate_mobile, email,
			order_type, delivery_address, area, landmark, pickup_time,
			subtotal, tax, discount, delivery_fee, total,
			promo_code, promo_discount, promo_discount_percentage,
			global_discount, global_discount_percentage,
			payment_method, receipt_image_url, bank_name, change_request,
			status, cancel_reason,
			is_gift, gift_message, instructions,
			created_at, updated_at
		) values (
			$1,$2,
			$3,$4,$5,$6,
			$7,$8,$9,$10,$11,
			$12,$13,$14,$15,$16,
			$17,$18,$19,
			$20,$21,
			$22,$23,$24,$25,
			$26,$27,
			$28,$29,$30,
			$31,$31
		)
		returning id, order_no
	`,
		o.BranchID, o.BranchName,
		o.FullName, o.Mobile, o.AlternateMobile, o.Email,
		string(o.OrderType), o.DeliveryAddress, o.Area, o.Landmark, o.PickupTime,
		o.Subtotal, o.Tax, o.Discount, o.DeliveryFee, o.Total,
		o.PromoCode, o.PromoDiscount, o.PromoDiscountPercentage,
		o.GlobalDiscount, o.GlobalDiscountPercentage,
		o.PaymentMethod, o.ReceiptImageURL, o.BankName, o.ChangeRequest,
		string(o.Status), o.CancelReason,
		o.IsGift, o.GiftMessage, o.Instructions,
		now,
	).Scan(&o.ID, &orderNo); err != nil {
		return err
	}
	o.OrderNumber = fmt.Sprintf("TB-%d", orderNo)

	for _, item := range o.Items {
		variationJSON, err := nullableJSON(item.SelectedVariation)
		if err != nil {
			return err
		}
		extrasJSON, err := nullableJSON(item.SelectedExtras)
		if err != nil {
			return err
		}
		sidesJSON, err := nullableJSON(item.SelectedSideOrders)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			insert into order_items (
				order_id, item_id, title, price, quantity,
				image_url, special_instructions,
				variation, extras, side_orders
			) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			o.ID, item.ID, item.Title, item.Price, item.Quantity,
			item.ImageURL, item.SpecialInstructions,
			variationJSON, extrasJSON, sidesJSON,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Order, error) {
	row := r.DB.QueryRow(ctx, `select`+orderColumns+` from orders where id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	orderNo, ok := parseOrderNumber(orderNumber)
	if !ok {
		return nil, ErrNotFound
	}
	row := r.DB.QueryRow(ctx, `select`+orderColumns+` from orders where order_no = $1`, orderNo)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns one admin page plus the total row count for the filter.
// Newest orders first.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]Order, int, error) {
	where, args := buildListWhere(filter)

	var total int
	if err := r.DB.QueryRow(ctx, `select count(*) from orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, pageSize, (page-1)*pageSize)
	limitClause := fmt.Sprintf(" order by created_at desc limit $%d offset $%d", len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, `select`+orderColumns+` from orders`+where+limitClause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]Order, 0, pageSize)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadItemsBulk(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FetchRange loads every order created inside [from, to) with its items,
// for the statistics aggregator.
func (r *Repo) FetchRange(ctx context.Context, from, to time.Time) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		select`+orderColumns+` from orders
		where created_at >= $1 and created_at < $2
		order by created_at desc
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItemsBulk(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id int64, status Status, cancelReason string) error {
	tag, err := r.DB.Exec(ctx, `
		update orders set status = $1, cancel_reason = $2, updated_at = now() where id = $3
	`, string(status), cancelReason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `delete from order_items where order_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `delete from orders where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func buildListWhere(filter ListFilter) (string, []any) {
	clauses := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if from, to, ok := utils.DateFilterRange(filter.DateFilter, filter.CustomDate, time.Now()); ok {
		args = append(args, from)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
		args = append(args, to)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if filter.TypeFilter != "" && filter.TypeFilter != "all" {
		args = append(args, filter.TypeFilter)
		clauses = append(clauses, fmt.Sprintf("order_type = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		clauses = append(clauses, fmt.Sprintf("status = any($%d)", len(args)))
	}
	if filter.PaymentFilter != "" && filter.PaymentFilter != "all" {
		args = append(args, filter.PaymentFilter)
		clauses = append(clauses, fmt.Sprintf("payment_method = $%d", len(args)))
	}
	if filter.BranchID > 0 {
		args = append(args, filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " where " + strings.Join(clauses, " and "), args
}

func (r *Repo) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.DB.Query(ctx, `
		select item_id, title, price, quantity, image_url, special_instructions,
		       variation, extras, side_orders
		from order_items where order_id = $1 order by id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.Items = o.Items[:0]
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *Repo) loadItemsBulk(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]*Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = &orders[i]
	}

	rows, err := r.DB.Query(ctx, `
		select order_id, item_id, title, price, quantity, image_url, special_instructions,
		       variation, extras, side_orders
		from order_items where order_id = any($1) order by id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item Item
		var itemID, imageURL, instructions pgtype.Text
		var price pgtype.Numeric
		var variationJSON, extrasJSON, sidesJSON []byte
		if err := rows.Scan(
			&orderID, &itemID, &item.Title, &price, &item.Quantity,
			&imageURL, &instructions,
			&variationJSON, &extrasJSON, &sidesJSON,
		); err != nil {
			return err
		}
		item.ID = itemID.String
		item.ImageURL = imageURL.String
		item.SpecialInstructions = instructions.String
		item.Price = utils.NumericToFloat64(price)
		if err := decodeItemJSON(&item, variationJSON, extrasJSON, sidesJSON); err != nil {
			return err
		}
		if o, ok := index[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var orderNo int64
	var branchName, alternateMobile, email pgtype.Text
	var deliveryAddress, area, landmark, pickupTime pgtype.Text
	var promoCode, receiptImageURL, bankName, cancelReason pgtype.Text
	var giftMessage, instructions pgtype.Text
	var subtotal, tax, discount, deliveryFee, total pgtype.Numeric
	var promoDiscount, promoPct, globalDiscount, globalPct, changeRequest pgtype.Numeric
	var orderType, status string

	if err := row.Scan(
		&o.ID, &orderNo, &o.BranchID, &branchName,
		&o.FullName, &o.Mobile, &alternateMobile, &email,
		&orderType, &deliveryAddress, &area, &landmark, &pickupTime,
		&subtotal, &tax, &discount, &deliveryFee, &total,
		&promoCode, &promoDiscount, &promoPct,
		&globalDiscount, &globalPct,
		&o.PaymentMethod, &receiptImageURL, &bankName, &changeRequest,
		&status, &cancelReason,
		&o.IsGift, &giftMessage, &instructions,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.OrderNumber = fmt.Sprintf("TB-%d", orderNo)
	o.BranchName = branchName.String
	o.AlternateMobile = alternateMobile.String
	o.Email = email.String
	o.OrderType = OrderType(orderType)
	o.DeliveryAddress = deliveryAddress.String
	o.Area = area.String
	o.Landmark = landmark.String
	o.PickupTime = pickupTime.String
	o.Subtotal = utils.NumericToFloat64(subtotal)
	o.Tax = utils.NumericToFloat64(tax)
	o.Discount = utils.NumericToFloat64(discount)
	o.DeliveryFee = utils.NumericToFloat64(deliveryFee)
	o.Total = utils.NumericToFloat64(total)
	o.PromoCode = promoCode.String
	o.PromoDiscount = utils.NumericToFloat64(promoDiscount)
	o.PromoDiscountPercentage = utils.NumericToFloat64(promoPct)
	o.GlobalDiscount = utils.NumericToFloat64(globalDiscount)
	o.GlobalDiscountPercentage = utils.NumericToFloat64(globalPct)
	o.ReceiptImageURL = receiptImageURL.String
	o.BankName = bankName.String
	o.ChangeRequest = utils.NumericToFloat64(changeRequest)
	o.Status = Status(status)
	o.CancelReason = cancelReason.String
	o.GiftMessage = giftMessage.String
	o.Instructions = instructions.String
	return &o, nil
}

func scanItem(rows pgx.Rows) (Item, error) {
	var item Item
	var itemID, imageURL, instructions pgtype.Text
	var price pgtype.Numeric
	var variationJSON, extrasJSON, sidesJSON []byte
	if err := rows.Scan(
		&itemID, &item.Title, &price, &item.Quantity,
		&imageURL, &instructions,
		&variationJSON, &extrasJSON, &sidesJSON,
	); err != nil {
		return Item{}, err
	}
	item.ID = itemID.String
	item.ImageURL = imageURL.String
	item.SpecialInstructions = instructions.String
	item.Price = utils.NumericToFloat64(price)
	if err := decodeItemJSON(&item, variationJSON, extrasJSON, sidesJSON); err != nil {
		return Item{}, err
	}
	return item, nil
}

func decodeItemJSON(item *Item, variationJSON, extrasJSON, sidesJSON []byte) error {
	if len(variationJSON) > 0 {
		var v Variation
		if err := json.Unmarshal(variationJSON, &v); err != nil {
			return err
		}
		item.SelectedVariation = &v
	}
	if len(extrasJSON) > 0 {
		if err := json.Unmarshal(extrasJSON, &item.SelectedExtras); err != nil {
			return err
		}
	}
	if len(sidesJSON) > 0 {
		if err := json.Unmarshal(sidesJSON, &item.SelectedSideOrders); err != nil {
			return err
		}
	}
	return nil
}

func nullableJSON(v any) ([]byte, error) {
	switch value := v.(type) {
	case *Variation:
		if value == nil {
			return nil, nil
		}
	case []Extra:
		if len(value) == 0 {
			return nil, nil
		}
	case []SideOrder:
		if len(value) == 0 {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func parseOrderNumber(orderNumber string) (int64, bool) {
	trimmed := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(orderNumber)), "TB-")
	var n int64
	if _, err := fmt.Sscanf(trimmed, "%d", &n); err != nil {
		return 0, false
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}
