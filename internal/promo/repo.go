// Package promo manages promo codes and the global discount setting read by
// the pricing engine at order-creation time.
package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ZainJ5/tipuburger-server/internal/pricing"
	"github.com/ZainJ5/tipuburger-server/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	DB *pgxpool.Pool
}

// Find looks up a promo code case-insensitively (codes are stored
// uppercased). A missing code is (nil, nil): checkout simply does not apply
// it, it is not an error.
func (r *Repo) Find(ctx context.Context, code string) (*pricing.Promo, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}

	var p pricing.Promo
	var pct pgtype.Numeric
	err := r.DB.QueryRow(ctx, `
		select id, code, discount_percentage
		from promo_codes
		where code = $1 and is_active
	`, normalized).Scan(&p.ID, &p.Code, &pct)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.DiscountPercentage = utils.NumericToFloat64(pct)
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]pricing.Promo, error) {
	rows, err := r.DB.Query(ctx, `
		select id, code, discount_percentage
		from promo_codes
		order by code asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promos := make([]pricing.Promo, 0)
	for rows.Next() {
		var p pricing.Promo
		var pct pgtype.Numeric
		if err := rows.Scan(&p.ID, &p.Code, &pct); err != nil {
			return nil, err
		}
		p.DiscountPercentage = utils.NumericToFloat64(pct)
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

func (r *Repo) Create(ctx context.Context, code string, discountPercentage float64) (pricing.Promo, error) {
	p := pricing.Promo{
		Code:               strings.ToUpper(strings.TrimSpace(code)),
		DiscountPercentage: discountPercentage,
	}
	err := r.DB.QueryRow(ctx, `
		insert into promo_codes (code, discount_percentage)
		values ($1, $2)
		returning id
	`, p.Code, discountPercentage).Scan(&p.ID)
	return p, err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `delete from promo_codes where id = $1`, id)
	return err
}

// GlobalDiscount reads the singleton site-wide discount row. Absence of the
// row means no global discount.
func (r *Repo) GlobalDiscount(ctx context.Context) (*pricing.GlobalDiscount, error) {
	var g pricing.GlobalDiscount
	var pct pgtype.Numeric
	err := r.DB.QueryRow(ctx, `
		select percentage, is_active
		from global_discount
		where id = 1
	`).Scan(&pct, &g.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.Percentage = utils.NumericToFloat64(pct)
	return &g, nil
}

func (r *Repo) SetGlobalDiscount(ctx context.Context, percentage float64, isActive bool) error {
	_, err := r.DB.Exec(ctx, `
		insert into global_discount (id, percentage, is_active, updated_at)
		values (1, $1, $2, $3)
		on conflict (id) do update
		set percentage = excluded.percentage,
		    is_active = excluded.is_active,
		    updated_at = excluded.updated_at
	`, percentage, isActive, time.Now())
	return err
}
