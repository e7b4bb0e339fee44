package area

import (
	"context"
	"strings"

	"github.com/ZainJ5/tipuburger-server/internal/utils"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo reads and manages the delivery_areas table. Pricing reads it at
// order-creation time; historical orders keep their originally computed fee.
type Repo struct {
	DB *pgxpool.Pool
}

func (r *Repo) List(ctx context.Context) ([]Area, error) {
	rows, err := r.DB.Query(ctx, `
		select id, name, fee, is_active
		from delivery_areas
		order by lower(name) asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := make([]Area, 0)
	for rows.Next() {
		var a Area
		var fee pgtype.Numeric
		if err := rows.Scan(&a.ID, &a.Name, &fee, &a.IsActive); err != nil {
			return nil, err
		}
		a.Fee = utils.NumericToFloat64(fee)
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// ActiveDirectory snapshots the active zones for fee resolution.
func (r *Repo) ActiveDirectory(ctx context.Context) (*Directory, error) {
	areas, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewDirectory(areas), nil
}

func (r *Repo) Create(ctx context.Context, name string, fee float64) (Area, error) {
	a := Area{Name: strings.TrimSpace(name), Fee: fee, IsActive: true}
	err := r.DB.QueryRow(ctx, `
		insert into delivery_areas (name, fee, is_active)
		values ($1, $2, true)
		returning id
	`, a.Name, fee).Scan(&a.ID)
	return a, err
}

func (r *Repo) Update(ctx context.Context, id int64, name string, fee float64, isActive bool) error {
	_, err := r.DB.Exec(ctx, `
		update delivery_areas
		set name = $2, fee = $3, is_active = $4
		where id = $1
	`, id, strings.TrimSpace(name), fee, isActive)
	return err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `delete from delivery_areas where id = $1`, id)
	return err
}
