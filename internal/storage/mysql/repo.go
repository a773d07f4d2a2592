package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) TruncateRoomPrices(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, truncateRoomPricesSQL)
	return err
}

func (r *Repo) SaveRoomPrices(ctx context.Context, rows []domain.RoomPrice) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*8)
	for _, rp := range rows {
		values = append(values, "(?,?,?,?,?,?,?,?)")
		args = append(args,
			rp.Hotel,
			rp.RoomPrice,
			rp.ReviewScore,
			rp.PricePerReview,
			rp.CheckIn,
			rp.CheckOut,
			rp.AsOf,
			rp.City,
		)
	}
	sqlStr := insertRoomPricesPrefix + strings.Join(values, ",")
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) ListRoomPrices(ctx context.Context) ([]domain.RoomPrice, error) {
	rows, err := r.db.QueryContext(ctx, listRoomPricesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomPrice
	for rows.Next() {
		var rp domain.RoomPrice
		if err := rows.Scan(
			&rp.Hotel,
			&rp.RoomPrice,
			&rp.ReviewScore,
			&rp.PricePerReview,
			&rp.CheckIn,
			&rp.CheckOut,
			&rp.AsOf,
			&rp.City,
		); err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

func (r *Repo) TruncateBookingDetails(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, truncateBookingDetailsSQL)
	return err
}

func (r *Repo) SaveBookingDetails(ctx context.Context, bd domain.BookingDetails) error {
	_, err := r.db.ExecContext(ctx, insertBookingDetailsSQL,
		bd.CheckIn,
		bd.CheckOut,
		bd.City,
		bd.NumAdults,
		bd.NumChildren,
		bd.NumRooms,
		bd.Currency,
		bd.OnlyHotel,
	)
	return err
}

func (r *Repo) ListBookingDetails(ctx context.Context) ([]domain.BookingDetails, error) {
	rows, err := r.db.QueryContext(ctx, listBookingDetailsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingDetails
	for rows.Next() {
		var bd domain.BookingDetails
		if err := rows.Scan(
			&bd.CheckIn,
			&bd.CheckOut,
			&bd.City,
			&bd.NumAdults,
			&bd.NumChildren,
			&bd.NumRooms,
			&bd.Currency,
			&bd.OnlyHotel,
		); err != nil {
			return nil, err
		}
		out = append(out, bd)
	}
	return out, rows.Err()
}
