package domain

import "time"

type Equipment struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit"`
	StockQuantity int32     `json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}
