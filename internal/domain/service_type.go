package domain

import "time"

type ServiceType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"` // nil when the service is priced per job
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// BasePrice treats an unpriced service as zero.
func (st *ServiceType) BasePrice() float64 {
	if st.Price == nil {
		return 0
	}
	return *st.Price
}
