package transport

import "time"

type RecentBooking struct {
	ID            string    `json:"id"`
	PackageTitle  string    `json:"packageTitle"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	StartDate     time.Time `json:"startDate"`
	Travelers     int       `json:"travelers"`
	TotalPrice    float64   `json:"totalPrice"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StatsResponse is the admin dashboard payload.
type StatsResponse struct {
	Revenue        float64         `json:"revenue"`
	TotalBookings  int64           `json:"totalBookings"`
	TotalUsers     int64           `json:"totalUsers"`
	TotalPackages  int64           `json:"totalPackages"`
	RecentBookings []RecentBooking `json:"recentBookings"`
}
