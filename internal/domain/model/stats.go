package model

// AdminStats is the dashboard snapshot visible to admins. All values follow
// the no-documents-means-zero contract.
type AdminStats struct {
	TotalPayment  float64 `json:"totalPayment"`
	TotalGuides   int64   `json:"totalGuides"`
	TotalClients  int64   `json:"totalClients"`
	TotalPackages int64   `json:"totalPackages"`
	TotalStories  int64   `json:"totalStories"`
}

// UserStats is the dashboard snapshot scoped to a single caller.
type UserStats struct {
	TotalPayment     float64          `json:"totalPayment"`
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
	TotalStories     int64            `json:"totalStories"`
}
