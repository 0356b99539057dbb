package models

// Hospital is a place where appointments take place.
type Hospital struct {
	ID      int64  `json:"hospital_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
