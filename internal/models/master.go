package models

// MasterItem is one value of a master list (laundries, factories, and so on)
type MasterItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AddMasterRequest represents the request body for adding a master value
type AddMasterRequest struct {
	Name string `json:"name"`
}
