package models

// Interest is a global tag usable as a profile attribute and a
// member-search filter
type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
