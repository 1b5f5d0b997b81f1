package models

// Categories is the fixed set of expense categories accepted by the API.
var Categories = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Shopping",
	"Bills",
	"Healthcare",
	"Education",
	"Other",
}

// ValidCategory reports whether name is one of the fixed categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
