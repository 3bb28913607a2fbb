package model

// DefaultCategories seeds an empty registry.
var DefaultCategories = []string{
	"UX Design",
	"Development",
	"Marketing",
	"Design",
	"Backend",
	"Frontend",
	"Testing",
}
