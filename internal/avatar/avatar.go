// Package avatar picks a placeholder portrait for a lead.
package avatar

import "strings"

const (
	FemaleURL = "https://www.w3schools.com/howto/img_avatar2.png"
	MaleURL   = "https://www.w3schools.com/howto/img_avatar.png"
)

// femaleNames are matched as case-sensitive substrings anywhere in the full
// name, so "Zoella" and "Evan" count as female. Kept for compatibility with
// existing dashboards.
var femaleNames = []string{
	"Isabelle", "Chloe", "Sophie", "Charlotte", "Zoe",
	"Amelie", "Lena", "Maëlle", "Nora", "Eva",
}

func Resolve(name string) string {
	for _, f := range femaleNames {
		if strings.Contains(name, f) {
			return FemaleURL
		}
	}
	return MaleURL
}
