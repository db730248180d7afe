// Package icon maps asset types to the built-in icon shown when no logo
// could be resolved. The set is fixed at compile time so a row can never
// render without any image at all.
package icon

import "strings"

const Default = "generic"

var byType = map[string]string{
	"stock":  "chart-line",
	"etf":    "layers",
	"fund":   "layers",
	"crypto": "coin",
	"bond":   "scroll",
	"cash":   "banknote",
	"metal":  "ingot",
}

// For returns the icon name for an asset type, falling back to Default for
// unknown or empty types.
func For(assetType string) string {
	if name, ok := byType[strings.ToLower(strings.TrimSpace(assetType))]; ok {
		return name
	}
	return Default
}
