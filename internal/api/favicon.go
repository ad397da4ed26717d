package api

import (
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/amterp/stacks/internal/model"
)

// GenerateFaviconSVG creates an SVG favicon showing n on a tile of the
// given colour. Numbers too long for the tile get a smaller font.
func GenerateFaviconSVG(n int, bg model.Colour) string {
	if bg == "" {
		bg = model.ColourNeutral
	}

	text := strconv.Itoa(n)
	fontSize := 18
	switch {
	case len(text) >= 4:
		fontSize = 10
	case len(text) == 3:
		fontSize = 13
	}

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32" rx="6" fill="%s"/>`+
			`<text x="50%%" y="50%%" dominant-baseline="central" text-anchor="middle" fill="white" font-family="system-ui, -apple-system, sans-serif" font-weight="600" font-size="%d">%s</text></svg>`,
		html.EscapeString(string(bg)), fontSize, html.EscapeString(text),
	)
}

// GetFavicon serves a favicon tinted with the current layout's lead colour.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	lay := h.controller.Layout()
	svg := GenerateFaviconSVG(h.controller.Number(), lay.LeadColour())

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(svg))
}
