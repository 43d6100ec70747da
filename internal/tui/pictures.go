package tui

import (
	"strings"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/photo"
)

// Terminal stand-ins for the built-in placeholder pictures.
var pictureGlyphs = map[string]string{
	"cafe":          "☕",
	"shop":          "🏪",
	"school":        "🏫",
	"park":          "🌳",
	"library":       "📚",
	"hospital":      "🏥",
	"bank":          "🏦",
	"bakery":        "🥐",
	"zoo":           "🦁",
	"museum":        "🦖",
	"cinema":        "🎬",
	"supermarket":   "🛒",
	"bus stop":      "🚌",
	"car park":      "🚗",
	"swimming pool": "🏊",
}

const (
	unknownGlyph = "❔"
	photoGlyph   = "📷"
)

// pictureLabel is the text drawn in place of an entry's image.
func pictureLabel(e model.WordEntry, blobs *photo.Blobs) string {
	if photo.IsBlobRef(e.ImageRef) {
		if blobs != nil {
			if _, ok := blobs.Get(e.ImageRef); ok {
				return photoGlyph
			}
		}
		return unknownGlyph
	}
	if g, ok := pictureGlyphs[strings.ToLower(strings.TrimSpace(e.Word))]; ok {
		return g
	}
	return unknownGlyph
}
