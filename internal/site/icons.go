package site

// iconGlyphs maps the icon names used in course content to the glyph shown
// on the page. Unknown names are shown as their first letter.
var iconGlyphs = map[string]string{
	"book":     "📘",
	"box":      "📦",
	"branch":   "🔀",
	"check":    "✅",
	"clock":    "⏰",
	"code":     "💻",
	"function": "ƒ",
	"layers":   "🧱",
	"puzzle":   "🧩",
	"refresh":  "🔄",
	"rocket":   "🚀",
	"shield":   "🛡",
	"star":     "⭐",
}

func iconGlyph(name string) string {
	if g, ok := iconGlyphs[name]; ok {
		return g
	}
	for _, r := range name {
		return string(r)
	}
	return ""
}
