package domain

import (
	"unicode"
	"unicode/utf8"
)

// MaxPostLength is the maximum post content length in runes.
const MaxPostLength = 255

// Post is a short emoji-only message.
type Post struct {
	Entity
	AuthorID string `json:"author_id"`
	Content  string `json:"content"`
}

// emojiTable approximates the Unicode Extended_Pictographic property plus
// emoji components (ZWJ, variation selectors, keycap bases, skin tones,
// regional indicators). Ranges must stay sorted for unicode.Is.
var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0023, Hi: 0x0023, Stride: 1}, // # (keycap base)
		{Lo: 0x002A, Hi: 0x002A, Stride: 1}, // * (keycap base)
		{Lo: 0x0030, Hi: 0x0039, Stride: 1}, // 0-9 (keycap bases)
		{Lo: 0x00A9, Hi: 0x00A9, Stride: 1}, // copyright
		{Lo: 0x00AE, Hi: 0x00AE, Stride: 1}, // registered
		{Lo: 0x200D, Hi: 0x200D, Stride: 1}, // zero width joiner
		{Lo: 0x203C, Hi: 0x203C, Stride: 1}, // double exclamation
		{Lo: 0x2049, Hi: 0x2049, Stride: 1}, // exclamation question
		{Lo: 0x20E3, Hi: 0x20E3, Stride: 1}, // combining enclosing keycap
		{Lo: 0x2122, Hi: 0x2122, Stride: 1}, // trade mark
		{Lo: 0x2139, Hi: 0x2139, Stride: 1}, // information source
		{Lo: 0x2194, Hi: 0x2199, Stride: 1}, // arrows
		{Lo: 0x21A9, Hi: 0x21AA, Stride: 1}, // hooked arrows
		{Lo: 0x2300, Hi: 0x23FF, Stride: 1}, // misc technical (watch, hourglass, media controls)
		{Lo: 0x24C2, Hi: 0x24C2, Stride: 1}, // circled M
		{Lo: 0x25A0, Hi: 0x27BF, Stride: 1}, // geometric shapes, misc symbols, dingbats
		{Lo: 0x2934, Hi: 0x2935, Stride: 1}, // curved arrows
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1}, // arrows, stars, squares
		{Lo: 0x3030, Hi: 0x3030, Stride: 1}, // wavy dash
		{Lo: 0x303D, Hi: 0x303D, Stride: 1}, // part alternation mark
		{Lo: 0x3297, Hi: 0x3297, Stride: 1}, // circled congratulations
		{Lo: 0x3299, Hi: 0x3299, Stride: 1}, // circled secret
		{Lo: 0xFE0E, Hi: 0xFE0F, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1F0FF, Stride: 1}, // mahjong, dominoes, playing cards
		{Lo: 0x1F100, Hi: 0x1F2FF, Stride: 1}, // enclosed alphanumerics, regional indicators
		{Lo: 0x1F300, Hi: 0x1FAFF, Stride: 1}, // pictographs, emoticons, modifiers, extended
	},
}

// IsEmojiOnly reports whether s is non-empty and consists entirely of
// emoji runes and emoji components. Multi-rune sequences (ZWJ families,
// flags, skin tones, keycaps) pass because every component rune is allowed.
func IsEmojiOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(emojiTable, r) {
			return false
		}
	}
	return true
}

// ValidContent reports whether content is valid for a post:
// emoji-only and between 1 and MaxPostLength runes.
func ValidContent(content string) bool {
	n := utf8.RuneCountInString(content)
	if n < 1 || n > MaxPostLength {
		return false
	}
	return IsEmojiOnly(content)
}
