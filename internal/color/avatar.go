// Package color derives the avatar colors shown next to usernames in the feed.
package color

import (
	"fmt"
	"hash/fnv"
)

// Avatar palette. Saturation and lightness are fixed so every hue stays
// readable against the feed background and emoji glyphs; only the hue
// varies per user.
const (
	avatarSaturation = 0.4
	avatarLightness  = 0.65
)

// ForUser returns the hex avatar color for a user. The color is a pure
// function of the user ID, so it is stable across sessions and servers.
func ForUser(userID string) string {
	h := fnv.New32a()
	h.Write([]byte(userID))
	hue := float64(h.Sum32() % 360)

	r, g, b := hslToRGB(hue, avatarSaturation, avatarLightness)

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts an HSL triple (hue 0-360, saturation and lightness 0-1)
// to 8-bit RGB channels.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	h /= 360.0

	var r1, g1, b1 float64

	if s == 0 {
		r1, g1, b1 = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q

		r1 = channel(p, q, h+1.0/3.0)
		g1 = channel(p, q, h)
		b1 = channel(p, q, h-1.0/3.0)
	}

	return uint8(r1 * 255), uint8(g1 * 255), uint8(b1 * 255)
}

// channel resolves one RGB channel from the intermediate HSL terms.
func channel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
