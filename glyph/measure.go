package glyph

// The capability that ended up producing a measurement or a bitmap.
type Tier uint8
const (
	TierPrimary     Tier = iota // preferred capability succeeded
	TierFallback                // legacy capability had to be used
	TierPlaceholder             // nothing worked, placeholder values used
)

// Returns the name of the tier.
func (self Tier) String() string {
	switch self {
	case TierPrimary: return "primary"
	case TierFallback: return "fallback"
	case TierPlaceholder: return "placeholder"
	default:
		return "Tier(?)"
	}
}

// An estimated (not cropped) glyph size.
type Measure struct {
	W, H int
	Tier Tier
}

// Estimates the size of the character without rendering it. The ink
// bounding box is used when available, otherwise the legacy extent.
// Both dimensions are always at least 1px.
func Estimate(face Face, codePoint rune) Measure {
	bounds, err := face.Bounds(codePoint)
	if err == nil {
		w := bounds.Max.X.Ceil() - bounds.Min.X.Floor()
		h := bounds.Max.Y.Ceil() - bounds.Min.Y.Floor()
		return Measure{ W: max(w, 1), H: max(h, 1), Tier: TierPrimary }
	}

	w, h, err := face.Extent(codePoint)
	if err == nil {
		return Measure{ W: max(w, 1), H: max(h, 1), Tier: TierFallback }
	}
	return Measure{ W: 1, H: 1, Tier: TierPlaceholder }
}

// Returns the advance of the character in whole pixels. The advance
// capability is preferred, then the width of the legacy extent. If
// both fail, the advance is 0.
func AdvanceOf(face Face, codePoint rune) (int, Tier) {
	advance, err := face.Advance(codePoint)
	if err == nil { return advance.Round(), TierPrimary }
	w, _, err := face.Extent(codePoint)
	if err == nil { return w, TierFallback }
	return 0, TierPlaceholder
}
