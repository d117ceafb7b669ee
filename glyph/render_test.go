package glyph

import "testing"
import "image"
import "image/color"

import "golang.org/x/image/font/gofont/goregular"

import fontutils "github.com/tinne26/texfont/font"

func TestRenderCrop(t *testing.T) {
	face := newFakeFace()
	bitmap := Render(face, 'A')
	if bitmap.Degraded() { t.Fatalf("unexpected degraded render %+v", bitmap) }
	if bitmap.WidthAdv != 8 { t.Fatalf("expected advance 8, got %d", bitmap.WidthAdv) }

	// rect spans x [1, 6) and y [12 - 10, 12), crop keeps the origin
	if bitmap.BBoxW != 6 || bitmap.BBoxH != 12 {
		t.Fatalf("expected 6x12 bitmap, got %dx%d", bitmap.BBoxW, bitmap.BBoxH)
	}
	if bitmap.Image.Rect != image.Rect(0, 0, 6, 12) {
		t.Fatalf("unexpected image bounds %v", bitmap.Image.Rect)
	}
	if bitmap.Image.RGBAAt(0, 0).A != 0 || bitmap.Image.RGBAAt(0, 5).A != 0 {
		t.Fatal("expected transparent pixels outside the glyph")
	}
	white := color.RGBA{255, 255, 255, 255}
	if bitmap.Image.RGBAAt(3, 5) != white || bitmap.Image.RGBAAt(5, 11) != white {
		t.Fatalf("expected opaque white glyph pixels, got %v", bitmap.Image.RGBAAt(3, 5))
	}
}

func TestRenderBlank(t *testing.T) {
	face := newFakeFace()
	face.emptyOutline = true
	bitmap := Render(face, ' ')
	if bitmap.DrawTier != TierPrimary { t.Fatalf("unexpected draw tier %s", bitmap.DrawTier) }
	if bitmap.BBoxW != 8 || bitmap.BBoxH != 1 {
		t.Fatalf("expected 8x1 placeholder, got %dx%d", bitmap.BBoxW, bitmap.BBoxH)
	}

	face.advance = 0
	bitmap = Render(face, 0x200B)
	if bitmap.BBoxW != 1 || bitmap.BBoxH != 1 {
		t.Fatalf("expected 1x1 placeholder, got %dx%d", bitmap.BBoxW, bitmap.BBoxH)
	}
}

func TestRenderFailures(t *testing.T) {
	for _, setup := range []func(*fakeFace){
		func(face *fakeFace) { face.failOutline = true },
		func(face *fakeFace) { face.panicOutline = true },
	}{
		face := newFakeFace()
		setup(face)
		bitmap := Render(face, 'A')
		if bitmap.DrawTier != TierPlaceholder { t.Fatalf("expected placeholder tier, got %s", bitmap.DrawTier) }
		if bitmap.BBoxW != 1 || bitmap.BBoxH != 1 || bitmap.Image.RGBAAt(0, 0).A != 0 {
			t.Fatalf("expected 1x1 transparent bitmap, got %dx%d", bitmap.BBoxW, bitmap.BBoxH)
		}
		if !bitmap.Degraded() { t.Fatal("expected degraded bitmap") }
	}

	face := newFakeFace()
	face.failAdvance, face.failBounds = true, true
	bitmap := Render(face, 'A')
	if bitmap.AdvanceTier != TierFallback || bitmap.BoundsTier != TierFallback {
		t.Fatalf("unexpected tiers %s, %s", bitmap.AdvanceTier, bitmap.BoundsTier)
	}
	if bitmap.WidthAdv != 9 || bitmap.BBoxW != 6 { t.Fatalf("unexpected bitmap %+v", bitmap) }
}

func TestSfntFace(t *testing.T) {
	sfntFont, _, err := fontutils.ParseFromBytes(goregular.TTF, 0)
	if err != nil { t.Fatal(err) }
	_, err = NewSfntFace(sfntFont, 0)
	if err != ErrInvalidSize { t.Fatalf("expected ErrInvalidSize, got %v", err) }

	face, err := NewSfntFace(sfntFont, 32)
	if err != nil { t.Fatal(err) }
	defer face.Close()
	if face.SizePx() != 32 || face.Ascent() <= 0 || face.Ascent() > 40 {
		t.Fatalf("unexpected size %d or ascent %d", face.SizePx(), face.Ascent())
	}

	bitmap := Render(face, 'H')
	if bitmap.Degraded() { t.Fatalf("unexpected degraded render %+v", bitmap) }
	if bitmap.WidthAdv <= 0 || bitmap.BBoxW > bitmap.WidthAdv + 2 {
		t.Fatalf("unexpected advance %d for width %d", bitmap.WidthAdv, bitmap.BBoxW)
	}
	// 'H' sits on the baseline, so the crop ends right there
	if bitmap.BBoxH < face.Ascent() - 1 || bitmap.BBoxH > face.Ascent() + 1 {
		t.Fatalf("expected bitmap height close to ascent %d, got %d", face.Ascent(), bitmap.BBoxH)
	}

	space := Render(face, ' ')
	if space.BBoxH != 1 || space.BBoxW != space.WidthAdv || space.WidthAdv <= 0 {
		t.Fatalf("unexpected space bitmap %dx%d (advance %d)", space.BBoxW, space.BBoxH, space.WidthAdv)
	}

	// characters missing from the font fall back to the legacy extent
	const cjkOne = '\u4E00' // not in goregular
	missing := Estimate(face, cjkOne)
	if missing.Tier != TierFallback { t.Fatalf("expected fallback tier, got %s", missing.Tier) }
	_, err = face.Advance(cjkOne)
	if err != ErrMissingGlyph { t.Fatalf("expected ErrMissingGlyph, got %v", err) }
	_, err = face.Bounds(cjkOne)
	if err != ErrMissingGlyph { t.Fatalf("expected ErrMissingGlyph, got %v", err) }
	advance, tier := AdvanceOf(face, cjkOne)
	if tier != TierFallback || advance <= 0 {
		t.Fatalf("expected a positive fallback advance, got %d (%s)", advance, tier)
	}
	notdef := Render(face, cjkOne)
	if notdef.AdvanceTier != TierFallback || notdef.BoundsTier != TierFallback {
		t.Fatalf("unexpected tiers for missing glyph: %+v", notdef)
	}
}

func TestOpen(t *testing.T) {
	_, err := Open("missing.ttf", 16)
	if err == nil { t.Fatal("expected error for missing font") }
	_, err = Open("missing.ttf", -1)
	if err != ErrInvalidSize { t.Fatalf("expected ErrInvalidSize, got %v", err) }
}
