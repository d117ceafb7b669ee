package export

import "os"
import "fmt"
import "image"
import "image/png"
import "strconv"

import "golang.org/x/image/draw"

import "github.com/tinne26/texfont/atlas"

// Returns the PNG file name for the given page. Stroke templates get
// a "-stroke" tag after the page name. The suffix goes right before
// the extension:
//   "<base> [<page>] <cols>x<rows><suffix>.png"
func PageFileName(base string, page *atlas.Page, stroke bool, suffix string) string {
	name := page.Name
	if stroke { name += "-stroke" }
	grid := strconv.Itoa(page.NumCols) + "x" + strconv.Itoa(page.NumRows)
	return base + " [" + name + "] " + grid + suffix + ".png"
}

// Returns the INI path for the given base path.
func INIPath(base string) string { return base + ".ini" }

// Returns a white silhouette of the given page: every pixel is white,
// with the alpha of the corresponding page pixel.
func StrokeTemplate(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, image.White, image.Point{}, draw.Src)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			out.Pix[out.PixOffset(x, y) + 3] = uint8(a >> 8)
		}
	}
	return out
}

// Saves each page as a PNG file, plus its stroke template if
// requested. Nothing else is written.
func SaveBitmaps(base string, pages []atlas.Page, strokeTemplates bool, suffix string) error {
	for i := range pages {
		page := &pages[i]
		if page.Image == nil { return fmt.Errorf("page %q has no image", page.Name) }
		err := savePNG(PageFileName(base, page, false, suffix), page.Image)
		if err != nil { return err }
		if !strokeTemplates { continue }
		err = savePNG(PageFileName(base, page, true, suffix), StrokeTemplate(page.Image))
		if err != nil { return err }
	}
	return nil
}

// Same as [SaveBitmaps](), but also writes the INI file. Returns the
// INI path.
func SavePagesAndINI(base string, metrics atlas.FontMetrics, pages []atlas.Page, strokeTemplates bool, suffix string) (string, error) {
	err := SaveBitmaps(base, pages, strokeTemplates, suffix)
	if err != nil { return "", err }
	iniPath := INIPath(base)
	err = WriteINI(iniPath, metrics, pages)
	if err != nil { return "", err }
	return iniPath, nil
}

// Saves the pages and the INI file with no suffix and no stroke
// templates.
func SavePages(base string, metrics atlas.FontMetrics, pages []atlas.Page) (string, error) {
	return SavePagesAndINI(base, metrics, pages, false, "")
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil { return err }
	err = png.Encode(file, img)
	closeErr := file.Close()
	if err != nil { return fmt.Errorf("encoding %s: %w", path, err) }
	return closeErr
}
