package bitmap

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// assetScales lists the scale variants tried by Assets, best first.
var assetScales = []struct {
	suffix string
	scale  float64
}{
	{"@3x", 3},
	{"@2x", 2},
	{"", 1},
}

// assetExts lists the extensions tried by Assets, in order.
var assetExts = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".webp"}

// Assets loads named images from a file system, preferring high-resolution
// variants: Image("icon") tries icon@3x.png, icon@2x.png, icon.png and so on
// for each known extension.
type Assets struct {
	fsys     fs.FS
	maxScale float64
}

// NewAssets returns an asset loader over fsys. Variants with a scale above
// maxScale are skipped; maxScale <= 0 allows every variant.
func NewAssets(fsys fs.FS, maxScale float64) *Assets {
	return &Assets{fsys: fsys, maxScale: maxScale}
}

// Image loads the best available variant of name. name may include a
// directory but no extension. The error wraps fs.ErrNotExist when no
// variant is present.
func (a *Assets) Image(name string) (*Image, error) {
	for _, s := range assetScales {
		if a.maxScale > 0 && s.scale > a.maxScale {
			continue
		}
		for _, ext := range assetExts {
			p := name + s.suffix + ext
			img, err := a.load(p, s.scale)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			Logger().Debug("loaded asset", "path", p, "scale", s.scale)
			return img, nil
		}
	}
	return nil, fmt.Errorf("bitmap: asset %q: %w", name, fs.ErrNotExist)
}

func (a *Assets) load(p string, scale float64) (*Image, error) {
	f, err := a.fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("bitmap: asset %s: %w", p, err)
	}
	img.name, _ = splitScale(path.Base(p))
	img.scale = scale
	return img, nil
}
