package render

import (
	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// fontCandidates are probed in order. CJK-capable faces first so Japanese
// names render, then common Latin fallbacks.
var fontCandidates = []string{
	"HiraginoSans-W6",
	"Hiragino Sans W6",
	"NotoSansCJK-Bold",
	"NotoSansCJK-Regular",
	"NotoSans-Bold",
	"DejaVuSans-Bold",
	"DejaVuSans",
	"Arial",
}

// loadFace finds a usable system font at the given pixel size. Falls back
// to the builtin bitmap face when nothing is installed; frames still render,
// just with cruder text.
func loadFace(size float64) font.Face {
	for _, name := range fontCandidates {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		face, err := gg.LoadFontFace(path, size)
		if err != nil {
			continue
		}
		return face
	}
	return basicfont.Face7x13
}
