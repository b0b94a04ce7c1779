package theme

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hitoshi/maqalat/internal/model"
)

//go:embed palettes.yaml
var palettesYAML []byte

// ParsePalettes はYAMLからテーマごとの配色を読み込む。
// lightとdarkの両方が定義されていない場合はエラーを返す。
func ParsePalettes(data []byte) (map[model.Theme]model.Palette, error) {
	var raw map[string]model.Palette
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse palettes: %w", err)
	}

	palettes := make(map[model.Theme]model.Palette, len(raw))
	for name, p := range raw {
		t, ok := model.ParseTheme(name)
		if !ok {
			return nil, fmt.Errorf("unknown theme in palettes: %q", name)
		}
		palettes[t] = p
	}

	for _, t := range []model.Theme{model.ThemeDark, model.ThemeLight} {
		if _, ok := palettes[t]; !ok {
			return nil, fmt.Errorf("palette for theme %q is missing", t)
		}
	}
	return palettes, nil
}

// DefaultPalettes は組み込みの配色を返す。
func DefaultPalettes() map[model.Theme]model.Palette {
	p, err := ParsePalettes(palettesYAML)
	if err != nil {
		panic(err)
	}
	return p
}
