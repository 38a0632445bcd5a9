package suggest

import (
	"strings"

	"golang.org/x/text/width"
)

// separators maps every accepted list separator and blank to its
// replacement. Only these runes are normalised; names keep their own width.
var separators = strings.NewReplacer(
	"、", ",",
	"，", ",",
	" ", "",
	"　", "",
)

// LabelParser reads ingredient names from every line that carries Label,
// e.g. "使用食材: 鶏もも肉、玉ねぎ". A zero LabelParser uses IngredientLabel.
type LabelParser struct {
	Label string
}

// Parse returns the deduplicated names in the order they first appear.
// The label matches in its half-width and full-width forms, so
// "使用食材：" is found as well. A line repeating the label yields one
// list per occurrence.
func (p LabelParser) Parse(text string) []string {
	label := p.Label
	if label == "" {
		label = IngredientLabel
	}
	label = width.Fold.String(label)
	toLabel := strings.NewReplacer(width.Widen.String(label), label)

	seen := make(map[string]bool)
	names := make([]string, 0)

	for _, line := range strings.Split(text, "\n") {
		segments := strings.Split(toLabel.Replace(line), label)
		if len(segments) < 2 {
			continue
		}

		for _, list := range segments[1:] {
			for _, name := range strings.Split(separators.Replace(list), ",") {
				name = strings.TrimSpace(name)
				if name == "" || seen[name] {
					continue
				}
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	return names
}
