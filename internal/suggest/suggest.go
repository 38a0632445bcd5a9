package suggest

import "context"

// IngredientLabel marks the line of a suggestion that lists the ingredients
// the recipe uses. The prompt asks for it and LabelParser looks for it.
const IngredientLabel = "使用食材:"

// PlaceholderSuggestion stands in for the AI answer when no generator is
// configured. It follows the requested format so the consume flow still works.
const PlaceholderSuggestion = `レシピ名: 鶏肉と野菜の彩り炒め (ダミー)
使用食材: 鶏もも肉、玉ねぎ、ピーマン、にんじん、キャベツ
調理手順: ダミーの調理手順です。

レシピ名: 大根と豚バラの煮物 (ダミー)
使用食材: 大根、豚バラ肉、生姜
調理手順: ダミーの調理手順です。`

// FailedSuggestion is shown when the generator returned an error.
const FailedSuggestion = "献立の生成に失敗しました。"

// Generator turns a prompt into free-form suggestion text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// IngredientParser extracts the names of the ingredients a suggestion uses.
// Implementations are heuristics over unstructured text.
type IngredientParser interface {
	Parse(text string) []string
}

// Preferences are the free-text hints the user adds to a request.
type Preferences struct {
	Servings string
	Taste    string
}
