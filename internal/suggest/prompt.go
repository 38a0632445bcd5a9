package suggest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vbonduro/kondate/internal/domain"
)

const promptTemplate = `以下の食材を使用して、献立を提案してください。
提案は具体的なレシピ名、使用する食材、簡単な調理手順を含めてください。
献立検討時には以下リンクの情報を参考にして、提案する際にはURLを添付してください。
https://panasonic.jp/cooking/recipe/autocooker.html
https://cookpad.com/jp
期限が近い食材を優先的に使用してください。
分量: %s
好み: %s

食材リスト:
%s

提案例:
レシピ名: 鶏肉と野菜の炒め物
` + IngredientLabel + ` 鶏もも肉、玉ねぎ、ピーマン、にんじん
調理手順: 1. 鶏肉と野菜を切る。2. フライパンで炒める。3. 塩コショウで味を調える。
`

const unspecified = "指定なし"

// BuildPrompt renders the request sent to the generator. Items are listed in
// the order given, which callers keep as soonest expiry first.
func BuildPrompt(items []*domain.FoodItem, prefs Preferences) string {
	entries := make([]string, 0, len(items))
	for _, item := range items {
		entries = append(entries, FormatItem(item))
	}
	return fmt.Sprintf(promptTemplate,
		orUnspecified(prefs.Servings),
		orUnspecified(prefs.Taste),
		strings.Join(entries, ", "),
	)
}

// FormatItem renders one item as "name (期限: date, 数量: qty)".
func FormatItem(item *domain.FoodItem) string {
	return fmt.Sprintf("%s (期限: %s, 数量: %s)",
		item.Name,
		item.ExpiryDate.Format(domain.DateLayout),
		strconv.FormatFloat(item.Quantity, 'f', -1, 64),
	)
}

func orUnspecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unspecified
	}
	return s
}
