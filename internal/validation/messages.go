package validation

// messages holds the per-locale text for each "field.rule" key.
var messages = map[string]map[string]string{
	"ja": {
		"name.required":      "商品名は必須です",
		"name.string":        "商品名は文字列で入力してください",
		"name.max":           "商品名は255文字以内で入力してください",
		"description.string": "商品説明は文字列で入力してください",
		"description.max":    "商品説明は1000文字以内で入力してください",
		"price.required":     "価格は必須です",
		"price.integer":      "価格は整数で入力してください",
		"price.min":          "価格は0以上で入力してください",
		"stock.required":     "在庫数は必須です",
		"stock.integer":      "在庫数は整数で入力してください",
		"stock.min":          "在庫数は0以上で入力してください",
		"is_active.boolean":  "商品状態は真偽値で入力してください",
	},
	"en": {
		"name.required":      "The name field is required.",
		"name.string":        "The name field must be a string.",
		"name.max":           "The name field must not be greater than 255 characters.",
		"description.string": "The description field must be a string.",
		"description.max":    "The description field must not be greater than 1000 characters.",
		"price.required":     "The price field is required.",
		"price.integer":      "The price field must be an integer.",
		"price.min":          "The price field must be at least 0.",
		"stock.required":     "The stock field is required.",
		"stock.integer":      "The stock field must be an integer.",
		"stock.min":          "The stock field must be at least 0.",
		"is_active.boolean":  "The is_active field must be true or false.",
	},
}

// fallbackMessages are used for keys missing from the tables above.
// {0} is replaced with the field name.
var fallbackMessages = map[string]string{
	"ja": "{0}の値が正しくありません",
	"en": "The {0} field is invalid.",
}
