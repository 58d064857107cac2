package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

const fallbackKey = "_fallback"

// SupportedLocales lists the locales messages are available in.
var SupportedLocales = []string{"ja", "en"}

// Validator evaluates rule sets and renders messages in the request locale.
type Validator struct {
	validate *validator.Validate
	uni      *ut.UniversalTranslator
	locale   string
}

// New creates a Validator whose default message locale is defaultLocale.
func New(defaultLocale string) (*Validator, error) {
	translators := map[string]locales.Translator{
		"ja": ja.New(),
		"en": en.New(),
	}
	fallback, ok := translators[defaultLocale]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", defaultLocale)
	}

	uni := ut.New(fallback, translators["ja"], translators["en"])
	for locale, table := range messages {
		trans, found := uni.GetTranslator(locale)
		if !found {
			return nil, fmt.Errorf("translator for locale %q not registered", locale)
		}
		for key, text := range table {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("failed to add %s message %q: %w", locale, key, err)
			}
		}
		if err := trans.Add(fallbackKey, fallbackMessages[locale], false); err != nil {
			return nil, fmt.Errorf("failed to add %s fallback message: %w", locale, err)
		}
	}

	return &Validator{
		validate: validator.New(),
		uni:      uni,
		locale:   defaultLocale,
	}, nil
}

// Translator returns the translator for the first supported locale in
// preferred, or the default locale when none match.
func (v *Validator) Translator(preferred ...string) ut.Translator {
	candidates := make([]string, 0, len(preferred))
	for _, p := range preferred {
		if p != "" {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) > 0 {
		if trans, found := v.uni.FindTranslator(candidates...); found {
			return trans
		}
	}
	trans, _ := v.uni.GetTranslator(v.locale)
	return trans
}

// Validate checks input against rules. On success it returns the normalized
// values of the fields present in input; otherwise it returns *Errors with
// messages rendered by trans.
func (v *Validator) Validate(rules RuleSet, input map[string]any, trans ut.Translator) (map[string]any, error) {
	if trans == nil {
		trans = v.Translator()
	}
	out := make(map[string]any, len(rules))
	errs := &Errors{}

	for _, field := range rules {
		raw, present := input[field.Name]
		value, keep, failed := v.checkField(field, raw, present)
		for _, rule := range failed {
			errs.Add(field.Name, message(trans, field.Name, rule))
		}
		if len(failed) == 0 && keep {
			out[field.Name] = value
		}
	}

	if errs.Len() > 0 {
		return nil, errs
	}
	return out, nil
}

// checkField runs the rules of one field in order and returns the normalized
// value, whether it belongs in the output, and the names of failed rules.
func (v *Validator) checkField(field Field, raw any, present bool) (any, bool, []string) {
	if !present && (field.has(ruleSometimes) || !field.has(ruleRequired)) {
		return nil, false, nil
	}

	value := normalizeBlank(raw)
	var failed []string
	for _, rule := range field.Rules {
		switch ruleName(rule) {
		case ruleSometimes:
		case ruleRequired:
			if value == nil {
				return nil, false, []string{ruleRequired}
			}
		case ruleNullable:
			if value == nil {
				return nil, true, nil
			}
		case ruleString:
			s, ok := value.(string)
			if !ok {
				return nil, false, append(failed, ruleString)
			}
			value = s
		case ruleInteger:
			n, ok := toInteger(value)
			if !ok {
				return nil, false, append(failed, ruleInteger)
			}
			value = n
		case ruleBoolean:
			b, ok := toBoolean(value)
			if !ok {
				return nil, false, append(failed, ruleBoolean)
			}
			value = b
		default:
			if err := v.validate.Var(value, rule); err != nil {
				failed = append(failed, ruleName(rule))
			}
		}
	}
	return value, true, failed
}

func message(trans ut.Translator, field, rule string) string {
	if msg, err := trans.T(field + "." + rule); err == nil {
		return msg
	}
	msg, err := trans.T(fallbackKey, field)
	if err != nil {
		return fmt.Sprintf("The %s field is invalid.", field)
	}
	return msg
}

// normalizeBlank trims strings and turns blank strings into nil.
func normalizeBlank(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func toInteger(value any) (int64, bool) {
	switch n := value.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		return fromFloatString(n.String())
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < math.MaxInt64 {
			return int64(n), true
		}
	}
	return 0, false
}

// fromFloatString accepts integral numbers written with a fraction, e.g. "10.0".
func fromFloatString(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 || strings.ContainsAny(s, "eE") {
		return 0, false
	}
	return int64(f), true
}

func toBoolean(value any) (bool, bool) {
	switch b := value.(type) {
	case bool:
		return b, true
	case json.Number:
		return parseBoolString(b.String())
	case string:
		return parseBoolString(b)
	case int:
		return b == 1, b == 0 || b == 1
	case int64:
		return b == 1, b == 0 || b == 1
	case float64:
		return b == 1, b == 0 || b == 1
	}
	return false, false
}

func parseBoolString(s string) (bool, bool) {
	switch s {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}
