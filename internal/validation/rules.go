// Package validation evaluates declarative per-field rule sets against decoded
// JSON request bodies and reports localized, field-keyed error messages.
package validation

import "strings"

// Field is the ordered rule list for one input field.
type Field struct {
	Name  string
	Rules []string
}

// RuleSet is an ordered list of field rules. Order is preserved in the
// validated output and in serialized errors.
type RuleSet []Field

// ProductCreateRules are the rules applied when creating a product.
var ProductCreateRules = RuleSet{
	{Name: "name", Rules: []string{"required", "string", "max=255"}},
	{Name: "description", Rules: []string{"nullable", "string", "max=1000"}},
	{Name: "price", Rules: []string{"required", "integer", "min=0"}},
	{Name: "stock", Rules: []string{"required", "integer", "min=0"}},
	{Name: "is_active", Rules: []string{"boolean"}},
}

// ProductUpdateRules are the create rules with every field made optional.
var ProductUpdateRules = ProductCreateRules.Sometimes()

// Sometimes returns a copy of rs where each field is only checked when present.
func (rs RuleSet) Sometimes() RuleSet {
	out := make(RuleSet, 0, len(rs))
	for _, f := range rs {
		rules := make([]string, 0, len(f.Rules)+1)
		rules = append(rules, ruleSometimes)
		rules = append(rules, f.Rules...)
		out = append(out, Field{Name: f.Name, Rules: rules})
	}
	return out
}

// Names returns the field names in declaration order.
func (rs RuleSet) Names() []string {
	names := make([]string, len(rs))
	for i, f := range rs {
		names[i] = f.Name
	}
	return names
}

const (
	ruleSometimes = "sometimes"
	ruleRequired  = "required"
	ruleNullable  = "nullable"
	ruleString    = "string"
	ruleInteger   = "integer"
	ruleBoolean   = "boolean"
)

func (f Field) has(rule string) bool {
	for _, r := range f.Rules {
		if r == rule {
			return true
		}
	}
	return false
}

// ruleName strips the parameter from a rule such as "max=255".
func ruleName(rule string) string {
	name, _, _ := strings.Cut(rule, "=")
	return name
}
