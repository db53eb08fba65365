package folio

import "fmt"

// ValidationResult reports a required-field presence check. Errors holds
// one message per missing field, in template field order.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// ValidateEntry checks the given field values against the descriptor's
// required fields. A scalar counts as missing when it is absent, nil,
// empty, false, or zero; a list-typed value (tags, image galleries)
// counts as missing when the list is empty.
//
// Field types are not validated: a date field holding a non-date string
// passes. Presence is the only contract here; anything stricter belongs
// to the form layer.
func ValidateEntry(fields map[string]any, desc *TemplateDescriptor) ValidationResult {
	result := ValidationResult{IsValid: true}
	if desc == nil {
		return result
	}

	for _, name := range desc.Fields {
		cfg, ok := desc.Template[name]
		if !ok || !cfg.Required {
			continue
		}
		if isMissing(fields[name]) {
			result.IsValid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Required field '%s' is missing", name))
		}
	}
	return result
}

// ValidateContent checks every entry of a content value against the
// descriptor. The first invalid entry's result is returned; a content
// value with no entries is valid.
func ValidateContent(content SectionContent, desc *TemplateDescriptor) ValidationResult {
	for _, e := range content.Entries {
		if r := ValidateEntry(e.Fields, desc); !r.IsValid {
			return r
		}
	}
	return ValidationResult{IsValid: true}
}

func isMissing(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
