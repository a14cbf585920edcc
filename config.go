package multibranch

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Job is a parsed job definition, as decoded from YAML. The generator only
// looks at the "multibranch" key; everything else belongs to other project
// types.
type Job map[string]interface{}

// stringValue renders a scalar configuration value as the string which ends
// up in the document, without any validation. YAML scalars can decode as
// int or bool even where Jenkins expects a string.
func stringValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// requireString returns the value for a required configuration field.
// A missing field aborts the build.
func requireString(data map[string]interface{}, field string) (string, errors.E) {
	value, ok := data[field]
	if !ok {
		errE := errors.New("missing required configuration field")
		errors.Details(errE)["field"] = field
		return "", errE
	}
	return stringValue(value), nil
}

func optionalString(data map[string]interface{}, field, defaultValue string) string {
	value, ok := data[field]
	if !ok {
		return defaultValue
	}
	return stringValue(value)
}

// lowerBoolString renders a boolean-like configuration value the way
// Jenkins expects it: lowercase, with empty values reading as false.
func lowerBoolString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "false"
	case bool:
		return strconv.FormatBool(v)
	case string:
		if v == "" {
			return "false"
		}
		return strings.ToLower(v)
	default:
		return strings.ToLower(fmt.Sprintf("%v", value))
	}
}

func asMapping(value interface{}) (map[string]interface{}, bool) {
	mapping, ok := value.(map[string]interface{})
	return mapping, ok
}
