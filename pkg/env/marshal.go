package env

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var ErrNotStruct = errors.New("env: value must be a struct or a pointer to one")

// MarshalEnv renders the exported fields of c that carry an env tag as
// KEY=value lines, in field order. Zero values are skipped so that
// defaults apply when the file is loaded back. Nested structs are walked
// with their envPrefix tag prepended to the keys.
func MarshalEnv(c any) (string, error) {
	v := reflect.ValueOf(c)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", ErrNotStruct
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", ErrNotStruct
	}

	var lines []string
	collect(v, "", &lines)
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func collect(v reflect.Value, prefix string, lines *[]string) {
	t := v.Type()
	for i := range v.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		val := v.Field(i)

		if field.Type.Kind() == reflect.Struct && field.Tag.Get("env") == "" {
			collect(val, prefix+field.Tag.Get("envPrefix"), lines)
			continue
		}

		// "KEY,required,notEmpty": options after the key are ignored
		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" || val.IsZero() {
			continue
		}
		*lines = append(*lines, prefix+key+"="+quote(formatValue(val)))
	}
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Pointer:
		return formatValue(v.Elem())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// quote wraps values the dotenv parser would otherwise misread. Single
// quotes keep the value literal; double quotes are used only when the
// value holds a single quote or a line break.
func quote(s string) string {
	if !strings.ContainsAny(s, " \t\r\n#'\"\\$=`") {
		return s
	}
	if !strings.ContainsAny(s, "'\r\n") {
		return "'" + s + "'"
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}
