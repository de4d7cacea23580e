package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// FieldError describes one field that failed validation.
type FieldError struct {
	Path string // dotted path from the decode root, e.g. "message.chat.type"
	Want string // expected kind or constraint
	Got  string // rendered actual value, or "absent"
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: want %s, got %s", e.Path, e.Want, e.Got)
}

// Error is the failure of one decode. Decoders keep going after the first
// bad field, so a single Error can locate every problem in a payload.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}

	return "invalid payload: " + strings.Join(parts, "; ")
}

type decoder struct {
	errs []FieldError
}

func (d *decoder) err() error {
	if len(d.errs) == 0 {
		return nil
	}

	return &Error{Fields: d.errs}
}

func (d *decoder) fail(path, want string, got any) {
	d.errs = append(d.errs, FieldError{
		Path: path,
		Want: want,
		Got:  render(got),
	})
}

func (d *decoder) missing(path, want string) {
	d.errs = append(d.errs, FieldError{
		Path: path,
		Want: want,
		Got:  "absent",
	})
}

func render(v any) string {
	if v == nil {
		return "null"
	}

	return strings.TrimSpace(spew.Sdump(v))
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func (d *decoder) object(path string, v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		d.fail(path, "object", v)
		return nil, false
	}

	return obj, true
}

func (d *decoder) array(path string, v any) ([]any, bool) {
	arr, ok := v.([]any)
	if !ok {
		d.fail(path, "array", v)
		return nil, false
	}

	return arr, true
}

// optional reports whether the field is present. Explicit null counts as
// absent, matching how the API omits fields it has nothing to say about.
func optional(obj map[string]any, key string) (any, bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, false
	}

	return v, true
}

func (d *decoder) requireString(obj map[string]any, path, key string) string {
	v, ok := optional(obj, key)
	if !ok {
		d.missing(joinPath(path, key), "string")
		return ""
	}

	return d.string(joinPath(path, key), v)
}

func (d *decoder) optionalString(obj map[string]any, path, key string) string {
	v, ok := optional(obj, key)
	if !ok {
		return ""
	}

	return d.string(joinPath(path, key), v)
}

func (d *decoder) string(path string, v any) string {
	s, ok := v.(string)
	if !ok {
		d.fail(path, "string", v)
		return ""
	}

	return s
}

// requireInt rejects fractional JSON numbers: every id, offset and size in
// the schema is a whole number and a fraction there means a broken payload.
func (d *decoder) requireInt(obj map[string]any, path, key string) int64 {
	v, ok := optional(obj, key)
	if !ok {
		d.missing(joinPath(path, key), "integer")
		return 0
	}

	return d.integer(joinPath(path, key), v)
}

func (d *decoder) optionalInt(obj map[string]any, path, key string) int64 {
	v, ok := optional(obj, key)
	if !ok {
		return 0
	}

	return d.integer(joinPath(path, key), v)
}

func (d *decoder) integer(path string, v any) int64 {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		d.fail(path, "integer", v)
		return 0
	}

	return int64(f)
}

func (d *decoder) requireFloat(obj map[string]any, path, key string) float64 {
	v, ok := optional(obj, key)
	if !ok {
		d.missing(joinPath(path, key), "number")
		return 0
	}

	return d.float(joinPath(path, key), v)
}

func (d *decoder) optionalFloat(obj map[string]any, path, key string) float64 {
	v, ok := optional(obj, key)
	if !ok {
		return 0
	}

	return d.float(joinPath(path, key), v)
}

func (d *decoder) float(path string, v any) float64 {
	f, ok := v.(float64)
	if !ok {
		d.fail(path, "number", v)
		return 0
	}

	return f
}

func (d *decoder) requireBool(obj map[string]any, path, key string) bool {
	v, ok := optional(obj, key)
	if !ok {
		d.missing(joinPath(path, key), "boolean")
		return false
	}

	return d.boolean(joinPath(path, key), v)
}

func (d *decoder) optionalBool(obj map[string]any, path, key string) bool {
	v, ok := optional(obj, key)
	if !ok {
		return false
	}

	return d.boolean(joinPath(path, key), v)
}

func (d *decoder) boolean(path string, v any) bool {
	b, ok := v.(bool)
	if !ok {
		d.fail(path, "boolean", v)
		return false
	}

	return b
}
