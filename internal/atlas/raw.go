package atlas

import "github.com/tidwall/gjson"

// Typed lookups over gjson results. A missing or mistyped field yields the
// zero value so one odd field never fails a whole record.

func str(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

func num(r gjson.Result) int {
	if r.Type != gjson.Number {
		return 0
	}
	return int(r.Int())
}

func numPtr(r gjson.Result) *int {
	if r.Type != gjson.Number {
		return nil
	}
	v := int(r.Int())
	return &v
}

// each calls fn for every element of an array; non-arrays are treated as empty.
func each(r gjson.Result, fn func(gjson.Result)) {
	if !r.IsArray() {
		return
	}
	for _, item := range r.Array() {
		fn(item)
	}
}

func ints(r gjson.Result) []int {
	var out []int
	each(r, func(v gjson.Result) {
		out = append(out, num(v))
	})
	return out
}

// field reads a key of an object; for anything else it returns an empty result.
func field(r gjson.Result, key string) gjson.Result {
	if key == "" || !r.IsObject() {
		return gjson.Result{}
	}
	return r.Get(key)
}
