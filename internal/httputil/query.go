package httputil

import (
	"net/url"
	"reflect"
	"strings"
)

// GetURLFields returns the names of all fields of filter whose query
// parameter is set in the URL.
//
// queryFields only contains fields that can be compared directly by
// the caller. Fields tagged with filterField:"false" are meta fields
// that need explicit handling, e.g. glob matches on titles.
//
// setFields contains all field names set in the query parameters. This
// allows filtering for zero values without pointer fields.
func GetURLFields(url *url.URL, filter any) ([]string, []string) {
	var queryFields []string
	var setFields []string

	query := url.Query()
	t := reflectType(filter)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i).Name
		param := t.Field(i).Tag.Get("form")
		filterField := t.Field(i).Tag.Get("filterField")

		if query.Has(param) {
			setFields = append(setFields, field)

			if filterField != "false" {
				queryFields = append(queryFields, field)
			}
		}
	}
	return queryFields, setFields
}

func reflectType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// jsonName strips options like omitempty from a json struct tag.
func jsonName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}
