package domain

import (
	"reflect"
	"strings"
)

// SchemaInfo describes one entity type for the introspection endpoint.
type SchemaInfo struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// Schemas enumerates the entity types and their wire field names, in
// declaration order.
func Schemas() []SchemaInfo {
	return []SchemaInfo{
		{Name: "homestay", Fields: fieldNames(reflect.TypeOf(Homestay{}))},
		{Name: "booking", Fields: fieldNames(reflect.TypeOf(Booking{}))},
	}
}

func fieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}
