package config

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/LambdaTest/covgate/pkg/errs"
)

const tagName = "mapstructure"

var durationType = reflect.TypeOf(time.Duration(0))

// knownKeys returns every dotted configuration key reachable from t.
// Nested structs are walked recursively, everything else is a leaf key.
func knownKeys(t reflect.Type, prefix string) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	keys := []string{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		key := prefix + getTag(field)
		ft := field.Type
		if ft.Kind() == reflect.Struct && ft != durationType {
			keys = append(keys, knownKeys(ft, key+".")...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func getTag(field reflect.StructField) string {
	if v := field.Tag.Get(tagName); v != "" {
		return strings.SplitN(v, ",", 2)[0]
	}
	return strings.ToLower(field.Name)
}

// checkUnknownKeys returns a config error listing keys that are not part of Config.
func checkUnknownKeys(keys, known []string) error {
	allowed := make(map[string]struct{}, len(known))
	for _, k := range known {
		allowed[k] = struct{}{}
	}
	var unknown []string
	for _, k := range keys {
		if _, ok := allowed[strings.ToLower(k)]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return errs.Config("invalid configuration file", &errs.ErrUnknownKeys{Keys: unknown})
}
