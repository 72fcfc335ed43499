package mongo

import (
	"reflect"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"spacebook/pkg/model"
)

func bsonFields(t *testing.T, v any) map[string]bool {
	t.Helper()
	fields := map[string]bool{}
	typ := reflect.TypeOf(v)
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("bson")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}

func TestViewStateValidatorMatchesModel(t *testing.T) {
	def, ok := Collections()["View_states"]
	if !ok {
		t.Fatal("View_states collection not defined")
	}

	schema := def.Validator["$jsonSchema"].(bson.M)
	fields := bsonFields(t, model.ViewState{})

	for _, required := range schema["required"].([]string) {
		if !fields[required] {
			t.Errorf("required field %q is not stored by model.ViewState", required)
		}
	}
	for property := range schema["properties"].(bson.M) {
		if !fields[property] {
			t.Errorf("schema property %q is not stored by model.ViewState", property)
		}
	}
}

func TestUniqueIndexes(t *testing.T) {
	for name, def := range Collections() {
		unique := false
		for _, index := range def.Indexes {
			if index.Options != nil && index.Options.Unique != nil && *index.Options.Unique {
				unique = true
			}
		}
		if !unique {
			t.Errorf("collection %s has no unique index", name)
		}
	}
}
