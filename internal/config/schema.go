package config

import (
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Schema describes Config keyed by environment variable name, with envDefault values as defaults.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
		FieldNameTag:              "env",
	}

	schema := reflector.Reflect(&Config{})
	schema.Title = "Messaging API Configuration"
	schema.Description = "Environment variables read by the messaging-api service"
	schema.Required = nil

	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("env")
		prop, ok := schema.Properties.Get(name)
		if name == "" || !ok {
			continue
		}
		if field.Type == durationType {
			prop.Type = "string"
			prop.Format = "duration"
		}
		if def, ok := field.Tag.Lookup("envDefault"); ok {
			prop.Default = def
		}
	}
	return schema
}
