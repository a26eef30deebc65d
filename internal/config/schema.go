package config

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-signals/internal/backtest"
	"github.com/rxtech-lab/argo-signals/internal/datasource"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/internal/writer"
)

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t.String() {
			case "optional.Option[time.Time]":
				return &jsonschema.Schema{Type: "string", Format: "date-time"}
			case "types.StrategyType":
				return enumSchema(types.AllStrategies)
			case "writer.Format":
				return &jsonschema.Schema{Type: "string", Enum: writer.AllFormats}
			case "backtest.SizingPolicyType":
				return &jsonschema.Schema{Type: "string", Enum: backtest.AllSizingPolicies}
			case "datasource.SourceType":
				return enumSchema(datasource.AllSources)
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "argo-signals-config"
	schema.Description = "Configuration schema for argo-signals backtests"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates an indented JSON schema string for Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

func enumSchema[T ~string](values []T) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}

	return &jsonschema.Schema{Type: "string", Enum: enum}
}
