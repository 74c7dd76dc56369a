// Package schema validates loosely typed tool arguments before they are decoded into
// typed request records.
//
// Arguments arrive from JSON-RPC as map[string]any, so numbers are float64 and arrays are
// []any. A Schema maps argument names to a Field that pairs a Type with its presence rule:
//
//	args := schema.Schema{
//	    "sessionId": schema.Required(schema.String()),
//	    "selectors": schema.Optional(schema.Slice(schema.String())),
//	    "position":  schema.Optional(schema.Int()),
//	    "type":      schema.Optional(schema.Enum("web", "mobile", "api")),
//	}
//
//	if err := schema.Validate(args, request.GetArguments()); err != nil {
//	    // err is an *AggregateError listing every offending field
//	}
//
// A JSON null is treated the same as an omitted field. Keys not declared in the schema are
// ignored.
package schema
