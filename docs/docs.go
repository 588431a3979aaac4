// Package docs registers the dispatch OpenAPI document with swag, so echo-swagger can
// serve it at /swagger/doc.json.
package docs

import (
	"dispatch/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/api/v1",
	Title:            "Dispatch API",
	Description:      "Delivery assignment, courier tracking and realtime notification API.",
	InfoInstanceName: "swagger",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	SwaggerInfo.SwaggerTemplate = documentJSON(api.OpenAPI)
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// documentJSON converts the embedded YAML document to the JSON form swagger-ui loads.
func documentJSON(spec []byte) string {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return "{}"
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(raw)
}
