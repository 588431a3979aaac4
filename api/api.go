// Package api embeds the OpenAPI document of the dispatch service.
package api

import _ "embed"

//go:embed openapi.yml
var OpenAPI []byte
