// Package graphql holds the read-only GraphQL schema over import results.
package graphql

import (
	_ "embed"
)

//go:embed schema.graphqls
var schema string

// Schema returns the schema document.
func Schema() string {
	return schema
}
