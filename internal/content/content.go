// Package content holds the built-in site catalog used when no content file is configured.
package content

import _ "embed"

//go:embed catalog.yaml
var Catalog []byte
