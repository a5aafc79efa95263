// Package data embeds the sample airports used to seed a fresh catalog.
package data

import _ "embed"

//go:embed airports.json
var Airports []byte
