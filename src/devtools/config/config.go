// Package config holds the default configuration files of the devtools server.
package config

import _ "embed"

// Base is the content of base.yaml, used when no configuration directory is available.
//
//go:embed base.yaml
var Base []byte
