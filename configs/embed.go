package configs

import "embed"

//go:embed routing.yaml tools.json
var FS embed.FS
