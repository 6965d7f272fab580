// Command gdxdump inspects GDX data files: it lists symbols and dumps
// their materialized data.
package main

import (
	"os"

	"github.com/structura-labs/go-gdx/internal/cli"

	// Register the YAML fixture decoder for .yaml/.yml files.
	_ "github.com/structura-labs/go-gdx/pkg/gdxio/yamlfile"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
