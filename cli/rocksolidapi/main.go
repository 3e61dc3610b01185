package main

import (
	"os"

	servecmder "github.com/rocksolid/rocksolid/cmd/rocksolid/serve"
)

func main() {
	cmd := servecmder.NewServeCmd()
	cmd.Use = "rocksolidapi"
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .rocksolid/ config directory")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
