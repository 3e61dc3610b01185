package main

import (
	"os"

	rocksolidcmder "github.com/rocksolid/rocksolid/cmd/rocksolid"
)

func main() {
	cmd := rocksolidcmder.NewRocksolidCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
