package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dagger/rocksolid/internal/dagger"
)

// binaries are the cli/ entrypoints shipped in every build.
var binaries = []string{"./cli/rocksolid", "./cli/rocksolidapi"}

// Build and return directory of go binaries
func (r *RockSolid) Build(
	ctx context.Context,

	// Linker flags for go build
	// +optional
	// +default="-s -w"
	ldflags string,
) *dagger.Directory {
	gooses := []string{"linux", "darwin"}
	goarches := []string{"amd64", "arm64"}

	outputs := dag.Directory()

	golang := dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithDirectory("/src", r.Source).
		WithWorkdir("/src")

	for _, goos := range gooses {
		for _, goarch := range goarches {
			path := fmt.Sprintf("%s/%s/", goos, goarch)

			build := golang.
				WithEnvVariable("GOOS", goos).
				WithEnvVariable("GOARCH", goarch)

			for _, bin := range binaries {
				build = build.WithExec([]string{"go", "build", "-ldflags", ldflags, "-o", path, bin})
			}

			outputs = outputs.WithDirectory(path, build.Directory(path))
		}
	}

	return outputs
}

// BuildRelease compiles versioned release binaries with embedded version info
func (r *RockSolid) BuildRelease(
	ctx context.Context,

	// Version string of build
	version string,

	// Git commit SHA of build
	commit string,
) *dagger.Directory {
	buildtime := time.Now()

	ldflags := []string{
		"-s",
		"-w",
		fmt.Sprintf("-X 'github.com/rocksolid/rocksolid/pkg/utils.Version=%s'", version),
		fmt.Sprintf("-X 'github.com/rocksolid/rocksolid/pkg/utils.Sha=%s'", commit),
		fmt.Sprintf("-X 'github.com/rocksolid/rocksolid/pkg/utils.Buildtime=%s'", buildtime),
	}

	return r.Build(ctx, strings.Join(ldflags, " "))
}
