package validator

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/devos-project/devosctl/internal/config"
)

func registerStructureChecks(r *Registry) {
	r.Register(Check{
		Name:        "structure/dirs",
		Group:       "structure",
		Description: "required directories exist",
		Run: func(ctx *Context) []Finding {
			var findings []Finding
			for _, dir := range config.RequiredDirs {
				info, err := os.Stat(ctx.Layout.Abs(dir))
				switch {
				case err != nil:
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    dir,
						Message: fmt.Sprintf("directory %s must exist", dir),
					})
				case !info.IsDir():
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    dir,
						Message: fmt.Sprintf("%s must be a directory", dir),
					})
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "structure/files",
		Group:       "structure",
		Description: "required files exist",
		Run: func(ctx *Context) []Finding {
			var findings []Finding
			for _, file := range config.RequiredFiles {
				info, err := os.Stat(ctx.Layout.Abs(file))
				switch {
				case err != nil:
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    file,
						Message: fmt.Sprintf("file %s must exist", file),
					})
				case info.IsDir():
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    file,
						Message: fmt.Sprintf("%s must be a file", file),
					})
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "structure/license",
		Group:       "structure",
		Description: "the license is MIT",
		Run: func(ctx *Context) []Finding {
			content, err := ctx.ReadFile(config.LicenseFile)
			if err != nil {
				return nil // structure/files reports the missing file
			}
			text := string(content)
			var findings []Finding
			if !strings.Contains(text, "MIT License") {
				findings = append(findings, Finding{
					Kind:    KindSchema,
					File:    config.LicenseFile,
					Message: "license must be MIT License",
				})
			}
			if !strings.Contains(text, "Permission is hereby granted") {
				findings = append(findings, Finding{
					Kind:    KindSchema,
					File:    config.LicenseFile,
					Message: "license must contain standard MIT license text",
				})
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "structure/placeholders",
		Group:       "structure",
		Description: "placeholder markers keep empty directories under version control",
		Run: func(ctx *Context) []Finding {
			return placeholderFindings(os.DirFS(ctx.Layout.Root))
		},
	})
}

// placeholderFindings scans fsys for .gitkeep markers and reports the
// placeholder directories missing one. A failed scan is reported as a
// finding rather than mistaken for missing markers.
func placeholderFindings(fsys fs.FS) []Finding {
	markers := make(map[string]bool)
	err := doublestar.GlobWalk(fsys, "**/.gitkeep", func(p string, d fs.DirEntry) error {
		markers[path.Dir(p)] = true
		return nil
	}, doublestar.WithFailOnIOErrors())
	if err != nil {
		return []Finding{{
			Kind:    KindSchema,
			Message: fmt.Sprintf("scan placeholder markers: %v", err),
		}}
	}

	var findings []Finding
	for _, dir := range config.PlaceholderDirs {
		if !markers[dir] {
			findings = append(findings, Finding{
				Kind:    KindSchema,
				File:    dir,
				Message: fmt.Sprintf(".gitkeep must exist in %s", dir),
			})
		}
	}
	return findings
}
