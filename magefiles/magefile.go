//go:build mage

// Package main contains Mage build targets for markdowngo developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI reads from and writes to.
var projectDirs = []string{
	"input",
	"output",
	".markdowngo",
}

// Init creates the working directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "markdowngo"
	cmdPkg  = "./cmd/markdowngo"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Convert builds the CLI and converts every file in input/ into
// output/converted.md.
func Convert() error {
	mg.Deps(Build, Init)

	entries, err := os.ReadDir("input")
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	args := []string{"convert", "-o", filepath.Join("output", "converted.md"),
		"--report", filepath.Join("output", "report.yaml")}
	for _, e := range entries {
		if !e.IsDir() {
			args = append(args, filepath.Join("input", e.Name()))
		}
	}
	if len(args) == 5 {
		fmt.Println("No files in input/.")
		return nil
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// pkgStats holds file and non-blank line counts for one package directory.
type pkgStats struct {
	files, tests  int
	lines, tlines int
}

// Stats prints per-package file and line counts for internal/, cmd/ and pkg/,
// with tests counted separately.
func Stats() error {
	stats := map[string]*pkgStats{}
	for _, root := range []string{"internal", "cmd", "pkg"} {
		if err := collectStats(root, stats); err != nil {
			return err
		}
	}

	dirs := make([]string, 0, len(stats))
	for dir := range stats {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var total pkgStats
	fmt.Printf("%-28s %6s %6s %8s %8s\n", "package", "files", "tests", "lines", "test")
	for _, dir := range dirs {
		st := stats[dir]
		fmt.Printf("%-28s %6d %6d %8d %8d\n", dir, st.files, st.tests, st.lines, st.tlines)
		total.files += st.files
		total.tests += st.tests
		total.lines += st.lines
		total.tlines += st.tlines
	}
	fmt.Printf("%-28s %6d %6d %8d %8d\n", "total", total.files, total.tests, total.lines, total.tlines)
	return nil
}

func collectStats(root string, stats map[string]*pkgStats) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}

		dir := filepath.ToSlash(filepath.Dir(path))
		st, ok := stats[dir]
		if !ok {
			st = &pkgStats{}
			stats[dir] = st
		}
		if strings.HasSuffix(path, "_test.go") {
			st.tests++
			st.tlines += n
		} else {
			st.files++
			st.lines += n
		}
		return nil
	})
}
