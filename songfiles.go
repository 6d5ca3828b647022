package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const songExt = ".txt"

// gatherSongPaths returns path itself when it is a file, or every song file
// directly inside it when it is a directory.
func gatherSongPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s != path {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(s), songExt) {
			res = append(res, s)
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("no %s files in %s", songExt, path)
	}
	sort.Strings(res)
	return res, nil
}

// outputPath is where the pdf of input goes: next to it, or in outDir when
// one is given.
func outputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".pdf"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

// safeFilename keeps a title usable as a file name.
func safeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "chordsheet"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
}

// readLines reads a song file into lines without their line endings.
func readLines(path string) ([]string, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(bz), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}
