// Package fileset reads, writes and discovers digest files on disk.
package fileset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxFileSize bounds how much of a file is read into memory
const MaxFileSize = 32 * 1024 * 1024

var (
	// ErrNotUTF8 is returned for files that are not valid UTF-8
	ErrNotUTF8 = errors.New("encoding not utf-8")
	// ErrTooLarge is returned for files over MaxFileSize
	ErrTooLarge = errors.New("file too large")
	// ErrNoBackup is returned by Restore when no backup exists
	ErrNoBackup = errors.New("no backup found")
)

// Read returns the content of a UTF-8 text file
func Read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("read %s: %w", path, ErrTooLarge)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: %w", path, ErrNotUTF8)
	}
	return string(data), nil
}

// Write replaces path with content. The data goes to a temporary file in the
// same directory that is renamed over path once fully written.
func Write(path, content string) (err error) {
	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path names an existing regular file
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// BackupPath returns the backup location of path
func BackupPath(path string) string {
	return path + ".bak"
}

// Backup copies path to its backup location and returns that location
func Backup(path string) (string, error) {
	dst := BackupPath(path)
	if err := copyFile(path, dst); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	return dst, nil
}

// Restore copies the backup of path back over it
func Restore(path string) error {
	src := BackupPath(path)
	if !Exists(src) {
		return fmt.Errorf("restore %s: %w", filepath.Base(path), ErrNoBackup)
	}
	if err := copyFile(src, path); err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// Skipped is a target that was not collected, with the reason
type Skipped struct {
	Path   string
	Reason string
}

// CollectTxt expands targets into .txt files. Files are taken as given,
// directories contribute their direct .txt children in name order. Duplicates
// are dropped.
func CollectTxt(targets []string) ([]string, []Skipped) {
	var (
		files   []string
		skipped []Skipped
		seen    = make(map[string]bool)
	)

	add := func(p string) {
		key := filepath.Clean(p)
		if !seen[key] {
			seen[key] = true
			files = append(files, p)
		}
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		switch {
		case err != nil:
			skipped = append(skipped, Skipped{Path: target, Reason: "path does not exist"})
		case info.Mode().IsRegular():
			if strings.EqualFold(filepath.Ext(target), ".txt") {
				add(target)
			} else {
				skipped = append(skipped, Skipped{Path: target, Reason: "not a .txt file"})
			}
		case info.IsDir():
			matches, _ := Glob(target, "*.txt")
			for _, m := range matches {
				add(m)
			}
		}
	}

	return files, skipped
}

// WalkTxt returns every .txt file under root, recursively, in path order
func WalkTxt(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("access %s: %w", path, err)
		}
		if d.Type().IsRegular() && filepath.Ext(path) == ".txt" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Glob returns the regular files in dir matching pattern, sorted by name
func Glob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	var files []string
	for _, m := range matches {
		if Exists(m) {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}
