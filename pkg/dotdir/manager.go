// Package dotdir manages the .unibot/ and ~/.unibot directories.
//
// The directory holds the persistent config.toml and, optionally, a
// knowledge.yaml that replaces the built-in university fact table.
package dotdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the unibot directory.
	dirName = ".unibot"

	// KnowledgeFile is the optional knowledge table override inside the directory.
	KnowledgeFile = "knowledge.yaml"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .unibot/ directory.
// Order of precedence is as follows:
//  1. Provided override (created if missing)
//  2. Local ./.unibot/ dir
//  3. Home ~/.unibot/ dir
//
// If none is found, Target returns an empty string and no error.
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		if err := os.MkdirAll(overrideDir, 0o755); err != nil {
			return "", fmt.Errorf("creating unibot directory %s: %w", overrideDir, err)
		}
		return filepath.Abs(overrideDir)
	}

	if m.localDirExists() {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return filepath.Join(cwd, dirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}

	dir := filepath.Join(home, dirName)
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return dir, nil
	}

	return "", nil
}

// Ensure behaves like Target but creates ~/.unibot/ when no directory
// could be resolved. Used by commands that need to write.
func (m *Manager) Ensure(overrideDir string) (string, error) {
	target, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}
	if target != "" {
		return target, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating unibot directory %s: %w", dir, err)
	}

	return dir, nil
}

// KnowledgePath returns the path of knowledge.yaml in the resolved directory,
// or an empty string when the directory or the file does not exist.
func (m *Manager) KnowledgePath(overrideDir string) (string, error) {
	target, err := m.Target(overrideDir)
	if err != nil || target == "" {
		return "", err
	}

	path := filepath.Join(target, KnowledgeFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("checking knowledge file: %w", err)
	}

	return path, nil
}

// localDirExists checks whether a .unibot/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
