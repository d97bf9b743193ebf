// Package scratch persists the work-in-progress document between runs.
// The markup lives in ~/.local/share/parasvg/scratch.svg with a TOML
// sidecar for the variable list.
package scratch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sfairchild/parasvg/internal/svgdoc"
)

const (
	defaultScratchDir = "~/.local/share/parasvg"
	markupFile        = "scratch.svg"
	variablesFile     = "scratch-variables.toml"
)

// DefaultDir returns the default scratch directory.
func DefaultDir() string {
	return defaultScratchDir
}

type variablesSidecar struct {
	Variables []sidecarVariable `toml:"variables"`
}

type sidecarVariable struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

// Load restores the scratch document from dir. The second return is false
// when no scratch exists. A readable markup file with a corrupt sidecar
// still restores the markup; the variables are simply lost.
func Load(dir string) (svgdoc.Document, bool, error) {
	resolved, err := resolveDir(dir)
	if err != nil {
		return svgdoc.Document{}, false, err
	}

	markup, err := os.ReadFile(filepath.Join(resolved, markupFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return svgdoc.Document{}, false, nil
		}
		return svgdoc.Document{}, false, fmt.Errorf("read scratch markup: %w", err)
	}

	doc := svgdoc.Document{Markup: string(markup)}

	sidecarBytes, err := os.ReadFile(filepath.Join(resolved, variablesFile))
	if err == nil {
		var sidecar variablesSidecar
		if err := toml.Unmarshal(sidecarBytes, &sidecar); err == nil {
			for _, v := range sidecar.Variables {
				doc.Variables = append(doc.Variables, svgdoc.Variable{Name: v.Name, Value: v.Value})
			}
		}
	}

	return doc, true, nil
}

// Save writes the scratch document to dir, creating it as needed.
func Save(dir string, doc svgdoc.Document) error {
	resolved, err := resolveDir(dir)
	if err != nil {
		return fmt.Errorf("resolve scratch dir: %w", err)
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(resolved, markupFile), []byte(doc.Markup), 0o644); err != nil {
		return fmt.Errorf("write scratch markup: %w", err)
	}

	sidecar := variablesSidecar{}
	for _, v := range doc.Variables {
		sidecar.Variables = append(sidecar.Variables, sidecarVariable{Name: v.Name, Value: v.Value})
	}
	bytes, err := toml.Marshal(sidecar)
	if err != nil {
		return fmt.Errorf("marshal scratch variables: %w", err)
	}
	if err := os.WriteFile(filepath.Join(resolved, variablesFile), bytes, 0o644); err != nil {
		return fmt.Errorf("write scratch variables: %w", err)
	}
	return nil
}

func resolveDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return expandPath(defaultScratchDir)
	}
	return expandPath(dir)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
