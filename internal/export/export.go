// Package export writes extracted dialogue blocks to per-character files.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jackzampolin/sides/internal/script"
)

// Request contains the parameters for writing dialogue artifacts.
type Request struct {
	Result *script.Result
	OutDir string
	Logger *slog.Logger // optional
}

// Result describes the artifacts written by one export.
type Result struct {
	OutDir string
	Files  []string // file names in character discovery order
}

// Write creates one text file per character that has at least one dialogue
// block, blocks separated by a blank line, in discovery order. Characters
// without blocks produce no file. Each file is written to a temp name and
// renamed into place so readers never observe a partial artifact.
func Write(req Request) (*Result, error) {
	log := req.Logger
	if log == nil {
		log = slog.Default()
	}
	if req.Result == nil {
		return nil, fmt.Errorf("no extraction result provided")
	}

	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := &Result{OutDir: req.OutDir}
	for _, name := range req.Result.Characters() {
		blocks := req.Result.Blocks(name)
		if len(blocks) == 0 {
			continue
		}
		file := FileName(name)
		if err := writeAtomic(filepath.Join(req.OutDir, file), blocks); err != nil {
			return nil, fmt.Errorf("failed to write dialogue for %s: %w", name, err)
		}
		log.Debug("wrote dialogue file", "character", name, "file", file, "blocks", len(blocks))
		res.Files = append(res.Files, file)
	}

	log.Info("export complete", "dir", req.OutDir, "files", len(res.Files))
	return res, nil
}

// FileName returns the deterministic artifact name for a character.
func FileName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	return n + "_dialogues.txt"
}

// OutDirFor derives the default output directory for a script path:
// the script's path with its extension replaced by "_dialogues".
func OutDirFor(scriptPath string) string {
	return strings.TrimSuffix(scriptPath, filepath.Ext(scriptPath)) + "_dialogues"
}

func writeAtomic(path string, blocks []string) error {
	tmp := path + ".tmp-" + uuid.New().String()

	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(block)
		b.WriteString("\n\n")
	}
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
