package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sides/internal/config"
	"github.com/jackzampolin/sides/internal/export"
	"github.com/jackzampolin/sides/internal/home"
	"github.com/jackzampolin/sides/internal/output"
	"github.com/jackzampolin/sides/internal/script"
	"github.com/jackzampolin/sides/internal/source"
)

var (
	extractOut   string
	extractParts []string
)

type characterSummary struct {
	Name   string `json:"name" yaml:"name"`
	Blocks int    `json:"blocks" yaml:"blocks"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

type extractSummary struct {
	Script     string             `json:"script" yaml:"script"`
	Pages      int                `json:"pages" yaml:"pages"`
	OutputDir  string             `json:"output_dir" yaml:"output_dir"`
	Characters []characterSummary `json:"characters" yaml:"characters"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <script> [character]...",
	Short: "Extract per-character dialogue from a script",
	Long: `Extract dialogue blocks for the named characters from a screenplay
PDF or plain-text file (pages separated by form feeds).

Characters not given on the command line come from the config file.
Each character with dialogue gets one file in the output directory,
blocks separated by blank lines, in order of appearance.

Examples:
  sides extract episode.pdf TONY PEPPER
  sides extract episode.pdf --out ./sides-out TONY
  sides extract episode-1.pdf --part episode-2.pdf TONY`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger()

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		characters := args[1:]
		if len(characters) == 0 {
			characters = cfg.Characters
		}
		if len(characters) == 0 {
			return fmt.Errorf("no characters specified: pass names as arguments or set characters in config")
		}

		src, err := source.OpenParts(append([]string{args[0]}, extractParts...)...)
		if err != nil {
			return err
		}
		pages, err := src.Pages(ctx)
		if err != nil {
			return err
		}
		log.Debug("loaded script", "script", src.Name(), "pages", len(pages))

		res, err := runSegmenter(ctx, cfg, characters, pages)
		if err != nil {
			return err
		}

		outDir := extractOut
		if outDir == "" {
			outDir = export.OutDirFor(args[0])
		}
		if _, err := export.Write(export.Request{Result: res, OutDir: outDir, Logger: log}); err != nil {
			return err
		}
		log.Info("extraction complete", "script", args[0], "characters", len(characters), "blocks", res.Total())

		summary := extractSummary{
			Script:    args[0],
			Pages:     len(pages),
			OutputDir: outDir,
		}
		for _, name := range script.NewCharacterSet(characters...).Names() {
			cs := characterSummary{Name: name, Blocks: len(res.Blocks(name))}
			if cs.Blocks > 0 {
				cs.File = export.FileName(name)
			}
			summary.Characters = append(summary.Characters, cs)
		}
		return output.Output(summary)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractOut, "out", "", "output directory (default: <script>_dialogues)")
	extractCmd.Flags().StringArrayVar(&extractParts, "part", nil, "additional PDF parts of a split script")

	rootCmd.AddCommand(extractCmd)
}

// loadConfig resolves the config file location and loads it.
func loadConfig() (*config.Manager, error) {
	path := cfgFile
	if path == "" {
		h, err := home.New(homeDir)
		if err == nil && h.ConfigExists() {
			path = h.ConfigPath()
		}
	}
	return config.NewManager(path)
}

// runSegmenter builds a segmenter from config and runs it over the pages.
func runSegmenter(ctx context.Context, cfg *config.Config, characters []string, pages [][]string) (*script.Result, error) {
	norm, err := script.NewNormalizer(cfg.Heuristics.FurniturePatterns...)
	if err != nil {
		return nil, err
	}
	seg := script.NewSegmenter(script.SegmenterConfig{
		Characters:           characters,
		Normalizer:           norm,
		Exclamations:         cfg.Heuristics.Exclamations,
		Markers:              cfg.Heuristics.SceneMarkers,
		DisableEllipsisBreak: cfg.Heuristics.DisableEllipsisBreak,
	})
	return seg.Segment(ctx, pages)
}
