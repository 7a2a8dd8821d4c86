package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/sides/internal/output"
	"github.com/jackzampolin/sides/internal/script"
	"github.com/jackzampolin/sides/internal/source"
)

type cueSummary struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type cuesSummary struct {
	Script string       `json:"script" yaml:"script"`
	Pages  int          `json:"pages" yaml:"pages"`
	Cues   []cueSummary `json:"cues" yaml:"cues"`
}

var cuesCmd = &cobra.Command{
	Use:   "cues <script>",
	Short: "List speaker cues found in a script",
	Long: `Scan a script and list every distinct speaker cue with its occurrence
count, in order of first appearance. Useful for discovering character
names before running extract.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		src, err := source.Open(args[0])
		if err != nil {
			return err
		}
		pages, err := src.Pages(ctx)
		if err != nil {
			return err
		}

		norm, err := script.NewNormalizer(cfg.Heuristics.FurniturePatterns...)
		if err != nil {
			return err
		}
		counts, err := script.CountCues(ctx, norm, pages)
		if err != nil {
			return err
		}

		summary := cuesSummary{Script: args[0], Pages: len(pages)}
		for _, c := range counts {
			summary.Cues = append(summary.Cues, cueSummary{Name: c.Name, Count: c.Count})
		}
		return output.Output(summary)
	},
}

func init() {
	rootCmd.AddCommand(cuesCmd)
}
