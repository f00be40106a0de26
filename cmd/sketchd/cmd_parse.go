package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"voicesketch/internal/engine"
	"voicesketch/internal/executor"
	"voicesketch/internal/interpret"
	"voicesketch/internal/shape"
)

var parseShowEffect bool

var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Interpret a single utterance and print the instruction",
	Long: `Runs one utterance through the pipeline against an empty canvas and
prints the resulting instruction as JSON.

Example:
  sketchd parse "draw a big circle"
  sketchd parse --effect "draw a square"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseShowEffect, "effect", false, "also print the executed effect")
}

func runParse(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	gateway := interpret.NewGateway(buildClient(), interpret.NewCache(cfg.CacheTTL()), cfg.LLMTimeout())
	dctx := shape.Context{Shapes: nil, RecentActions: nil}

	instruction, source := gateway.ParseCommand(cmd.Context(), text, dctx)

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(instruction); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "source:", source)

	if parseShowEffect {
		canvas := engine.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}
		effect := executor.Execute(instruction, dctx.Shapes, canvas)
		if effect == nil {
			fmt.Fprintln(os.Stderr, "effect: none")
			return nil
		}
		if effect.Shape != nil {
			encoded, err := shape.Marshal(effect.Shape)
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
		}
	}
	return nil
}
