package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voicestudio/voicestudio/internal/voice"
)

var voicesCmd = &cobra.Command{
	Use:     "voices [QUERY]",
	Short:   "List the preset voices, optionally fuzzy-filtered",
	Example: "voicestudio voices\nvoicestudio voices natasha",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		presets := voice.Search(query)
		if len(presets) == 0 {
			return fmt.Errorf("no voices match %q", query)
		}

		width := 0
		for _, p := range presets {
			if len(p.ID) > width {
				width = len(p.ID)
			}
		}
		for _, p := range presets {
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s  %s\n", p.ID, strings.Repeat(" ", width-len(p.ID)), p.Label)
		}
		return nil
	},
}
