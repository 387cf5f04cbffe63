package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type channelSummary struct {
	hexID     string
	rollCount int
	indexSize int64
}

func listChannels(chronicleDir string) ([]channelSummary, error) {
	entries, err := os.ReadDir(chronicleDir)
	if err != nil {
		return nil, err
	}

	var summaries []channelSummary
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "0x") {
			continue
		}

		channelDir := filepath.Join(chronicleDir, e.Name())
		sub, err := os.ReadDir(channelDir)
		if err != nil {
			return nil, err
		}

		var indexSize int64
		rollCount := 0
		for _, f := range sub {
			switch {
			case f.Name() == "index":
				if info, err := f.Info(); err == nil {
					indexSize = info.Size()
				}
			case strings.HasSuffix(f.Name(), ".nioc"):
				rollCount++
			}
		}

		summaries = append(summaries, channelSummary{
			hexID:     e.Name(),
			rollCount: rollCount,
			indexSize: indexSize,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].hexID < summaries[j].hexID })
	return summaries, nil
}

func printChannels(w io.Writer, summaries []channelSummary) {
	rows := [][]string{{"channel", "rolls", "index bytes"}}
	for _, s := range summaries {
		rows = append(rows, []string{
			s.hexID,
			fmt.Sprintf("%d", s.rollCount),
			fmt.Sprintf("%d", s.indexSize),
		})
	}

	tw := tablewriter.NewWriter(w)
	tw.SetBorder(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetColumnSeparator("")
	tw.AppendBulk(rows)
	tw.Render()
}

var channelsCmd = &cobra.Command{
	Use:   "channels <chronicle-dir>",
	Short: "List the channels present in a chronicle directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		summaries, err := listChannels(args[0])
		if err != nil {
			die("failed to list channels: %s", err)
		}
		printChannels(os.Stdout, summaries)
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}
