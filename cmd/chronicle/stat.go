package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ajakhotia/chronicle"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type channelStat struct {
	channelID  uint64
	frameCount uint64
	byteCount  uint64
}

func collectStats(chronicleDir string) ([]channelStat, error) {
	reader, err := chronicle.NewReader(chronicleDir)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	byChannel := make(map[uint64]*channelStat)
	for {
		entry, err := reader.Read()
		if err != nil {
			if errors.Is(err, chronicle.ErrEndOfChronicle) {
				break
			}
			return nil, err
		}

		s, ok := byChannel[entry.ChannelID]
		if !ok {
			s = &channelStat{channelID: entry.ChannelID}
			byChannel[entry.ChannelID] = s
		}
		s.frameCount++
		s.byteCount += uint64(entry.Crate.Len())
	}

	stats := make([]channelStat, 0, len(byChannel))
	for _, s := range byChannel {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].channelID < stats[j].channelID })
	return stats, nil
}

var statCmd = &cobra.Command{
	Use:   "stat <chronicle-dir>",
	Short: "Print per-channel frame and byte counts for a chronicle directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := collectStats(args[0])
		if err != nil {
			die("failed to collect stats: %s", err)
		}

		rows := [][]string{{"channel", "frames", "bytes"}}
		var totalFrames, totalBytes uint64
		for _, s := range stats {
			rows = append(rows, []string{
				fmt.Sprintf("0x%x", s.channelID),
				fmt.Sprintf("%d", s.frameCount),
				fmt.Sprintf("%d", s.byteCount),
			})
			totalFrames += s.frameCount
			totalBytes += s.byteCount
		}

		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetBorder(false)
		tw.SetAutoWrapText(false)
		tw.SetAlignment(tablewriter.ALIGN_LEFT)
		tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		tw.SetColumnSeparator("")
		tw.AppendBulk(rows)
		tw.Render()

		bold := color.New(color.Bold)
		bold.Printf("total: %d channels, %d frames, %d bytes\n", len(stats), totalFrames, totalBytes)
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
}
