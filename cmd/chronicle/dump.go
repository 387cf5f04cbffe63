package main

import (
	"errors"
	"fmt"

	"github.com/ajakhotia/chronicle"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dumpMaxBytes int

var dumpCmd = &cobra.Command{
	Use:   "dump <chronicle-dir>",
	Short: "Replay a chronicle directory and print each entry in write order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reader, err := chronicle.NewReader(args[0])
		if err != nil {
			die("failed to open chronicle: %s", err)
		}
		defer reader.Close()

		var index uint64
		for {
			entry, err := reader.Read()
			if err != nil {
				if errors.Is(err, chronicle.ErrEndOfChronicle) {
					break
				}
				die("replay stopped at entry %d: %s", index, err)
			}

			printEntry(index, entry)
			index++
		}
	},
}

func printEntry(index uint64, entry chronicle.Entry) {
	channel := color.New(color.FgCyan).Sprintf("0x%x", entry.ChannelID)
	data := entry.Crate.Bytes()

	preview := data
	truncated := false
	if dumpMaxBytes > 0 && len(preview) > dumpMaxBytes {
		preview = preview[:dumpMaxBytes]
		truncated = true
	}

	fmt.Printf("%6d  channel=%s  bytes=%d  % x", index, channel, len(data), preview)
	if truncated {
		fmt.Print(" ...")
	}
	fmt.Println()
}

func init() {
	dumpCmd.Flags().IntVar(&dumpMaxBytes, "max-bytes", 32,
		"Maximum number of payload bytes to print per entry (0 for unlimited)")
	rootCmd.AddCommand(dumpCmd)
}
