package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/joshuapare/pagedstore/storage"
	"github.com/spf13/cobra"
)

var infoPageSize int

func init() {
	cmd := newInfoCmd()
	cmd.Flags().IntVar(&infoPageSize, "page-size", storage.DefaultPageSize, "Page size used for page math")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Report physical and logical sizes of a storage file",
		Long: `The info command inspects a storage file and its ".len" sidecar without
modifying either, and reports the physical size, the logical length, and the
over-allocation slack between them.

Example:
  pagedctl info index.dat
  pagedctl info index.dat --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	if infoPageSize <= 0 {
		return fmt.Errorf("invalid page size %d (must be positive)", infoPageSize)
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat storage file: %w", err)
	}
	physical := st.Size()

	logical := int64(-1)
	sidecarState := "missing"
	if raw, err := os.ReadFile(path + storage.SidecarSuffix); err == nil {
		if len(raw) >= 8 {
			logical = int64(binary.BigEndian.Uint64(raw))
			sidecarState = "ok"
		} else {
			sidecarState = "short"
		}
	}

	pages := (physical + int64(infoPageSize) - 1) / int64(infoPageSize)

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":     path,
			"physical": physical,
			"logical":  logical,
			"sidecar":  sidecarState,
			"pageSize": infoPageSize,
			"pages":    pages,
		})
	}

	printInfo("Storage file: %s\n", path)
	printInfo("  Physical size: %d bytes\n", physical)
	if sidecarState == "ok" {
		printInfo("  Logical length: %d bytes\n", logical)
		printInfo("  Slack: %d bytes\n", physical-logical)
	} else {
		printInfo("  Logical length: unknown (sidecar %s; next open falls back to physical size)\n",
			sidecarState)
	}
	printInfo("  Pages: %d x %d bytes\n", pages, infoPageSize)
	return nil
}
