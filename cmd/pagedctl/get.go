package main

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/pagedstore/storage"
	"github.com/spf13/cobra"
)

var (
	getWidth int
	getHex   bool
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().IntVar(&getWidth, "width", 4, "Value width in bytes (1, 2, 4 or 8)")
	cmd.Flags().BoolVar(&getHex, "hex", false, "Output the value as hex")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <offset>",
		Short: "Read a fixed-width value at an offset",
		Long: `The get command reads a big-endian fixed-width value from a storage file.

Example:
  pagedctl get index.dat 1000000
  pagedctl get index.dat 1000000 --width 8 --hex`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path := args[0]
	off, err := strconv.ParseInt(args[1], 0, 64)
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[1], err)
	}

	printVerbose("Opening storage: %s\n", path)
	g, err := storage.Open(path, 0, storage.Config{})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer g.Close()

	var v uint64
	switch getWidth {
	case 1:
		b, err := g.GetByte(off)
		if err != nil {
			return err
		}
		v = uint64(b)
	case 2:
		x, err := g.GetUint16(off)
		if err != nil {
			return err
		}
		v = uint64(x)
	case 4:
		x, err := g.GetUint32(off)
		if err != nil {
			return err
		}
		v = uint64(x)
	case 8:
		x, err := g.GetUint64(off)
		if err != nil {
			return err
		}
		v = x
	default:
		return fmt.Errorf("unsupported width %d (want 1, 2, 4 or 8)", getWidth)
	}

	if getHex {
		printInfo("0x%0*x\n", getWidth*2, v)
	} else {
		printInfo("%d\n", v)
	}
	return nil
}
