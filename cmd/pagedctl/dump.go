package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dumpOffset int64
	dumpLength int64
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Int64Var(&dumpOffset, "offset", 0, "Start offset")
	cmd.Flags().Int64Var(&dumpLength, "length", 256, "Number of bytes to dump")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex dump of a byte range in a storage file",
		Long: `The dump command prints a hex/ASCII dump of a byte range. The file is
opened read-only and never modified.

Example:
  pagedctl dump index.dat
  pagedctl dump index.dat --offset 4096 --length 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open storage file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat storage file: %w", err)
	}
	if dumpOffset < 0 || dumpOffset >= st.Size() {
		return fmt.Errorf("offset %d outside file (size %d)", dumpOffset, st.Size())
	}
	n := dumpLength
	if dumpOffset+n > st.Size() {
		n = st.Size() - dumpOffset
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(io.NewSectionReader(f, dumpOffset, n), buf); err != nil {
		return fmt.Errorf("failed to read range: %w", err)
	}

	dumpHex(os.Stdout, dumpOffset, buf)
	return nil
}

// dumpHex writes 16-byte hex/ASCII lines prefixed with absolute offsets.
func dumpHex(w io.Writer, base int64, data []byte) {
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		line := data[i:end]

		var hexPart strings.Builder
		var ascii strings.Builder
		for j, b := range line {
			if j == 8 {
				hexPart.WriteByte(' ')
			}
			fmt.Fprintf(&hexPart, "%02x ", b)
			if b >= 0x20 && b < 0x7f {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}
		fmt.Fprintf(w, "%08x  %-49s |%s|\n", base+int64(i), hexPart.String(), ascii.String())
	}
}
