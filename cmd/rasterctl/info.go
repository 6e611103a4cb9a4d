package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/rasterkit"
)

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the header and, for PNG, the chunk list of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfo(args[0])
		},
	}
}

func (a *app) runInfo(path string) error {
	h, err := rasterkit.Open(path, rasterkit.ReadMode, a.options()...)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	img, err := h.Read()
	if err != nil {
		return err
	}

	w, ht := img.Bounds()
	fmt.Fprintf(a.stdout, "File:       %s\n", path)
	fmt.Fprintf(a.stdout, "Container:  %s\n", h.Kind())
	fmt.Fprintf(a.stdout, "Dimensions: %d x %d\n", w, ht)
	fmt.Fprintf(a.stdout, "Format:     %s\n", img.Format())
	if h.Kind() == rasterkit.KindPNM {
		fmt.Fprintf(a.stdout, "Max color:  %d\n", img.MaxColor())
	}
	if g := img.Gamma(); g > 0 {
		fmt.Fprintf(a.stdout, "Gamma:      %g\n", g)
	} else {
		fmt.Fprintln(a.stdout, "Gamma:      none")
	}

	chunks := h.Chunks()
	if len(chunks) == 0 {
		return nil
	}
	fmt.Fprintf(a.stdout, "Chunks:     %d\n", len(chunks))
	for _, c := range chunks {
		class := "ancillary"
		if c.IsCritical() {
			class = "critical"
		}
		crc := "ok"
		if !c.CRCValid {
			crc = "MISMATCH"
		}
		fmt.Fprintf(a.stdout, "  %s %8d bytes  %-9s crc %08x %s\n", c.Type, len(c.Data), class, c.CRC, crc)
	}
	return nil
}
