package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/rasterkit"
)

// pngFlags are the PNG encoder settings shared by commands that write.
type pngFlags struct {
	filter string
	level  string
}

func (p *pngFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.filter, "png-filter", "none", "PNG scanline filter: none, sub, up, average, paeth")
	cmd.Flags().StringVar(&p.level, "png-level", "default", "PNG compression: default, none, speed, best")
}

func (p *pngFlags) options() ([]rasterkit.Option, error) {
	filters := map[string]rasterkit.PNGFilter{
		"none":    rasterkit.FilterNone,
		"sub":     rasterkit.FilterSub,
		"up":      rasterkit.FilterUp,
		"average": rasterkit.FilterAverage,
		"paeth":   rasterkit.FilterPaeth,
	}
	levels := map[string]rasterkit.CompressionLevel{
		"default": rasterkit.DefaultCompression,
		"none":    rasterkit.NoCompression,
		"speed":   rasterkit.BestSpeed,
		"best":    rasterkit.BestCompression,
	}
	f, ok := filters[p.filter]
	if !ok {
		return nil, fmt.Errorf("--png-filter %q: %w", p.filter, rasterkit.ErrUnsupported)
	}
	l, ok := levels[p.level]
	if !ok {
		return nil, fmt.Errorf("--png-level %q: %w", p.level, rasterkit.ErrUnsupported)
	}
	return []rasterkit.Option{rasterkit.WithPNGFilter(f), rasterkit.WithCompressionLevel(l)}, nil
}

func (a *app) newConvertCmd() *cobra.Command {
	var (
		pf         pngFlags
		keepChunks bool
	)
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode an image; the output container follows the extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := pf.options()
			if err != nil {
				return err
			}
			h, err := rasterkit.Open(args[0], rasterkit.ReadMode, a.options()...)
			if err != nil {
				return err
			}
			defer func() { _ = h.Close() }()
			img, err := h.Read()
			if err != nil {
				return err
			}
			if keepChunks {
				enc = append(enc, rasterkit.WithChunks(h.Chunks()))
			}
			return rasterkit.WriteFile(args[1], img, a.options(enc...)...)
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&keepChunks, "keep-chunks", true, "copy ancillary PNG chunks to PNG output")
	return cmd
}
