package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/gogpu/rasterkit"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (a *app) newPreviewCmd() *cobra.Command {
	var maxW, maxH int
	cmd := &cobra.Command{
		Use:   "preview <in> <out>",
		Short: "Write a downscaled copy that fits the given bounds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := rasterkit.ReadFile(args[0], a.options()...)
			if err != nil {
				return err
			}
			th, err := rasterkit.Thumbnail(img, maxW, maxH)
			if err != nil {
				return err
			}
			out, err := rasterkit.FromStdImage(th, img.Format())
			if err != nil {
				return err
			}
			out.SetGamma(img.Gamma())
			return rasterkit.WriteFile(args[1], out, a.options()...)
		},
	}
	cmd.Flags().IntVar(&maxW, "max-width", 256, "maximum preview width")
	cmd.Flags().IntVar(&maxH, "max-height", 256, "maximum preview height")
	return cmd
}

func (a *app) newGradientCmd() *cobra.Command {
	var w, h int
	cmd := &cobra.Command{
		Use:   "gradient <out>",
		Short: "Write a horizontal black-to-white ramp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := rasterkit.Gradient(w, h)
			if err != nil {
				return err
			}
			return rasterkit.WriteFile(args[0], img, a.options()...)
		},
	}
	cmd.Flags().IntVar(&w, "width", 256, "ramp width")
	cmd.Flags().IntVar(&h, "height", 64, "ramp height")
	return cmd
}

func (a *app) newLineCmd() *cobra.Command {
	var (
		x0, y0, x1, y1 float64
		thickness, g   float64
		col            []float64
	)
	cmd := &cobra.Command{
		Use:   "line <in> <out>",
		Short: "Draw an anti-aliased line onto an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := rasterkit.ReadFile(args[0], a.options()...)
			if err != nil {
				return err
			}
			buf := img.ToFloat()
			c := col
			if img.Format() == rasterkit.Gray8 && len(c) == 3 {
				c = []float64{(c[0] + c[1] + c[2]) / 3}
			}
			if err := rasterkit.DrawLine(buf, x0, y0, x1, y1, c, thickness, g); err != nil {
				return fmt.Errorf("line: %w", err)
			}
			out := buf.ToImage()
			out.SetGamma(img.Gamma())
			return rasterkit.WriteFile(args[1], out, a.options()...)
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&x0, "x0", 0, "start x")
	fl.Float64Var(&y0, "y0", 0, "start y")
	fl.Float64Var(&x1, "x1", 0, "end x")
	fl.Float64Var(&y1, "y1", 0, "end y")
	fl.Float64Var(&thickness, "thickness", 1, "line thickness in pixels")
	fl.Float64Var(&g, "gamma", 1, "gamma used for blending (2.4 selects sRGB)")
	fl.Float64SliceVar(&col, "color", []float64{0, 0, 0}, "line color, normalized channels")
	return cmd
}
