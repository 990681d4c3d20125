package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/layers/internal/backend"
	"github.com/born-ml/layers/internal/backend/cpu"
	"github.com/born-ml/layers/internal/backend/webgpu"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List hardware targets and CPU features",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			detected := backend.Detect()
			fmt.Fprintf(w, "detected: %s\n", detected)

			fmt.Fprintln(w, "targets:")
			for _, t := range backend.CPUTargets() {
				b, err := cpu.New(t, parallel.Sequential())
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "  %-7s lanes f32=%d f64=%d vector f32=%t f64=%t\n", t,
					t.Lanes(tensor.Float32), t.Lanes(tensor.Float64),
					b.Vectorized(tensor.Float32), b.Vectorized(tensor.Float64))
			}
			gpu := "unavailable"
			if webgpu.IsAvailable() {
				gpu = "available (float32)"
			}
			fmt.Fprintf(w, "  %-7s %s\n", backend.TargetWebGPU, gpu)

			features := backend.Features()
			names := make([]string, 0, len(features))
			for name, ok := range features {
				if ok {
					names = append(names, name)
				}
			}
			slices.Sort(names)
			fmt.Fprintf(w, "cpu features: %s\n", strings.Join(names, " "))
		},
	}
}
