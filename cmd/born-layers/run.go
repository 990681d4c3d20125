package main

import (
	"errors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/layers/internal/scenario"
)

func newRunCmd(use, short string, backward bool, root *rootOptions) *cobra.Command {
	var (
		file   string
		target string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := scenario.LoadFile(file)
			if err != nil {
				return err
			}
			if target != "" {
				s.Target = target
				if err := s.Validate(); err != nil {
					return err
				}
			}
			if !backward {
				s.Gradient = nil
			} else if s.Gradient == nil {
				return errors.New("backward: scenario has no gradient")
			}

			logger := root.logger
			if logger == nil {
				logger = stderrLogger()
			}
			out, err := s.Run(cmd.Context(), logger)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario YAML file")
	cmd.Flags().StringVarP(&target, "target", "t", "", "override the scenario target")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
