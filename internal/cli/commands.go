package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/safeinfer/internal/executor"
	"github.com/born-ml/safeinfer/internal/planner"
)

func newReluCmd(opts *rootOptions) *cobra.Command {
	var x []float32

	cmd := &cobra.Command{
		Use:   "relu",
		Short: "Run y = Relu(x)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := reluDemo(x)
			if err != nil {
				return err
			}
			tensors, err := d.run(opts.executor())
			if err != nil {
				return err
			}
			renderTensors(cmd.OutOrStdout(), d.graph, tensors, d.graph.Outputs)
			return nil
		},
	}

	cmd.Flags().Float32SliceVar(&x, "x", []float32{-1, 2, -3, 4}, "Input values")

	return cmd
}

func newMatMulCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "matmul",
		Short: "Multiply a [1 x 2] matrix by a [2 x 3] matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := matmulDemo()
			tensors, err := d.run(opts.executor())
			if err != nil {
				return err
			}
			renderTensors(cmd.OutOrStdout(), d.graph, tensors, d.graph.Outputs)
			return nil
		},
	}
}

func newXORCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "xor",
		Short: "Evaluate a two-layer XOR network on all four inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases := [][2]float32{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
			results := make([]float32, len(cases))
			exec := opts.executor()

			eg, _ := errgroup.WithContext(cmd.Context())
			for i, c := range cases {
				i, c := i, c
				eg.Go(func() error {
					d := xorDemo(c[0], c[1])
					tensors, err := d.run(exec)
					if err != nil {
						return fmt.Errorf("xor(%v, %v): %w", c[0], c[1], err)
					}
					results[i] = tensors[d.graph.Outputs[0]].At(0)
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			var data [][]string
			for i, c := range cases {
				data = append(data, []string{formatFloat(c[0]), formatFloat(c[1]), formatFloat(results[i])})
			}
			table := newTable(cmd.OutOrStdout(), "X1", "X2", "Y")
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}
}

func newAttackCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attack",
		Short: "Show how malformed inputs are rejected",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "missing-input",
			Short: "Execute with a NaN-poisoned input that was never bound",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				d := missingInputDemo()
				tensors, err := d.run(opts.executor())
				if !errors.Is(err, executor.ErrMissingInputBinding) {
					return fmt.Errorf("expected a missing input binding, got: %v", err)
				}

				out := tensors[d.graph.Outputs[0]].Data()
				var nans int
				for _, v := range out {
					if math.IsNaN(float64(v)) {
						nans++
					}
				}

				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Execution refused: %v\n", err)
				fmt.Fprintf(w, "NaN count in output: %d / %d\n", nans, len(out))
				return nil
			},
		},
		&cobra.Command{
			Use:   "shape-mismatch",
			Short: "Add a [4] tensor to a [3] tensor",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				d := shapeMismatchDemo()
				_, err := d.run(opts.executor())
				if !errors.Is(err, executor.ErrArityMismatch) {
					return fmt.Errorf("expected an element count mismatch, got: %v", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Expected failure: %v\n", err)
				return nil
			},
		},
	)

	return cmd
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "plan DEMO",
		Short:     "Print the execution order of a demo graph",
		Args:      cobra.ExactArgs(1),
		ValidArgs: demoNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := demoByName(args[0])
			if err != nil {
				return err
			}
			order, err := planner.Build(d.graph)
			if err != nil {
				return err
			}
			renderPlan(cmd.OutOrStdout(), d.graph, order)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "safeinfer %s\n", Version)
		},
	}
}
