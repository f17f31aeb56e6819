package commands

import (
	"fmt"

	"cocoset/pkg/core"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPlanCommand() *cobra.Command {
	var (
		total     int
		trainFrac float64
		valFrac   float64
		testFrac  float64
		ratioStr  string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the split plan for a configuration without retrieving anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := appConfig.DefaultRequest()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("total") {
				req.TotalImages = total
			}
			if cmd.Flags().Changed("train") || cmd.Flags().Changed("val") || cmd.Flags().Changed("test") {
				req.TrainFraction = trainFrac
				req.ValFraction = valFrac
				req.TestFraction = testFrac
			}
			if ratioStr != "" {
				ratio, err := core.ParseRatio(ratioStr)
				if err != nil {
					return err
				}
				req.Ratio = ratio
			}
			req, err = core.NewDatasetRequest(req.TotalImages, req.TrainFraction, req.ValFraction,
				req.TestFraction, req.Ratio, req.Classes, req.LabelKind)
			if err != nil {
				return err
			}

			plan, err := core.Plan(req.TotalImages, req.TrainFraction, req.ValFraction, req.TestFraction, req.Ratio)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"Split", "Positives", "Negatives", "Total"})
			rows := []struct {
				split     core.Split
				positives int
				negatives int
			}{
				{core.SplitTrain, plan.TrainPositives, plan.TrainNegatives},
				{core.SplitValidation, plan.ValPositives, plan.ValNegatives},
				{core.SplitTest, plan.TestPositives, plan.TestNegatives},
			}
			for _, row := range rows {
				table.Append([]string{
					string(row.split),
					fmt.Sprintf("%d", row.positives),
					fmt.Sprintf("%d", row.negatives),
					fmt.Sprintf("%d", row.positives+row.negatives),
				})
			}
			table.Append([]string{"all", fmt.Sprintf("%d", plan.Positives()), fmt.Sprintf("%d", plan.Negatives()), fmt.Sprintf("%d", plan.Total())})
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&total, "total", 0, "total number of images")
	cmd.Flags().Float64Var(&trainFrac, "train", 0, "train split fraction")
	cmd.Flags().Float64Var(&valFrac, "val", 0, "validation split fraction")
	cmd.Flags().Float64Var(&testFrac, "test", 0, "test split fraction")
	cmd.Flags().StringVar(&ratioStr, "ratio", "", "pos:neg ratio, e.g. 10:1")

	return cmd
}
