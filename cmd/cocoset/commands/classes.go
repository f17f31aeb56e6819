package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newClassesCommand() *cobra.Command {
	var classesFile string

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the valid class names",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveString(classesFile, appConfig.ClassesFile)
			if path == "" {
				path = "available_classes.txt"
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("classes file: %w", err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"Class"})
			for _, line := range strings.Split(string(content), "\n") {
				if name := strings.TrimSpace(line); name != "" {
					table.Append([]string{name})
				}
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&classesFile, "classes-file", "", "reference file of valid class names")
	return cmd
}
