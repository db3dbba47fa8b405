package commands

import (
	"fmt"

	"github.com/de-tools/rankboard/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type InsightsCmd struct {
	env       *Env
	studentID string
}

func NewInsightsCmd(env *Env) *cobra.Command {
	ic := &InsightsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show attendance, tests and performance insights of a student",
		Args:  cobra.NoArgs,
		RunE:  ic.run,
	}
	cmd.Flags().StringVar(&ic.studentID, "student", "", "Student id")
	_ = cmd.MarkFlagRequired("student")
	return cmd
}

func (ic *InsightsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	instituteID, err := ic.env.InstituteID()
	if err != nil {
		return err
	}
	source, err := ic.env.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer source.Close()

	explorer, err := ic.env.NewExplorer(source)
	if err != nil {
		return err
	}
	result, err := explorer.GetStudentAnalytics(ctx, instituteID, ic.studentID)
	if err != nil {
		return fmt.Errorf("failed to analyze student: %w", err)
	}
	return export.NewSummaryReporter(ic.env.Output).HandleAnalytics(result)
}
