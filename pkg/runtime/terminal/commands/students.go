package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/de-tools/rankboard/pkg/runtime/terminal/export"
	"github.com/de-tools/rankboard/pkg/services/registry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type StudentsCmd struct {
	env *Env
}

func NewStudentsCmd(env *Env) *cobra.Command {
	sc := &StudentsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "students",
		Short: "List the active students of an institute",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
	cmd.AddCommand(newStudentsAddCmd(env))
	cmd.AddCommand(newStudentsDeleteCmd(env))
	return cmd
}

func (sc *StudentsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	instituteID, err := sc.env.InstituteID()
	if err != nil {
		return err
	}
	source, err := sc.env.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer source.Close()

	explorer, err := sc.env.NewExplorer(source)
	if err != nil {
		return err
	}
	students, err := explorer.ListStudents(ctx, instituteID)
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}
	return export.NewSummaryReporter(sc.env.Output).HandleStudents(students)
}

type studentsAddCmd struct {
	env           *Env
	name          string
	classOrCourse string
}

func newStudentsAddCmd(env *Env) *cobra.Command {
	ac := &studentsAddCmd{env: env}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enroll a student under a new id",
		Args:  cobra.NoArgs,
		RunE:  ac.run,
	}
	cmd.Flags().StringVar(&ac.name, "name", "", "Student name")
	cmd.Flags().StringVar(&ac.classOrCourse, "class", "", "Class or course")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}

func (ac *studentsAddCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if strings.TrimSpace(ac.name) == "" || strings.TrimSpace(ac.classOrCourse) == "" {
		return fmt.Errorf("student name and class are required")
	}

	return ac.env.withWriter(ctx, func(source *registry.Source, instituteID string) error {
		student := store.Student{
			ID:            uuid.NewString(),
			Name:          ac.name,
			ClassOrCourse: ac.classOrCourse,
			CreatedAt:     ac.env.Now(),
		}
		if err := source.Writer.AddStudents(ctx, instituteID, []store.Student{student}); err != nil {
			return fmt.Errorf("failed to add student: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Student %s added\n", student.ID)
		return nil
	})
}

type studentsDeleteCmd struct {
	env       *Env
	studentID string
}

func newStudentsDeleteCmd(env *Env) *cobra.Command {
	dc := &studentsDeleteCmd{env: env}
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Soft delete a student; their records are kept",
		Args:  cobra.NoArgs,
		RunE:  dc.run,
	}
	cmd.Flags().StringVar(&dc.studentID, "student", "", "Student id")
	_ = cmd.MarkFlagRequired("student")
	return cmd
}

func (dc *studentsDeleteCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	return dc.env.withWriter(ctx, func(source *registry.Source, instituteID string) error {
		if err := source.Writer.SoftDeleteStudent(ctx, instituteID, dc.studentID); err != nil {
			return fmt.Errorf("failed to delete student: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Student %s deleted\n", dc.studentID)
		return nil
	})
}
