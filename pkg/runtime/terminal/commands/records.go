package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/de-tools/rankboard/pkg/services/registry"
	"github.com/spf13/cobra"
)

// NewAttendanceCmd groups attendance mutations
func NewAttendanceCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Record attendance",
	}
	cmd.AddCommand(newAttendanceMarkCmd(env))
	return cmd
}

type attendanceMarkCmd struct {
	env     *Env
	date    string
	present []string
	absent  []string
}

func newAttendanceMarkCmd(env *Env) *cobra.Command {
	ac := &attendanceMarkCmd{env: env}
	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Append one attendance mark per listed student",
		Args:  cobra.NoArgs,
		RunE:  ac.run,
	}
	cmd.Flags().StringVar(&ac.date, "date", "", "Attendance date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringSliceVar(&ac.present, "present", nil, "Ids of present students")
	cmd.Flags().StringSliceVar(&ac.absent, "absent", nil, "Ids of absent students")
	return cmd
}

// statuses fails when a student is listed as both present and absent
func (ac *attendanceMarkCmd) statuses() (map[string]string, error) {
	marks := make(map[string]string, len(ac.present)+len(ac.absent))
	for _, id := range ac.present {
		marks[strings.TrimSpace(id)] = string(domain.AttendancePresent)
	}
	for _, id := range ac.absent {
		id = strings.TrimSpace(id)
		if _, ok := marks[id]; ok {
			return nil, fmt.Errorf("student %s is both present and absent", id)
		}
		marks[id] = string(domain.AttendanceAbsent)
	}
	delete(marks, "")
	if len(marks) == 0 {
		return nil, fmt.Errorf("no students to mark: use --present or --absent")
	}
	return marks, nil
}

func (ac *attendanceMarkCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	now := ac.env.Now()
	date := ac.date
	if date == "" {
		date = now.Format(time.DateOnly)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("invalid date %q. Expected format: YYYY-MM-DD", date)
	}
	marks, err := ac.statuses()
	if err != nil {
		return err
	}

	return ac.env.withWriter(ctx, func(source *registry.Source, instituteID string) error {
		if err := source.Writer.MarkAttendance(ctx, instituteID, date, marks, now); err != nil {
			return fmt.Errorf("failed to mark attendance: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %d students for %s\n", len(marks), date)
		return nil
	})
}

// NewTestsCmd groups test record mutations
func NewTestsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tests",
		Short: "Record test results",
	}
	cmd.AddCommand(newTestsAddCmd(env))
	return cmd
}

type testsAddCmd struct {
	env       *Env
	studentID string
	subject   string
	obtained  float64
	max       float64
	date      string
}

func newTestsAddCmd(env *Env) *cobra.Command {
	tc := &testsAddCmd{env: env}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a test result",
		Args:  cobra.NoArgs,
		RunE:  tc.run,
	}
	cmd.Flags().StringVar(&tc.studentID, "student", "", "Student id")
	cmd.Flags().StringVar(&tc.subject, "subject", "", "Subject label")
	cmd.Flags().Float64Var(&tc.obtained, "obtained", 0, "Marks obtained")
	cmd.Flags().Float64Var(&tc.max, "max", 0, "Maximum marks")
	cmd.Flags().StringVar(&tc.date, "date", "", "Test date as YYYY-MM-DD (default: today)")

	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("obtained")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func (tc *testsAddCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	now := tc.env.Now()
	date := tc.date
	if date == "" {
		date = now.Format(time.DateOnly)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("invalid date %q. Expected format: YYYY-MM-DD", date)
	}

	return tc.env.withWriter(ctx, func(source *registry.Source, instituteID string) error {
		id, err := source.Writer.AddTest(ctx, instituteID, store.Test{
			StudentID:     tc.studentID,
			Subject:       tc.subject,
			MarksObtained: tc.obtained,
			MaxMarks:      tc.max,
			TestDate:      date,
			CreatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("failed to add test: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Test %s added\n", id)
		return nil
	})
}

// NewFeesCmd groups fee mutations
func NewFeesCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Manage student fees",
	}
	cmd.AddCommand(newFeesSetCmd(env))
	return cmd
}

type feesSetCmd struct {
	env       *Env
	studentID string
	amount    string
	nextDue   string
}

func newFeesSetCmd(env *Env) *cobra.Command {
	fc := &feesSetCmd{env: env}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the fee amount and next due date; status becomes due",
		Args:  cobra.NoArgs,
		RunE:  fc.run,
	}
	cmd.Flags().StringVar(&fc.studentID, "student", "", "Student id")
	cmd.Flags().StringVar(&fc.amount, "amount", "", "Fee amount")
	cmd.Flags().StringVar(&fc.nextDue, "next-due", "", "Next due date as YYYY-MM-DD")

	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (fc *feesSetCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if fc.nextDue != "" {
		if _, err := time.Parse(time.DateOnly, fc.nextDue); err != nil {
			return fmt.Errorf("invalid next due date %q. Expected format: YYYY-MM-DD", fc.nextDue)
		}
	}

	return fc.env.withWriter(ctx, func(source *registry.Source, instituteID string) error {
		err := source.Writer.SetFees(ctx, instituteID, fc.studentID, store.Fees{
			Amount:      fc.amount,
			NextDueDate: fc.nextDue,
			Status:      string(domain.FeeStateDue),
			UpdatedAt:   fc.env.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to set fees: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Fees updated for %s\n", fc.studentID)
		return nil
	})
}

// NewGuidanceCmd groups faculty guidance mutations
func NewGuidanceCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guidance",
		Short: "Manage faculty guidance",
	}
	cmd.AddCommand(newGuidanceSetCmd(env))
	return cmd
}

type guidanceSetCmd struct {
	env       *Env
	studentID string
	text      string
}

func newGuidanceSetCmd(env *Env) *cobra.Command {
	gc := &guidanceSetCmd{env: env}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the faculty guidance of a student",
		Args:  cobra.NoArgs,
		RunE:  gc.run,
	}
	cmd.Flags().StringVar(&gc.studentID, "student", "", "Student id")
	cmd.Flags().StringVar(&gc.text, "text", "", "Guidance text")

	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func (gc *guidanceSetCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	return gc.env.withWriter(ctx, func(source *registry.Source, instituteID string) error {
		err := source.Writer.SetGuidance(ctx, instituteID, gc.studentID, store.Guidance{
			Text:      gc.text,
			UpdatedAt: gc.env.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to set guidance: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Guidance updated for %s\n", gc.studentID)
		return nil
	})
}

// NewBrandingCmd groups institute branding mutations
func NewBrandingCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branding",
		Short: "Manage report branding",
	}
	cmd.AddCommand(newBrandingSetCmd(env))
	return cmd
}

type brandingSetCmd struct {
	env    *Env
	header string
	footer string
}

func newBrandingSetCmd(env *Env) *cobra.Command {
	bc := &brandingSetCmd{env: env}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the stored report header and footer of the institute",
		Args:  cobra.NoArgs,
		RunE:  bc.run,
	}
	cmd.Flags().StringVar(&bc.header, "header", "", "Report header text")
	cmd.Flags().StringVar(&bc.footer, "footer", "", "Report footer text")
	return cmd
}

func (bc *brandingSetCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	return bc.env.withWriter(ctx, func(source *registry.Source, instituteID string) error {
		err := source.Writer.SetBranding(ctx, instituteID, store.Branding{
			HeaderText: bc.header,
			FooterText: bc.footer,
		})
		if err != nil {
			return fmt.Errorf("failed to set branding: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Branding updated for %s\n", instituteID)
		return nil
	})
}
