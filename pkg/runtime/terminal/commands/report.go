package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/de-tools/rankboard/pkg/adapters"
	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/runtime/terminal/export"
	"github.com/de-tools/rankboard/pkg/store/artifact"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type ReportCmd struct {
	env       *Env
	studentID string
	format    string
	out       string
	publish   bool
}

func NewReportCmd(env *Env) *cobra.Command {
	rc := &ReportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the printable report of a student",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.studentID, "student", "", "Student id")
	cmd.Flags().StringVar(&rc.format, "format", formatText, "Output format: text or json")
	cmd.Flags().StringVar(&rc.out, "out", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&rc.publish, "publish", false, "Deliver the text report to the configured artifact sink")

	_ = cmd.MarkFlagRequired("student")
	cmd.MarkFlagsMutuallyExclusive("out", "publish")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if rc.format != formatText && rc.format != formatJSON {
		return fmt.Errorf("unsupported format %q", rc.format)
	}
	instituteID, err := rc.env.InstituteID()
	if err != nil {
		return err
	}
	source, err := rc.env.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer source.Close()

	explorer, err := rc.env.NewExplorer(source)
	if err != nil {
		return err
	}
	doc, err := explorer.GetStudentReport(ctx, instituteID, rc.studentID, rc.env.Now())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	body, ext, contentType, err := rc.encode(&doc)
	if err != nil {
		return err
	}

	switch {
	case rc.publish:
		sink, err := rc.env.NewSink(ctx)
		if err != nil {
			return err
		}
		location, err := sink.Publish(ctx, artifact.FileName(doc.Title, ext), contentType, body)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report published to %s\n", location)
	case rc.out != "":
		if err := os.WriteFile(rc.out, body, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", rc.out)
	default:
		if _, err := rc.env.Output.Write(body); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func (rc *ReportCmd) encode(doc *domain.ReportDocument) ([]byte, string, string, error) {
	if rc.format == formatJSON {
		body, err := json.MarshalIndent(adapters.MapReportDocumentDomainToApi(*doc), "", "  ")
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to encode report: %w", err)
		}
		return append(body, '\n'), ".json", "application/json", nil
	}

	var buf bytes.Buffer
	if err := export.NewReporter(&buf, export.PageConfigFromLayout(rc.env.Config.Layout)).Handle(doc); err != nil {
		return nil, "", "", err
	}
	return buf.Bytes(), export.TextExtension, export.TextContentType, nil
}
