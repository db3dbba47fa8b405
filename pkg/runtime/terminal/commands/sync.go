package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/de-tools/rankboard/pkg/services/config"
	"github.com/de-tools/rankboard/pkg/services/registry"
	"github.com/de-tools/rankboard/pkg/services/workflow"
	"github.com/de-tools/rankboard/pkg/store/duckdb/mirror"
	"github.com/spf13/cobra"
)

// sqlTarget fails for backends without a database handle
func sqlTarget(source *registry.Source) (mirror.Store, error) {
	if source.DB == nil {
		return nil, fmt.Errorf("%s store cannot be a mirror target: use duckdb or postgres", source.Driver)
	}
	return mirror.NewStore(source.DB)
}

type ImportCmd struct {
	env *Env
	dir string
}

func NewImportCmd(env *Env) *cobra.Command {
	ic := &ImportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the institute records of the configured store with a CSV export",
		Args:  cobra.NoArgs,
		RunE:  ic.run,
	}
	cmd.Flags().StringVar(&ic.dir, "dir", "", "Directory holding students.csv, attendance.csv, tests.csv and institute.csv")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	csvSource, err := registry.OpenCSV(ctx, config.StoreConfig{Driver: config.StoreCSV, Path: ic.dir})
	if err != nil {
		return err
	}

	return ic.env.withWriter(ctx, func(target *registry.Source, instituteID string) error {
		stateStore, err := sqlTarget(target)
		if err != nil {
			return err
		}

		runner := workflow.NewRunner(instituteID, "csv:"+ic.dir, csvSource.Store, target.DB, target.Writer, stateStore)
		go func() {
			_ = runner.Run(ctx)
		}()
		for p := range runner.Progress() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", p.Stage, p.Records)
		}
		if err := runner.Err(); err != nil {
			return fmt.Errorf("failed to import %s: %w", ic.dir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into %s\n", ic.dir, instituteID)
		return nil
	})
}

type MirrorCmd struct {
	env        *Env
	source     config.StoreConfig
	institutes []string
}

func NewMirrorCmd(env *Env) *cobra.Command {
	mc := &MirrorCmd{env: env}
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Copy institutes from another record source into the configured store",
		Args:  cobra.NoArgs,
		RunE:  mc.run,
	}

	cmd.Flags().StringVar((*string)(&mc.source.Driver), "from-source", "", "Source driver: firestore, postgres, duckdb or csv")
	cmd.Flags().StringVar(&mc.source.DSN, "source-dsn", "", "Postgres connection string of the source")
	cmd.Flags().StringVar(&mc.source.Path, "source-path", "", "DuckDB file or CSV directory of the source")
	cmd.Flags().StringVar(&mc.source.Project, "source-project", "", "Firestore project of the source")
	cmd.Flags().StringVar(&mc.source.Credentials, "source-credentials", "", "Firestore service account key file")
	cmd.Flags().StringSliceVar(&mc.institutes, "institutes", nil, "Institutes to mirror (default: the current institute)")

	_ = cmd.MarkFlagRequired("from-source")
	return cmd
}

func (mc *MirrorCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	source, err := mc.env.Registry.Open(ctx, mc.source)
	if err != nil {
		return err
	}
	defer source.Close()

	return mc.env.withWriter(ctx, func(target *registry.Source, instituteID string) error {
		stateStore, err := sqlTarget(target)
		if err != nil {
			return err
		}
		institutes := mc.institutes
		if len(institutes) == 0 {
			institutes = []string{instituteID}
		}

		ctrl := workflow.NewController(string(source.Driver), source.Store, target.DB, target.Writer, stateStore)
		for _, id := range institutes {
			if err := ctrl.Start(ctx, id); err != nil {
				return err
			}
		}
		failures := ctrl.Wait()

		sort.Strings(institutes)
		var errs []error
		for _, id := range institutes {
			if err, ok := failures[id]; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: failed: %v\n", id, err)
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
				continue
			}
			state, err := stateStore.Get(ctx, id)
			if err != nil {
				return err
			}
			if state == nil {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d students, %d attendance, %d tests from %s\n",
				id, state.Students, state.Attendance, state.Tests, state.Source)
		}
		if len(errs) > 0 {
			return fmt.Errorf("failed to mirror %d institutes: %w", len(errs), errors.Join(errs...))
		}
		return nil
	})
}
