package commands

import (
	"fmt"

	"github.com/de-tools/rankboard/pkg/adapters"
	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/services/registry"
	"github.com/spf13/cobra"
)

// NewInstitutesCmd groups institute administration
func NewInstitutesCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "institutes",
		Short: "Manage institutes",
	}
	cmd.AddCommand(newInstitutesStatusCmd(env))
	return cmd
}

type institutesStatusCmd struct {
	env    *Env
	status string
}

func newInstitutesStatusCmd(env *Env) *cobra.Command {
	sc := &institutesStatusCmd{env: env}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the institute status, or enable/disable it with --set",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
	cmd.Flags().StringVar(&sc.status, "set", "", "New status: active or disabled")
	return cmd
}

func (sc *institutesStatusCmd) run(cmd *cobra.Command, _ []string) error {
	if sc.status != "" {
		return sc.set(cmd)
	}

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

	inst, err := source.Store.GetInstitute(ctx, instituteID)
	if err != nil {
		return fmt.Errorf("failed to get institute: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", instituteID, adapters.MapStoreInstituteToDomain(inst).Status)
	return nil
}

func (sc *institutesStatusCmd) set(cmd *cobra.Command) error {
	ctx := cmd.Context()
	status := domain.InstituteStatus(sc.status)
	if !status.Valid() {
		return fmt.Errorf("invalid status %q. Expected active or disabled", sc.status)
	}

	return sc.env.withWriter(ctx, func(source *registry.Source, instituteID string) error {
		if err := source.Writer.SetInstituteStatus(ctx, instituteID, string(status)); err != nil {
			return fmt.Errorf("failed to set institute status: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", instituteID, status)
		return nil
	})
}
