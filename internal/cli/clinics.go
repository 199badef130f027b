package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"app-vet/internal/domain/clinics"
	"app-vet/internal/domain/users"
)

func newClinicsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clinics",
		Short: "Manage clinics",
	}
	cmd.AddCommand(newClinicsCreateCmd(a), newClinicsListCmd(a), newClinicsDeleteCmd(a))
	return cmd
}

func newClinicsCreateCmd(a *app) *cobra.Command {
	var in clinics.CreateInput

	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Create a clinic",
		Annotations: writes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := clinics.NewService(a.store.Clinics, users.NewService(a.store.Users, nil), a.store)
			c, err := svc.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created clinic %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "clinic name")
	f.StringVar(&in.Address, "address", "", "address")
	f.StringVar(&in.Phone, "phone", "", "phone")
	f.StringVar(&in.RepresentativeUserID, "representative", "", "clinic user id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newClinicsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clinics",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.store.Clinics.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tREPRESENTATIVE")
			for _, c := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, dash(c.UserID))
			}
			return w.Flush()
		},
	}
}

func newClinicsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "delete CLINIC_ID",
		Short:       "Delete a clinic with no assigned animals",
		Args:        cobra.ExactArgs(1),
		Annotations: writes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := clinics.NewService(a.store.Clinics, users.NewService(a.store.Users, nil), a.store)
			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted clinic %s\n", args[0])
			return nil
		},
	}
}
