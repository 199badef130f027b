package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"app-vet/internal/domain/clinics"
	"app-vet/internal/domain/users"
	"app-vet/internal/ports/auth"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUsersCreateCmd(a), newUsersListCmd(a))
	return cmd
}

func newUsersCreateCmd(a *app) *cobra.Command {
	var (
		username, password, role, clinicID, contact string
	)

	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Create a tutor, clinic or admin account",
		Annotations: writes(),
		Long: `Crea una cuenta. Para rol clinic, --clinic-id vincula la clínica en los dos sentidos.
La contraseña puede venir de VETCTL_PASSWORD para no dejarla en el historial.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("VETCTL_PASSWORD")
			}
			r, ok := auth.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}

			ctx := cmd.Context()
			usersSvc := users.NewService(a.store.Users, nil)

			u, err := usersSvc.Create(ctx, users.CreateInput{
				Username: username,
				Password: password,
				Role:     r,
				Contact:  contact,
			})
			if err != nil {
				return err
			}

			if clinicID != "" {
				clinicsSvc := clinics.NewService(a.store.Clinics, usersSvc, a.store)
				if _, err := clinicsSvc.Update(ctx, clinicID, clinics.UpdateInput{RepresentativeUserID: &u.ID}); err != nil {
					return fmt.Errorf("link clinic %s: %w", clinicID, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", u.Role, u.Username, u.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&username, "username", "", "login name")
	f.StringVar(&password, "password", "", "password (min 6 chars)")
	f.StringVar(&role, "role", "clinic", "tutor, clinic or admin")
	f.StringVar(&clinicID, "clinic-id", "", "clinic represented by this user")
	f.StringVar(&contact, "contact", "", "phone for notifications")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := users.NewService(a.store.Users, nil).List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tCLINIC")
			for _, u := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, dash(u.ClinicID))
			}
			return w.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
