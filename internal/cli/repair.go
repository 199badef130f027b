package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"app-vet/internal/domain/animals"
	"app-vet/internal/domain/clinics"
	"app-vet/internal/domain/users"
	"app-vet/internal/ports/auth"
)

func newRepairCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Fix drift between clinics, users and animals",
	}
	cmd.AddCommand(newRepairClinicLinksCmd(a))
	return cmd
}

func newRepairClinicLinksCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clinic-links",
		Short: "Realign user.clinic_id and animal.clinic_id with clinic representatives",
		Long: `clinic.user_id manda. El comando:

- deja user.clinic_id igual a la clínica que el usuario representa (o vacío)
- quita representantes que no existen o no tienen rol clinic
- reescribe animal.clinic_id que apunta al id de un usuario clínica`,
		Annotations: writes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := repairer{
				clinics: a.store.Clinics,
				users:   a.store.Users,
				animals: a.store.Animals,
				out:     cmd.OutOrStdout(),
				dryRun:  dryRun,
			}
			n, err := r.clinicLinks(cmd.Context())
			if err != nil {
				return err
			}
			verb := "fixed"
			if dryRun {
				verb = "would fix"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d link(s)\n", verb, n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report")
	return cmd
}

type repairer struct {
	clinics clinics.Repository
	users   users.Repository
	animals animals.Repository
	out     io.Writer
	dryRun  bool
}

func (r repairer) clinicLinks(ctx context.Context) (int, error) {
	clinicList, err := r.clinics.List(ctx)
	if err != nil {
		return 0, err
	}
	userList, err := r.users.List(ctx)
	if err != nil {
		return 0, err
	}

	byUser := make(map[string]users.User, len(userList))
	for _, u := range userList {
		byUser[u.ID] = u
	}

	now := time.Now().UTC()
	fixed := 0
	clinicIDs := make(map[string]bool, len(clinicList))
	represented := make(map[string]string) // user -> clinic
	for _, c := range clinicList {
		clinicIDs[c.ID] = true
		if c.UserID == "" {
			continue
		}
		u, ok := byUser[c.UserID]
		if ok && u.Role == auth.RoleClinic {
			represented[c.UserID] = c.ID
			continue
		}

		fmt.Fprintf(r.out, "clinic %s: representative %s dropped\n", c.ID, c.UserID)
		fixed++
		if !r.dryRun {
			c.UserID = ""
			c.UpdatedAt = now
			if err := r.clinics.Update(ctx, c); err != nil {
				return fixed, fmt.Errorf("clinic %s: %w", c.ID, err)
			}
		}
	}

	for _, u := range userList {
		want := represented[u.ID]
		if u.ClinicID == want {
			continue
		}
		fmt.Fprintf(r.out, "user %s: clinic_id %s -> %s\n", u.Username, dash(u.ClinicID), dash(want))
		fixed++
		if !r.dryRun {
			u.ClinicID = want
			u.UpdatedAt = now
			if err := r.users.Update(ctx, u); err != nil {
				return fixed, fmt.Errorf("user %s: %w", u.ID, err)
			}
		}
	}

	animalList, err := r.animals.List(ctx, animals.ListFilter{})
	if err != nil {
		return fixed, err
	}
	for _, an := range animalList {
		if an.ClinicID == "" || clinicIDs[an.ClinicID] {
			continue
		}
		target, ok := represented[an.ClinicID]
		if !ok {
			fmt.Fprintf(r.out, "animal %s: unknown clinic %s, reassign with the admin API\n", an.ID, an.ClinicID)
			continue
		}

		fmt.Fprintf(r.out, "animal %s: clinic_id %s -> %s\n", an.ID, an.ClinicID, target)
		fixed++
		if !r.dryRun {
			expected := an.Version
			an.ClinicID = target
			an.Version++
			an.UpdatedAt = now
			if err := r.animals.Update(ctx, an, expected); err != nil {
				return fixed, fmt.Errorf("animal %s: %w", an.ID, err)
			}
		}
	}
	return fixed, nil
}
