package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"app-vet/internal/domain/animals"
)

func newAnimalsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animals",
		Short: "Inspect animals",
	}
	cmd.AddCommand(newAnimalsListCmd(a), newAnimalsShowCmd(a))
	return cmd
}

func newAnimalsListCmd(a *app) *cobra.Command {
	var (
		status, clinicID string
		unclaimed        bool
		limit            int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List animals, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := animals.ListFilter{ClinicID: clinicID, Unclaimed: unclaimed, Limit: limit}
			if status != "" {
				st, ok := animals.ParseStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				f.Status = st
			}

			list, err := a.store.Animals.List(cmd.Context(), f)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIES\tSTATUS\tCLINIC\tSCHEDULED")
			for _, an := range list {
				scheduled := "-"
				if an.ScheduledAt != nil {
					scheduled = an.ScheduledAt.UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", an.ID, an.Name, an.Species, an.Status, dash(an.ClinicID), scheduled)
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&status, "status", "", "waiting, awaiting_scheduling, scheduled or completed")
	f.StringVar(&clinicID, "clinic-id", "", "only animals of this clinic")
	f.BoolVar(&unclaimed, "unclaimed", false, "only animals without clinic")
	f.IntVar(&limit, "limit", 0, "max rows (0 = all)")
	return cmd
}

func newAnimalsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ANIMAL_ID",
		Short: "Print one animal as JSON, token included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			an, err := a.store.Animals.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(an)
		},
	}
}
