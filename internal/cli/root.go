package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"app-vet/internal/adapters/storage"
	"app-vet/internal/config"
)

// app es el estado compartido entre comandos. El store se abre en PersistentPreRunE.
type app struct {
	storeCfg storage.Config
	store    *storage.Store
}

// writesAnnotation marca comandos que escriben: contra el driver memory se perderían.
const writesAnnotation = "vetctl/writes"

func writes() map[string]string {
	return map[string]string{writesAnnotation: "true"}
}

// NewRootCmd arma el árbol de vetctl. Los defaults salen del mismo entorno que la API.
func NewRootCmd() *cobra.Command {
	a := &app{}
	// Un error de config no es fatal acá: se avisa al ejecutar.
	cfg, cfgErr := config.Load()

	root := &cobra.Command{
		Use:   "vetctl",
		Short: "Operator CLI for app-vet",
		Long: `vetctl administra la base de app-vet sin pasar por la API:

- aplica el schema (migrate)
- crea cuentas de clínica y admin, que no se pueden dar de alta por HTTP
- consulta animales y clínicas
- repara vínculos clínica/usuario/animal desalineados`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: environment config: %v\n", cfgErr)
			}
			if cmd.Annotations[writesAnnotation] != "" && (a.storeCfg.Driver == "" || a.storeCfg.Driver == "memory") {
				return fmt.Errorf("%s writes data; the memory driver discards it on exit, use --db-driver sqlite or postgres", cmd.CommandPath())
			}

			s, err := storage.Open(cmd.Context(), a.storeCfg)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			a.store = s
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.store.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.storeCfg.Driver, "db-driver", cfg.DBDriver, "storage driver: memory, postgres or sqlite (env DB_DRIVER)")
	flags.StringVar(&a.storeCfg.DSN, "dsn", cfg.DBDSN, "postgres DSN (env DB_DSN)")
	flags.StringVar(&a.storeCfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite file (env SQLITE_PATH)")

	root.AddCommand(
		newMigrateCmd(a),
		newUsersCmd(a),
		newClinicsCmd(a),
		newAnimalsCmd(a),
		newRepairCmd(a),
	)
	return root
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// storage.Open ya migró en PersistentPreRunE.
			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", a.store.Driver)
			return nil
		},
	}
}
