package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/homelab/territoire/internal/geoapi"
	"github.com/jbweber/homelab/territoire/internal/migrations"
	"github.com/jbweber/homelab/territoire/internal/repository"
	"github.com/jbweber/homelab/territoire/internal/service"
)

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations, or roll back the last one with --down",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			ds, err := cfg.OpenDatastore(cmd.Context())
			if err != nil {
				return err
			}
			defer ds.Close()

			if down {
				migrator := migrations.NewMigrator(ds)
				for _, migration := range migrations.All() {
					migrator.AddMigration(migration)
				}
				version, err := migrator.RollbackLast(cmd.Context())
				if err != nil {
					return err
				}
				log.Info("rolled back migration", "version", version)
				return nil
			}

			applied, err := migrations.Run(cmd.Context(), ds)
			if err != nil {
				return err
			}
			log.Info("migrations applied", "count", applied)
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")
	return cmd
}

func newSyncCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-departements",
		Short: "Create and rename départements from the reference list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			ds, err := cfg.InitializeDatastore(cmd.Context())
			if err != nil {
				return err
			}
			defer ds.Close()

			c, closeCache, err := connectCache(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeCache()

			source := geoapi.NewClient(cfg.GeoAPIURL, cfg.GeoAPITimeout, geoapi.WithLogger(log))
			syncer := service.NewSyncService(ds, repository.NewDepartementRepository(ds, nil), source, c, nil, log)

			report, err := syncer.Sync(cmd.Context())
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func newFillNomsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fill-noms",
		Short: "Fill missing département names from the built-in table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			ds, err := cfg.InitializeDatastore(cmd.Context())
			if err != nil {
				return err
			}
			defer ds.Close()

			c, closeCache, err := connectCache(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeCache()

			departements := service.NewDepartementService(ds,
				repository.NewDepartementRepository(ds, nil), repository.NewVilleRepository(ds, nil), c, nil, log)
			n, err := departements.FillMissingNoms(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d département(s) mis à jour\n", n)
			return err
		},
	}
}
