package main

import (
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newOdooFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "odoo-url",
			Usage:   "Odoo base URL",
			EnvVars: []string{"ODOO_URL"},
		},
		&cli.StringFlag{
			Name:    "odoo-db",
			Usage:   "Odoo database name",
			EnvVars: []string{"ODOO_DB"},
		},
		&cli.StringFlag{
			Name:    "odoo-username",
			Usage:   "Odoo login",
			EnvVars: []string{"ODOO_USERNAME"},
		},
		&cli.StringFlag{
			Name:    "odoo-password",
			Usage:   "Odoo password or API key",
			EnvVars: []string{"ODOO_PASSWORD"},
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "sync",
		Usage: "Data sync tooling for the demand dashboard",
		Commands: []*cli.Command{
			{
				Name:   "sync-stock",
				Usage:  "Pull warehouses and stock quantities from Odoo into the analytics schema",
				Flags:  append([]cli.Flag{newDBURLFlag()}, newOdooFlags()...),
				Action: runStockSync,
			},
			{
				Name:  "seed-demand",
				Usage: "Load daily demand summary rows from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "CSV file with daily demand rows",
						Value:   "./data/seeds/daily_demand.csv",
						EnvVars: []string{"DEMAND_SEED_FILE"},
					},
				},
				Action: runDemandSeed,
			},
			{
				Name:  "serve-status",
				Usage: "Run a small HTTP listener that reports sync status and accepts sync triggers",
				Flags: append([]cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address",
						Value: ":8090",
					},
				}, newOdooFlags()...),
				Action: runStatusServer,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
