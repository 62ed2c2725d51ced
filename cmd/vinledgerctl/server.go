package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vinledger/vinledger/pkg/config"
	"github.com/vinledger/vinledger/pkg/db"
	"github.com/vinledger/vinledger/pkg/model"
	"github.com/vinledger/vinledger/pkg/server"
	"github.com/vinledger/vinledger/pkg/server/endpoints"
	"github.com/vinledger/vinledger/pkg/server/store"
	gormstore "github.com/vinledger/vinledger/pkg/server/store/gorm"
	"github.com/vinledger/vinledger/pkg/server/store/memory"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the vehicle history ledger server",
	Long: `Run the vehicle history ledger server.

Requires the DATABASE_URL environment variable unless --memory is set.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		useMemory, _ := cmd.Flags().GetBool("memory")

		// Validate required environment variables first (fail fast)
		if !useMemory && os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		var (
			ledger   store.LedgerStore
			roles    store.RolesStore
			accounts store.AccountsStore
		)
		if useMemory {
			log.Println("Using in-memory stores; state is not persisted")
			stores := memory.New()
			ledger, roles, accounts = stores.Ledger, stores.Roles, stores.Accounts
		} else {
			// Run migrations unless --no-migrate is set
			noMigrate, _ := cmd.Flags().GetBool("no-migrate")
			if !noMigrate {
				log.Println("Running database migrations...")
				if err := runMigrations(); err != nil {
					fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
					os.Exit(1)
				}
			}

			database, err := db.Connect(db.Config{})
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
				os.Exit(1)
			}
			ledger = gormstore.NewLedgerStore(database)
			roles = gormstore.NewRolesStore(database)
			accounts = gormstore.NewAccountsStore(database)
		}

		if admin, _ := cmd.Flags().GetString("bootstrap-admin"); admin != "" {
			if !model.IsAddress(admin) {
				fmt.Fprintf(os.Stderr, "Invalid --bootstrap-admin address: %s\n", admin)
				os.Exit(1)
			}
			if err := roles.BootstrapAdmin(admin); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to bootstrap admin: %v\n", err)
				os.Exit(1)
			}
			log.Printf("Bootstrapped admin role for %s", admin)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(ledger, roles, accounts, cfg, host, port)

		endpoints.RegisterAll(s)

		// Pick up config file edits without a restart
		go func() {
			err := config.Watch(context.Background(), func(c *config.LedgerConfig) {
				log.Println("Configuration reloaded")
			})
			if err != nil {
				log.Printf("Config watch disabled: %v", err)
			}
		}()

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("memory", false, "use in-memory stores (development only)")
	serverCmd.Flags().String("bootstrap-admin", "", "grant the admin role to this address on start")
}
