package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jsonbase-dev/jsonbase/core/jdb"
	"github.com/jsonbase-dev/jsonbase/core/logger"
	"github.com/jsonbase-dev/jsonbase/core/server"
)

// Config holds the serving configuration. Every value can come from the
// environment; flags override.
type Config struct {
	Address       string `env:"ADDRESS,default=localhost" description:"the address to bind to"`
	Port          int    `env:"PORT,default=8000" description:"the port to listen on"`
	DatabaseFile  string `env:"DATABASE_FILE,default=database.json" description:"the backing JSON database file"`
	StaticFile    string `env:"STATIC_FILE" description:"optional static routes file"`
	BasicAuthFile string `env:"BASIC_AUTH_FILE" description:"optional basic auth credentials file"`
	LogLevel      string `env:"LOG_LEVEL,default=info" description:"logrus log level"`
}

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the REST API",
		Long: `Start the HTTP listener. The database file must exist; create one
with "jsonbase generate database".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := &Config{}
			if err := envdecode.Decode(config); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("address") {
				config.Address, _ = flags.GetString("address")
			}
			if flags.Changed("port") {
				config.Port, _ = flags.GetInt("port")
			}
			if flags.Changed("database") {
				config.DatabaseFile, _ = flags.GetString("database")
			}
			if flags.Changed("static") {
				config.StaticFile, _ = flags.GetString("static")
			}
			if flags.Changed("basic-auth") {
				config.BasicAuthFile, _ = flags.GetString("basic-auth")
			}
			if flags.Changed("log-level") {
				config.LogLevel, _ = flags.GetString("log-level")
			}
			return start(config)
		},
	}
	cmd.Flags().String("address", "localhost", "address to bind to")
	cmd.Flags().IntP("port", "p", 8000, "port to listen on")
	cmd.Flags().StringP("database", "d", "database.json", "backing JSON database file")
	cmd.Flags().String("static", "", "static routes file")
	cmd.Flags().String("basic-auth", "", "basic auth credentials file")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

func start(config *Config) error {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", config.LogLevel, err)
	}
	logger.InitLogger(level)
	rlog := logger.Default()

	db, err := jdb.Open(config.DatabaseFile)
	if err != nil {
		return err
	}
	defer db.Close()
	rlog.Infoln("database", db.Path(), "with collections", db.Collections())

	srv := server.New(db)
	if config.StaticFile != "" {
		static, err := server.NewStaticRoutes(config.StaticFile)
		if err != nil {
			return err
		}
		srv.Use(static)
		rlog.Infoln("static routes from", config.StaticFile)
	}
	if config.BasicAuthFile != "" {
		// added last so authentication runs ahead of the static routes
		auth, err := server.NewBasicAuthFromFile(config.BasicAuthFile)
		if err != nil {
			return err
		}
		srv.Use(auth)
		rlog.Infoln("basic auth from", config.BasicAuthFile)
	}

	router := mux.NewRouter()
	logger.AddRequestID(router)
	server.HandleCORS(router)
	router.PathPrefix("/").Handler(srv)

	handler := handlers.CompressHandler(router)
	handler = handlers.CombinedLoggingHandler(os.Stdout, handler)

	addr := fmt.Sprintf("%s:%d", config.Address, config.Port)
	color.New(color.FgGreen, color.Bold).Printf("jsonbase running on http://%s\n", addr)
	return http.ListenAndServe(addr, handler)
}
