package cmd

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mikesterific/parallel-instances/internal/artifacts"
	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/handlers"
	"github.com/mikesterific/parallel-instances/internal/server"
	"github.com/mikesterific/parallel-instances/internal/services"
	"github.com/mikesterific/parallel-instances/internal/suite"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

func newServeCommand(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("port") {
				a.cfg.Server.HTTPPort = port
			}

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			driver, err := browser.Open(ctx, a.cfg.Browser)
			if err != nil {
				return err
			}
			defer driver.Close()

			runSrv := services.NewRunService(st, driver, artifacts.NewWriter(a.cfg.Artifacts), a.cfg, suite.Builtin())
			defer runSrv.Stop()
			h := handlers.New(runSrv, services.NewReportService(st), a.cfg.ProjectID)

			srv, err := server.NewServer(a.cfg, func(router *gin.RouterGroup) {
				handlers.RegisterHandlers(router, h)
			})
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8000, "listen port")
	return cmd
}

func newTokenCommand(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the report API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Auth.JWTSecret == "" {
				return srvErrors.NewValidationError("auth.jwtSecret", "required to mint tokens")
			}
			token, err := server.NewToken(a.cfg.Auth.JWTSecret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "ci", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
