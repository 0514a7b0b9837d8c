package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-admin-portal/api"
	"github.com/jrsteele09/go-admin-portal/internal/config"
	"github.com/jrsteele09/go-admin-portal/internal/utils"
	"github.com/jrsteele09/go-admin-portal/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagAPIURL  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Inspect and exercise the admin portal session flow",
	Long: `portalctl talks to a running admin portal backend the same way the
dashboard shell does: cookie-based sessions, role-gated routes. Useful for
smoke-testing a deployment or debugging an authentication problem.`,
	Run: func(cmd *cobra.Command, args []string) {
		displayAppname(config.New().GetAppName())
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "backend base URL (defaults to PORTAL_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(routesCmd)
}

// newStore builds the API client and session store from flags and env config.
func newStore() (*session.Store, error) {
	c := config.New()

	baseURL := flagAPIURL
	if baseURL == "" {
		baseURL = c.GetAPIBaseURL()
	}

	logger := newLogger()
	client, err := api.New(baseURL, api.WithTimeout(c.GetRequestTimeout()), api.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return session.New(client, session.WithLogger(logger))
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func printSnapshot(snap session.Snapshot) {
	fmt.Printf("session: %s\n", snap.Status)
	if snap.User != nil {
		fmt.Printf("  user:   %s <%s>\n", snap.User.Name, snap.User.Email)
		fmt.Printf("  role:   %s\n", snap.User.Role)
		if snap.User.TenantID != "" {
			tenant := snap.User.TenantID
			if name := utils.Value(snap.User.Tenant).Name; name != "" {
				tenant = fmt.Sprintf("%s (%s)", name, snap.User.TenantID)
			}
			fmt.Printf("  tenant: %s\n", tenant)
		}
	}
}
