package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/codeorbit/codeorbit-client/internal/config"
	"github.com/codeorbit/codeorbit-client/internal/logger"
	"github.com/codeorbit/codeorbit-client/internal/session"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "codeorbit",
	Short: "Command line client for the CodeOrbit internship platform",
	Long: `codeorbit talks to the CodeOrbit backend: browse internships, apply and pay,
follow courses, and manage applications as an admin.

Every request shows a spinner while it is in flight and is retried up to two
times on network errors and 5xx responses.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()

	if err != nil {
		pterm.Error.Println(api.ErrorMessage(err))
		switch {
		case api.IsUnauthorized(err):
			pterm.Info.Println("Run `codeorbit login` to sign in again.")
		case errors.Is(err, session.ErrCorruptSession):
			pterm.Info.Println("Run `codeorbit logout` to discard the stored session.")
		}
		os.Exit(1)
	}
}

func init() {
	config.InitFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
	rootCmd.PersistentFlags().BoolVar(&traceLoader, "trace-loader", false, "Print the busy indicator transitions after the command")

	rootCmd.AddCommand(
		newInternshipsCommand(),
		newContactCommand(),
		newLoginCommand(),
		newRegisterCommand(),
		newLogoutCommand(),
		newMeCommand(),
		newApplyCommand(),
		newApplicationsCommand(),
		newCouponCommand(),
		newDashboardCommand(),
		newTaskCommand(),
		newDocumentCommand(),
		newPayCommand(),
		newAdminCommand(),
		newLMSCommand(),
	)
}

var cfg *config.Config

// loadConfig runs before every command: version check, configuration and logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
		pterm.Info.Println(config.GetVersionInfo())
		os.Exit(0)
	}

	loaded, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := logger.InitLogger(&loaded.Logging); err != nil {
		return err
	}
	if loaded.Output.Format != "table" {
		pterm.DisableStyling()
	}
	cfg = loaded
	return nil
}
