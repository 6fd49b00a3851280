package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "installmart",
		Short: "🛒 Browse installment plans, property listings and bank loans",
		Long: `installmart: a terminal client for the InstallMart marketplace.

Browse products on installments, property listings and bank financing plans,
then apply for them and track your applications without leaving the shell.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/installmart/config.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	cmd.PersistentFlags().String("base-url", "", "backend API base URL")

	_ = viper.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", cmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("api.base_url", cmd.PersistentFlags().Lookup("base-url"))

	cmd.AddCommand(authCmd())
	cmd.AddCommand(installmentsCmd())
	cmd.AddCommand(propertiesCmd())
	cmd.AddCommand(loansCmd())
	cmd.AddCommand(applyCmd())
	cmd.AddCommand(applicationsCmd())
	cmd.AddCommand(reviewsCmd())
	cmd.AddCommand(receiptsCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr, "Anything already sent to the server may still be processed.")
	ctx, cancel := handler.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(userMessage(err)))
		os.Exit(1)
	}
}

// userMessage prefers the friendly text of a UserError and explains the
// errors a user can act on.
func userMessage(err error) string {
	var userErr *common.UserError
	switch {
	case errors.As(err, &userErr):
		return userErr.Error()
	case errors.Is(err, common.ErrUnauthorized):
		return "Your session has expired. Run 'installmart auth login' to sign in again."
	case common.IsSoftBlock(err):
		return "The marketplace is temporarily unreachable, try again shortly: " + err.Error()
	default:
		return err.Error()
	}
}

func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/installmart", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("INSTALLMART")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return setupLogging()
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "installmart %s\n", version)
		},
	}
}
