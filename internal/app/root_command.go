package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tyemirov/teaminstall/internal/tui"
)

func newRootCommand(resources *applicationResources) *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           defaultApplicationName,
		Short:         "Install client certificates into the current user's certificate store",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettingsFile(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd)
		},
	}

	pathFlags := pflag.NewFlagSet("paths", pflag.ContinueOnError)
	configurePathFlags(pathFlags, resources.configurationManager)
	rootCommand.PersistentFlags().AddFlagSet(pathFlags)
	rootCommand.PersistentFlags().String(flagNameSettingsFile, "", "Path to a YAML settings file")

	rootCommand.Flags().Bool(flagNameShortcuts, resources.configurationManager.GetBool(configKeyShortcutsEnabled), "Create desktop shortcuts by default")
	_ = resources.configurationManager.BindPFlag(configKeyShortcutsEnabled, rootCommand.Flags().Lookup(flagNameShortcuts))

	rootCommand.AddCommand(newListCommand(resources))
	rootCommand.AddCommand(newInstallCommand(resources))

	return rootCommand
}

func configurePathFlags(flagSet *pflag.FlagSet, configurationManager *viper.Viper) {
	flagSet.String(flagNameBaseDirectory, configurationManager.GetString(configKeyBaseDirectory), "Directory containing config/config.ini (defaults to the executable directory)")
	flagSet.String(flagNameConfigFile, configurationManager.GetString(configKeyConfigurationFile), "Path to the certificate configuration file")
	flagSet.String(flagNameCertificatesDir, configurationManager.GetString(configKeyCertificateDirectory), "Directory containing client-<cert_num>.p12 files")
	flagSet.String(flagNameLoggingType, configurationManager.GetString(configKeyLoggingType), "Logging type (CONSOLE or JSON)")
	_ = configurationManager.BindPFlag(configKeyBaseDirectory, flagSet.Lookup(flagNameBaseDirectory))
	_ = configurationManager.BindPFlag(configKeyConfigurationFile, flagSet.Lookup(flagNameConfigFile))
	_ = configurationManager.BindPFlag(configKeyCertificateDirectory, flagSet.Lookup(flagNameCertificatesDir))
	_ = configurationManager.BindPFlag(configKeyLoggingType, flagSet.Lookup(flagNameLoggingType))
}

func runShell(cmd *cobra.Command) error {
	resources, err := getApplicationResources(cmd)
	if err != nil {
		return err
	}
	paths, err := resources.resolvePaths()
	if err != nil {
		return err
	}
	loaded, err := resources.loadCatalog(paths)
	if err != nil {
		return err
	}
	restoreLogger, err := resources.silenceLoggerOnTerminal()
	if err != nil {
		return err
	}
	defer restoreLogger()
	service, err := resources.buildInstallationService(paths)
	if err != nil {
		return err
	}
	model := tui.New(cmd.Context(), loaded, service, tui.Options{
		CategoryTokens:  resources.categoryTokens(),
		CreateShortcuts: resources.configurationManager.GetBool(configKeyShortcutsEnabled),
	})
	return resources.runShell(cmd.Context(), model, cmd.InOrStdin(), cmd.OutOrStdout())
}
