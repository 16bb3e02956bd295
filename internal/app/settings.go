package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tyemirov/teaminstall/internal/catalog"
	"github.com/tyemirov/teaminstall/internal/certificates"
	"github.com/tyemirov/teaminstall/internal/certificates/truststore"
	"github.com/tyemirov/teaminstall/internal/installation"
	"github.com/tyemirov/teaminstall/internal/shortcuts"
	"github.com/tyemirov/teaminstall/pkg/logging"
)

// installerPaths are the resolved locations of the catalog and the certificates.
type installerPaths struct {
	BaseDirectory        string
	ConfigurationFile    string
	CertificateDirectory string
}

func getApplicationResources(cmd *cobra.Command) (*applicationResources, error) {
	resourceValue := cmd.Context().Value(contextKeyApplicationResources)
	if resourceValue == nil {
		return nil, errors.New("application resources not configured")
	}
	resources, ok := resourceValue.(*applicationResources)
	if !ok {
		return nil, errors.New("invalid application resources type")
	}
	return resources, nil
}

// loadSettingsFile reads the optional YAML settings and applies the logging type.
func loadSettingsFile(cmd *cobra.Command) error {
	resources, err := getApplicationResources(cmd)
	if err != nil {
		return err
	}
	configurationManager := resources.configurationManager
	settingsPath, flagErr := cmd.Flags().GetString(flagNameSettingsFile)
	if flagErr != nil {
		return fmt.Errorf("read settings flag: %w", flagErr)
	}
	if settingsPath != "" {
		configurationManager.SetConfigFile(settingsPath)
		configurationManager.SetConfigType("yaml")
		if readErr := configurationManager.ReadInConfig(); readErr != nil {
			return fmt.Errorf("read settings: %w", readErr)
		}
	}
	if err := resources.updateLogger(configurationManager.GetString(configKeyLoggingType)); err != nil {
		return fmt.Errorf("%s: %w", logMessageFailedInitializeLogger, err)
	}
	return nil
}

func (resources *applicationResources) resolvePaths() (installerPaths, error) {
	configurationManager := resources.configurationManager
	baseDirectory := strings.TrimSpace(configurationManager.GetString(configKeyBaseDirectory))
	if baseDirectory == "" {
		baseDirectory = resources.executableDirectory
	}
	absoluteBase, err := filepath.Abs(baseDirectory)
	if err != nil {
		return installerPaths{}, fmt.Errorf("resolve base directory: %w", err)
	}
	configurationDirectory := filepath.Join(absoluteBase, certificates.DefaultConfigurationDirectoryName)

	configurationFile := strings.TrimSpace(configurationManager.GetString(configKeyConfigurationFile))
	if configurationFile == "" {
		configurationFile = filepath.Join(configurationDirectory, certificates.DefaultConfigurationFileName)
	}
	certificateDirectory := strings.TrimSpace(configurationManager.GetString(configKeyCertificateDirectory))
	if certificateDirectory == "" {
		certificateDirectory = filepath.Join(configurationDirectory, certificates.DefaultCertificateDirectoryName)
	}
	absoluteConfigurationFile, err := filepath.Abs(configurationFile)
	if err != nil {
		return installerPaths{}, fmt.Errorf("resolve configuration file: %w", err)
	}
	absoluteCertificateDirectory, err := filepath.Abs(certificateDirectory)
	if err != nil {
		return installerPaths{}, fmt.Errorf("resolve certificate directory: %w", err)
	}
	return installerPaths{
		BaseDirectory:        absoluteBase,
		ConfigurationFile:    absoluteConfigurationFile,
		CertificateDirectory: absoluteCertificateDirectory,
	}, nil
}

// loadCatalog reads the certificate catalog; any failure is fatal for the caller.
func (resources *applicationResources) loadCatalog(paths installerPaths) (catalog.Catalog, error) {
	loaded, err := catalog.Load(paths.ConfigurationFile)
	if err != nil {
		if errors.Is(err, catalog.ErrConfigurationNotFound) {
			return catalog.Catalog{}, fmt.Errorf("configuration file %s was not found: %w", paths.ConfigurationFile, err)
		}
		return catalog.Catalog{}, fmt.Errorf("read configuration file %s: %w", paths.ConfigurationFile, err)
	}
	for _, warning := range loaded.Warnings {
		resources.loggingService.Warn("configuration warning", nil, logging.String("file", loaded.Path), logging.String("detail", warning))
	}
	resources.loggingService.Info("configuration loaded",
		logging.String("file", loaded.Path),
		logging.String("encoding", loaded.Encoding),
		logging.Int("sections", len(loaded.Records)),
	)
	return loaded, nil
}

func (resources *applicationResources) categoryTokens() []string {
	tokens := []string{}
	for _, token := range resources.configurationManager.GetStringSlice(configKeyCategoryTokens) {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

func (resources *applicationResources) importTool() string {
	return resources.configurationManager.GetString(configKeyImportTool)
}

func (resources *applicationResources) buildInstallationService(paths installerPaths) (*installation.Service, error) {
	store, err := resources.newStore(certificates.NewExecutableRunner(), truststore.Configuration{Tool: resources.importTool()})
	if err != nil {
		return nil, fmt.Errorf("create certificate store: %w", err)
	}
	configurationManager := resources.configurationManager
	creator := shortcuts.NewCreator(certificates.NewOperatingSystemFileSystem(), resources.resolveDesktop, shortcuts.Configuration{
		NamePrefix: configurationManager.GetString(configKeyShortcutsNamePrefix),
		BaseURL:    configurationManager.GetString(configKeyShortcutsBaseURL),
		Route:      configurationManager.GetString(configKeyShortcutsRoute),
	})
	return installation.NewService(store, creator, paths.CertificateDirectory, resources.loggingService)
}

func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
