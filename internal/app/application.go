package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tyemirov/teaminstall/internal/certificates"
	"github.com/tyemirov/teaminstall/internal/certificates/truststore"
	"github.com/tyemirov/teaminstall/internal/selection"
	"github.com/tyemirov/teaminstall/internal/shortcuts"
	"github.com/tyemirov/teaminstall/internal/tui"
	"github.com/tyemirov/teaminstall/pkg/logging"
)

type contextKey string

const (
	contextKeyApplicationResources contextKey = "application-resources"

	defaultApplicationName = "teaminstall"

	flagNameSettingsFile    = "settings"
	flagNameBaseDirectory   = "base-dir"
	flagNameConfigFile      = "config-file"
	flagNameCertificatesDir = "certs-dir"
	flagNameLoggingType     = "logging-type"
	flagNameShortcuts       = "shortcuts"
	flagNameYes             = "yes"
	flagNameDryRun          = "dry-run"
	flagNameCategory        = "category"
	flagNameShowHidden      = "show-hidden"
	flagNameFormat          = "format"
	flagNameCategories      = "categories"

	configKeyBaseDirectory        = "paths.base_directory"
	configKeyConfigurationFile    = "paths.configuration_file"
	configKeyCertificateDirectory = "paths.certificate_directory"
	configKeyShortcutsEnabled     = "shortcuts.enabled"
	configKeyShortcutsNamePrefix  = "shortcuts.name_prefix"
	configKeyShortcutsBaseURL     = "shortcuts.base_url"
	configKeyShortcutsRoute       = "shortcuts.route"
	configKeyImportTool           = "import.tool"
	configKeyCategoryTokens       = "categories.tokens"
	configKeyLoggingType          = "logging.type"

	logMessageFailedInitializeLogger = "failed to initialize logger"
	logMessageCommandExecutionFailed = "command execution failed"
)

type storeFactory func(commandRunner certificates.CommandRunner, configuration truststore.Configuration) (truststore.Store, error)

type shellRunner func(ctx context.Context, model *tui.Model, input io.Reader, output io.Writer) error

type applicationResources struct {
	configurationManager *viper.Viper
	loggingService       *logging.Service
	executableDirectory  string
	input                io.Reader
	output               io.Writer
	errorOutput          io.Writer
	newStore             storeFactory
	resolveDesktop       shortcuts.DesktopResolver
	runShell             shellRunner
	stderrIsTerminal     func() bool
}

func (resources *applicationResources) updateLogger(loggingType string) error {
	normalizedType, err := logging.NormalizeType(loggingType)
	if err != nil {
		return err
	}
	if resources.loggingService != nil && resources.loggingService.Type() == normalizedType {
		return nil
	}
	service, err := logging.NewServiceWithOutput(normalizedType, resources.errorOutput)
	if err != nil {
		return err
	}
	if resources.loggingService != nil {
		_ = resources.loggingService.Sync()
	}
	resources.loggingService = service
	return nil
}

// silenceLoggerOnTerminal discards log output while the shell draws on the
// same terminal that stderr points at. The returned function restores the logger.
func (resources *applicationResources) silenceLoggerOnTerminal() (func(), error) {
	if resources.stderrIsTerminal == nil || !resources.stderrIsTerminal() {
		return func() {}, nil
	}
	service, err := logging.NewServiceWithOutput(resources.loggingType(), io.Discard)
	if err != nil {
		return nil, err
	}
	previousService := resources.loggingService
	resources.loggingService = service
	return func() {
		resources.loggingService = previousService
	}, nil
}

func (resources *applicationResources) loggingType() string {
	if resources.loggingService == nil {
		return logging.TypeConsole
	}
	return resources.loggingService.Type()
}

func newConfigurationManager(executableDirectory string) *viper.Viper {
	configurationManager := viper.New()
	configurationManager.SetDefault(configKeyBaseDirectory, executableDirectory)
	configurationManager.SetDefault(configKeyConfigurationFile, "")
	configurationManager.SetDefault(configKeyCertificateDirectory, "")
	configurationManager.SetDefault(configKeyShortcutsEnabled, false)
	configurationManager.SetDefault(configKeyShortcutsNamePrefix, shortcuts.DefaultNamePrefix)
	configurationManager.SetDefault(configKeyShortcutsBaseURL, shortcuts.DefaultBaseURL)
	configurationManager.SetDefault(configKeyShortcutsRoute, shortcuts.DefaultRoute)
	configurationManager.SetDefault(configKeyImportTool, truststore.DefaultImportTool)
	configurationManager.SetDefault(configKeyCategoryTokens, selection.DefaultCategoryTokens)
	configurationManager.SetDefault(configKeyLoggingType, logging.TypeConsole)
	return configurationManager
}

func resolveExecutableDirectory() (string, error) {
	executablePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	resolvedPath, resolveErr := filepath.EvalSymlinks(executablePath)
	if resolveErr == nil {
		executablePath = resolvedPath
	}
	return filepath.Dir(executablePath), nil
}

// Execute runs the CLI using the provided context and arguments, returning an exit code.
func Execute(ctx context.Context, arguments []string) int {
	initialService, err := logging.NewService(logging.TypeConsole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", logMessageFailedInitializeLogger, err)
		return 1
	}
	executableDirectory, directoryErr := resolveExecutableDirectory()
	if directoryErr != nil {
		initialService.Error("resolve executable directory", directoryErr)
		return 1
	}
	resources := &applicationResources{
		configurationManager: newConfigurationManager(executableDirectory),
		loggingService:       initialService,
		executableDirectory:  executableDirectory,
		input:                os.Stdin,
		output:               os.Stdout,
		errorOutput:          os.Stderr,
		newStore:             truststore.NewStore,
		resolveDesktop:       shortcuts.DesktopDirectory,
		runShell:             tui.Run,
		stderrIsTerminal:     stderrIsTerminal,
	}
	return executeWithResources(ctx, arguments, resources)
}

func executeWithResources(ctx context.Context, arguments []string, resources *applicationResources) int {
	defer func() {
		if resources.loggingService != nil {
			_ = resources.loggingService.Sync()
		}
	}()

	rootCommand := newRootCommand(resources)
	baseContext := context.WithValue(ctx, contextKeyApplicationResources, resources)
	rootCommand.SetContext(baseContext)
	rootCommand.SetArgs(arguments)
	rootCommand.SetIn(resources.input)
	rootCommand.SetOut(resources.output)
	rootCommand.SetErr(resources.errorOutput)

	if executionErr := rootCommand.Execute(); executionErr != nil {
		resources.loggingService.Error(logMessageCommandExecutionFailed, executionErr)
		return 1
	}
	return 0
}
