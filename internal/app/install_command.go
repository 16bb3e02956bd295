package app

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/tyemirov/teaminstall/internal/catalog"
	"github.com/tyemirov/teaminstall/internal/certificates"
	"github.com/tyemirov/teaminstall/internal/certificates/truststore"
	"github.com/tyemirov/teaminstall/internal/installation"
)

var errUnknownSection = errors.New("unknown section")

func newInstallCommand(resources *applicationResources) *cobra.Command {
	installCommand := &cobra.Command{
		Use:   "install SECTION...",
		Short: "Install the certificates of the named sections without the interactive shell",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args)
		},
	}
	installCommand.Flags().Bool(flagNameYes, false, "Skip the confirmation prompt")
	installCommand.Flags().Bool(flagNameShortcuts, resources.configurationManager.GetBool(configKeyShortcutsEnabled), "Create a desktop shortcut for every installed certificate")
	installCommand.Flags().Bool(flagNameDryRun, false, "Print the import commands without running them")
	return installCommand
}

func runInstall(cmd *cobra.Command, sections []string) error {
	resources, err := getApplicationResources(cmd)
	if err != nil {
		return err
	}
	assumeYes, _ := cmd.Flags().GetBool(flagNameYes)
	createShortcuts := resources.configurationManager.GetBool(configKeyShortcutsEnabled)
	if cmd.Flags().Changed(flagNameShortcuts) {
		createShortcuts, _ = cmd.Flags().GetBool(flagNameShortcuts)
	}
	dryRun, _ := cmd.Flags().GetBool(flagNameDryRun)

	paths, err := resources.resolvePaths()
	if err != nil {
		return err
	}
	loaded, err := resources.loadCatalog(paths)
	if err != nil {
		return err
	}
	records, err := lookupSections(loaded, sections)
	if err != nil {
		return err
	}
	output := cmd.OutOrStdout()

	if dryRun {
		for _, record := range records {
			if missing := record.MissingFields(); len(missing) > 0 {
				fmt.Fprintf(output, "%s: missing %s\n", record.Section, strings.Join(missing, ", "))
				continue
			}
			certificatePath := certificates.CertificatePath(paths.CertificateDirectory, strings.TrimSpace(record.Identifier))
			fmt.Fprintf(output, "%s: %s\n", record.Section, truststore.DescribeImport(resources.importTool(), certificatePath))
		}
		return nil
	}

	if !assumeYes {
		if !confirm(cmd, installation.ConfirmationText(records)) {
			fmt.Fprintln(output, "Installation cancelled.")
			return nil
		}
	}

	service, err := resources.buildInstallationService(paths)
	if err != nil {
		return err
	}
	var combinedErr error
	service.InstallAll(cmd.Context(), records, installation.Options{CreateShortcut: createShortcuts}, func(outcome installation.Outcome) {
		fmt.Fprintln(output, outcome.Message())
		fmt.Fprintln(output)
		if !outcome.Succeeded() {
			combinedErr = multierr.Append(combinedErr, fmt.Errorf("%s: %w", outcome.Record.Section, outcome.Err))
		}
	})
	return combinedErr
}

func lookupSections(loaded catalog.Catalog, sections []string) ([]catalog.Record, error) {
	records := make([]catalog.Record, 0, len(sections))
	var combinedErr error
	for _, section := range sections {
		record, found := loaded.Lookup(section)
		if !found {
			combinedErr = multierr.Append(combinedErr, fmt.Errorf("%w: %s", errUnknownSection, section))
			continue
		}
		records = append(records, record)
	}
	if combinedErr != nil {
		return nil, fmt.Errorf("%w (available: %s)", combinedErr, strings.Join(loaded.Sections(), ", "))
	}
	return records, nil
}

// confirm asks on stdin; anything but y or yes declines.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n[y/N]: ", prompt)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
