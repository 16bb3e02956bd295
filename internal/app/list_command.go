package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tyemirov/teaminstall/internal/catalog"
	"github.com/tyemirov/teaminstall/internal/selection"
)

const (
	outputFormatTable = "table"
	outputFormatYAML  = "yaml"
	outputFormatJSON  = "json"
)

type listedRecord struct {
	Section    string `yaml:"section" json:"section"`
	Label      string `yaml:"label" json:"label"`
	Identifier string `yaml:"cert_num" json:"cert_num"`
	Hidden     bool   `yaml:"hidden" json:"hidden"`
	Ready      bool   `yaml:"ready" json:"ready"`
}

func newListCommand(resources *applicationResources) *cobra.Command {
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List the certificates described by the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}
	listCommand.Flags().String(flagNameCategory, selection.AllCategory, "Only list sections containing this category token")
	listCommand.Flags().Bool(flagNameShowHidden, false, "Include sections marked hidden")
	listCommand.Flags().String(flagNameFormat, outputFormatTable, "Output format (table, yaml or json)")
	listCommand.Flags().Bool(flagNameCategories, false, "Print the available categories instead of the certificates")
	return listCommand
}

func runList(cmd *cobra.Command) error {
	resources, err := getApplicationResources(cmd)
	if err != nil {
		return err
	}
	category, _ := cmd.Flags().GetString(flagNameCategory)
	showHidden, _ := cmd.Flags().GetBool(flagNameShowHidden)
	format, _ := cmd.Flags().GetString(flagNameFormat)
	printCategories, _ := cmd.Flags().GetBool(flagNameCategories)
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case outputFormatTable, outputFormatYAML, outputFormatJSON:
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	paths, err := resources.resolvePaths()
	if err != nil {
		return err
	}
	loaded, err := resources.loadCatalog(paths)
	if err != nil {
		return err
	}
	output := cmd.OutOrStdout()

	if printCategories {
		categories := selection.Categories(loaded.Records, resources.categoryTokens())
		if format == outputFormatTable {
			_, writeErr := fmt.Fprintln(output, strings.Join(categories, "\n"))
			return writeErr
		}
		return writeStructured(output, format, categories)
	}

	view := selection.Build(loaded.Records, selection.Criteria{Category: category, ShowHidden: showHidden})
	listed := make([]listedRecord, 0, view.Len())
	for row := range view.Rows {
		record, recordErr := view.Record(row)
		if recordErr != nil {
			return recordErr
		}
		listed = append(listed, newListedRecord(record))
	}
	if format == outputFormatTable {
		return writeTable(output, listed)
	}
	return writeStructured(output, format, listed)
}

func newListedRecord(record catalog.Record) listedRecord {
	return listedRecord{
		Section:    record.Section,
		Label:      record.DisplayLabel(),
		Identifier: record.Identifier,
		Hidden:     record.Hidden,
		Ready:      record.Installable(),
	}
}

func writeTable(output io.Writer, listed []listedRecord) error {
	writer := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "SECTION\tLABEL\tCERT_NUM\tHIDDEN\tREADY")
	for _, record := range listed {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%t\t%t\n", record.Section, record.Label, record.Identifier, record.Hidden, record.Ready)
	}
	return writer.Flush()
}

func writeStructured(output io.Writer, format string, value any) error {
	if format == outputFormatJSON {
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	}
	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}
