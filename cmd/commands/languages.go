package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-convert/internal/cli"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

type languageInfo struct {
	Name      string `json:"name" yaml:"name"`
	Extension string `json:"extension" yaml:"extension"`
	Default   bool   `json:"default" yaml:"default"`
}

// NewLanguagesCommand creates the languages command
func NewLanguagesCommand(globals *GlobalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List the supported target languages",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := globals.CommandContext()
			settings := cc.LoadSettingsWithDefault()

			langs := make([]languageInfo, 0, len(models.Languages()))
			for _, l := range models.Languages() {
				langs = append(langs, languageInfo{
					Name:      l.String(),
					Extension: l.Extension(),
					Default:   l == settings.Conversion.DefaultLanguage,
				})
			}

			if format != string(cli.FormatText) {
				return cli.OutputResults(cmd.OutOrStdout(), format, langs)
			}

			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Header("LANGUAGE", "EXTENSION", "DEFAULT")
			for _, l := range langs {
				def := ""
				if l.Default {
					def = "*"
				}
				table.Row(l.Name, "."+l.Extension, def)
			}
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format (text|json|yaml)")
	return cmd
}
