package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/basilforge/lispfmt/internal/logging"
	"github.com/basilforge/lispfmt/pkg/rules"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// indentRuleInfo represents one head-symbol -> indent-rule tag mapping
// in JSON output.
type indentRuleInfo struct {
	Symbol string `json:"symbol"`
	Tag    string `json:"tag"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in indent-rule table",
		Long: `List every head symbol lispfmt recognizes and the semantic-role
indent tag it resolves to (spec.md's rules.DefaultTable). A config's
"indents" map can override any of these per project.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := rules.DefaultTable()

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), table)
			}

			logger := logging.Default()

			symbols := make([]string, 0, len(table))
			for symbol := range table {
				symbols = append(symbols, symbol)
			}
			sort.Strings(symbols)

			for _, symbol := range symbols {
				logger.Info(symbol, logging.FieldTag, string(table[symbol]))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputRulesJSON outputs the indent-rule table as a JSON array.
func outputRulesJSON(w io.Writer, table map[string]rules.Tag) error {
	infos := make([]indentRuleInfo, 0, len(table))
	for symbol, tag := range table {
		infos = append(infos, indentRuleInfo{Symbol: symbol, Tag: string(tag)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Symbol < infos[j].Symbol })

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
