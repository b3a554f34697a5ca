package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/scenario"
)

var (
	matrixFormat  string
	checkScenario string
	checkDomain   string
	checkFormat   string
)

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(matrixCmd, checkCmd)

	matrixCmd.Flags().StringVarP(&matrixFormat, "output", "o", "text", "Output format (text|json|yaml)")

	checkCmd.Flags().StringVar(&checkScenario, "scenario", "", "Glob pattern for scenario YAML files (required)")
	checkCmd.Flags().StringVar(&checkDomain, "domain", "", "Organization email domain (defaults to ORG_EMAIL_DOMAIN)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
	_ = checkCmd.MarkFlagRequired("scenario")
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect and test the authorization policy",
}

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the capability matrix and transition graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeMatrix(cmd.OutOrStdout(), authz.Matrix(), matrixFormat)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run policy assertions from scenario files",
	Long: "Loads scenario YAML files matching a glob pattern, evaluates each case\n" +
		"through the authorization engine, and reports pass/fail.\n\n" +
		"Exit code 0 if all cases pass, 1 if any fail.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	domain := checkDomain
	if domain == "" {
		domain = os.Getenv("ORG_EMAIL_DOMAIN")
	}
	if domain == "" {
		domain = "@starnav.com.br"
	}

	results, err := scenario.RunGlob(checkScenario, domain)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch checkFormat {
	case "json":
		s, err := scenario.FormatJSON(results)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	default:
		fmt.Fprint(out, scenario.FormatText(results))
	}

	if scenario.AnyFailed(results) {
		os.Exit(1)
	}
	return nil
}

func writeMatrix(w io.Writer, m authz.PolicyMatrix, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(m)
	case "text":
		return writeMatrixText(w, m)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeMatrixText(w io.Writer, m authz.PolicyMatrix) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "View roles:\t%s\n", joinCodes(m.ViewRoles))
	fmt.Fprintf(tw, "View sectors:\t%s\n", joinCodes(m.ViewSectors))
	fmt.Fprintf(tw, "Create sectors:\t%s\n", joinCodes(m.CreateBy))

	fmt.Fprintln(tw, "\nSECTOR\tEDIT ROLES\tEDIT STATUSES")
	for _, s := range m.Sectors {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Sector, joinCodes(s.EditRoles), joinCodes(s.EditStatuses))
	}

	fmt.Fprintln(tw, "\nSECTOR\tFROM\tTO")
	for _, s := range m.Sectors {
		for _, from := range authz.AllStatuses() {
			if to, ok := s.Transitions[from]; ok {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Sector, from, joinCodes(to))
			}
		}
	}

	fmt.Fprintln(tw, "\nFIELD\tROLES\tSECTORS")
	for _, f := range m.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Field, joinCodes(f.Roles), joinCodes(f.Sectors))
	}

	fmt.Fprintln(tw, "\nWORKFLOW GRAPH")
	for _, from := range authz.AllStatuses() {
		if to, ok := m.Graph[from]; ok {
			fmt.Fprintf(tw, "%s\t->\t%s\n", from, joinCodes(to))
		}
	}
	return tw.Flush()
}

func joinCodes[T fmt.Stringer](items []T) string {
	if len(items) == 0 {
		return "-"
	}
	codes := make([]string, len(items))
	for i, it := range items {
		codes[i] = it.String()
	}
	return strings.Join(codes, ", ")
}
