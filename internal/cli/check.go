package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hosnas/letsencrypt-vesta/internal/config"
	"github.com/hosnas/letsencrypt-vesta/internal/executor"
	"github.com/hosnas/letsencrypt-vesta/internal/output"
	"github.com/spf13/cobra"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the panel, certificate client and scheduler are available",
	Long: `Run diagnostic checks on everything a certificate run depends on:

  - the Vesta bin directory and the panel commands used
  - the certificate client
  - the at job queue used for renewal scheduling
  - which of the configured web servers are running

Examples:
  letsencrypt-vesta check
  letsencrypt-vesta check --json`,
	RunE: runCheck,
}

// checkExec is the executor for diagnostics (replaceable for testing).
var checkExec executor.CommandExecutor = executor.NewSystemExecutor()

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(checkCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// panelCommands are the v-* tools a certificate run invokes.
var panelCommands = []string{
	"v-list-user",
	"v-list-web-domains",
	"v-list-web-domain",
	"v-get-user-value",
	"v-list-web-domain-ssl",
	"v-add-web-domain-ssl",
	"v-change-web-domain-sslcert",
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	results := []CheckResult{}
	results = append(results, checkPanel(cfg)...)
	results = append(results, checkClient(cfg))
	results = append(results, checkScheduler())
	results = append(results, checkServers(cfg)...)

	if checkJSON {
		return output.JSON(results)
	}

	rows := make([][]string, 0, len(results))
	failed := 0
	for _, r := range results {
		rows = append(rows, []string{r.Name, strings.ToUpper(r.Status), r.Message})
		if r.Status == "error" {
			failed++
		}
	}
	output.Table([]string{"CHECK", "STATUS", "DETAIL"}, rows)

	if failed > 0 {
		output.Error("%d check(s) failed", failed)
	} else {
		output.Success("All checks passed")
	}
	return nil
}

func checkPanel(cfg *config.Config) []CheckResult {
	if _, err := os.Stat(cfg.VestaBin); err != nil {
		return []CheckResult{{
			Name:    "panel",
			Status:  "error",
			Message: fmt.Sprintf("Vesta bin directory %s not found", cfg.VestaBin),
		}}
	}

	var missing []string
	for _, name := range panelCommands {
		if _, err := os.Stat(filepath.Join(cfg.VestaBin, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return []CheckResult{{
			Name:    "panel",
			Status:  "error",
			Message: "missing panel commands: " + strings.Join(missing, ", "),
		}}
	}
	return []CheckResult{{
		Name:    "panel",
		Status:  "ok",
		Message: cfg.VestaBin,
	}}
}

func checkClient(cfg *config.Config) CheckResult {
	path, err := checkExec.LookPath(cfg.Certbot)
	if err != nil {
		return CheckResult{
			Name:    "certbot",
			Status:  "error",
			Message: fmt.Sprintf("%s not found on PATH", cfg.Certbot),
		}
	}

	msg := path
	if out, err := checkExec.Execute(cfg.Certbot, "--version"); err == nil {
		msg = strings.TrimSpace(string(out))
	}
	return CheckResult{Name: "certbot", Status: "ok", Message: msg}
}

func checkScheduler() CheckResult {
	if _, err := checkExec.LookPath("at"); err != nil {
		return CheckResult{
			Name:    "scheduler",
			Status:  "warning",
			Message: "at not found; renewal scheduling (-a) will fail",
		}
	}
	return CheckResult{Name: "scheduler", Status: "ok", Message: "at available"}
}

func checkServers(cfg *config.Config) []CheckResult {
	results := make([]CheckResult, 0, len(cfg.Servers))
	running := 0
	for _, name := range cfg.Servers {
		if _, err := checkExec.Execute("pgrep", "-x", name); err == nil {
			results = append(results, CheckResult{Name: name, Status: "ok", Message: "running"})
			running++
		} else {
			results = append(results, CheckResult{Name: name, Status: "warning", Message: "not running"})
		}
	}
	if running == 0 {
		results = append(results, CheckResult{
			Name:    "servers",
			Status:  "error",
			Message: "no configured web server is running",
		})
	}
	return results
}
