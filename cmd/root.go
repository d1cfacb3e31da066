package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dan13ram/omnichain-portal/app"
	"github.com/dan13ram/omnichain-portal/registry"
)

var (
	configFile   string
	envFile      string
	registryFile string
	jsonOutput   bool
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "A mock cross-chain bridge portal",
	Long: `portal drives a simulated cross-chain bridge: browse chains and tokens,
connect a mnemonic-backed wallet, quote a bridge and submit it.

Examples:
  portal chains
  portal tokens --chain solana --search usd
  portal bridge --provider metamask --to solana --token USDC --amount 10 --config config.yml
  portal serve --config config.yml --env .env`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to the yaml config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to an env file with overrides")
	rootCmd.PersistentFlags().StringVar(&registryFile, "registry", "", "Path to a yaml chain and token fixture")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// initApp loads config and logger for the commands that drive a session.
func initApp() {
	app.InitConfig(absPath(configFile), absPath(envFile))
	app.InitLogger()
}

// loadRegistry prefers --registry, then the configured fixture, then the
// built-in fixture.
func loadRegistry() (*registry.Registry, error) {
	path := registryFile
	if path == "" {
		path = app.Config.Registry.FixturePath
	}
	if path == "" {
		return registry.Default(), nil
	}
	log.Debug("[CLI] Loading registry from ", path)
	return registry.Load(absPath(path))
}

func printError(err error) {
	color.Red("\nError: %v\n", err)
}

func exitOnError(err error) {
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	exitOnError(encoder.Encode(v))
}

func statusColor(status string) string {
	switch status {
	case "active", "completed":
		return color.GreenString(status)
	case "congested", "pending":
		return color.YellowString(status)
	default:
		return color.RedString(status)
	}
}

func divider(width int) {
	fmt.Println(color.HiBlackString("%s", strings.Repeat("=", width)))
}
