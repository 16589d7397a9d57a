package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raggrep/raggrep/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate project configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the project's .raggrep/config.yml",
	Long: `Validate loads configuration the same way every other command does
(defaults → file → env) and prints every finding from ERROR down to INFO.`,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	rootDir, err := rootDirOrWD()
	if err != nil {
		return err
	}

	// LoadRaw, not Load: Load fails closed on ERROR-severity issues, which
	// would stop us from ever printing them.
	cfg, err := config.NewLoader(rootDir).LoadRaw()
	if err != nil {
		fmt.Println(err)
		return err
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Printf("[%s] %s\n", iss.Severity, iss.Message)
	}

	if config.HasErrors(issues) {
		return fmt.Errorf("configuration has errors")
	}
	fmt.Println("configuration OK")
	return nil
}
