// Package commands implements the CLI commands for transcriba.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/transcriba/transcriba/internal/logger"
	"github.com/transcriba/transcriba/validate"
)

var rootCmd = &cobra.Command{
	Use:   "transcriba",
	Short: "Validate and clean interview-transcript DOCX files",
	Long: `Transcriba checks interview transcripts against the house style
convention (speaker labels, bold headers, Arial 12pt), strips disallowed
characters and writes a cleaned copy plus an error report.

Examples:
  # Validate a transcript and write the cleaned copy next to it
  transcriba check entrevista.docx

  # Validate several transcripts into an output directory
  transcriba check -o resultados/ entrevista1.docx entrevista2.docx

  # Run the upload service
  transcriba serve --addr :8080 --origin https://transcripciones.example.com`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.transcriba.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only show errors")
	rootCmd.PersistentFlags().String("font", "", "required font name (default Arial)")
	rootCmd.PersistentFlags().Float64("size", 0, "required font size in points (default 12)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("font", rootCmd.PersistentFlags().Lookup("font"))
	_ = viper.BindPFlag("size", rootCmd.PersistentFlags().Lookup("size"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".transcriba")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TRANSCRIBA")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})
}

// rulesFromConfig builds the style rules, applying any overrides from
// flags, environment or config file.
func rulesFromConfig() validate.Rules {
	rules := validate.DefaultRules()
	if font := viper.GetString("font"); font != "" {
		rules.RequiredFont = font
	}
	if size := viper.GetFloat64("size"); size > 0 {
		rules.RequiredSizePt = size
	}
	return rules
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", "error", err)
	}
	return err
}
