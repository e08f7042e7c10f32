package commands

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/transcriba/transcriba/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcript upload and validation service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().StringSlice("origin", nil, "allowed CORS origin (repeatable)")
	serveCmd.Flags().Duration("token-ttl", 5*time.Minute, "lifetime of download links")

	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("origins", serveCmd.Flags().Lookup("origin"))
	_ = viper.BindPFlag("token_ttl", serveCmd.Flags().Lookup("token-ttl"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := server.New(server.Config{
		Addr:           viper.GetString("addr"),
		AllowedOrigins: viper.GetStringSlice("origins"),
		TokenTTL:       viper.GetDuration("token_ttl"),
		Rules:          rulesFromConfig(),
	})
	return srv.ListenAndServe()
}
