package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/obsdesk/jwstatus/internal/server"
	"github.com/obsdesk/jwstatus/pkg/jwst"
)

// webCmd represents the web command
var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the jwstatus web interface",
	Long:  `Start a web server with an interactive, filterable visit status table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyProxy()

		addr, _ := cmd.Flags().GetString("bind")
		if addr == "" {
			addr = viper.GetString("web.bind")
		}
		user, _ := cmd.Flags().GetString("username")
		if user == "" {
			user = viper.GetString("web.username")
		}
		pass, _ := cmd.Flags().GetString("password")
		if pass == "" {
			pass = viper.GetString("web.password")
		}

		srv := server.New(jwst.NewClient(nil), user, pass)
		return srv.Start(addr)
	},
}

func init() {
	rootCmd.AddCommand(webCmd)

	webCmd.Flags().String("bind", "", "HTTP listen address (default from config, :8080)")
	webCmd.Flags().String("username", "", "Basic auth username (empty disables auth)")
	webCmd.Flags().String("password", "", "Basic auth password")
}
