package cmd

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/obsdesk/jwstatus/internal/utils"
	"github.com/obsdesk/jwstatus/pkg/whttp"
)

var cfgFile string

const (
	LOGO = `    _              _        _
   (_)_      _____| |_ __ _| |_ _   _ ___
   | \ \ /\ / / __| __/ _` + "`" + ` | __| | | / __|
   | |\ V  V /\__ \ || (_| | |_| |_| \__ \
  _/ | \_/\_/ |___/\__\__,_|\__|\__,_|___/
 |__/

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jwstatus",
	Short: "JWST program and visit status, from your terminal or browser.",
	Long: LOGO + `jwstatus fetches JWST observing program metadata and visit status
reports from STScI and shows them as filterable tables.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jwstatus.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".jwstatus")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.jwstatus.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("web.bind", ":8080")
	viper.SetDefault("web.username", "")
	viper.SetDefault("web.password", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// applyProxy installs a proxying transport on the shared HTTP client when the
// --proxy flag is set.
func applyProxy() {
	proxy, _ := rootCmd.PersistentFlags().GetString("proxy")
	if proxy == "" {
		return
	}

	proxyURL, err := url.Parse(proxy)
	if err != nil {
		utils.Log.Fatal("Invalid Proxy String")
	}

	whttp.GetDefaultClient().HTTPClient.Transport = &http.Transport{
		Proxy:           http.ProxyURL(proxyURL),
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}
