package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/maximthomas/taskboard/pkg/config"
	"github.com/maximthomas/taskboard/pkg/dashboard"
	"github.com/maximthomas/taskboard/pkg/server"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X github.com/maximthomas/taskboard/cmd.version=..."
var version = "0.1.0"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "taskboard",
		Short: "Taskboard is a dashboard of small automation tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.RunServer()
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Shown version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	tasksCmd = &cobra.Command{
		Use:   "tasks",
		Short: "Lists configured tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := dashboard.NewRouter(config.GetConfig())
			if err != nil {
				return err
			}
			for _, t := range r.Menu() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", t.ID, t.Title)
			}
			return nil
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/taskboard-config.yaml)")
	rootCmd.AddCommand(versionCmd, tasksCmd)
}

func er(msg interface{}) {
	fmt.Println("Error:", msg)
	os.Exit(1)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			er(err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName("taskboard-config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		er(err)
	}
	// without a config file the built-in tasks are served on the default port
	if err := config.InitConfig(); err != nil {
		er(err)
	}
}
