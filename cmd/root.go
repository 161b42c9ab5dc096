/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/jdice/internal/dice"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jdice",
	Short: "A dice roller for tabletop games",
	Long: `jdice rolls dice written in the usual tabletop notation.

	jdice roll "4d6+3 ; 8d12-15 ; 2x3d8 & d6+2"

Each ';' separated entry is rolled on its own, 'Nx' repeats an entry N times
and '&' adds groups together. Use 'jdice repl' for an interactive session
with presets, checks and a running total.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jdice.yaml)")
	rootCmd.PersistentFlags().StringSlice("presets", nil, "preset files (name=dice lines, or YAML)")
	rootCmd.PersistentFlags().Int64("seed", 0, "seed for the random source (0 picks a random seed)")

	_ = viper.BindPFlag("presets", rootCmd.PersistentFlags().Lookup("presets"))
	_ = viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jdice")
	}

	viper.SetEnvPrefix("JDICE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newSource builds the random source from the configured seed.
func newSource() (dice.Source, error) {
	seed := viper.GetInt64("seed")
	if seed == 0 {
		var err error
		if seed, err = dice.NewSeed(); err != nil {
			return nil, err
		}
	}
	return dice.NewSource(seed), nil
}
