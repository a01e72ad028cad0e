// Package main provides the dna-analysis command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dna-analysis",
	Short: "Genomic context analysis of alternative DNA structures",
	Long: `dna-analysis classifies predicted Z-DNA and G-quadruplex motifs by
genomic context (promoter, gene body, intergenic) against a gene
annotation and aggregates summary statistics, per-chromosome
distributions and gene lists.`,
	SilenceUsage: true,
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dna-analysis version %s (%s) built %s\n", version, commit, date)
		},
	}
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.AddConfigPath(home)
	viper.SetConfigName(".dna-analysis")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("DNA_ANALYSIS")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
