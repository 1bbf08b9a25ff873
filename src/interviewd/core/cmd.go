// Package core provides the core command and server functionality for interviewd.
package core

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mockstage/interviewd/src/common/cli"
	"github.com/mockstage/interviewd/src/common/logs"
	"github.com/mockstage/interviewd/src/common/version"
)

var (
	// VersionInfo holds version information - set at build time via ldflags
	VersionInfo = version.New()

	// Global logger instance
	log *logs.Logger

	// Configuration file path
	cfgFile string
)

// Linker variables - these are set via ldflags at build time
// They must be initialized as empty strings or literals for ldflags to work
var (
	Version        = "dev"
	ReleaseName    = "Greenroom"
	ReleaseVersion = "0.0.0"
	BuildDate      = "unknown"
	GitCommit      = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "interviewd",
	Short: "Interview management API server",
	Long: `interviewd is the backend API server for interview preparation.

It manages users, interviews and interview questions behind a set of
token-authenticated REST endpoints, keeping its data in an in-memory
database persisted to disk across restarts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute runs the root command
func Execute() {
	// Populate VersionInfo from linker variables
	VersionInfo.Version = Version
	VersionInfo.ReleaseName = ReleaseName
	VersionInfo.ReleaseVersion = ReleaseVersion
	VersionInfo.BuildDate = BuildDate
	VersionInfo.GitCommit = GitCommit

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Configuration file flag
	cli.RegisterConfigFlag(rootCmd, &cfgFile, "/etc/interviewd/interviewd.yaml")

	// Server flags
	rootCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	rootCmd.Flags().StringP("bind", "b", "0.0.0.0", "Address to bind to")

	// Logging flags (using common helper)
	cli.RegisterLogFlags(rootCmd)

	// Database flags
	rootCmd.Flags().String("db-path", "~/.interviewd/interviewd.db", "Path to persist database on shutdown")

	// Auth flags
	rootCmd.Flags().Int("token-duration", 24, "JWT token lifetime in hours")

	// Backup flags
	rootCmd.Flags().String("backup-type", "local", "Snapshot backend type: 'local' or 's3'")
	rootCmd.Flags().String("backup-path", "~/.interviewd/snapshots", "Local snapshot path (for local backend)")
	rootCmd.Flags().Int("backup-interval", 0, "Snapshot interval in minutes (0 disables periodic snapshots)")

	// S3 backup flags
	rootCmd.Flags().String("s3-endpoint", "", "S3-compatible storage endpoint URL")
	rootCmd.Flags().String("s3-region", "us-east-1", "S3 region")
	rootCmd.Flags().String("s3-bucket", "interviewd-snapshots", "S3 bucket for database snapshots")
	rootCmd.Flags().String("s3-access-key", "", "S3 access key ID")
	rootCmd.Flags().String("s3-secret-key", "", "S3 secret access key")
	rootCmd.Flags().Bool("s3-path-style", true, "Use path-style addressing for S3")

	// Bind flags to viper
	_ = viper.BindPFlag("server.port", rootCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.bind", rootCmd.Flags().Lookup("bind"))
	_ = viper.BindPFlag("database.path", rootCmd.Flags().Lookup("db-path"))
	_ = viper.BindPFlag("auth.token_duration", rootCmd.Flags().Lookup("token-duration"))
	_ = viper.BindPFlag("backup.type", rootCmd.Flags().Lookup("backup-type"))
	_ = viper.BindPFlag("backup.local.path", rootCmd.Flags().Lookup("backup-path"))
	_ = viper.BindPFlag("backup.interval", rootCmd.Flags().Lookup("backup-interval"))
	_ = viper.BindPFlag("backup.s3.endpoint", rootCmd.Flags().Lookup("s3-endpoint"))
	_ = viper.BindPFlag("backup.s3.region", rootCmd.Flags().Lookup("s3-region"))
	_ = viper.BindPFlag("backup.s3.bucket", rootCmd.Flags().Lookup("s3-bucket"))
	_ = viper.BindPFlag("backup.s3.access_key", rootCmd.Flags().Lookup("s3-access-key"))
	_ = viper.BindPFlag("backup.s3.secret_key", rootCmd.Flags().Lookup("s3-secret-key"))
	_ = viper.BindPFlag("backup.s3.path_style", rootCmd.Flags().Lookup("s3-path-style"))

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.bind", "0.0.0.0")
	viper.SetDefault("database.path", "~/.interviewd/interviewd.db")
	viper.SetDefault("auth.token_duration", 24)
	viper.SetDefault("backup.type", "local")
	viper.SetDefault("backup.local.path", "~/.interviewd/snapshots")
	viper.SetDefault("backup.interval", 0)
	viper.SetDefault("backup.s3.region", "us-east-1")
	viper.SetDefault("backup.s3.bucket", "interviewd-snapshots")
	viper.SetDefault("backup.s3.path_style", true)
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	opts := cli.DefaultConfigOptions("interviewd", "INTERVIEWD")
	opts.ConfigFile = cfgFile

	if err := cli.InitConfig(opts); err != nil {
		return err
	}

	// Initialize logger using common helper
	log = cli.InitLogger("interviewd")

	return nil
}
