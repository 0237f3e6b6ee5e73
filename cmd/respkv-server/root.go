package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"respkv/internal/config"
	"respkv/internal/server"
)

var version = "1.0.0" // set during build with -ldflags

var rootCmd = &cobra.Command{
	Use:   "respkv-server",
	Short: "respkv - in-memory key-value server",
	Long: `respkv is a single-node, non-persistent, in-memory key-value
server speaking a RESP-compatible wire protocol over TCP.

Features:
- Strings, lists, sets, and hashes with per-key TTL
- Pipelined command processing
- KEYS glob matching`,
	Version: version,
	RunE:    runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("respkv server v%s\n", version)
	fmt.Printf("listening on %s:%d\n", cfg.Host, cfg.Port)
	fmt.Printf("log level: %s\n", cfg.LogLevel)
	fmt.Printf("admin http surface on %s\n", cfg.MetricsAddr)
	fmt.Println(strings.Repeat("=", 40))

	srv := server.New(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	<-sigChan
	fmt.Println("\nshutting down respkv server...")
	srv.Stop()
	fmt.Println("respkv server stopped")

	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		fmt.Println("respkv configuration:")
		fmt.Println(strings.Repeat("=", 30))
		fmt.Printf("Host: %s\n", cfg.Host)
		fmt.Printf("Port: %d\n", cfg.Port)
		fmt.Printf("Max Clients: %d\n", cfg.MaxClients)
		fmt.Printf("Log Level: %s\n", cfg.LogLevel)
		fmt.Printf("Log Format: %s\n", cfg.LogFormat)
		fmt.Printf("Sweep Interval: %v\n", cfg.SweepInterval)
		fmt.Printf("TCP Keep-Alive: %t\n", cfg.TCPKeepAlive)
		fmt.Printf("Read Timeout: %v\n", cfg.ReadTimeout)
		fmt.Printf("Write Timeout: %v\n", cfg.WriteTimeout)
		fmt.Printf("Admin HTTP Addr: %s\n", cfg.MetricsAddr)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("respkv-server v%s\n", version)
		fmt.Printf("built with Go %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("host", "H", "127.0.0.1", "Host to bind to")
	rootCmd.PersistentFlags().IntP("port", "p", 6379, "Port to listen on")
	rootCmd.PersistentFlags().Int("max-clients", 10000, "Maximum number of clients")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().Duration("sweep-interval", time.Second, "TTL sweep cadence")
	rootCmd.PersistentFlags().Bool("tcp-keepalive", true, "Enable TCP keep-alive")
	rootCmd.PersistentFlags().Duration("read-timeout", 30*time.Second, "Read timeout")
	rootCmd.PersistentFlags().Duration("write-timeout", 30*time.Second, "Write timeout")
	rootCmd.PersistentFlags().String("metrics-addr", "127.0.0.1:6380", "Admin HTTP surface bind address")

	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("max_clients", rootCmd.PersistentFlags().Lookup("max-clients"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("sweep_interval", rootCmd.PersistentFlags().Lookup("sweep-interval"))
	viper.BindPFlag("tcp_keepalive", rootCmd.PersistentFlags().Lookup("tcp-keepalive"))
	viper.BindPFlag("read_timeout", rootCmd.PersistentFlags().Lookup("read-timeout"))
	viper.BindPFlag("write_timeout", rootCmd.PersistentFlags().Lookup("write-timeout"))
	viper.BindPFlag("metrics_addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute is the CLI's main entry point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
