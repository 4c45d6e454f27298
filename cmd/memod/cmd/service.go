/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssargent/memod/pkg/config"
)

const serviceName = "memod.service"

// runCommand runs a system command with output attached to the terminal.
// Tests replace it to avoid calling systemctl.
var runCommand = func(command string, args ...string) error {
	c := exec.Command(command, args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// requireRoot is replaced in tests
var requireRoot = func() error {
	if os.Geteuid() != 0 {
		return errors.New("this command requires root privileges (run with sudo)")
	}
	return nil
}

// serviceCmd represents the service command
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage memod as a systemd service",
	Long: `Manage memod as a systemd service. The unit runs "memod up" with a
config file, restarts on failure, and runs as an unprivileged user.

Records are held in memory, so a service restart starts from an empty store.`,
}

// installServiceCmd represents the service install command
var installServiceCmd = &cobra.Command{
	Use:   "install",
	Short: "Install memod as a systemd service",
	Long: `Install memod as a systemd service.

This will:
- Create or use existing configuration
- Generate the systemd unit file
- Enable and optionally start the service

Examples:
  sudo memod service install
  sudo memod service install --user memod --port 9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoot(); err != nil {
			return err
		}

		path := configPath(cmd)
		user, _ := cmd.Flags().GetString("user")
		unitDir, _ := cmd.Flags().GetString("unit-dir")
		binary, _ := cmd.Flags().GetString("binary")
		startNow, _ := cmd.Flags().GetBool("start")

		cmd.Printf("Installing memod systemd service...\n")

		var cfg *config.Config
		var err error
		if config.ConfigExists(path) {
			cfg, err = config.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cmd.Printf("Loaded existing configuration\n")
		} else {
			cfg, err = config.BootstrapConfig(path)
			if err != nil {
				return fmt.Errorf("failed to bootstrap config: %w", err)
			}
			cmd.Printf("Created new configuration at %s\n", path)
		}

		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
			if err := config.SaveConfig(cfg, path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
		}

		unitPath, err := writeSystemdUnit(unitDir, path, user, binary)
		if err != nil {
			return fmt.Errorf("failed to create systemd unit: %w", err)
		}
		cmd.Printf("Created systemd unit %s\n", unitPath)

		if err := runCommand("systemctl", "daemon-reload"); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}
		if err := runCommand("systemctl", "enable", serviceName); err != nil {
			return fmt.Errorf("failed to enable service: %w", err)
		}
		cmd.Printf("Service enabled\n")

		if startNow {
			if err := runCommand("systemctl", "start", serviceName); err != nil {
				return fmt.Errorf("failed to start service: %w", err)
			}
			cmd.Printf("Service started\n")
		}

		cmd.Printf("\nService: %s\n", serviceName)
		cmd.Printf("Config: %s\n", path)
		cmd.Printf("Listening on: %s\n", cfg.Address())
		if !startNow {
			cmd.Printf("\nTo start the service: sudo systemctl start %s\n", serviceName)
		}
		cmd.Printf("To view logs: sudo journalctl -u %s -f\n", serviceName)
		return nil
	},
}

// uninstallServiceCmd represents the service uninstall command
var uninstallServiceCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the memod service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoot(); err != nil {
			return err
		}
		unitDir, _ := cmd.Flags().GetString("unit-dir")

		cmd.Printf("Uninstalling memod service...\n")

		// Already stopped is fine
		_ = runCommand("systemctl", "stop", serviceName)

		if err := runCommand("systemctl", "disable", serviceName); err != nil {
			cmd.Printf("Warning: could not disable service: %v\n", err)
		}

		unitPath := filepath.Join(unitDir, serviceName)
		if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove unit file: %w", err)
		}

		if err := runCommand("systemctl", "daemon-reload"); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}

		cmd.Printf("memod service uninstalled\n")
		cmd.Printf("Note: the configuration file was not removed\n")
		return nil
	},
}

// logsServiceCmd represents the service logs command
var logsServiceCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show memod service logs",
	Long: `Show memod service logs using journalctl.

Examples:
  memod service logs
  memod service logs -f  # Follow logs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		lines, _ := cmd.Flags().GetInt("lines")

		journalArgs := []string{"-u", serviceName}
		if follow {
			journalArgs = append(journalArgs, "-f")
		}
		if lines > 0 {
			journalArgs = append(journalArgs, fmt.Sprintf("-n%d", lines))
		}
		return runCommand("journalctl", journalArgs...)
	},
}

// systemctlCmd builds a service subcommand that runs "systemctl <action> memod.service"
func systemctlCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runCommand("systemctl", action, serviceName); err != nil {
				return fmt.Errorf("systemctl %s failed: %w", action, err)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(serviceCmd)

	serviceCmd.AddCommand(installServiceCmd)
	serviceCmd.AddCommand(uninstallServiceCmd)
	serviceCmd.AddCommand(logsServiceCmd)
	serviceCmd.AddCommand(systemctlCmd("start", "Start the memod service"))
	serviceCmd.AddCommand(systemctlCmd("stop", "Stop the memod service"))
	serviceCmd.AddCommand(systemctlCmd("restart", "Restart the memod service"))
	serviceCmd.AddCommand(systemctlCmd("status", "Show memod service status"))

	serviceCmd.PersistentFlags().String("unit-dir", "/etc/systemd/system", "Directory for the systemd unit file")

	installServiceCmd.Flags().String("user", "memod", "User to run the service as")
	installServiceCmd.Flags().Int("port", 8080, "Port for the service")
	installServiceCmd.Flags().String("binary", "/usr/local/bin/memod", "Path to the memod binary")
	installServiceCmd.Flags().Bool("start", true, "Start the service after installation")

	logsServiceCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsServiceCmd.Flags().IntP("lines", "n", 0, "Number of lines to show")
}

// systemdUnit renders the unit file for the service
func systemdUnit(configPath, user, binary string) string {
	return fmt.Sprintf(`[Unit]
Description=memod in-memory memo store
After=network-online.target
Wants=network-online.target

[Service]
User=%s
Group=%s
ExecStart=%s up --config %s
Restart=on-failure
NoNewPrivileges=true
UMask=0077
ReadWritePaths=%s

[Install]
WantedBy=multi-user.target
`, user, user, binary, configPath, filepath.Dir(configPath))
}

// writeSystemdUnit writes the unit file into unitDir and returns its path
func writeSystemdUnit(unitDir, configPath, user, binary string) (string, error) {
	unitPath := filepath.Join(unitDir, serviceName)
	if err := os.WriteFile(unitPath, []byte(systemdUnit(configPath, user, binary)), 0600); err != nil {
		return "", err
	}
	return unitPath, nil
}
