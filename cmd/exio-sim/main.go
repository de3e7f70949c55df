// cmd/exio-sim/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"exio-go/board"
	"exio-go/config"
	"exio-go/display"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "exio-sim",
		Short:        "Host simulator for the I/O expander target firmware",
		SilenceUsage: true,
	}
	root.AddCommand(replCmd(), mapCmd(), boardsCmd())
	return root
}

// resolve picks the config and board for a run. A board file wins over the
// configured board name.
func resolve(device, cfgPath, boardFile string) (config.Config, *board.Board, error) {
	var (
		cfg config.Config
		err error
	)
	if cfgPath != "" {
		cfg, err = config.Load(device, cfgPath)
	} else {
		cfg, err = config.ForDevice(device)
	}
	if err != nil {
		return cfg, nil, err
	}
	if boardFile != "" {
		b, err := board.LoadYAML(boardFile)
		return cfg, b, err
	}
	b, err := board.ByName(cfg.Board)
	return cfg, b, err
}

func replCmd() *cobra.Command {
	var device, cfgPath, boardFile string
	var diagFlag bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Drive a simulated expander from typed commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, b, err := resolve(device, cfgPath, boardFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("diag") {
				cfg.Diag = diagFlag
			}
			s := newSim(b, cfg.Address, cmd.OutOrStdout(), cfg.Diag, config.Version)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			go s.eng.Run(ctx, cfg.SamplePeriod())

			fmt.Fprintf(cmd.OutOrStdout(), "board %s, %d pins, address 0x%02X (help for commands)\n",
				b.Name, b.NumPins(), cfg.Address)
			return s.Run(cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVar(&device, "device", "sim", "embedded config to start from")
	cmd.Flags().StringVar(&cfgPath, "config", "", "YAML config overriding the embedded defaults")
	cmd.Flags().StringVar(&boardFile, "board-file", "", "YAML board table")
	cmd.Flags().BoolVar(&diagFlag, "diag", false, "enable diagnostics")
	return cmd
}

func mapCmd() *cobra.Command {
	var name, boardFile string
	var vpin uint16
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Print the vpin to physical pin map of a board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				b   *board.Board
				err error
			)
			if boardFile != "" {
				b, err = board.LoadYAML(boardFile)
			} else {
				b, err = board.ByName(name)
			}
			if err != nil {
				return err
			}
			display.VpinMap(cmd.OutOrStdout(), b, vpin)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "board", "nano", "built-in board name")
	cmd.Flags().StringVar(&boardFile, "board-file", "", "YAML board table")
	cmd.Flags().Uint16Var(&vpin, "vpin", 0, "first vpin")
	return cmd
}

func boardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List built-in boards",
		Run: func(cmd *cobra.Command, _ []string) {
			names := board.Names()
			sort.Strings(names)
			for _, n := range names {
				b, _ := board.ByName(n)
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s pins=%d digital=%d analogue=%d pwm=%d\n",
					n, b.NumPins(), b.NumDigital(), b.NumAnalogue(), b.NumPWM())
			}
		},
	}
}
