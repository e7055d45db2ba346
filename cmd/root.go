package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkrause/echocalc/cmd/calc"
	"github.com/tkrause/echocalc/cmd/echo"
	"github.com/tkrause/echocalc/cmd/serve"
	"github.com/tkrause/echocalc/cmd/util"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "echocalc",
		Short: "echo and calculator RPC service",
		Long: fmt.Sprintf(`echocalc (v%s)

An RPC service exposing a message echo and a four-function calculator
over a framed socket protocol or JSON-RPC, with matching clients.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of echocalc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("echocalc v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(echo.EchoCmd)
	RootCmd.AddCommand(calc.CalcCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "binary", util.WrapString("serializer to use (json, gob, binary; ignored for jsonrpc)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix, jsonrpc)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
