package echo

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tkrause/echocalc/cmd/util"
)

var (
	serviceClient util.IServiceClient

	// EchoCmd sends a message to the echo service and prints the reply
	EchoCmd = &cobra.Command{
		Use:               "echo [message]",
		Short:             "Send a message to the echo service",
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: setupClient,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer serviceClient.Close()

			reply, err := serviceClient.Echo(args[0])
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags
	util.SetupRPCClientFlags(EchoCmd)
}

// setupClient initializes the RPC client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	serviceClient, err = util.NewServiceClient()
	return err
}
