package calc

import (
	"github.com/spf13/cobra"
	"github.com/tkrause/echocalc/cmd/util"
)

var (
	serviceClient util.IServiceClient

	// CalcCommands represents the calculator command group
	CalcCommands = &cobra.Command{
		Use:               "calc",
		Short:             "Perform calculator operations",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the calc command
	util.SetupRPCClientFlags(CalcCommands)

	// Add subcommands
	CalcCommands.AddCommand(addCmd)
	CalcCommands.AddCommand(subCmd)
	CalcCommands.AddCommand(mulCmd)
	CalcCommands.AddCommand(divCmd)
	CalcCommands.AddCommand(evalCmd)
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
