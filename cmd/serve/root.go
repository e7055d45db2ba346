package serve

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmdUtil "github.com/tkrause/echocalc/cmd/util"
	"github.com/tkrause/echocalc/rpc/common"
	"github.com/tkrause/echocalc/rpc/jsonrpc"
	"github.com/tkrause/echocalc/rpc/serializer"
	"github.com/tkrause/echocalc/rpc/server"
	"github.com/tkrause/echocalc/rpc/transport"
	"github.com/tkrause/echocalc/rpc/transport/tcp"
	"github.com/tkrause/echocalc/rpc/transport/unix"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the echocalc server",
		Long:    `Start the echocalc server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is ECHOCALC_<flag> (e.g. ECHOCALC_TIMEOUT=15)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the server will listen (e.g. localhost:8080, /tmp/echocalc.sock, ...)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Timeout in seconds for a single request/response cycle"))

	key = "poll-interval"
	ServeCmd.PersistentFlags().Int(key, 50, cmdUtil.WrapString("How often (in ms) blocked accept and read calls wake up to observe a pending shutdown"))

	key = "grace"
	ServeCmd.PersistentFlags().Int(key, 200, cmdUtil.WrapString("How long (in ms) shutdown waits after draining so the OS can release the socket"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "log-file"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Write logs to this file (with rotation) instead of stdout"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Serve Prometheus metrics on this address (e.g. localhost:9100, disabled when empty)"))
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	serveCmdConfig.Transport.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.PollIntervalMs = viper.GetInt("poll-interval")
	serveCmdConfig.GraceMs = viper.GetInt("grace")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.LogFile = viper.GetString("log-file")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")

	return common.ValidateEndpoint(serveCmdConfig.Transport.Endpoint)
}

// run starts the echocalc server and blocks until SIGINT/SIGTERM
func run(_ *cobra.Command, _ []string) error {
	// JSON-RPC has its own server implementation
	if viper.GetString("transport") == "jsonrpc" {
		s, shutdown, err := jsonrpc.NewBuilder().
			WithConfig(*serveCmdConfig).
			Build()
		if err != nil {
			return err
		}
		stopOnSignal(shutdown)
		return s.Serve()
	}

	// parse the serializer
	var s serializer.IRPCSerializer
	switch viper.GetString("serializer") {
	case "json":
		s = serializer.NewJSONSerializer()
	case "gob":
		s = serializer.NewGOBSerializer()
	case "binary":
		s = serializer.NewBinarySerializer()
	default:
		return fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}

	// Parse the transport
	var t transport.IRPCServerTransport
	switch viper.GetString("transport") {
	case "tcp":
		t = tcp.NewTCPServerTransport()
	case "unix":
		t = unix.NewUnixDefaultServerTransport()
	default:
		return fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}

	serv, shutdown, err := server.NewBuilder().
		WithConfig(*serveCmdConfig).
		WithTransport(t).
		WithSerializer(s).
		Build()
	if err != nil {
		return err
	}

	stopOnSignal(shutdown)
	return serv.Serve()
}

// stopOnSignal fires the shutdown signal on SIGINT or SIGTERM
func stopOnSignal(shutdown *common.ShutdownSignal) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("received %s, shutting down\n", sig)
		shutdown.Fire()
	}()
}

// initConfig reads in config from ENV variables if set
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("echocalc")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
