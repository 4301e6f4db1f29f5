package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"

	"boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/client"
	councilcommon "boscoin.io/council/lib/common"
	councilerrors "boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/network"
	"boscoin.io/council/lib/network/httpcache"
	"boscoin.io/council/lib/node"
	"boscoin.io/council/lib/node/runner/api"
	"boscoin.io/council/lib/outbox"
	"boscoin.io/council/lib/storage"
)

const defaultNetwork string = "http"
const defaultHost string = "0.0.0.0"
const defaultLogLevel logging.Lvl = logging.LvlInfo

const URLPathMetrics = "/metrics"

var (
	flagAddress        string = councilcommon.GetENVValue("COUNCIL_ADDRESS", "")
	flagLogLevel       string = councilcommon.GetENVValue("COUNCIL_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput      string = councilcommon.GetENVValue("COUNCIL_LOG_OUTPUT", "")
	flagVerbose        bool   = councilcommon.GetENVValue("COUNCIL_VERBOSE", "0") == "1"
	flagEndpointString string = councilcommon.GetENVValue(
		"COUNCIL_ENDPOINT",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, councilcommon.DefaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = councilcommon.GetENVValue("COUNCIL_TLS_CERT", "")
	flagTLSKeyFile          string = councilcommon.GetENVValue("COUNCIL_TLS_KEY", "")
	flagRegistryURL         string = councilcommon.GetENVValue("COUNCIL_REGISTRY", "")
	flagOracleURL           string = councilcommon.GetENVValue("COUNCIL_ORACLE", "")
	flagConfigFile          string = councilcommon.GetENVValue("COUNCIL_CONFIG", "")
	flagBlockTime           string = councilcommon.GetENVValue("COUNCIL_BLOCK_TIME", councilcommon.DefaultBlockTime.String())
	flagGenesisHeight       string = councilcommon.GetENVValue("COUNCIL_GENESIS_HEIGHT", strconv.FormatUint(councilcommon.DefaultGenesisHeight, 10))
	flagRateLimit           string = councilcommon.GetENVValue("COUNCIL_RATE_LIMIT", councilcommon.DefaultRateLimitAPI)
	flagRateLimitStore      string = councilcommon.GetENVValue("COUNCIL_RATE_LIMIT_STORE", councilcommon.DefaultRateLimitStore)
	flagHTTPCacheAdapter    string = councilcommon.GetENVValue("COUNCIL_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   string = councilcommon.GetENVValue("COUNCIL_HTTP_CACHE_POOL_SIZE", strconv.Itoa(councilcommon.HTTPCachePoolSize))
	flagHTTPCacheRedisAddrs string = councilcommon.GetENVValue("COUNCIL_HTTP_CACHE_REDIS_ADDRS", "")
	flagTerminalCacheSize   string = councilcommon.GetENVValue("COUNCIL_TERMINAL_CACHE_SIZE", strconv.Itoa(councilcommon.DefaultTerminalCacheSize))
	flagExecutorURL         string = councilcommon.GetENVValue("COUNCIL_EXECUTOR", "")
	flagRelayInterval       string = councilcommon.GetENVValue("COUNCIL_RELAY_INTERVAL", outbox.DefaultRelayCheckInterval.String())
	flagCORSOrigins         common.ListFlags
	flagEnableMetrics       bool = councilcommon.GetENVValue("COUNCIL_ENABLE_METRICS", "1") == "1"
)

var (
	nodeCmd *cobra.Command

	nodeEndpoint  *councilcommon.Endpoint
	storageConfig *storage.Config
	nodeConfig    councilcommon.Config
	relayInterval time.Duration
	logLevel      logging.Lvl
	log           logging.Logger
)

func defaultStorageConfigString() string {
	currentDirectory, err := os.Getwd()
	if err == nil {
		currentDirectory, err = filepath.Abs(currentDirectory)
	}
	if err != nil {
		currentDirectory = "."
	}

	return councilcommon.GetENVValue("COUNCIL_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))
}

func init() {
	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run council node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode()

			if err := runNode(); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
		},
	}

	flagStorageConfigString = defaultStorageConfigString()

	nodeCmd.Flags().StringVar(&flagAddress, "address", flagAddress, "address of this governance module")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagEndpointString, "endpoint", flagEndpointString, "endpoint uri to listen on")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagRegistryURL, "registry", flagRegistryURL, "url of the address registry service")
	nodeCmd.Flags().StringVar(&flagOracleURL, "oracle", flagOracleURL, "url of the voting token service")
	nodeCmd.Flags().StringVar(&flagConfigFile, "config", flagConfigFile, "governance config yaml; instantiates a new storage")
	nodeCmd.Flags().StringVar(&flagBlockTime, "block-time", flagBlockTime, "interval of blocks")
	nodeCmd.Flags().StringVar(&flagGenesisHeight, "genesis-height", flagGenesisHeight, "height of the first block of a new storage")
	nodeCmd.Flags().StringVar(&flagRateLimit, "rate-limit", flagRateLimit, "rate limit of the api per client ip, like '100-S'; empty to disable")
	nodeCmd.Flags().StringVar(&flagRateLimitStore, "rate-limit-store", flagRateLimitStore, "rate limit store uri, {memory://, redis://<host>:<port>/<db>}")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter, {'', mem, redis}")
	nodeCmd.Flags().StringVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size of the 'mem' adapter")
	nodeCmd.Flags().StringVar(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", flagHTTPCacheRedisAddrs, "redis servers of the 'redis' adapter, '<name>=<host>:<port>,...'")
	nodeCmd.Flags().StringVar(&flagTerminalCacheSize, "terminal-cache-size", flagTerminalCacheSize, "number of finished proposals kept in memory")
	nodeCmd.Flags().StringVar(&flagExecutorURL, "executor", flagExecutorURL, "url of the service executing the outbound messages to other contracts")
	nodeCmd.Flags().StringVar(&flagRelayInterval, "relay-interval", flagRelayInterval, "interval of checking new outbound messages")
	nodeCmd.Flags().Var(&flagCORSOrigins, "cors-origin", "allowed CORS origin; can be repeated")
	nodeCmd.Flags().BoolVar(&flagEnableMetrics, "enable-metrics", flagEnableMetrics, "serve prometheus metrics at "+URLPathMetrics)

	rootCmd.AddCommand(nodeCmd)
}

// parseRedisAddrs parses "<name>=<host>:<port>,..."; a bare address is
// named after its position.
func parseRedisAddrs(s string) (map[string]string, error) {
	addrs := map[string]string{}
	for i, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if len(v) < 1 {
			continue
		}

		name, addr := "server"+strconv.Itoa(i), v
		if p := strings.SplitN(v, "=", 2); len(p) == 2 {
			name, addr = p[0], p[1]
		}
		if len(name) < 1 || len(addr) < 1 {
			return nil, errors.Errorf("invalid redis address, %q", v)
		}
		if _, found := addrs[name]; found {
			return nil, errors.Errorf("duplicated redis name, %q", name)
		}
		addrs[name] = addr
	}

	return addrs, nil
}

func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 1 {
		return 0, errors.New("must be greater than 0")
	}
	return i, nil
}

func parseFlagsNode() {
	var err error

	if len(flagAddress) < 1 {
		common.PrintFlagsError(nodeCmd, "--address", errors.New("must be given"))
	}
	if err = councilcommon.ValidateAddress(flagAddress); err != nil {
		common.PrintFlagsError(nodeCmd, "--address", err)
	}
	if len(flagRegistryURL) < 1 {
		common.PrintFlagsError(nodeCmd, "--registry", errors.New("must be given"))
	}
	if len(flagOracleURL) < 1 {
		common.PrintFlagsError(nodeCmd, "--oracle", errors.New("must be given"))
	}

	if p, err := councilcommon.ParseEndpoint(flagEndpointString); err != nil {
		common.PrintFlagsError(nodeCmd, "--endpoint", err)
	} else {
		nodeEndpoint = p
		flagEndpointString = nodeEndpoint.String()
	}

	queries := nodeEndpoint.Query()
	if nodeEndpoint.Scheme == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			common.PrintFlagsError(nodeCmd, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			common.PrintFlagsError(nodeCmd, "--tls-key", err)
		}
		queries.Set("TLSCertFile", flagTLSCertFile)
		queries.Set("TLSKeyFile", flagTLSKeyFile)
	}
	if len(queries.Get("IdleTimeout")) < 1 {
		queries.Set("IdleTimeout", "5s")
	}
	nodeEndpoint.RawQuery = queries.Encode()

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}

	nodeConfig = councilcommon.NewConfig()

	if nodeConfig.BlockTime, err = time.ParseDuration(flagBlockTime); err != nil {
		common.PrintFlagsError(nodeCmd, "--block-time", err)
	} else if nodeConfig.BlockTime <= 0 {
		common.PrintFlagsError(nodeCmd, "--block-time", errors.New("must be greater than 0"))
	}
	if nodeConfig.GenesisHeight, err = strconv.ParseUint(flagGenesisHeight, 10, 64); err != nil {
		common.PrintFlagsError(nodeCmd, "--genesis-height", err)
	}

	nodeConfig.RateLimitAPI = strings.TrimSpace(flagRateLimit)
	nodeConfig.RateLimitStore = flagRateLimitStore

	nodeConfig.HTTPCacheAdapter = flagHTTPCacheAdapter
	if nodeConfig.HTTPCachePoolSize, err = parsePositiveInt(flagHTTPCachePoolSize); err != nil {
		common.PrintFlagsError(nodeCmd, "--http-cache-pool-size", err)
	}
	if nodeConfig.HTTPCacheRedisAddrs, err = parseRedisAddrs(flagHTTPCacheRedisAddrs); err != nil {
		common.PrintFlagsError(nodeCmd, "--http-cache-redis-addrs", err)
	}
	if nodeConfig.TerminalCacheSize, err = parsePositiveInt(flagTerminalCacheSize); err != nil {
		common.PrintFlagsError(nodeCmd, "--terminal-cache-size", err)
	}
	nodeConfig.CORSOrigins = []string(flagCORSOrigins)

	if relayInterval, err = time.ParseDuration(flagRelayInterval); err != nil {
		common.PrintFlagsError(nodeCmd, "--relay-interval", err)
	} else if relayInterval <= 0 {
		common.PrintFlagsError(nodeCmd, "--relay-interval", errors.New("must be greater than 0"))
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(nodeCmd, "--log-level", err)
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = councilcommon.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, councilcommon.JsonFormatEx(false, true)); err != nil {
			common.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	if logLevel == logging.LvlDebug {
		logHandler = logging.CallerFileHandler(logHandler)
	}

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	governance.SetLogging(logLevel, logHandler)
	node.SetLogging(logLevel, logHandler)
	api.SetLogging(logLevel, logHandler)
	client.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	httpcache.SetLogging(logLevel, logHandler)
	outbox.SetLogging(logLevel, logHandler)

	log.Info("Starting council")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\taddress", flagAddress)
	parsedFlags = append(parsedFlags, "\n\tendpoint", flagEndpointString)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tregistry", flagRegistryURL)
	parsedFlags = append(parsedFlags, "\n\toracle", flagOracleURL)
	parsedFlags = append(parsedFlags, "\n\texecutor", flagExecutorURL)
	parsedFlags = append(parsedFlags, "\n\trelay-interval", relayInterval)
	parsedFlags = append(parsedFlags, "\n\tconfig", flagConfigFile)
	parsedFlags = append(parsedFlags, "\n\tblock-time", nodeConfig.BlockTime)
	parsedFlags = append(parsedFlags, "\n\tgenesis-height", nodeConfig.GenesisHeight)
	parsedFlags = append(parsedFlags, "\n\ttls-cert", flagTLSCertFile)
	parsedFlags = append(parsedFlags, "\n\ttls-key", flagTLSKeyFile)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\trate-limit", nodeConfig.RateLimitAPI)
	parsedFlags = append(parsedFlags, "\n\trate-limit-store", nodeConfig.RateLimitStore)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", nodeConfig.HTTPCacheAdapter)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-pool-size", nodeConfig.HTTPCachePoolSize)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-redis-addrs", nodeConfig.HTTPCacheRedisAddrs)
	parsedFlags = append(parsedFlags, "\n\tterminal-cache-size", nodeConfig.TerminalCacheSize)
	parsedFlags = append(parsedFlags, "\n\tcors-origin", nodeConfig.CORSOrigins)
	parsedFlags = append(parsedFlags, "\n\tenable-metrics", flagEnableMetrics)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
}

// prepareStorage instantiates a new storage from `--config`; a storage
// already instantiated keeps its config.
func prepareStorage(st *storage.LevelDBBackend) error {
	_, err := governance.GetConfig(st)
	switch {
	case err == nil:
		if len(flagConfigFile) > 0 {
			log.Warn("storage is already instantiated; --config is ignored", "config", flagConfigFile)
		}
		return nil
	case !councilerrors.NotInstantiated.Is(err):
		return err
	case len(flagConfigFile) < 1:
		log.Warn("storage is not instantiated; give --config or run 'instantiate'")
		return nil
	}

	msg, err := readConfigFile(flagConfigFile)
	if err != nil {
		return err
	}

	ts, err := st.OpenTransaction()
	if err != nil {
		return err
	}
	config, err := governance.Instantiate(ts, msg)
	if err != nil {
		ts.Discard()
		return err
	}
	if err := ts.Commit(); err != nil {
		return err
	}

	log.Info("instantiated", "config", config)

	return nil
}

func newAPIRouter(server *network.HTTP2Server, host *node.Host) error {
	handler, err := api.NewNetworkHandlerAPI(host, nodeConfig.TerminalCacheSize)
	if err != nil {
		return err
	}

	server.AddMiddleware(
		api.RecoverMiddleware(logLevel == logging.LvlDebug),
		api.RequestIDMiddleware,
		api.LogMiddleware,
		api.CORSMiddleware(nodeConfig.CORSOrigins),
	)

	router := server.Router()
	if flagEnableMetrics {
		router.Handle(URLPathMetrics, promhttp.Handler()).Methods("GET")
	}

	var mws []mux.MiddlewareFunc
	if len(nodeConfig.RateLimitAPI) > 0 {
		store, err := api.RateLimitStoreFromURI(nodeConfig.RateLimitStore)
		if err != nil {
			return err
		}
		limit, err := api.RateLimitMiddleware(store, nodeConfig.RateLimitAPI)
		if err != nil {
			return err
		}
		mws = append(mws, limit)
	}

	adapter, err := httpcache.NewAdapter(httpcache.Config{
		Adapter:    nodeConfig.HTTPCacheAdapter,
		PoolSize:   nodeConfig.HTTPCachePoolSize,
		RedisAddrs: nodeConfig.HTTPCacheRedisAddrs,
	})
	if err != nil {
		return err
	}
	cache, err := httpcache.NewClient(httpcache.WithAdapter(adapter))
	if err != nil {
		return err
	}

	handler.Routes(router, cache.Middleware, mws...)

	return nil
}

func runNode() error {
	if flagEnableMetrics {
		metrics.InitPrometheusMetrics()
		metrics.SetVersion()
	}

	st := &storage.LevelDBBackend{}
	if err := st.Init(storageConfig); err != nil {
		log.Crit("failed to initialize storage", "error", err)
		return err
	}
	defer st.Close()

	if err := prepareStorage(st); err != nil {
		log.Crit("failed to instantiate", "error", err)
		return err
	}

	registryClient, err := client.NewClient(flagRegistryURL, nil)
	if err != nil {
		return err
	}
	oracleClient, err := client.NewClient(flagOracleURL, nil)
	if err != nil {
		return err
	}
	engine := governance.NewEngine(client.NewRegistryFactory(registryClient), client.NewOracleFactory(oracleClient))

	clock, err := node.NewBlockClock(st, nodeConfig.GenesisHeight, nodeConfig.BlockTime)
	if err != nil {
		log.Crit("failed to load block height", "error", err)
		return err
	}

	host := node.NewHost(st, engine, clock, flagAddress)

	serverConfig, err := network.NewHTTP2ServerConfigFromEndpoint(nodeEndpoint)
	if err != nil {
		log.Crit("invalid endpoint", "error", err)
		return err
	}
	server := network.NewHTTP2Server(serverConfig)
	if err := newAPIRouter(server, host); err != nil {
		log.Crit("failed to set up api", "error", err)
		return err
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			if err := server.Start(); err != nil {
				log.Crit("failed to start server", "error", err)
				return err
			}
			return nil
		}, func(error) {
			server.Stop()
		})
	}
	{
		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return clock.Run(ctx)
		}, func(error) {
			cancel()
		})
	}
	{
		var executor outbox.Sender
		if len(flagExecutorURL) > 0 {
			executorClient, err := client.NewClient(flagExecutorURL, nil)
			if err != nil {
				return err
			}
			executor = client.NewExecutor(executorClient)
		} else {
			log.Warn("--executor is not given; outbound messages to other contracts are held in the outbox")
		}

		relay := outbox.NewRelay(
			st,
			node.NewDispatcher(host, executor),
			outbox.WithRelayIntervals(relayInterval, outbox.DefaultRelayRetryInterval),
		)

		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return relay.Run(ctx)
		}, func(error) {
			cancel()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	return g.Run()
}
