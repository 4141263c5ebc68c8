package main

import (
	"context"
	"crypto/tls"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/m-lab/access/controller"
	"github.com/m-lab/access/token"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"
	"github.com/meshbench/meshbench/internal/aggregate"
	"github.com/meshbench/meshbench/internal/handler"
	"github.com/meshbench/meshbench/pkg/bench/model"
	"github.com/meshbench/meshbench/pkg/bench/spec"
)

var (
	flagCertFile          = flag.String("cert", "", "The file with server certificates in PEM format.")
	flagKeyFile           = flag.String("key", "", "The file with server key in PEM format.")
	flagEndpoint          = flag.String("https_addr", ":4443", "Listen address/port for TLS connections")
	flagEndpointCleartext = flag.String("http_addr", ":8080", "Listen address/port for cleartext connections")
	flagDataDir           = flag.String("datadir", "./data/results", "Directory holding benchmark artifacts. Its path also forms the virtual path prefix used for classification.")
	flagCacheTTL          = flag.Duration("cache_ttl", spec.DefaultResponseCacheTTL, "TTL for cached API responses")
	tokenVerifyKey        = flagx.FileBytesArray{}
	tokenVerify           bool
	tokenMachine          string

	// Context for the whole program.
	ctx, cancel = context.WithCancel(context.Background())
)

func init() {
	flag.Var(&tokenVerifyKey, "token.verify-key", "Public key for verifying access tokens")
	flag.BoolVar(&tokenVerify, "token.verify", false, "Verify access tokens")
	flag.StringVar(&tokenMachine, "token.machine", "", "Use given machine name to verify token claims")
}

// httpServer creates a new *http.Server with explicit Read and Write
// timeouts, the provided address and handler, and an empty TLS
// configuration.
func httpServer(addr string, handler http.Handler) *http.Server {
	tlsconf := &tls.Config{}
	return &http.Server{
		Addr:      addr,
		Handler:   handler,
		TLSConfig: tlsconf,
		// NOTE: set absolute read and write timeouts for server connections.
		// This prevents clients, or middleboxes, from opening a connection
		// and holding it open indefinitely. This applies equally to TLS and
		// non-TLS servers.
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}
}

func main() {
	flag.Parse()

	// Initialize logging and metrics.
	log.SetReportCaller(true)
	log.SetReportTimestamp(true)
	log.SetLevel(log.DebugLevel)

	promSrv := prometheusx.MustServeMetrics()
	defer promSrv.Close()

	v, err := token.NewVerifier(tokenVerifyKey.Get()...)
	if (tokenVerify) && err != nil {
		rtx.Must(err, "Failed to load verifier")
	}
	// Enforce tokens on reloads only; the read endpoints stay open.
	reloadTxPaths := controller.Paths{
		spec.ReloadPath: true,
	}
	reloadTokenPaths := controller.Paths{
		spec.ReloadPath: true,
	}
	acm, _ := controller.Setup(ctx, v, tokenVerify, tokenMachine,
		reloadTxPaths, reloadTokenPaths)

	// The data directory's own path segments are part of every artifact's
	// virtual path, so the classifier sees the same layout the files have
	// on disk.
	prefix := filepath.ToSlash(filepath.Clean(*flagDataDir))
	load := func() (*model.Snapshot, error) {
		return aggregate.Load(os.DirFS(*flagDataDir), prefix)
	}

	snapshot, err := load()
	rtx.Must(err, "failed to aggregate benchmark data")

	benchMux := http.NewServeMux()
	benchHandler := handler.New(snapshot, load, *flagCacheTTL)
	defer benchHandler.Stop()
	benchHandler.Register(benchMux)
	benchServerCleartext := httpServer(
		*flagEndpointCleartext,
		acm.Then(benchMux))

	log.Info("About to listen for dashboard requests", "endpoint", *flagEndpointCleartext)

	go func() {
		err := benchServerCleartext.ListenAndServe()
		rtx.Must(err, "Could not start cleartext server")
		defer benchServerCleartext.Close()
	}()

	// Only start TLS-based services if certs and keys are provided
	if *flagCertFile != "" && *flagKeyFile != "" {
		benchServer := httpServer(
			*flagEndpoint,
			acm.Then(benchMux))
		log.Info("About to listen for dashboard requests over TLS", "endpoint", *flagEndpoint)

		go func() {
			err := benchServer.ListenAndServeTLS(*flagCertFile, *flagKeyFile)
			rtx.Must(err, "Could not start TLS server")
			defer benchServer.Close()
		}()
	}

	<-ctx.Done()
	cancel()
}
