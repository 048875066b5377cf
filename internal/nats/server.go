package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/celebtour/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.Named("nats")

// Embedded bundles the in-process server, its connection and the tour
// event stream.
type Embedded struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
	Stream jetstream.Stream
}

// Start brings up an embedded server under dataDir and prepares the event
// stream. On failure everything already started is shut down.
func Start(ctx context.Context, dataDir string) (*Embedded, error) {
	ns, err := StartEmbeddedNATS(dataDir)
	if err != nil {
		return nil, fmt.Errorf("starting event store: %w", err)
	}
	nc, err := ConnectInProcess(ns)
	if err != nil {
		_ = Shutdown(nil, ns)
		return nil, fmt.Errorf("connecting to event store: %w", err)
	}
	js, err := CreateJetStream(nc)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	stream, err := SetupStream(ctx, js)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("setting up event stream: %w", err)
	}
	return &Embedded{Server: ns, Conn: nc, JS: js, Stream: stream}, nil
}

// Close drains the connection and stops the server.
func (e *Embedded) Close() error {
	if e == nil {
		return nil
	}
	return Shutdown(e.Conn, e.Server)
}

// StartEmbeddedNATS starts an embedded NATS server with JetStream enabled
// using the specified data directory for file-based storage.
// Returns the server instance or an error if startup fails.
func StartEmbeddedNATS(dataDir string) (*server.Server, error) {
	log.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	opts := &server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true, // No network ports - in-process only
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		log.Error("Failed to create NATS server: %v", err)
		return nil, err
	}

	// Start server in background goroutine
	log.Debug("Starting NATS server in background")
	go ns.Start()

	// Wait for server to be ready with timeout
	log.Debug("Waiting for NATS server to be ready...")
	if !ns.ReadyForConnections(4 * time.Second) {
		log.Error("NATS server failed to start within 4s timeout")
		return nil, errors.New("nats server failed to start within timeout")
	}

	log.Debug("NATS server ready for connections")
	return ns, nil
}

// ConnectInProcess creates an in-process connection to the embedded NATS server.
// This connection does not use network ports and communicates directly with the server.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	log.Debug("Connecting to NATS server in-process")
	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		log.Error("Failed to connect to NATS in-process: %v", err)
		return nil, err
	}
	log.Debug("Connected to NATS successfully")
	return conn, nil
}

// CreateJetStream creates a JetStream context from a NATS connection.
// This context is used for all JetStream operations including creating streams,
// consumers, and publishing/subscribing to subjects.
func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Shutdown gracefully shuts down the NATS connection and server.
// It first drains and closes the connection, then shuts down the server
// with a timeout to allow in-flight operations to complete.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	log.Debug("Starting NATS shutdown")

	// Close the connection first (drain buffered messages)
	if nc != nil {
		log.Debug("Draining NATS connection")
		// Drain waits for published messages to be acknowledged
		// and subscriptions to complete before closing
		// Use a timeout for drain to prevent hanging
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				// Drain failed, force close
				log.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			} else {
				log.Debug("NATS connection drained successfully")
			}
		case <-time.After(2 * time.Second):
			// Drain timed out, force close
			log.Warn("NATS drain timed out after 2s, forcing close")
			nc.Close()
		}
	}

	// Shutdown the server with a grace period
	if ns != nil {
		log.Debug("Shutting down NATS server")
		ns.Shutdown()

		// WaitForShutdown with timeout to prevent hanging
		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
			// Server shut down cleanly
			log.Debug("NATS server shut down cleanly")
		case <-time.After(5 * time.Second):
			// Shutdown timed out - force stop
			// Note: There's no force-stop API, but at least we don't hang forever
			log.Error("NATS server shutdown timed out after 5s")
			return errors.New("NATS server shutdown timed out")
		}
	}

	log.Debug("NATS shutdown complete")
	return nil
}
