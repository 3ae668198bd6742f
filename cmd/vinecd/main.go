// Command vinecd runs the constraint-solver gRPC service described in
// internal/rpc: a thin network front end around the inference kernel,
// kept well outside the kernel's own synchronous, I/O-free boundary.
package main

import (
	"fmt"
	"log"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/vinelang/vinec/internal/rpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vinecd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := &rpc.ServerConfig{ListenAddr: ":7777", CachePath: ":memory:"}
	if path := os.Getenv("VINECD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		cfg, err = rpc.LoadServerConfig(data)
		if err != nil {
			return err
		}
	}

	cache, err := rpc.OpenCache(cfg.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.ListenAddr, err)
	}

	srv := grpc.NewServer()
	rpc.Register(srv, rpc.NewServer(cache))

	log.Printf("vinecd %s listening on %s", rpc.Version, cfg.ListenAddr)
	return srv.Serve(lis)
}
