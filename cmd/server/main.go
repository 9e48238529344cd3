package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"os"
	"strings"

	"noise-contours/internal/config"
	"noise-contours/internal/metrics"
	"noise-contours/internal/scene"
	"noise-contours/internal/server"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	seed := flag.Int64("seed", 0, "initial seed (overrides config; 0 keeps it)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *seed != 0 {
		cfg.Field.Seed = *seed
	}

	opts, err := scene.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	rec := metrics.New()
	opts.Metrics = rec
	opts.CellSize = cfg.Render.TerminalCell
	if addr := cfg.Server.MetricsListenAddr(); addr != "" {
		rec.StartHTTP(addr)
	}

	if err := ensureHostKey(cfg.Server.HostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	f, err := scene.NewField(opts)
	if err != nil {
		log.Fatalf("Field error: %v", err)
	}
	log.Printf("Field ready: %dx%d, %s", opts.Width, opts.Height, f.Settings().Info())

	loop := scene.NewLoop(f, rec)
	go loop.Run()
	defer loop.Stop()

	listenAddr := cfg.Server.ListenAddr()
	sshServer := server.NewSSHServer(listenAddr, cfg.Server.HostKey, loop)
	port := listenAddr[strings.LastIndex(listenAddr, ":")+1:]
	log.Printf("Starting noise contours viewer, connect with: ssh -t -p %s localhost", port)
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
