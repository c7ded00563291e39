package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vadim-su/dnswire/internal/capture"
	"github.com/vadim-su/dnswire/internal/config"
	"github.com/vadim-su/dnswire/internal/transport"
	"github.com/vadim-su/dnswire/pkg/dns"
	"github.com/vadim-su/dnswire/pkg/dns/types"
)

func main() {
	var configFile string
	var server string
	var queryType string
	var timeout time.Duration
	var namesFile string

	flag.StringVar(&configFile, "config", "dnswire.yaml", "Configuration file path")
	flag.StringVar(&configFile, "c", "dnswire.yaml", "Configuration file path (shorthand)")
	flag.StringVar(&server, "server", "", "Upstream name server (host:port), overrides config")
	flag.StringVar(&queryType, "type", "", "Question type (A, AAAA, CNAME, MX, NS, SOA, ...), overrides config")
	flag.DurationVar(&timeout, "timeout", 0, "Exchange timeout, overrides config")
	flag.StringVar(&namesFile, "file", "", "File with one domain name per line (dataset capture mode)")
	flag.Parse()

	absPath, _ := filepath.Abs(configFile)
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		log.Printf("Failed to load config from %s: %v, using defaults", absPath, err)
		cfg = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", absPath)
	}

	if server != "" {
		cfg.Resolver.Address = server
	}
	if queryType != "" {
		cfg.Resolver.QueryType = queryType
	}
	if timeout > 0 {
		cfg.Resolver.Timeout = timeout
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	names := flag.Args()
	if namesFile != "" {
		fileNames, err := readNames(namesFile)
		if err != nil {
			log.Fatalf("Failed to read names from %s: %v", namesFile, err)
		}
		names = append(names, fileNames...)
	}
	if len(names) == 0 {
		names = []string{dns.TestDomain}
	}

	qtype, err := types.TypeFromString(cfg.Resolver.QueryType)
	if err != nil {
		log.Fatalf("Invalid query type: %v", err)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open capture store: %v", err)
	}

	client := transport.NewClient(cfg.Resolver.Address, cfg.Resolver.Timeout)
	exitCode := 0
	for _, name := range names {
		if err := query(ctx, client, store, name, qtype); err != nil {
			log.Printf("Query for %s failed: %v", name, err)
			exitCode = 1
		}
	}
	if store != nil {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close capture store: %v", err)
		}
	}
	os.Exit(exitCode)
}

// query performs one full query/response cycle for a single name and
// prints the decoded response.
func query(ctx context.Context, client *transport.Client, store capture.Store, name string, qtype types.Type) error {
	question, err := dns.NewQuestion(name, qtype, types.CLASS_IN)
	if err != nil {
		return err
	}

	message := &dns.Message{
		Header: dns.Header{
			ID:               uint16(rand.Uint32()),
			Opcode:           types.OPCODE_QUERY,
			RecursionDesired: true,
			QuestionCount:    1,
		},
		Questions: []dns.Question{*question},
	}

	payload, err := message.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	started := time.Now()
	raw, err := client.Exchange(ctx, payload)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	response, err := dns.DecodeMessage(raw)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Println(response)
	fmt.Printf(";; Query time: %v, server: %s, size: %d bytes\n\n", elapsed, client.Server, len(raw))

	if store != nil {
		exchange := &capture.Exchange{
			Name:      name,
			QueryType: qtype.String(),
			Server:    client.Server,
			Query:     payload,
			Response:  raw,
			RCode:     response.Header.RCode.String(),
			Truncated: response.Header.Truncated,
			Duration:  elapsed,
		}
		if err := store.Put(ctx, exchange); err != nil {
			return fmt.Errorf("failed to capture exchange: %w", err)
		}
		log.Printf("Captured exchange %s for %s", exchange.ID, name)
	}

	return nil
}

// openStore builds the capture backend selected in configuration. A nil
// store means capture is disabled.
func openStore(ctx context.Context, cfg *config.Config) (capture.Store, error) {
	switch cfg.Capture.Backend {
	case "memory":
		return capture.NewMemoryStore(), nil
	case "surrealdb":
		return capture.NewSurrealStore(ctx, &capture.SurrealConfig{
			EndpointURL: cfg.Capture.Endpoint,
			Namespace:   cfg.Capture.Namespace,
			Database:    cfg.Capture.Database,
			Username:    cfg.Capture.Username,
			Password:    cfg.Capture.Password,
		})
	default:
		return nil, nil
	}
}

// readNames reads one domain name per line, skipping blanks and comments.
func readNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		names = append(names, line)
	}
	return names, scanner.Err()
}
