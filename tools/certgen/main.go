// Package main writes a self-signed server certificate and key for running
// notekeeper over HTTPS locally (TLS_CERT / TLS_KEY).
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atinyakov/notekeeper/internal/certgen"
)

func main() {
	var (
		dir      string
		hosts    string
		validFor time.Duration
	)
	flag.StringVar(&dir, "dir", "certs", "output directory")
	flag.StringVar(&hosts, "hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs")
	flag.DurationVar(&validFor, "valid", 365*24*time.Hour, "certificate lifetime")
	flag.Parse()

	certPath, keyPath, err := run(dir, splitHosts(hosts), validFor)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Certificates generated into ./%s\n", dir)
	fmt.Printf("  server: TLS_CERT=%s TLS_KEY=%s\n", certPath, keyPath)
	fmt.Printf("  client: -ca %s\n", certPath)
}

func run(dir string, hosts []string, validFor time.Duration) (string, string, error) {
	certPEM, keyPEM, err := certgen.GenerateSelfSigned(hosts, validFor)
	if err != nil {
		return "", "", err
	}
	return certgen.WriteKeyPair(dir, certPEM, keyPEM)
}

func splitHosts(s string) []string {
	var out []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
