package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/waha-dashboard/upstreams"
)

/* validate-upstreams - Standalone CLI tool to validate an upstreams file
 * Usage: go run cmd/validate-upstreams/main.go [upstreams.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	upstreamsFile := "upstreams.yaml"
	if len(os.Args) > 1 {
		upstreamsFile = os.Args[1]
	}

	fmt.Printf("Validating upstreams file: %s\n", upstreamsFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := upstreams.NewLoader()
	if err := loader.Load(upstreamsFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loaded := loader.List()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d upstream(s):\n", len(loaded))

	for i, upstream := range loaded {
		fmt.Printf("\n%d. Session: %s\n", i+1, upstream.Session)
		fmt.Printf("   API URL: %s\n", upstream.APIURL)
		fmt.Printf("   API Key: %s\n", upstream.MaskedKey())
	}
	if len(loaded) > 0 {
		fmt.Printf("\nDefault credentials: %s\n", loaded[len(loaded)-1].Session)
	}

	fmt.Printf("\n✓ All upstreams are valid!\n")
	os.Exit(0)
}
