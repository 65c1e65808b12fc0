// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/imamik/tgwsync/internal/config"
	"github.com/imamik/tgwsync/internal/platform/ec2"
	"github.com/imamik/tgwsync/internal/reconcile"
)

// Reconciler interface for testing - matches reconcile.Reconciler.
type Reconciler interface {
	Run(ctx context.Context, spec *config.Spec) (*reconcile.Result, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadSpecFile loads the spec from a file.
	loadSpecFile = config.LoadFile

	// loadTimeouts reads timeout settings from the environment.
	loadTimeouts = config.LoadTimeouts

	// newAPIClient creates the EC2 transit gateway client.
	newAPIClient = func(ctx context.Context, region, endpoint string, timeouts *config.Timeouts) (ec2.API, error) {
		return ec2.NewClient(ctx, region, endpoint, timeouts)
	}

	// newReconciler creates a reconciler over the client.
	newReconciler = func(api ec2.API, dryRun bool) Reconciler {
		return reconcile.New(api, dryRun)
	}

	// writeResult renders the reconciliation result.
	writeResult = printResult
)

// Apply reconciles one transit gateway route table to the spec.
//
// The workflow:
//  1. Loads and validates the spec file (default: tgwsync.yaml)
//  2. Builds an EC2 client from the standard AWS credential chain
//  3. Runs the reconciler: lookup or create, then tags, associations, routes
//  4. Prints the result (changed flag plus a snapshot of the table) as YAML
//
// With dryRun set, no mutating API call is issued and the printed snapshot
// shows the projected state.
func Apply(ctx context.Context, configPath string, dryRun bool) error {
	spec, err := loadSpec(configPath)
	if err != nil {
		return err
	}

	if dryRun {
		log.Printf("Dry run: no changes will be applied")
	}
	log.Printf("Reconciling route table in %s", spec.TransitGatewayID)

	api, err := newAPIClient(ctx, spec.Region, spec.Endpoint, loadTimeouts())
	if err != nil {
		return fmt.Errorf("failed to create EC2 client: %w", err)
	}

	result, err := newReconciler(api, dryRun).Run(ctx, spec)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if result.Changed {
		log.Printf("Reconciliation complete, changes applied")
	} else {
		log.Printf("Reconciliation complete, nothing to do")
	}

	return writeResult(result)
}

// loadSpec loads and validates the spec file. If configPath is empty, it
// looks for tgwsync.yaml in the current directory.
func loadSpec(configPath string) (*config.Spec, error) {
	if configPath == "" {
		configPath = config.DefaultSpecFile
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("no spec file found: %w\nRun 'tgwsync init' to create one", err)
		}
	}

	spec, err := loadSpecFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec: %w", err)
	}

	log.Printf("Using spec: %s", configPath)
	return spec, nil
}

// printResult writes a styled summary and the full result as YAML to stdout.
func printResult(result *reconcile.Result) error {
	data := &summaryData{Changed: result.Changed, Title: "route table absent"}
	if result.RouteTable != nil {
		data.Title = result.RouteTable.RouteTableID
		data.Lines = []string{
			fmt.Sprintf("associations: %d", len(result.RouteTable.Associations)),
			fmt.Sprintf("routes:       %d", len(result.RouteTable.Routes)),
			fmt.Sprintf("tags:         %d", len(result.RouteTable.Tags)),
		}
	}
	fmt.Print(renderSummary(data))

	out, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Printf("\n%s", out)
	return nil
}
