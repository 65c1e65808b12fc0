package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/tgwsync/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// isInteractive reports whether stdout is a terminal.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// runWizard runs the interactive spec wizard.
	runWizard = config.RunWizard

	// saveSpec writes the spec to a file.
	saveSpec = config.SaveFile
)

// Init runs the spec wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if !isInteractive() {
		return fmt.Errorf("init needs an interactive terminal; write %s by hand instead", outputPath)
	}

	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	spec, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := saveSpec(spec, outputPath); err != nil {
		return fmt.Errorf("failed to write spec: %w", err)
	}

	printInitSuccess(outputPath, spec)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("tgwsync - Transit Gateway route tables as YAML")
	fmt.Println("==============================================")
	fmt.Println()
	fmt.Println("This wizard describes one route table in a spec file.")
	fmt.Println("'tgwsync apply' then converges the table to that spec.")
	fmt.Println()
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, spec *config.Spec) {
	fmt.Println()
	fmt.Println("Spec saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Route Table Summary")
	fmt.Println("-------------------")
	fmt.Printf("  Transit gateway:  %s\n", spec.TransitGatewayID)
	if spec.Region != "" {
		fmt.Printf("  Region:           %s\n", spec.Region)
	}
	fmt.Printf("  Tags:             %d\n", len(spec.Tags))
	fmt.Printf("  Associations:     %d\n", len(spec.Associations))
	fmt.Printf("  Routes:           %d\n", len(spec.Routes))
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Make sure your AWS credentials are set:")
	fmt.Println("     export AWS_ACCESS_KEY_ID=... AWS_SECRET_ACCESS_KEY=...")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Preview and apply:")
	fmt.Println("     tgwsync apply --dry-run")
	fmt.Println("     tgwsync apply")
	fmt.Println()
}
