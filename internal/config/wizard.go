package config

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/charmbracelet/huh"
)

// wizardResult collects the raw answers before they are turned into a Spec.
type wizardResult struct {
	Region           string
	TransitGatewayID string
	NameTag          string
	PurgeTags        bool
	Associations     string
	Routes           string
}

// RunWizard walks the user through creating a spec interactively.
func RunWizard(ctx context.Context) (*Spec, error) {
	result := &wizardResult{
		Region: "us-east-1",
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("AWS region").
				Description("Region the transit gateway lives in").
				Placeholder("us-east-1").
				Value(&result.Region),

			huh.NewInput().
				Title("Transit gateway ID").
				Description("The gateway that owns the route table").
				Placeholder("tgw-0123456789abcdef0").
				Value(&result.TransitGatewayID).
				Validate(validateTransitGatewayID),

			huh.NewInput().
				Title("Name tag").
				Description("Identifies the route table; used for tag-based lookup").
				Placeholder("Public").
				Value(&result.NameTag).
				Validate(requireValue("a name tag is required")),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Purge unknown tags?").
				Description("Remove remote tags that are not in the spec").
				Value(&result.PurgeTags),

			huh.NewText().
				Title("Attachment associations").
				Description("One transit gateway attachment ID per line (optional)").
				Placeholder("tgw-attach-0123456789abcdef0").
				Value(&result.Associations),

			huh.NewText().
				Title("Static routes").
				Description("One route per line as '<cidr> <attachment-id>' (optional)").
				Placeholder("10.2.0.0/16 tgw-attach-0123456789abcdef0").
				Value(&result.Routes).
				Validate(validateRouteLines),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	return result.toSpec()
}

func (r *wizardResult) toSpec() (*Spec, error) {
	spec := &Spec{
		Region:           strings.TrimSpace(r.Region),
		Lookup:           LookupByTag,
		TransitGatewayID: strings.TrimSpace(r.TransitGatewayID),
		State:            StatePresent,
		Tags:             map[string]string{"Name": strings.TrimSpace(r.NameTag)},
		PurgeTags:        r.PurgeTags,
	}

	for _, line := range splitLines(r.Associations) {
		spec.Associations = append(spec.Associations, line)
	}

	for _, line := range splitLines(r.Routes) {
		cidr, attachment, err := parseRouteLine(line)
		if err != nil {
			return nil, err
		}
		spec.Routes = append(spec.Routes, RouteSpec{DestCIDR: cidr, AttachmentID: attachment})
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func parseRouteLine(line string) (cidr, attachment string, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("route %q: expected '<cidr> <attachment-id>'", line)
	}
	if _, _, err := net.ParseCIDR(fields[0]); err != nil {
		return "", "", fmt.Errorf("route %q: invalid CIDR: %w", line, err)
	}
	return fields[0], fields[1], nil
}

func validateTransitGatewayID(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("a transit gateway ID is required")
	}
	if !strings.HasPrefix(s, "tgw-") {
		return fmt.Errorf("transit gateway IDs start with tgw-")
	}
	return nil
}

func requireValue(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func validateRouteLines(s string) error {
	for _, line := range splitLines(s) {
		if _, _, err := parseRouteLine(line); err != nil {
			return err
		}
	}
	return nil
}
