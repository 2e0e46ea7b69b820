package services

import (
	"context"
	"fmt"

	"github.com/doeshing/serpkit-go/internal/ports"
)

// DoctorCheck is one health-check result.
type DoctorCheck struct {
	Name   string
	OK     bool
	Detail string
}

// Doctor verifies that the local setup can reach the provider.
type Doctor struct {
	Config  ports.ConfigProvider
	Catalog ports.LocationCatalog
}

// Run executes the checks in order. A failed check does not stop the
// later ones except where a dependency is missing (no credentials
// means the API check is skipped).
func (d *Doctor) Run(ctx context.Context) []DoctorCheck {
	var checks []DoctorCheck

	cfg, err := d.Config.Load(ctx)
	if err != nil {
		checks = append(checks, DoctorCheck{
			Name:   "configuration",
			Detail: fmt.Sprintf("cannot load config: %v", err),
		})
		return checks
	}
	checks = append(checks, DoctorCheck{Name: "configuration", OK: true, Detail: "config loaded"})

	if cfg.Credentials.APILogin == "" || cfg.Credentials.APIPassword == "" {
		checks = append(checks, DoctorCheck{
			Name:   "credentials",
			Detail: "api_login / api_password not set (config file or SERPKIT_API_LOGIN / SERPKIT_API_PASSWORD)",
		})
		return checks
	}
	checks = append(checks, DoctorCheck{Name: "credentials", OK: true, Detail: "credentials present"})

	if d.Catalog == nil {
		return checks
	}
	locations, err := d.Catalog.FetchLocations(ctx)
	if err != nil {
		checks = append(checks, DoctorCheck{
			Name:   "api connectivity",
			Detail: fmt.Sprintf("provider unreachable: %v", err),
		})
		return checks
	}
	checks = append(checks, DoctorCheck{
		Name:   "api connectivity",
		OK:     true,
		Detail: fmt.Sprintf("provider reachable, %d locations listed", len(locations)),
	})
	return checks
}
