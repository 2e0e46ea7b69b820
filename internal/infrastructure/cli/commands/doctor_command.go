package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/serpkit-go/internal/app"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and provider connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Doctor == nil {
				return fmt.Errorf("doctor service unavailable")
			}

			checks := container.Doctor.Run(cmd.Context())
			allOK := true
			for _, check := range checks {
				status := "OK"
				if !check.OK {
					status = "FAIL"
					allOK = false
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s - %s\n", status, check.Name, check.Detail)
			}

			if !allOK {
				return fmt.Errorf("diagnostics found problems")
			}
			return nil
		},
	}
}
