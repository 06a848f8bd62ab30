package cli

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"attendance-dashboard/internal/credential"
	"attendance-dashboard/internal/shared/backend"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalOptions struct {
	backendURL string
	token      string
	timeout    time.Duration
}

// NewRootCmd membangun command dashctl beserta semua subcommand.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "dashctl",
		Short:         "Operator tools for the attendance dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.backendURL, "backend", os.Getenv("NEXT_PUBLIC_BACKEND_URL"), "backend base url")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("DASHBOARD_TOKEN"), "bearer token sent to the backend")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "http timeout per backend request")

	cmd.AddCommand(newAttendanceCmd(opts))
	cmd.AddCommand(newAuditCmd())

	return cmd
}

func (o *globalOptions) client() (*backend.Client, error) {
	base := strings.TrimRight(strings.TrimSpace(o.backendURL), "/")
	if base == "" {
		return nil, errors.New("--backend or NEXT_PUBLIC_BACKEND_URL is required")
	}
	return backend.New(base, credential.Static(o.token),
		backend.WithHTTPClient(&http.Client{Timeout: o.timeout}),
		backend.WithLogger(zap.L()),
	), nil
}
