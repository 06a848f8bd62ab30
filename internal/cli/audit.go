package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"attendance-dashboard/internal/app"
	"attendance-dashboard/internal/events"

	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit events published by the dashboard",
	}
	cmd.AddCommand(newAuditTailCmd())
	return cmd
}

func newAuditTailCmd() *cobra.Command {
	cfg := app.AuditTailConfig{}
	var action string

	cmd := &cobra.Command{
		Use:     "tail",
		Short:   "Print audit events from Kafka as JSON lines until interrupted",
		Example: `  dashctl audit tail --broker localhost:9092 --action CLOCK_IN`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Broker == "" {
				return errors.New("--broker or KAFKA_BROKER is required")
			}

			out := cmd.OutOrStdout()
			return app.RunAuditTail(cmd.Context(), cfg, func(event events.AuditEvent) error {
				if action != "" && event.EventType != action {
					return nil
				}
				buf, err := json.Marshal(event)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(buf))
				return err
			})
		},
	}

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "dashboard.audit"
	}

	cmd.Flags().StringVar(&cfg.Broker, "broker", os.Getenv("KAFKA_BROKER"), "kafka broker address")
	cmd.Flags().StringVar(&cfg.Topic, "topic", topic, "audit topic")
	cmd.Flags().StringVar(&cfg.GroupID, "group", "dashctl-audit-tail", "consumer group id")
	cmd.Flags().BoolVar(&cfg.FromBeginning, "from-beginning", false, "read from the first retained event")
	cmd.Flags().StringVar(&action, "action", "", "only print events with this event type")
	return cmd
}
