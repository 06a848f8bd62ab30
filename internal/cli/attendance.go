package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"attendance-dashboard/internal/attendancedetail"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAttendanceCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Inspect attendance records through the backend",
	}
	cmd.AddCommand(newAttendanceGetCmd(opts))
	cmd.AddCommand(newAttendanceWatchCmd(opts))
	return cmd
}

func parseRecordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}

func newAttendanceGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Fetch one attendance record and print the fetch state as JSON",
		Example: `  dashctl attendance get 42 --backend https://api.example.com --token $TOKEN`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			f := attendancedetail.New(attendancedetail.NewBackendLoader(client),
				attendancedetail.WithLogger(zap.L()),
			)
			f.Set(cmd.Context(), &id, true)
			f.Wait()

			state := f.State()
			if err := printState(cmd.OutOrStdout(), state); err != nil {
				return err
			}
			if state.IsError {
				return fmt.Errorf("fetch attendance %d: %s", id, state.Error)
			}
			return nil
		},
	}
}

func newAttendanceWatchCmd(opts *globalOptions) *cobra.Command {
	var (
		interval time.Duration
		count    int
	)

	cmd := &cobra.Command{
		Use:     "watch <id>",
		Short:   "Refetch an attendance record periodically and print every settled state",
		Example: `  dashctl attendance watch 42 --interval 10s`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			f := attendancedetail.New(attendancedetail.NewBackendLoader(client),
				attendancedetail.WithLogger(zap.L()),
			)

			f.Set(ctx, &id, true)
			f.Wait()
			if err := printState(out, f.State()); err != nil {
				return err
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for printed := 1; count <= 0 || printed < count; printed++ {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
				if err := printState(out, f.Mutate(ctx)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "time between refetches")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many states (0 = until interrupted)")
	return cmd
}

func printState(w io.Writer, state attendancedetail.State) error {
	buf, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}
