package main

import (
	"fmt"

	grpcHandler "github.com/sm8ta/campusride_admin_console/internal/grpc"
	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var statusServices = []string{"", "redis", "postgres"}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the health of a running console server",
	Long: `Dials the console's gRPC health service (GRPC_ADDRESS) and prints the
status of the server and each dependency it watches.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	client, err := grpcHandler.NewHealthClient(env.logger, env.cfg.GRPC.Address, timeout, env.cfg.GRPC.RetriesInt())
	if err != nil {
		return err
	}
	defer client.Close()

	rows := make([][]string, 0, len(statusServices))
	for _, service := range statusServices {
		name := service
		if name == "" {
			name = "console"
		}
		status, err := client.Check(ctx, service)
		if err != nil {
			rows = append(rows, []string{name, errorStyle.Render("unreachable")})
			continue
		}
		label := status.String()
		if status == healthpb.HealthCheckResponse_SERVING {
			label = successStyle.Render(label)
		} else {
			label = warningStyle.Render(label)
		}
		rows = append(rows, []string{name, label})
	}
	fmt.Fprintln(env.out, renderTable([]string{"Service", "Status"}, rows))
	return nil
}
