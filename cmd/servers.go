package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gamepanel/gamepanel"
)

var serverResource = resource{
	kind: "server",
	get: func(ctx context.Context, api gamepanel.API, id string) (map[string]any, error) {
		return api.GetServer(ctx, id)
	},
	create: func(ctx context.Context, api gamepanel.API, params map[string]any) (map[string]any, error) {
		return api.CreateServer(ctx, params)
	},
	update: func(ctx context.Context, api gamepanel.API, id string, params map[string]any, replaceAll bool) (map[string]any, error) {
		return api.UpdateServer(ctx, id, params, replaceAll)
	},
	remove: func(ctx context.Context, api gamepanel.API, id string) (map[string]any, error) {
		return api.DeleteServer(ctx, id)
	},
}

func newServerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "server",
		Aliases: []string{"servers"},
		Short:   "Manage game servers",
	}

	cmd.AddCommand(newGetCmd(a, serverResource, nil))
	cmd.AddCommand(newCreateCmd(a, serverResource))
	cmd.AddCommand(newUpdateCmd(a, serverResource))
	cmd.AddCommand(newDeleteCmd(a, serverResource))

	return cmd
}
