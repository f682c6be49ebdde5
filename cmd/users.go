package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gamepanel/gamepanel"
)

var userResource = resource{
	kind: "user",
	get: func(ctx context.Context, api gamepanel.API, id string) (map[string]any, error) {
		return api.GetUser(ctx, id)
	},
	create: func(ctx context.Context, api gamepanel.API, params map[string]any) (map[string]any, error) {
		return api.CreateUser(ctx, params)
	},
	update: func(ctx context.Context, api gamepanel.API, id string, params map[string]any, replaceAll bool) (map[string]any, error) {
		return api.UpdateUser(ctx, id, params, replaceAll)
	},
	remove: func(ctx context.Context, api gamepanel.API, id string) (map[string]any, error) {
		return api.DeleteUser(ctx, id)
	},
}

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage panel users",
	}

	var username string
	cmd.AddCommand(newGetCmd(a, userResource, &nameLookup{
		flag: "username",
		name: &username,
		get: func(ctx context.Context, api gamepanel.API, name string) (map[string]any, error) {
			return api.GetUserByUsername(ctx, name)
		},
	}))
	cmd.AddCommand(newCreateCmd(a, userResource))
	cmd.AddCommand(newUpdateCmd(a, userResource))
	cmd.AddCommand(newDeleteCmd(a, userResource))

	return cmd
}
