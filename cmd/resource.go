package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/gamepanel/filter"
	"github.com/s0up4200/gamepanel/gamepanel"
)

// MaxConcurrency bounds parallel requests when several ids are given
const MaxConcurrency = 8

// resource describes one panel collection for the generic commands
type resource struct {
	kind   string // "user" or "server"
	get    func(ctx context.Context, api gamepanel.API, id string) (map[string]any, error)
	create func(ctx context.Context, api gamepanel.API, params map[string]any) (map[string]any, error)
	update func(ctx context.Context, api gamepanel.API, id string, params map[string]any, replaceAll bool) (map[string]any, error)
	remove func(ctx context.Context, api gamepanel.API, id string) (map[string]any, error)
}

// fetchAll runs fn for every id with bounded concurrency and keeps the
// responses in argument order
func fetchAll(ctx context.Context, ids []string, fn func(ctx context.Context, id string) (map[string]any, error)) ([]map[string]any, error) {
	results := make([]map[string]any, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			record, err := fn(ctx, id)
			if err != nil {
				return err
			}
			results[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runEach runs fn for every id with bounded concurrency without stopping at the
// first failure. errs[i] is set when the call for ids[i] failed.
func runEach(ctx context.Context, ids []string, fn func(ctx context.Context, id string) (map[string]any, error)) ([]map[string]any, []error) {
	results := make([]map[string]any, len(ids))
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(MaxConcurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i], errs[i] = fn(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}

// selectRecords applies a --where expression to fetched records
func selectRecords(where string, records []map[string]any) ([]map[string]any, error) {
	if where == "" {
		return records, nil
	}

	f, err := filter.CompileFilter(where)
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}

	// empty response bodies decode to nil and never match
	present := make([]map[string]any, 0, len(records))
	for _, record := range records {
		if record != nil {
			present = append(present, record)
		}
	}
	return filter.Apply(f, present), nil
}

// writeRecords prints a lone record as an object and anything else as a list
func (a *app) writeRecords(cmd *cobra.Command, records []map[string]any, single bool) error {
	if single && len(records) == 1 {
		return a.write(cmd, records[0])
	}
	return a.write(cmd, records)
}

// nameLookup fetches a single record by name instead of by id
type nameLookup struct {
	flag string
	name *string
	get  func(ctx context.Context, api gamepanel.API, name string) (map[string]any, error)
}

func newGetCmd(a *app, res resource, lookup *nameLookup) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "get <id>...",
		Short: fmt.Sprintf("Show one or more %ss", res.kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			byName := lookup != nil && *lookup.name != ""
			if byName && len(args) > 0 {
				return fmt.Errorf("ids cannot be combined with --%s", lookup.flag)
			}
			if !byName && len(args) == 0 {
				return fmt.Errorf("at least one %s id is required", res.kind)
			}

			var ids []string
			if !byName {
				var err error
				if ids, err = parseIDs(res.kind, args); err != nil {
					return err
				}
			}

			api, err := a.newAPI()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var records []map[string]any
			if byName {
				record, err := lookup.get(ctx, api, *lookup.name)
				if err != nil {
					return err
				}
				records = []map[string]any{record}
			} else {
				records, err = fetchAll(ctx, ids, func(ctx context.Context, id string) (map[string]any, error) {
					return res.get(ctx, api, id)
				})
				if err != nil {
					return err
				}
			}

			records, err = selectRecords(where, records)
			if err != nil {
				return err
			}
			return a.writeRecords(cmd, records, len(args) <= 1 && where == "")
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "only show records matching this expression")
	if lookup != nil {
		cmd.Flags().StringVarP(lookup.name, lookup.flag, lookup.flag[:1], "", fmt.Sprintf("look the %s up by %s", res.kind, lookup.flag))
	}
	return cmd
}

func newCreateCmd(a *app, res resource) *cobra.Command {
	var params paramsFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s", res.kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := params.parse(a.stdin)
			if err != nil {
				return err
			}
			api, err := a.newAPI()
			if err != nil {
				return err
			}

			record, err := res.create(cmd.Context(), api, attrs)
			if err != nil {
				return err
			}
			return a.write(cmd, record)
		},
	}

	params.register(cmd.Flags())
	return cmd
}

func newUpdateCmd(a *app, res resource) *cobra.Command {
	var (
		params  paramsFlags
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update a %s", res.kind),
		Long: fmt.Sprintf(`Update a %s. Only the given attributes change unless --replace is set,
in which case the %s is replaced with the given attributes.`, res.kind, res.kind),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(res.kind, args)
			if err != nil {
				return err
			}
			attrs, err := params.parse(a.stdin)
			if err != nil {
				return err
			}
			api, err := a.newAPI()
			if err != nil {
				return err
			}

			record, err := res.update(cmd.Context(), api, ids[0], attrs, replace)
			if err != nil {
				return err
			}
			return a.write(cmd, record)
		},
	}

	params.register(cmd.Flags())
	cmd.Flags().BoolVar(&replace, "replace", false, "replace all attributes instead of patching")
	return cmd
}

func newDeleteCmd(a *app, res resource) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: fmt.Sprintf("Delete one or more %ss", res.kind),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(res.kind, args)
			if err != nil {
				return err
			}
			api, err := a.newAPI()
			if err != nil {
				return err
			}

			results, errs := runEach(cmd.Context(), ids, func(ctx context.Context, id string) (map[string]any, error) {
				return res.remove(ctx, api, id)
			})

			var (
				records []map[string]any
				failed  []error
			)
			for i, id := range ids {
				if errs[i] != nil {
					failed = append(failed, fmt.Errorf("%s %s: %w", res.kind, id, errs[i]))
					continue
				}
				a.logger.Info().Str("kind", res.kind).Str("id", id).Msg("Delete request completed")
				records = append(records, results[i])
			}

			if len(failed) == 0 {
				return a.writeRecords(cmd, records, len(ids) == 1)
			}
			// the requests that went through are still reported
			if len(records) > 0 {
				if err := a.writeRecords(cmd, records, false); err != nil {
					return err
				}
			}
			return fmt.Errorf("failed to delete %d of %d %ss: %w", len(failed), len(ids), res.kind, errors.Join(failed...))
		},
	}
	return cmd
}
