package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/orgboard/internal/cli/pagination"
	"github.com/rshade/orgboard/internal/config"
	"github.com/rshade/orgboard/internal/gql"
	"github.com/rshade/orgboard/internal/listing"
	"github.com/rshade/orgboard/internal/orgs"
	"github.com/rshade/orgboard/internal/query"
	"github.com/rshade/orgboard/internal/tui"
)

// Output formats of the orgs command.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// dateLayout is the format of --from and --to.
const dateLayout = "2006-01-02"

// Errors returned for bad orgs flags.
var (
	ErrUnknownKit    = errors.New("unknown kit")
	ErrInvalidOutput = errors.New("output must be 'table' or 'json'")
	ErrDateOrder     = errors.New("--to must not be before --from")
)

type orgsParams struct {
	sort        string
	policy      string
	kits        []string
	from        string
	to          string
	withProfile bool
	output      string
	plain       bool
	page        pagination.Params
}

// NewOrgsCmd creates the orgs command. On a terminal it opens the interactive dashboard;
// otherwise, or with --plain or --output json, it prints one page and exits.
func NewOrgsCmd() *cobra.Command {
	var params orgsParams

	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "List organisations",
		Long: `List organisations with their assets under management, activity and score.

Sort with --sort field[:asc|desc], where field is one of ens, aum, activity, score or
createdAt. Filter by template kit (label such as Multisig, or a factory address), by
creation date and by profile presence. Page with the cursors printed below each page.`,
		Example: `  orgboard orgs
  orgboard orgs --sort activity --kit Company --kit Membership --plain
  orgboard orgs --from 2020-01-01 --with-profile --output json
  orgboard orgs --after b3JnOjk --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrgs(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.sort, "sort", "", "sort as field[:asc|desc] (default from config client.sort)")
	cmd.Flags().StringVar(&params.policy, "sort-policy", "",
		"direction when switching sort field in the dashboard: reset or keep")
	cmd.Flags().StringSliceVar(&params.kits, "kit", nil, "template kit label or factory address (repeatable)")
	cmd.Flags().StringVar(&params.from, "from", "", "only organisations created on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.to, "to", "", "only organisations created on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&params.withProfile, "with-profile", false, "only organisations that published a profile")
	cmd.Flags().StringVarP(&params.output, "output", "o", outputTable, "output format: table or json")
	cmd.Flags().BoolVar(&params.plain, "plain", false, "print one page instead of opening the dashboard")
	params.page.AddFlags(cmd)

	return cmd
}

func runOrgs(cmd *cobra.Command, params orgsParams) error {
	ctx := cmd.Context()
	log := logger.With().Str("operation", "orgs").Logger()

	output := strings.ToLower(strings.TrimSpace(params.output))
	if output != outputTable && output != outputJSON {
		return fmt.Errorf("%w: got %q", ErrInvalidOutput, params.output)
	}
	if err := params.page.Validate(); err != nil {
		return err
	}

	state, err := buildState(params)
	if err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()
	client := gql.NewClient(cfg.Client.Endpoint,
		gql.WithRetries(cfg.Client.Retries),
		gql.WithLogger(log),
	)
	interactive := output == outputTable && !params.plain && isWriterTerminal(cmd.OutOrStdout())

	execLogger := log
	if interactive && !fileLogging {
		execLogger = zerolog.Nop()
	}
	exec := query.NewExecutor(client,
		query.WithTimeout(cfg.Client.Timeout),
		query.WithLogger(execLogger),
	)

	log.Debug().Ctx(ctx).
		Str("endpoint", client.Endpoint()).
		Str("sort", state.Sort().String()).
		Bool("interactive", interactive).
		Msg("listing organisations")

	if interactive {
		return runDashboard(cmd, state, exec)
	}

	conn, err := exec.Run(ctx, state.Variables())
	if err != nil {
		return fmt.Errorf("fetching organisations: %w", err)
	}
	if output == outputJSON {
		return renderOrgsJSON(cmd.OutOrStdout(), state.Variables(), conn)
	}
	return renderOrgsTable(cmd.OutOrStdout(), state.Sort(), conn, time.Now())
}

// runDashboard runs the interactive listing until the user quits.
func runDashboard(cmd *cobra.Command, state *listing.State, exec *query.Executor) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	opener := BrowserOpener{}
	navigator := NewRouteNavigator(cfg.Client.WebURL, opener, logger)
	model := tui.NewOrganisationsModel(ctx, state, exec, tui.Options{
		AppURL:    cfg.Client.AppURL,
		Navigator: navigator,
		Opener:    opener,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// buildState turns the flags and the configured defaults into the initial listing state.
func buildState(params orgsParams) (*listing.State, error) {
	cfg := config.GetGlobalConfig()

	sortSpec := cfg.Client.Sort
	if params.sort != "" {
		sortSpec = params.sort
	}
	spec, err := orgs.ParseSortSpec(sortSpec)
	if err != nil {
		return nil, fmt.Errorf("--sort: %w", err)
	}

	policyName := cfg.Client.SortPolicy
	if params.policy != "" {
		policyName = params.policy
	}
	policy, err := listing.ParseSortPolicy(policyName)
	if err != nil {
		return nil, fmt.Errorf("--sort-policy: %w", err)
	}

	filter, err := buildFilter(params)
	if err != nil {
		return nil, err
	}

	return listing.New(
		listing.WithSort(spec),
		listing.WithFilter(filter),
		listing.WithPage(params.page.Directive()),
		listing.WithPolicy(policy),
	), nil
}

// buildFilter resolves kit labels to their factory addresses and parses the date bounds.
// --to is inclusive of the whole day.
func buildFilter(params orgsParams) (orgs.Filter, error) {
	var f orgs.Filter

	for _, k := range params.kits {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(k), "0x") {
			f.Kit = append(f.Kit, k)
			continue
		}
		item, ok := orgs.KitByLabel(k)
		if !ok {
			return orgs.Filter{}, fmt.Errorf("%w: %q", ErrUnknownKit, k)
		}
		f.Kit = append(f.Kit, item.Value...)
	}

	var r orgs.DateRange
	if params.from != "" {
		from, err := time.Parse(dateLayout, params.from)
		if err != nil {
			return orgs.Filter{}, fmt.Errorf("--from: expected YYYY-MM-DD: %w", err)
		}
		r.From = from
	}
	if params.to != "" {
		to, err := time.Parse(dateLayout, params.to)
		if err != nil {
			return orgs.Filter{}, fmt.Errorf("--to: expected YYYY-MM-DD: %w", err)
		}
		r.To = to.Add(24*time.Hour - time.Second)
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return orgs.Filter{}, ErrDateOrder
	}
	if !r.IsZero() {
		f.CreatedAt = &r
	}

	f.Profile = params.withProfile
	return f, nil
}
