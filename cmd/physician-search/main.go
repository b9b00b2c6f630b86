package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zatekoja/physiciansearch/backend/internal/application/services"
	"github.com/zatekoja/physiciansearch/backend/internal/bootstrap"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/repositories"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/observability"
	"github.com/zatekoja/physiciansearch/backend/internal/output"
	"github.com/zatekoja/physiciansearch/backend/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app carries the wired services into subcommands.
type app struct {
	outputFile string
	svc        *bootstrap.Services
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "physician-search",
		Short:        "Search Medicare physician data from the CMS open-data API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			observability.InitLogger("physician-search", cfg.Logging.Environment, cfg.Logging.Level)

			svc, err := bootstrap.Build(cmd.Context(), cfg, nil)
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			a.svc = svc
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.svc != nil {
				return a.svc.Close()
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.outputFile, "output", "o", "-", "Output file path (use '-' for stdout)")

	rootCmd.AddCommand(
		newIndicationsCmd(a),
		newIndicationCmd(a),
		newProvidersCmd(a),
		newServicesCmd(a),
		newGeographyCmd(a),
	)
	return rootCmd
}

func newIndicationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "indications",
		Short: "List the clinical indications that can be searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.WriteJSON(a.outputFile, a.svc.Indication.ListIndications())
		},
	}
}

func newIndicationCmd(a *app) *cobra.Command {
	var params services.IndicationSearchParams

	cmd := &cobra.Command{
		Use:   "indication <id>",
		Short: "Rank physicians by how much they treat a clinical indication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.svc.Indication.SearchByIndication(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%d physicians ranked, %d of %d service lookups failed\n",
				result.TotalReturned, result.LookupsFailed, result.LookupsAttempted)
			return output.WriteJSON(a.outputFile, result)
		},
	}

	cmd.Flags().StringVar(&params.State, "state", "", "Two-letter state abbreviation")
	cmd.Flags().StringVar(&params.City, "city", "", "City")
	cmd.Flags().StringVar(&params.ZipCode, "zip", "", "Five-digit ZIP code")
	cmd.Flags().IntVar(&params.MaxResults, "max-results", 0, "Maximum providers to rank (default 500)")
	cmd.Flags().StringVar(&params.Year, "year", "", "Data year (default from CMS_DATA_YEAR)")
	return cmd
}

func newProvidersCmd(a *app) *cobra.Command {
	var (
		params  repositories.ProviderSearchParams
		minBene float64
	)

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Search provider summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min-beneficiaries") {
				params.MinBeneficiaries = &minBene
			}
			result, err := a.svc.Search.SearchProviders(cmd.Context(), params)
			if err != nil {
				return err
			}
			return output.WriteJSON(a.outputFile, result)
		},
	}

	cmd.Flags().StringVar(&params.NPI, "npi", "", "10-digit NPI")
	cmd.Flags().StringVar(&params.Name, "name", "", "Last or organization name contains")
	cmd.Flags().StringVar(&params.State, "state", "", "Two-letter state abbreviation")
	cmd.Flags().StringVar(&params.City, "city", "", "City")
	cmd.Flags().StringVar(&params.ZipCode, "zip", "", "Five-digit ZIP code")
	cmd.Flags().StringVar(&params.Specialty, "specialty", "", "Provider type contains")
	cmd.Flags().StringVar(&params.EntityType, "entity-type", "", "individual or organization")
	cmd.Flags().Float64Var(&minBene, "min-beneficiaries", 0, "Minimum total beneficiaries")
	cmd.Flags().StringVar(&params.SortBy, "sort", "", "Sort column or alias (beneficiaries, services, payment, risk)")
	cmd.Flags().BoolVar(&params.SortAscending, "asc", false, "Sort ascending")
	addPagingFlags(cmd, &params.Paging, &params.Year)
	return cmd
}

func newServicesCmd(a *app) *cobra.Command {
	var (
		params repositories.ServiceSearchParams
		codes  string
		drug   bool
	)

	cmd := &cobra.Command{
		Use:   "services",
		Short: "Search provider service lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.HCPCSCodes = splitList(codes)
			if cmd.Flags().Changed("drug") {
				params.DrugOnly = &drug
			}
			result, err := a.svc.Search.SearchProviderServices(cmd.Context(), params)
			if err != nil {
				return err
			}
			return output.WriteJSON(a.outputFile, result)
		},
	}

	cmd.Flags().StringVar(&params.NPI, "npi", "", "10-digit NPI")
	cmd.Flags().StringVar(&codes, "hcpcs", "", "Comma-separated HCPCS/CPT codes")
	cmd.Flags().StringVar(&params.State, "state", "", "Two-letter state abbreviation")
	cmd.Flags().StringVar(&params.Specialty, "specialty", "", "Provider type contains")
	cmd.Flags().BoolVar(&drug, "drug", false, "Only drug (true) or only non-drug (false) codes")
	cmd.Flags().StringVar(&params.PlaceOfService, "place-of-service", "", "F (facility) or O (office)")
	addPagingFlags(cmd, &params.Paging, &params.Year)
	return cmd
}

func newGeographyCmd(a *app) *cobra.Command {
	var (
		params repositories.GeographySearchParams
		codes  string
	)

	cmd := &cobra.Command{
		Use:   "geography",
		Short: "Search national and state service aggregates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.HCPCSCodes = splitList(codes)
			result, err := a.svc.Search.SearchGeography(cmd.Context(), params)
			if err != nil {
				return err
			}
			return output.WriteJSON(a.outputFile, result)
		},
	}

	cmd.Flags().StringVar(&params.Level, "level", "", "national or state")
	cmd.Flags().StringVar(&params.Code, "code", "", "State FIPS code")
	cmd.Flags().StringVar(&codes, "hcpcs", "", "Comma-separated HCPCS/CPT codes")
	cmd.Flags().StringVar(&params.PlaceOfService, "place-of-service", "", "F (facility) or O (office)")
	addPagingFlags(cmd, &params.Paging, &params.Year)
	return cmd
}

func addPagingFlags(cmd *cobra.Command, p *repositories.Paging, year *string) {
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "Page size (default 100)")
	cmd.Flags().IntVar(&p.Offset, "offset", 0, "Row offset")
	cmd.Flags().BoolVar(&p.FetchAll, "all", false, "Follow pagination")
	cmd.Flags().IntVar(&p.MaxResults, "max-results", 0, "Maximum rows when following pagination")
	cmd.Flags().StringVar(year, "year", "", "Data year (default from CMS_DATA_YEAR)")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
