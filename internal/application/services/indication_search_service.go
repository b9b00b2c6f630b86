package services

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/providers"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/repositories"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/observability"
	"github.com/zatekoja/physiciansearch/backend/pkg/config"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

const (
	maxServiceLookups     = 10
	defaultMaxProviders   = 500
	defaultMaxServiceRows = 100
)

// StandingLimitations are the data-quality caveats attached to every
// indication search.
var StandingLimitations = []string{
	"Covers Medicare fee-for-service (Part B) claims only; Medicare Advantage and commercial patients are not represented.",
	"CMS suppresses counts below 11 beneficiaries, so low-volume providers and services may be missing or understated.",
	"Billing codes are a proxy for the clinical indication, not proof that a patient had it.",
}

// IndicationSearchParams narrows an indication search
type IndicationSearchParams struct {
	State      string
	City       string
	ZipCode    string
	MaxResults int
	Year       string
}

// IndicationSearchService ranks physicians by how much they treat a clinical
// indication, combining the provider and provider-by-service datasets
type IndicationSearchService struct {
	catalog        providers.IndicationCatalog
	repo           repositories.PhysicianRepository
	metrics        *observability.Metrics
	maxLookups     int
	concurrency    int
	timeout        time.Duration
	maxProviders   int
	maxServiceRows int
}

// NewIndicationSearchService creates a new indication search service
func NewIndicationSearchService(catalog providers.IndicationCatalog, repo repositories.PhysicianRepository, cfg config.EnrichmentConfig, metrics *observability.Metrics) *IndicationSearchService {
	s := &IndicationSearchService{
		catalog:        catalog,
		repo:           repo,
		metrics:        metrics,
		maxLookups:     cfg.MaxLookups,
		concurrency:    cfg.Concurrency,
		timeout:        cfg.Timeout,
		maxProviders:   cfg.MaxProviders,
		maxServiceRows: cfg.MaxServiceRows,
	}
	if s.maxLookups < 0 || s.maxLookups > maxServiceLookups {
		s.maxLookups = maxServiceLookups
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}
	if s.maxProviders <= 0 {
		s.maxProviders = defaultMaxProviders
	}
	if s.maxServiceRows <= 0 {
		s.maxServiceRows = defaultMaxServiceRows
	}
	return s
}

// ListIndications returns the indication catalog
func (s *IndicationSearchService) ListIndications() []entities.Indication {
	return s.catalog.GetAllIndications()
}

// lookupOutcome is the aggregated service volume of one NPI.
type lookupOutcome struct {
	services      float64
	beneficiaries float64
	codes         []string
	rows          int
	err           error
}

// SearchByIndication finds providers in the indication's specialties, looks
// up indication-specific service volume for the largest of them, and returns
// all of them ranked by relevance. Failed volume lookups degrade to zero
// volume; only catalog and provider-search failures are returned as errors.
func (s *IndicationSearchService) SearchByIndication(ctx context.Context, indicationID string, params IndicationSearchParams) (*entities.IndicationSearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "IndicationSearchService.SearchByIndication")
	defer span.End()
	logger := observability.LoggerFromContext(ctx).With().Str("indication", indicationID).Logger()

	logger.Debug().Str("phase", "resolving").Msg("Indication search started")
	indication, ok := s.catalog.GetIndicationByID(indicationID)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("unknown indication %q", indicationID))
	}
	if err := validateState(params.State); err != nil {
		return nil, err
	}
	if params.MaxResults < 0 {
		return nil, apperrors.NewValidationError("max_results must not be negative")
	}

	maxResults := params.MaxResults
	if maxResults <= 0 || maxResults > s.maxProviders {
		maxResults = s.maxProviders
	}

	logger.Debug().Str("phase", "provider_search").Int("max_results", maxResults).Msg("Searching providers")
	providerResult, err := s.repo.SearchProviders(ctx, repositories.ProviderSearchParams{
		State:                  params.State,
		City:                   params.City,
		ZipCode:                params.ZipCode,
		Specialties:            indication.Specialties,
		MinChronicConditionPct: indication.ComorbidityFilters,
		SortBy:                 "Tot_Benes",
		Year:                   params.Year,
		Paging:                 repositories.Paging{FetchAll: true, MaxResults: maxResults},
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("provider search for indication %s: %w", indication.ID, err)
	}

	codes := indication.RelevantCodes()
	npis := s.lookupTargets(providerResult.Records)
	if len(codes) == 0 {
		npis = nil
	}

	logger.Debug().Str("phase", "service_enrichment").
		Int("providers", providerResult.TotalReturned).
		Int("lookups", len(npis)).
		Msg("Looking up indication service volume")
	outcomes := s.lookupServices(ctx, indication.ID, npis, codes, providerResult.DataYear)

	byNPI := make(map[string]*lookupOutcome, len(npis))
	failed := 0
	for i, npi := range npis {
		byNPI[npi] = &outcomes[i]
		if outcomes[i].err != nil {
			failed++
		}
	}

	logger.Debug().Str("phase", "ranking").Msg("Ranking physicians")
	physicians := make([]entities.EnrichedPhysician, 0, len(providerResult.Records))
	for _, provider := range providerResult.Records {
		physicians = append(physicians, enrich(provider, byNPI[provider.NPI]))
	}
	physicians = RankPhysicians(physicians)

	limitations := append([]string(nil), StandingLimitations...)
	if len(codes) == 0 {
		limitations = append(limitations, "This indication has no billing codes, so no provider volume could be checked.")
	}
	if unchecked := countDistinct(providerResult.Records) - len(npis); len(npis) > 0 && unchecked > 0 {
		limitations = append(limitations, fmt.Sprintf(
			"Indication-specific volume was checked for the top %d providers only; %d others are ranked on overall beneficiary count.", len(npis), unchecked))
	}
	if failed > 0 {
		limitations = append(limitations, fmt.Sprintf(
			"Service lookups failed for %d of %d providers; they are shown with zero indication volume.", failed, len(npis)))
	}

	observability.SetSpanAttributes(span,
		attribute.Int("indication.providers", len(physicians)),
		attribute.Int("indication.lookups", len(npis)),
		attribute.Int("indication.lookups_failed", failed),
	)
	logger.Info().Str("phase", "done").
		Int("physicians", len(physicians)).
		Int("lookups", len(npis)).
		Int("lookups_failed", failed).
		Msg("Indication search completed")

	return &entities.IndicationSearchResult{
		Indication:       *indication,
		Physicians:       physicians,
		TotalReturned:    len(physicians),
		PageCount:        providerResult.PageCount,
		HasMore:          providerResult.HasMore,
		DataYear:         providerResult.DataYear,
		LookupsAttempted: len(npis),
		LookupsFailed:    failed,
		Limitations:      limitations,
	}, nil
}

// lookupTargets returns the first distinct NPIs in provider order, up to the
// fan-out cap.
func (s *IndicationSearchService) lookupTargets(records []entities.Provider) []string {
	seen := make(map[string]struct{}, s.maxLookups)
	npis := make([]string, 0, s.maxLookups)
	for _, p := range records {
		if len(npis) == s.maxLookups {
			break
		}
		if p.NPI == "" {
			continue
		}
		if _, dup := seen[p.NPI]; dup {
			continue
		}
		seen[p.NPI] = struct{}{}
		npis = append(npis, p.NPI)
	}
	return npis
}

// lookupServices runs one service search per NPI. Every lookup writes only
// its own slot; failures are logged and kept in the slot, never returned.
func (s *IndicationSearchService) lookupServices(ctx context.Context, indicationID string, npis, codes []string, year string) []lookupOutcome {
	outcomes := make([]lookupOutcome, len(npis))
	if len(npis) == 0 {
		return outcomes
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, npi := range npis {
		g.Go(func() error {
			result, err := s.repo.SearchServices(ctx, repositories.ServiceSearchParams{
				NPI:        npi,
				HCPCSCodes: codes,
				Year:       year,
				Paging:     repositories.Paging{Limit: s.maxServiceRows},
			})
			if err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).
					Str("indication", indicationID).
					Str("npi", npi).
					Msg("Service lookup failed, treating as zero volume")
				observability.RecordLookupFailure(ctx, s.metrics, indicationID)
				outcomes[i] = lookupOutcome{err: err}
				return nil
			}
			outcomes[i] = aggregateServices(result.Records)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func aggregateServices(rows []entities.ProviderService) lookupOutcome {
	out := lookupOutcome{rows: len(rows)}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		out.services += entities.Float(row.Services)
		out.beneficiaries += entities.Float(row.Beneficiaries)
		if row.HCPCSCode == "" {
			continue
		}
		if _, dup := seen[row.HCPCSCode]; !dup {
			seen[row.HCPCSCode] = struct{}{}
			out.codes = append(out.codes, row.HCPCSCode)
		}
	}
	return out
}

// enrich builds a new EnrichedPhysician; provider is copied, never modified.
func enrich(provider entities.Provider, outcome *lookupOutcome) entities.EnrichedPhysician {
	ep := entities.EnrichedPhysician{
		Provider:         provider,
		RelevantCodes:    []string{},
		EnrichmentStatus: entities.EnrichmentNotChecked,
	}
	switch {
	case outcome == nil:
	case outcome.err != nil:
		ep.EnrichmentStatus = entities.EnrichmentFailed
	case outcome.rows == 0:
		ep.EnrichmentStatus = entities.EnrichmentNoMatch
	default:
		ep.EnrichmentStatus = entities.EnrichmentMatched
		ep.IndicationServices = outcome.services
		ep.IndicationBeneficiaries = outcome.beneficiaries
		ep.RelevantCodes = append(ep.RelevantCodes, outcome.codes...)
	}
	return ep
}

func countDistinct(records []entities.Provider) int {
	seen := make(map[string]struct{}, len(records))
	for _, p := range records {
		if p.NPI != "" {
			seen[p.NPI] = struct{}{}
		}
	}
	return len(seen)
}
