package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/physiciansearch/backend/internal/application/services"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

func TestPhysicianSearchService_Validation(t *testing.T) {
	tests := []struct {
		name string
		call func(*services.PhysicianSearchService) error
	}{
		{"short npi", func(s *services.PhysicianSearchService) error {
			_, err := s.SearchProviders(context.Background(), repositories.ProviderSearchParams{NPI: "12345"})
			return err
		}},
		{"non-numeric npi", func(s *services.PhysicianSearchService) error {
			_, err := s.SearchProviderServices(context.Background(), repositories.ServiceSearchParams{NPI: "12345abcde"})
			return err
		}},
		{"bad state", func(s *services.PhysicianSearchService) error {
			_, err := s.SearchProviders(context.Background(), repositories.ProviderSearchParams{State: "Texas"})
			return err
		}},
		{"negative offset", func(s *services.PhysicianSearchService) error {
			_, err := s.SearchProviders(context.Background(), repositories.ProviderSearchParams{Paging: repositories.Paging{Offset: -1}})
			return err
		}},
		{"too many results", func(s *services.PhysicianSearchService) error {
			_, err := s.SearchProviders(context.Background(), repositories.ProviderSearchParams{Paging: repositories.Paging{MaxResults: 10000}})
			return err
		}},
		{"bad geography level", func(s *services.PhysicianSearchService) error {
			_, err := s.SearchGeography(context.Background(), repositories.GeographySearchParams{Level: "county"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPhysicianRepository)
			err := tt.call(services.NewPhysicianSearchService(repo))

			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
			assert.Empty(t, repo.Calls)
		})
	}
}

func TestPhysicianSearchService_DelegatesToRepository(t *testing.T) {
	repo := new(MockPhysicianRepository)
	svc := services.NewPhysicianSearchService(repo)

	params := repositories.ProviderSearchParams{NPI: "1003000126", State: "md"}
	expected := &entities.SearchResult[entities.Provider]{
		Records:       []entities.Provider{{NPI: "1003000126"}},
		TotalReturned: 1,
		PageCount:     1,
		DataYear:      "2022",
	}
	repo.On("SearchProviders", mock.Anything, params).Return(expected, nil)

	result, err := svc.SearchProviders(context.Background(), params)

	require.NoError(t, err)
	assert.Same(t, expected, result)
	repo.AssertExpectations(t)
}
