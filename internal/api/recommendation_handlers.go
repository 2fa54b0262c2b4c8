package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnextapp/readnext-server/internal/catalog"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations",
		Summary:     "Get recommendations",
		Description: "Returns unread book recommendations for a genre, optionally narrowed to authors matching a filter. Unknown users and genres produce empty lists.",
		Tags:        []string{"Recommendations"},
	}, s.handleGetRecommendations)
}

// === DTOs ===

// RecommendationsInput contains parameters for fetching recommendations.
type RecommendationsInput struct {
	Username string `query:"username" required:"true" doc:"Account username"`
	Genre    string `query:"genre" required:"true" doc:"Genre to recommend from"`
	Author   string `query:"author" doc:"Author name filter, matched case-insensitively"`
}

// CandidateResponse contains a recommended book.
type CandidateResponse struct {
	Name      string `json:"name" doc:"Book title"`
	Author    string `json:"author" doc:"Book author"`
	ImageURL  string `json:"image,omitempty" doc:"Cover image URL"`
	URL       string `json:"url,omitempty" doc:"Book detail URL"`
	AuthorURL string `json:"author_url,omitempty" doc:"Author detail URL"`
}

// RecommendationsResponse contains the two recommendation lists.
type RecommendationsResponse struct {
	Recommendations []CandidateResponse `json:"recommendations" doc:"Unread books matching the author filter"`
	Suggestions     []CandidateResponse `json:"suggestions" doc:"Unread books across the whole genre"`
}

// RecommendationsOutput wraps the recommendations response for Huma.
type RecommendationsOutput struct {
	Body RecommendationsResponse
}

// === Handlers ===

func (s *Server) handleGetRecommendations(ctx context.Context, input *RecommendationsInput) (*RecommendationsOutput, error) {
	result, err := s.services.Recommendation.Recommend(ctx, input.Username, input.Genre, input.Author)
	if err != nil {
		return nil, err
	}

	return &RecommendationsOutput{
		Body: RecommendationsResponse{
			Recommendations: mapCandidateResponses(result.Recommendations),
			Suggestions:     mapCandidateResponses(result.Suggestions),
		},
	}, nil
}

// === Helpers ===

func mapCandidateResponses(candidates []catalog.Candidate) []CandidateResponse {
	resp := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		resp[i] = CandidateResponse{
			Name:      c.Name,
			Author:    c.Author,
			ImageURL:  c.ImageURL,
			URL:       c.URL,
			AuthorURL: c.AuthorURL,
		}
	}
	return resp
}
