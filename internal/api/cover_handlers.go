package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCoverRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generateCovers",
		Method:      http.MethodPost,
		Path:        "/api/v1/covers",
		Summary:     "Generate cover images",
		Description: "Generates cover image URLs for every book in a user's reading history. Books whose generation fails are reported individually.",
		Tags:        []string{"Covers"},
	}, s.handleGenerateCovers)
}

// === DTOs ===

// GenerateCoversRequest is the request body for cover generation.
type GenerateCoversRequest struct {
	Username string `json:"username" validate:"required" doc:"Account username"`
}

// GenerateCoversInput wraps the cover generation request for Huma.
type GenerateCoversInput struct {
	Body GenerateCoversRequest
}

// CoverFailureResponse describes a book whose cover could not be generated.
type CoverFailureResponse struct {
	BookID int    `json:"book_id" doc:"Book ID"`
	Reason string `json:"reason" doc:"Failure reason"`
}

// GenerateCoversResponse contains generated cover URLs keyed by book ID.
type GenerateCoversResponse struct {
	Images   map[int]string         `json:"images" doc:"Cover image URL per book ID"`
	Failures []CoverFailureResponse `json:"failures" doc:"Books whose generation failed"`
}

// GenerateCoversOutput wraps the cover generation response for Huma.
type GenerateCoversOutput struct {
	Body GenerateCoversResponse
}

// === Handlers ===

func (s *Server) handleGenerateCovers(ctx context.Context, input *GenerateCoversInput) (*GenerateCoversOutput, error) {
	result, err := s.services.Cover.GenerateForUser(ctx, input.Body.Username)
	if err != nil {
		return nil, err
	}

	failures := make([]CoverFailureResponse, len(result.Failures))
	for i, f := range result.Failures {
		failures[i] = CoverFailureResponse{BookID: f.BookID, Reason: f.Reason}
	}

	return &GenerateCoversOutput{
		Body: GenerateCoversResponse{
			Images:   result.Images,
			Failures: failures,
		},
	}, nil
}
