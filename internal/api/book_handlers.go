package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnextapp/readnext-server/internal/domain"
	"github.com/readnextapp/readnext-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List read books",
		Description: "Returns a user's reading history in the order books were added.",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "addBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Record a read book",
		Description: "Adds a book to a user's reading history. The same title by the same author cannot be recorded twice.",
		Tags:        []string{"Books"},
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books",
		Summary:     "Remove a read book",
		Description: "Removes a book from a user's reading history by its ID.",
		Tags:        []string{"Books"},
	}, s.handleRemoveBook)
}

// === DTOs ===

// ListBooksInput contains parameters for listing a reading history.
type ListBooksInput struct {
	Username string `query:"username" required:"true" doc:"Account username"`
}

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID     int    `json:"id" doc:"Book ID, unique within the user's history"`
	Name   string `json:"name" doc:"Book title"`
	Author string `json:"author" doc:"Book author"`
	Genre  string `json:"genre" doc:"Book genre"`
}

// ListBooksResponse contains a user's reading history.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"Books in the reading history"`
}

// ListBooksOutput wraps the list books response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// AddBookRequest is the request body for recording a read book.
type AddBookRequest struct {
	Username string `json:"username" validate:"required" doc:"Account username"`
	Name     string `json:"name" validate:"required" doc:"Book title"`
	Author   string `json:"author" validate:"required" doc:"Book author"`
	Genre    string `json:"genre" validate:"required" doc:"Book genre"`
}

// AddBookInput wraps the add book request for Huma.
type AddBookInput struct {
	Body AddBookRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// RemoveBookRequest is the request body for removing a read book.
type RemoveBookRequest struct {
	Username string `json:"username" validate:"required" doc:"Account username"`
	ID       int    `json:"id" validate:"required" doc:"Book ID"`
}

// RemoveBookInput wraps the remove book request for Huma.
type RemoveBookInput struct {
	Body RemoveBookRequest
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	books, err := s.services.Book.List(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: mapBookResponses(books)}}, nil
}

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*BookOutput, error) {
	book, err := s.services.Book.Add(ctx, service.AddBookRequest{
		Username: input.Body.Username,
		Name:     input.Body.Name,
		Author:   input.Body.Author,
		Genre:    input.Body.Genre,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(*book)}, nil
}

func (s *Server) handleRemoveBook(ctx context.Context, input *RemoveBookInput) (*MessageOutput, error) {
	if err := s.services.Book.Remove(ctx, input.Body.Username, input.Body.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book removed"}}, nil
}

// === Helpers ===

func mapBookResponse(book domain.Book) BookResponse {
	return BookResponse{
		ID:     book.ID,
		Name:   book.Name,
		Author: book.Author,
		Genre:  book.Genre,
	}
}

func mapBookResponses(books []domain.Book) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = mapBookResponse(b)
	}
	return resp
}
