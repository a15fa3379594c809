package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// IssueToken exchanges credentials for an access token via POST /token/.
// The refresh token travels in an http-only cookie the client never reads.
func (c *Client) IssueToken(ctx context.Context, email, password string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp struct {
		Access string `json:"access"`
	}
	if err := c.do(ctx, http.MethodPost, "/token/", body, &resp); err != nil {
		return "", err
	}

	if resp.Access == "" {
		return "", fmt.Errorf("%w: token response missing access field", ErrDecodeResponse)
	}

	return resp.Access, nil
}

// Me fetches the profile of the user the bearer credential belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/users/me/", nil, &user)
	return user, err
}

// Register creates an account via POST /api/user/register/.
// The new account is not logged in; callers sign in afterwards.
func (c *Client) Register(ctx context.Context, params RegisterParams) error {
	return c.do(ctx, http.MethodPost, "/api/user/register/", params, nil)
}

// ListBooks fetches the full catalog. For bearer-authenticated callers the
// response also carries the caller's currently reserved books.
func (c *Client) ListBooks(ctx context.Context) (BookList, error) {
	var list BookList
	err := c.do(ctx, http.MethodGet, "/books/", nil, &list)
	return list, err
}

// GetBook fetches a single catalog entry.
func (c *Client) GetBook(ctx context.Context, id int64) (Book, error) {
	var resp struct {
		Book Book `json:"book"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d/", id), nil, &resp)
	return resp.Book, err
}

// ListAuthors fetches all authors.
func (c *Client) ListAuthors(ctx context.Context) ([]Author, error) {
	var resp struct {
		Authors []Author `json:"authors"`
	}
	err := c.do(ctx, http.MethodGet, "/all-authors/", nil, &resp)
	return resp.Authors, err
}

// ListPublishers fetches all publishers.
func (c *Client) ListPublishers(ctx context.Context) ([]Publisher, error) {
	var resp struct {
		Publishers []Publisher `json:"publishers"`
	}
	err := c.do(ctx, http.MethodGet, "/all-publishers/", nil, &resp)
	return resp.Publishers, err
}

// BooksByAuthor fetches an author together with their books.
func (c *Client) BooksByAuthor(ctx context.Context, authorID int64) (AuthorBooks, error) {
	var resp AuthorBooks
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/authors/%d/livres/", authorID), nil, &resp)
	return resp, err
}

// ReserveBook places a reservation via POST /books/{id}/reserver/.
// Quota and uniqueness are enforced server-side; the returned message is the
// backend's confirmation text.
func (c *Client) ReserveBook(ctx context.Context, titleID int64) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/books/%d/reserver/", titleID), nil, &resp)
	return resp.Message, err
}

// MyReservations fetches the authenticated user's reservation list, in the
// order the backend returns it.
func (c *Client) MyReservations(ctx context.Context) ([]Reservation, error) {
	var resp struct {
		Reservations []Reservation `json:"reservations"`
	}
	err := c.do(ctx, http.MethodGet, "/my-reservations/", nil, &resp)
	return resp.Reservations, err
}

// CancelReservation deletes a reservation by id.
func (c *Client) CancelReservation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reservations/%d/", id), nil, nil)
}
