package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// Admin exposes the administrative CRUD endpoints backed by the DRF router
// (/titles/, /authors/, /publishers/, /users/, /reservations/). The backend
// enforces staff permissions; calls with a non-staff bearer credential come
// back as *APIError with a 403 status.
type Admin struct {
	c *Client
}

// Admin returns the administrative surface of the client.
func (c *Client) Admin() Admin {
	return Admin{c: c}
}

// Patch carries a partial update. Keys are the backend's JSON field names.
type Patch map[string]any

func adminList[T any](ctx context.Context, c *Client, resource string) ([]T, error) {
	var items []T
	err := c.do(ctx, http.MethodGet, "/"+resource+"/", nil, &items)
	return items, err
}

func adminGet[T any](ctx context.Context, c *Client, resource string, id int64) (T, error) {
	var item T
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/%d/", resource, id), nil, &item)
	return item, err
}

func adminCreate[T any](ctx context.Context, c *Client, resource string, params any) (T, error) {
	var created T
	err := c.do(ctx, http.MethodPost, "/"+resource+"/", params, &created)
	return created, err
}

func adminUpdate[T any](ctx context.Context, c *Client, resource string, id int64, patch Patch) (T, error) {
	var updated T
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/%s/%d/", resource, id), patch, &updated)
	return updated, err
}

func adminDelete(ctx context.Context, c *Client, resource string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%d/", resource, id), nil, nil)
}

// TitleParams is the writable subset of a title. Authors are attached
// server-side via the many-to-many relation.
type TitleParams struct {
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	YearPublished int    `json:"year_published"`
	PublisherID   int64  `json:"pubid"`
	Description   string `json:"description"`
	Notes         string `json:"notes,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Comments      string `json:"comments,omitempty"`
}

func (a Admin) ListTitles(ctx context.Context) ([]Book, error) {
	return adminList[Book](ctx, a.c, "titles")
}

func (a Admin) GetTitle(ctx context.Context, id int64) (Book, error) {
	return adminGet[Book](ctx, a.c, "titles", id)
}

func (a Admin) CreateTitle(ctx context.Context, params TitleParams) (Book, error) {
	return adminCreate[Book](ctx, a.c, "titles", params)
}

func (a Admin) UpdateTitle(ctx context.Context, id int64, patch Patch) (Book, error) {
	return adminUpdate[Book](ctx, a.c, "titles", id, patch)
}

func (a Admin) DeleteTitle(ctx context.Context, id int64) error {
	return adminDelete(ctx, a.c, "titles", id)
}

// AuthorParams is the writable subset of an author.
type AuthorParams struct {
	Name     string `json:"author"`
	YearBorn int    `json:"year_born"`
}

func (a Admin) ListAuthors(ctx context.Context) ([]Author, error) {
	return adminList[Author](ctx, a.c, "authors")
}

func (a Admin) CreateAuthor(ctx context.Context, params AuthorParams) (Author, error) {
	return adminCreate[Author](ctx, a.c, "authors", params)
}

func (a Admin) UpdateAuthor(ctx context.Context, id int64, patch Patch) (Author, error) {
	return adminUpdate[Author](ctx, a.c, "authors", id, patch)
}

func (a Admin) DeleteAuthor(ctx context.Context, id int64) error {
	return adminDelete(ctx, a.c, "authors", id)
}

// PublisherParams is the writable subset of a publisher.
type PublisherParams struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Telephone   string `json:"telephone"`
	Fax         string `json:"fax"`
	Comments    string `json:"comments"`
}

func (a Admin) ListPublishers(ctx context.Context) ([]Publisher, error) {
	return adminList[Publisher](ctx, a.c, "publishers")
}

func (a Admin) CreatePublisher(ctx context.Context, params PublisherParams) (Publisher, error) {
	return adminCreate[Publisher](ctx, a.c, "publishers", params)
}

func (a Admin) UpdatePublisher(ctx context.Context, id int64, patch Patch) (Publisher, error) {
	return adminUpdate[Publisher](ctx, a.c, "publishers", id, patch)
}

func (a Admin) DeletePublisher(ctx context.Context, id int64) error {
	return adminDelete(ctx, a.c, "publishers", id)
}

// UserParams is the writable subset of a user account.
type UserParams struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
	IsStaff     *bool  `json:"is_staff,omitempty"`
}

func (a Admin) ListUsers(ctx context.Context) ([]User, error) {
	return adminList[User](ctx, a.c, "users")
}

func (a Admin) CreateUser(ctx context.Context, params UserParams) (User, error) {
	return adminCreate[User](ctx, a.c, "users", params)
}

func (a Admin) UpdateUser(ctx context.Context, id int64, patch Patch) (User, error) {
	return adminUpdate[User](ctx, a.c, "users", id, patch)
}

func (a Admin) DeleteUser(ctx context.Context, id int64) error {
	return adminDelete(ctx, a.c, "users", id)
}

func (a Admin) ListReservations(ctx context.Context) ([]Reservation, error) {
	return adminList[Reservation](ctx, a.c, "reservations")
}

// UpdateReservation patches a reservation, typically to set returned_at when
// a book comes back.
func (a Admin) UpdateReservation(ctx context.Context, id int64, patch Patch) (Reservation, error) {
	return adminUpdate[Reservation](ctx, a.c, "reservations", id, patch)
}

func (a Admin) DeleteReservation(ctx context.Context, id int64) error {
	return adminDelete(ctx, a.c, "reservations", id)
}
