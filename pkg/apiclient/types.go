package apiclient

import (
	"encoding/json"
	"fmt"
	"time"
)

// Author mirrors the backend's author resource.
type Author struct {
	ID       int64  `json:"au_id"`
	Name     string `json:"author"`
	YearBorn int    `json:"year_born"`
}

// Publisher mirrors the backend's publisher resource.
type Publisher struct {
	ID          int64  `json:"pubid"`
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

// Book mirrors the backend's title resource.
type Book struct {
	ID            int64    `json:"title_id"`
	ISBN          string   `json:"isbn"`
	Title         string   `json:"title"`
	YearPublished int      `json:"year_published"`
	PublisherID   int64    `json:"pubid"`
	Description   string   `json:"description"`
	Notes         string   `json:"notes"`
	Subject       string   `json:"subject"`
	Comments      string   `json:"comments"`
	CoverImage    string   `json:"cover_image"`
	Authors       []Author `json:"authors"`
}

// User mirrors the backend's user profile. The password field is write-only
// server-side and never appears in responses.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
}

// BookRef identifies the book a reservation points at. The backend serializes
// it as a bare primary key, but older responses nested the full title object;
// both decode into the same reference so the integration contract survives a
// backend serializer change.
type BookRef struct {
	ID    int64  `json:"title_id"`
	Title string `json:"title,omitempty"`
}

func (r *BookRef) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*r = BookRef{ID: id}
		return nil
	}

	type bookRef BookRef
	var nested bookRef
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("apiclient: unmarshal book reference: %w", err)
	}

	*r = BookRef(nested)
	return nil
}

func (r BookRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Reservation mirrors the backend's reservation resource.
type Reservation struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user"`
	Book       BookRef    `json:"book"`
	ReservedAt time.Time  `json:"reserved_at"`
	ReturnedAt *time.Time `json:"returned_at"`
}

// Active reports whether the reserved book is still out.
func (r Reservation) Active() bool {
	return r.ReturnedAt == nil
}

// BookList is the catalog listing. ReservedByUser is only populated for
// bearer-authenticated requests.
type BookList struct {
	Books          []Book `json:"books"`
	ReservedByUser []Book `json:"reserved_books_by_user"`
}

// AuthorBooks is the per-author listing.
type AuthorBooks struct {
	Author Author `json:"author"`
	Books  []Book `json:"books"`
}

// RegisterParams is the sign-up payload.
type RegisterParams struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}
