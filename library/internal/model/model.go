package model

type ListUsers struct {
	Paging `json:",inline"`
	Items  []User `json:"items"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

// User is a patron account. IsLibrarian marks library staff.
type User struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name" validate:"required,max=100"`
	Email       string `json:"email" db:"email" validate:"required,email,max=254"`
	IsLibrarian bool   `json:"is_librarian" db:"is_librarian"`
}

func NewUser(name, email string) User {
	return User{Name: name, Email: email}
}

func (u User) String() string {
	return u.Name
}

// Book is a catalog entry, unique by ISBN.
type Book struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title" validate:"required,max=200"`
	Author    string `json:"author" db:"author" validate:"required,max=100"`
	ISBN      string `json:"isbn" db:"isbn" validate:"required,max=13"`
	Available bool   `json:"available" db:"available"`
}

func NewBook(title, author, isbn string) Book {
	return Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Available: true,
	}
}

func (b Book) String() string {
	return b.Title
}

type UserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsLibrarian *bool  `json:"is_librarian,omitempty"`
}

func (r UserRequest) User() User {
	u := NewUser(r.Name, r.Email)
	if r.IsLibrarian != nil {
		u.IsLibrarian = *r.IsLibrarian
	}
	return u
}

type BookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Available *bool  `json:"available,omitempty"`
}

func (r BookRequest) Book() Book {
	b := NewBook(r.Title, r.Author, r.ISBN)
	if r.Available != nil {
		b.Available = *r.Available
	}
	return b
}

type ListFilter struct {
	Search string
	Page   int
	Size   int
}

type BookFilter struct {
	ListFilter
	Available *bool
}
