package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin     = "ADMIN"
	RoleLibrarian = "LIBRARIAN"
	RoleMember    = "MEMBER"
)

// LoanStatus is the lifecycle state of a loan.
// ISSUED is the only non-terminal state; RETURNED and OVERDUE are terminal.
// OVERDUE means "returned late" — loans are never flipped to OVERDUE while
// still outstanding.
type LoanStatus string

const (
	LoanIssued   LoanStatus = "ISSUED"
	LoanReturned LoanStatus = "RETURNED"
	LoanOverdue  LoanStatus = "OVERDUE"
)

// FineStatus is the two-state lifecycle of a fine.
type FineStatus string

const (
	FinePending FineStatus = "PENDING"
	FinePaid    FineStatus = "PAID"
)

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;default:'MEMBER'" json:"role"`
	Phone     string    `gorm:"size:15" json:"phone,omitempty"`
	Address   string    `gorm:"size:200" json:"address,omitempty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Address:   u.Address,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// IsStaff returns true for roles that may manage loans
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleLibrarian
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Book represents books table. AvailableCopies is the number of copies not
// currently on loan; it is only ever mutated through the lending flow.
// IsActive=false is a soft delete — inactive books are hidden from the
// catalog and may not be issued.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ISBN            string    `gorm:"uniqueIndex;size:13;not null" json:"isbn"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Author          string    `gorm:"size:100;not null" json:"author"`
	Publisher       string    `gorm:"size:100" json:"publisher,omitempty"`
	PublishedYear   *int      `json:"published_year,omitempty"`
	Category        string    `gorm:"size:50" json:"category,omitempty"`
	TotalCopies     int       `gorm:"not null" json:"total_copies"`
	AvailableCopies int       `gorm:"not null" json:"available_copies"`
	Description     string    `gorm:"size:500" json:"description,omitempty"`
	AddedDate       time.Time `gorm:"autoCreateTime" json:"added_date"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// IsAvailable reports whether the book can be issued right now
func (b *Book) IsAvailable() bool {
	return b.IsActive && b.AvailableCopies > 0
}

// Loan represents loans table — one book-issue transaction.
// A loan owns at most one fine (unique index on fines.loan_id).
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"index;not null" json:"book_id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	IssueDate  time.Time  `gorm:"not null;index" json:"issue_date"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     LoanStatus `gorm:"size:20;not null;default:'ISSUED';index" json:"status"`
	IssuedByID *uint      `json:"issued_by_id,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"-"`

	// Relations (lookup only, never saved through the loan)
	Book *Book `gorm:"foreignKey:BookID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Fine *Fine `gorm:"foreignKey:LoanID" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsClosed reports whether the loan reached a terminal state
func (l *Loan) IsClosed() bool {
	return l.Status == LoanReturned || l.Status == LoanOverdue
}

// LoanResponse DTO — loan enriched with book/user display fields and the
// fine amount, if a fine exists
type LoanResponse struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	BookAuthor string     `json:"book_author"`
	UserID     uint       `json:"user_id"`
	UserName   string     `json:"user_name"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status"`
	FineAmount *float64   `json:"fine_amount,omitempty"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		BookID:     l.BookID,
		UserID:     l.UserID,
		IssueDate:  l.IssueDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     string(l.Status),
	}
	if l.Book != nil {
		resp.BookTitle = l.Book.Title
		resp.BookAuthor = l.Book.Author
	}
	if l.User != nil {
		resp.UserName = l.User.Name
	}
	if l.Fine != nil {
		amount := l.Fine.Amount
		resp.FineAmount = &amount
	}
	return resp
}

// Fine represents fines table. UserID is a denormalized copy of the loan's
// borrower so the borrowing gate can query fines without a join.
type Fine struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	LoanID      uint       `gorm:"uniqueIndex;not null" json:"loan_id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status      FineStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CreatedDate time.Time  `gorm:"not null;index" json:"created_date"`
	PaidDate    *time.Time `json:"paid_date"`
	Reason      string     `gorm:"size:200" json:"reason,omitempty"`

	Loan *Loan `gorm:"foreignKey:LoanID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Fine) TableName() string {
	return "fines"
}

// FineResponse DTO — fine enriched with the owing user's name and the book title
type FineResponse struct {
	ID          uint       `json:"id"`
	LoanID      uint       `json:"loan_id"`
	UserID      uint       `json:"user_id"`
	UserName    string     `json:"user_name"`
	BookTitle   string     `json:"book_title"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	CreatedDate time.Time  `json:"created_date"`
	PaidDate    *time.Time `json:"paid_date"`
	Reason      string     `json:"reason,omitempty"`
}

func (f *Fine) ToResponse() *FineResponse {
	resp := &FineResponse{
		ID:          f.ID,
		LoanID:      f.LoanID,
		UserID:      f.UserID,
		Amount:      f.Amount,
		Status:      string(f.Status),
		CreatedDate: f.CreatedDate,
		PaidDate:    f.PaidDate,
		Reason:      f.Reason,
	}
	if f.User != nil {
		resp.UserName = f.User.Name
	}
	if f.Loan != nil && f.Loan.Book != nil {
		resp.BookTitle = f.Loan.Book.Title
	}
	return resp
}

// AutoMigrate runs migrations for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Book{},
		&Loan{},
		&Fine{},
	)
}
