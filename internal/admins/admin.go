package admins

import "time"

// Admin is a back-office account.
type Admin struct {
	ID        int       `json:"id" validate:"required,gt=0"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminPage is one page of the paginated admin listing.
type AdminPage struct {
	Items  []Admin `json:"items" validate:"dive"`
	Total  int     `json:"total" validate:"gte=0"`
	Limit  int     `json:"limit" validate:"gte=1"`
	Offset int     `json:"offset" validate:"gte=0"`
}

// CreateAdminInput is the payload for provisioning an admin account.
type CreateAdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
