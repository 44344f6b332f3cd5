package request

type CreateTenant struct {
	Name string `json:"name" validate:"required,slug"`
	// OwnerEmail optionally registers the first admin as the owner.
	OwnerEmail string `json:"owner_email" validate:"omitempty,email"`
}

type AddTenantAdmin struct {
	Email   string `json:"email" validate:"required,email"`
	IsOwner *bool  `json:"is_owner"`
}
