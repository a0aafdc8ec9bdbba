package model

// User represents a player profile.
//
// AvailabilityIDs is the ordered collection of availability records this
// user owns (insertion order; the first element is the representative slot
// exposed in UserData). GameIDs is the projection of the plays relation and
// stays symmetric with each game's member set.
type User struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Phone           string   `json:"phone,omitempty"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	Region          string   `json:"region"`
	LoginName       string   `json:"login_name"`
	Email           string   `json:"email"`
	Hash            string   `json:"-"` // Never expose password hash
	AvailabilityIDs []string `json:"availabilities,omitempty"`
	GameIDs         []string `json:"game_ids,omitempty"`
}

// RepresentativeAvailabilityID returns the id of the first owned
// availability record, or nil when the user owns none. This is a summary
// convenience; the authoritative list is AvailabilityIDs.
func (u *User) RepresentativeAvailabilityID() *string {
	if len(u.AvailabilityIDs) == 0 {
		return nil
	}
	id := u.AvailabilityIDs[0]
	return &id
}

// UserData is the transfer representation of a User
type UserData struct {
	UserID         string   `json:"user_id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Phone          string   `json:"phone,omitempty"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	Region         string   `json:"region"`
	LoginName      string   `json:"login_name"`
	Email          string   `json:"email"`
	AvailabilityID *string  `json:"availability_id,omitempty"`
	GameIDs        []string `json:"game_ids"`
}

// Data converts the user to its transfer representation. The password hash
// is omitted and the availability collection collapses to its
// representative id.
func (u *User) Data() *UserData {
	gameIDs := u.GameIDs
	if gameIDs == nil {
		gameIDs = []string{}
	}
	return &UserData{
		UserID:         u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		Address:        u.Address,
		City:           u.City,
		Region:         u.Region,
		LoginName:      u.LoginName,
		Email:          u.Email,
		AvailabilityID: u.RepresentativeAvailabilityID(),
		GameIDs:        gameIDs,
	}
}

// CreateUserRequest is the payload for creating a user. The password is
// accepted here and nowhere else; it is hashed before persistence and never
// echoed back.
type CreateUserRequest struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Phone          string   `json:"phone,omitempty"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	Region         string   `json:"region"`
	LoginName      string   `json:"login_name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	AvailabilityID *string  `json:"availability_id,omitempty"`
	GameIDs        []string `json:"game_ids,omitempty"`
}

// Entity converts the creation payload to a User with profile fields set.
// Link fields (availability, games) and the password hash are resolved by
// the service layer.
func (r *CreateUserRequest) Entity() *User {
	return &User{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Address:   r.Address,
		City:      r.City,
		Region:    r.Region,
		LoginName: r.LoginName,
		Email:     r.Email,
	}
}

// UpdateUserRequest is the payload for partially updating a user. Nil
// fields are untouched. A non-nil GameIDs replaces the whole membership set
// (full reconciliation, not a merge). A non-nil AvailabilityID links an
// existing availability record as the user's representative slot.
type UpdateUserRequest struct {
	FirstName      *string   `json:"first_name,omitempty"`
	LastName       *string   `json:"last_name,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Address        *string   `json:"address,omitempty"`
	City           *string   `json:"city,omitempty"`
	Region         *string   `json:"region,omitempty"`
	LoginName      *string   `json:"login_name,omitempty"`
	Email          *string   `json:"email,omitempty"`
	AvailabilityID *string   `json:"availability_id,omitempty"`
	GameIDs        *[]string `json:"game_ids,omitempty"`
}

// Apply overwrites the user's profile fields with the non-nil fields of the
// request. Link fields are handled by the service layer.
func (r *UpdateUserRequest) Apply(u *User) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Phone != nil {
		u.Phone = *r.Phone
	}
	if r.Address != nil {
		u.Address = *r.Address
	}
	if r.City != nil {
		u.City = *r.City
	}
	if r.Region != nil {
		u.Region = *r.Region
	}
	if r.LoginName != nil {
		u.LoginName = *r.LoginName
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
}

// BulkDeleteResult is the aggregate outcome of a bulk deletion. Deletion is
// best-effort per id: successful deletes are applied and kept even when
// other ids fail.
type BulkDeleteResult struct {
	Deleted  []string      `json:"deleted"`
	Failures []BulkFailure `json:"failures,omitempty"`
}

// BulkFailure records why a single id in a bulk operation was not processed
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}
