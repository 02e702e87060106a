package backend

// UserProfile is the authenticated identity as returned by the backend's
// user/profile/ endpoint. It is fetched fresh on every bootstrap and never
// persisted beyond the in-memory session.
type UserProfile struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	IsSuperuser bool        `json:"is_superuser"`
	IsStaff     bool        `json:"is_staff"`
	Company     *CompanyRef `json:"company,omitempty"`
}

// CompanyRef is the optional company ("société") the user belongs to.
type CompanyRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Project is the cached project object attached to the selected-project
// preference. Navigation convenience only; the backend owns the real record.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TokenPair is the credential pair minted by the token/ endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type permissionsResponse struct {
	Permissions []string `json:"permissions"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
