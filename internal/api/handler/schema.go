package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerCustomerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// Worker attributes are stored verbatim; only the rate's sign is checked.
// Skills are free text, suggested from a default set at input time only.
type registerWorkerRequest struct {
	Email        string   `json:"email"        validate:"required,email"`
	Password     string   `json:"password"     validate:"required"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	HourlyRate   float64  `json:"hourlyRate"   validate:"gte=0"`
	ResponseTime string   `json:"responseTime"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest is a partial update; nil fields are left unchanged.
// Email and role are accepted here so legacy clients keep working, but the
// identity service discards both; they are immutable after registration.
type updateProfileRequest struct {
	ID           string    `json:"id"`
	Email        *string   `json:"email"`
	Role         *string   `json:"role"`
	Name         *string   `json:"name"`
	Phone        *string   `json:"phone"`
	Skills       *[]string `json:"skills"`
	Experience   *string   `json:"experience"`
	HourlyRate   *float64  `json:"hourlyRate"`
	ResponseTime *string   `json:"responseTime"`
}

type contactRequest struct {
	CustomerPhone string `json:"customerPhone"`
}

// --- Response types ---

// userResponse is the flat legacy wire shape. Worker-only fields are always
// present: empty array / empty string / zero for customer accounts.
type userResponse struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Role          string   `json:"role"`
	Rating        float64  `json:"rating"`
	CompletedJobs int      `json:"completedJobs"`
	Skills        []string `json:"skills"`
	Experience    string   `json:"experience"`
	HourlyRate    float64  `json:"hourlyRate"`
	ResponseTime  string   `json:"responseTime"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	CallSID string `json:"callSid,omitempty"`
}
