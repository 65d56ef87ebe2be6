package domain

import (
	"errors"
	"sort"
	"strings"
)

const (
	RoleCustomer = "customer"
	RoleWorker   = "worker"
)

var ErrEmailExists = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingID = errors.New("account id is required")
var ErrAccountNotFound = errors.New("account not found")
var ErrGatewayUnavailable = errors.New("notification gateway unavailable")

// WorkerProfile carries the attributes that exist only for worker accounts.
// Skills are free text; insertion order is preserved end to end.
type WorkerProfile struct {
	Skills       []string `json:"skills" bson:"skills"`
	Experience   string   `json:"experience" bson:"experience"`
	HourlyRate   float64  `json:"hourly_rate" bson:"hourly_rate"`
	ResponseTime string   `json:"response_time" bson:"response_time"`
}

// Account is the single persisted identity record. Role decides whether the
// Worker payload is present; customer accounts carry a nil profile.
type Account struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"-"`
	Name          string         `json:"name,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Role          string         `json:"role"`
	Rating        float64        `json:"rating,omitempty"`
	CompletedJobs int            `json:"completed_jobs,omitempty"`
	Worker        *WorkerProfile `json:"worker,omitempty"`
}

// IsWorker reports whether the account belongs to the worker directory.
func (a *Account) IsWorker() bool {
	return a.Role == RoleWorker
}

// Sanitized returns a copy with the password hash removed. Every account that
// leaves a service boundary must pass through here.
func (a *Account) Sanitized() *Account {
	clone := *a
	clone.PasswordHash = ""
	if a.Worker != nil {
		profile := *a.Worker
		clone.Worker = &profile
	}
	return &clone
}

// MatchesSkill reports whether any of the account's skills contains tag as a
// case-insensitive substring, so "elect" matches "Electrical". Skills are free
// text at entry time; substring matching trades precision for tolerance.
func (a *Account) MatchesSkill(tag string) bool {
	if a.Worker == nil {
		return false
	}
	tag = strings.ToLower(tag)
	for _, skill := range a.Worker.Skills {
		if strings.Contains(strings.ToLower(skill), tag) {
			return true
		}
	}
	return false
}

// SortByRating orders accounts by descending rating. The sort is stable so
// equal ratings keep their relative order.
func SortByRating(accounts []*Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Rating > accounts[j].Rating
	})
}
