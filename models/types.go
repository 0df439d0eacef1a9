package models

import "time"

// User roles
const (
	RoleVolunteer = "volunteer"
	RoleRefugee   = "refugee"
)

// Camp types
const (
	CampTypeDefault   = "default"
	CampTypeVolunteer = "volunteer-added"
)

// Request types

type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Address      string `json:"address,omitempty"`
	Needs        string `json:"needs,omitempty"`
	Skills       string `json:"skills,omitempty"`
	Availability string `json:"availability,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddCampRequest struct {
	Name      string   `json:"name"`
	Beds      int      `json:"beds"`
	Resources []string `json:"resources"`
	Contact   string   `json:"contact"`
	Ambulance bool     `json:"ambulance"`
}

// Response types

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type Camp struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrentBeds  int       `json:"current_beds"`
	OriginalBeds int       `json:"original_beds"`
	Resources    []string  `json:"resources"`
	Contact      string    `json:"contact"`
	Ambulance    bool      `json:"ambulance"`
	Type         string    `json:"type"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	Address      string    `json:"address,omitempty"`
	Needs        string    `json:"needs,omitempty"`
	Skills       string    `json:"skills,omitempty"`
	Availability string    `json:"availability,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Selection struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CampID    string    `json:"camp_id"`
	UserName  string    `json:"user_name"`
	CampName  string    `json:"camp_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
