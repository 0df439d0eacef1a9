// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: name, email, password, role + role-specific attributes
  - LoginRequest: email, password
  - AddCampRequest: name, beds, resources, contact, ambulance

# Response Types

Types for JSON responses:

  - AuthResponse: user, token
  - MessageResponse: message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Camp: a relief shelter with current and original bed counts
  - User: an account with a role and a hashed credential
  - Selection: a refugee's claim on one bed at one camp

The password hash on User is never serialized.

# Constants

Roles:

	RoleVolunteer = "volunteer"
	RoleRefugee   = "refugee"

Camp types:

	CampTypeDefault   = "default"
	CampTypeVolunteer = "volunteer-added"

Default camps are seeded at first boot and cannot be deleted.
*/
package models
