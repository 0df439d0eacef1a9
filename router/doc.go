// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the camp-relief API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /register - Register (201, user + token)
	POST /login    - Login (200, user + token)

Authenticated (bearer token):

	GET    /verify            - Resolve the token's user
	GET    /camps             - List camps
	POST   /camps             - Add camp (volunteer)
	DELETE /camps/{id}        - Delete camp (volunteer, non-default)
	POST   /camps/{id}/select - Claim a bed (refugee)
	GET    /selections/my     - Current selection
	DELETE /selections/my     - Cancel selection

# Handler Initialization

The router builds the store and allocation engine and injects them:

	st := store.NewSQL(db)
	engine := allocation.New(st)
	campHandler := handlers.NewCampHandler(engine, cfg)

Authenticated routes are wrapped with logging and bearer verification;
role checks happen inside the allocation engine.
*/
package router
