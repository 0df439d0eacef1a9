// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the camp-relief API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - AccountHandler: registration, login, token verification
  - CampHandler: camp listing, creation, deletion
  - SelectionHandler: bed selection, retrieval, cancellation

AccountHandler talks to the record store directly; the camp and
selection handlers go through the allocation engine, which owns every
bed-count mutation:

	accountHandler := handlers.NewAccountHandler(st, cfg)
	campHandler := handlers.NewCampHandler(engine, cfg)

# Flow

A refugee registers, lists camps, and claims a bed:

	POST /register            → Register (201, user + token)
	GET  /camps               → List
	POST /camps/{id}/select   → Select (one selection per user)
	GET  /selections/my       → GetMine
	DELETE /selections/my     → CancelMine (frees the bed)

A volunteer manages camps:

	POST   /camps       → Add (current = original = beds)
	DELETE /camps/{id}  → Delete (cascade-removes selections)

# Error Mapping

Engine sentinels translate uniformly: invalid input 400, wrong role
403, missing records 404, duplicate selection or full camp 409,
storage failures 500 (logged, never leaked).
*/
package handlers
