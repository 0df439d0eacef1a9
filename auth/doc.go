// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing and bearer-token handling.

# Password Hashing

Credentials are stored as one-way bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Bearer Tokens

Identity+role claims are HS256 JWTs valid for 24 hours:

	token, err := auth.IssueToken(user, secret)
	claims, err := auth.ParseToken(token, secret)

Claims carry user_id, email, and role. ParseToken returns
ErrInvalidToken for any expired, malformed, or badly signed token;
the HTTP layer maps that to 403 (absence of a token is 401).
*/
package auth
