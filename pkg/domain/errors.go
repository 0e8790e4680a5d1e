// Package domain defines the closed set of business errors shared by the
// engines and the HTTP layer. Handlers map these to status codes with
// errors.Is so the mapping stays exhaustive instead of string-matched.
package domain

import "errors"

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserInvalid is returned when the authenticated buyer row cannot be loaded.
	ErrUserInvalid = errors.New("user invalid")
	// ErrDuplicateUserField is returned when username, email or phone collide
	// with an existing user.
	ErrDuplicateUserField = errors.New("duplicate user field")

	// ErrTicketNotFound is returned when no ticket matches the given number or ID.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrDuplicateTicketNumber is returned when creating a ticket whose number
	// is already registered.
	ErrDuplicateTicketNumber = errors.New("ticket number already exists")
	// ErrTicketAlreadySold is returned when the ticket already has an owner,
	// including the case where a concurrent purchase won the conditional update.
	ErrTicketAlreadySold = errors.New("ticket already sold")
	// ErrInsufficientFunds is returned when the buyer's balance is below the
	// ticket price.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPrizeNotFound is returned when no prize matches the given ID.
	ErrPrizeNotFound = errors.New("prize not found")
	// ErrPrizeAlreadyExists is returned when the winning ticket already has a prize.
	ErrPrizeAlreadyExists = errors.New("prize already exists for ticket")
	// ErrPrizeAlreadyClaimed is returned when the prize status is no longer
	// unclaimed, including the case where a concurrent claim won the
	// conditional update.
	ErrPrizeAlreadyClaimed = errors.New("prize already claimed")
	// ErrWinningTicketNotFound is returned when the prize's winning ticket is
	// missing or has no owner yet.
	ErrWinningTicketNotFound = errors.New("winning ticket not found")
	// ErrNotPrizeOwner is returned when the claimant does not own the winning ticket.
	ErrNotPrizeOwner = errors.New("not the prize owner")
	// ErrNoMatchingTickets is returned by bulk prize creation when no ticket
	// number matches the suffix.
	ErrNoMatchingTickets = errors.New("no matching tickets")
	// ErrInvalidCreationMode is returned when the prize creation mode is
	// neither RANKED nor LAST.
	ErrInvalidCreationMode = errors.New("invalid prize creation mode")

	// ErrDrawNotFound is returned when no draw matches the given ID.
	ErrDrawNotFound = errors.New("draw not found")

	// ErrUnauthorized is returned when credentials or token are invalid.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the authenticated identity does not own
	// the resource.
	ErrForbidden = errors.New("forbidden")
)
