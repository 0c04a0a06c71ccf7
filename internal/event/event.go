package event

import "time"

// Kind enumerates the domain events this core raises. The dispatcher routes
// on kind; there is no runtime-type dispatch.
type Kind string

const (
	KindUserLoggedIn    Kind = "user.logged_in"
	KindUserLoggedOut   Kind = "user.logged_out"
	KindTwoFactorFailed Kind = "twofactor.failed"
	KindTokenReused     Kind = "token.reused"
	KindTokenRevoked    Kind = "token.revoked"
	KindCodeConsumed    Kind = "code.consumed"
)

// Event is an immutable fact raised by an aggregate during a unit of work.
type Event interface {
	Kind() Kind
	OccurredAt() time.Time
}

// Base carries the fields shared by every concrete event.
type Base struct {
	At time.Time
}

func (b Base) OccurredAt() time.Time {
	return b.At
}

type UserLoggedIn struct {
	Base
	UserID    string
	IPAddress string
	UserAgent string
}

func (UserLoggedIn) Kind() Kind { return KindUserLoggedIn }

type UserLoggedOut struct {
	Base
	UserID    string
	IPAddress string
	UserAgent string
}

func (UserLoggedOut) Kind() Kind { return KindUserLoggedOut }

type TwoFactorFailed struct {
	Base
	UserID    string
	IPAddress string
	UserAgent string
	Reason    string
}

func (TwoFactorFailed) Kind() Kind { return KindTwoFactorFailed }

type TokenReused struct {
	Base
	UserID    string
	IPAddress string
	UserAgent string
}

func (TokenReused) Kind() Kind { return KindTokenReused }

type TokenRevoked struct {
	Base
	UserID   string
	RecordID string
}

func (TokenRevoked) Kind() Kind { return KindTokenRevoked }

type CodeConsumed struct {
	Base
	UserID   string
	CodeKind string
}

func (CodeConsumed) Kind() Kind { return KindCodeConsumed }
