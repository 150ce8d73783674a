package domain

import "fmt"

// ActorKind distinguishes the administrator from clients.
type ActorKind string

const (
	ActorAdmin  ActorKind = "admin"
	ActorClient ActorKind = "client"
)

// Actor is either the administrator or a client with an opaque identifier.
// The zero value is "no actor".
type Actor struct {
	kind     ActorKind
	clientID string
}

// Admin returns the administrator actor.
func Admin() Actor {
	return Actor{kind: ActorAdmin}
}

// Client returns a client actor. An empty id yields the zero Actor.
func Client(id string) Actor {
	if id == "" {
		return Actor{}
	}
	return Actor{kind: ActorClient, clientID: id}
}

// ParseActor builds an actor from a role label and an id.
func ParseActor(role, id string) (Actor, error) {
	switch ActorKind(role) {
	case ActorAdmin:
		return Admin(), nil
	case ActorClient, "":
		if id == "" {
			return Actor{}, ErrMissingActor
		}
		return Client(id), nil
	default:
		return Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
}

func (a Actor) Kind() ActorKind { return a.kind }

func (a Actor) IsZero() bool { return a.kind == "" }

func (a Actor) IsAdmin() bool { return a.kind == ActorAdmin }

func (a Actor) IsClient() bool { return a.kind == ActorClient }

// ClientID is empty for the administrator.
func (a Actor) ClientID() string { return a.clientID }

// String renders the actor the way bookedBy is reported.
func (a Actor) String() string {
	switch a.kind {
	case ActorAdmin:
		return AdminSentinel
	case ActorClient:
		return a.clientID
	default:
		return ""
	}
}
