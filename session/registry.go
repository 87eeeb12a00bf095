package session

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/judgegodwins/wordle-duel/game"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrAlreadyInRoom = errors.New("connection already seated in a room")
)

// Registry maps room codes to their actors and connections to the room they
// sit in. Only the maps are guarded here; room state belongs to each actor.
type Registry struct {
	mu      sync.RWMutex
	rng     *rand.Rand
	rooms   map[string]*actor
	members map[string]string // connection id -> room code
}

func NewRegistry(rng *rand.Rand) *Registry {
	return &Registry{
		rng:     rng,
		rooms:   make(map[string]*actor),
		members: make(map[string]string),
	}
}

// Create draws a fresh code, builds the room's actor and registers it with
// creator seated. The actor is complete before anyone can look it up.
func (r *Registry) Create(creator string, build func(code string) *actor) (*actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[creator]; ok {
		return nil, ErrAlreadyInRoom
	}

	code := game.GenerateCode(r.rng)
	for r.rooms[code] != nil {
		code = game.GenerateCode(r.rng)
	}

	a := build(code)
	r.rooms[code] = a
	r.members[creator] = code

	return a, nil
}

func (r *Registry) Get(code string) (*actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.rooms[code]
	return a, ok
}

// Reserve marks conn as belonging to the room at code ahead of a join so a
// connection can never be admitted to two rooms.
func (r *Registry) Reserve(conn, code string) (*actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[conn]; ok {
		return nil, ErrAlreadyInRoom
	}

	a, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	r.members[conn] = code
	return a, nil
}

// Release drops a reservation made by Reserve.
func (r *Registry) Release(conn, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.members[conn] == code {
		delete(r.members, conn)
	}
}

// RoomOf returns the code of the room conn is seated in.
func (r *Registry) RoomOf(conn string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code, ok := r.members[conn]
	return code, ok
}

// Delete removes the room and every membership pointing at it.
func (r *Registry) Delete(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, code)
	for conn, c := range r.members {
		if c == code {
			delete(r.members, conn)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
