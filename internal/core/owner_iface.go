//go:generate go run go.uber.org/mock/mockgen -source=owner_iface.go -destination=../mocks/mock_owner.go -package=mocks
package core

// RoomOwner is implemented by whatever call-control logic asked for a room.
// The registry only queries it; it never manages the owner's lifetime.
// Implementations may be slow and may call back into the registry.
type RoomOwner interface {
	IsRoomStillRequired() bool
}
