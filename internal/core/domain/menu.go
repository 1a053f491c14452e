package domain

import "time"

// MenuStatus represents the lifecycle state of a menu.
type MenuStatus string

const (
	StatusDraft     MenuStatus = "draft"
	StatusSubmitted MenuStatus = "submitted"
)

// menuStatuses is the closed set accepted by status updates. Anything outside
// it is rejected server-side regardless of what the client sends.
var menuStatuses = map[MenuStatus]struct{}{
	StatusDraft:     {},
	StatusSubmitted: {},
}

// Valid reports whether s is a recognized menu status.
func (s MenuStatus) Valid() bool {
	_, ok := menuStatuses[s]
	return ok
}

// Menu is a restaurant menu owned by at most one user. OwnerID is nullable so
// orphaned menus survive without a dangling reference.
type Menu struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      MenuStatus `json:"status"`
	OwnerID     *int64     `json:"owner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Dish belongs to exactly one menu and is removed with it. Sensory scales are
// pointers so an unset attribute is distinguishable from zero intensity.
type Dish struct {
	ID          int64  `json:"id"`
	MenuID      int64  `json:"menu_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Section     string `json:"section"`

	// Basic tastes
	Bitter *int `json:"bitter,omitempty"`
	Salty  *int `json:"salty,omitempty"`
	Sour   *int `json:"sour,omitempty"`
	Sweet  *int `json:"sweet,omitempty"`
	Umami  *int `json:"umami,omitempty"`

	// Other tastes
	Fat         *int `json:"fat,omitempty"`
	Piquant     *int `json:"piquant,omitempty"`
	Temperature *int `json:"temperature,omitempty"`

	// Colors, up to three slots
	Color1 string `json:"color1,omitempty"`
	Color2 string `json:"color2,omitempty"`
	Color3 string `json:"color3,omitempty"`

	// Associations to the lookup tables
	EmotionIDs []int64 `json:"emotion_ids,omitempty"`
	TextureIDs []int64 `json:"texture_ids,omitempty"`
	ShapeIDs   []int64 `json:"shape_ids,omitempty"`
}

// Attribute is a seeded lookup entity (emotion, texture or shape).
type Attribute struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// LifecycleAction labels an entry in the menu audit trail.
type LifecycleAction string

const (
	ActionCreated   LifecycleAction = "created"
	ActionUpdated   LifecycleAction = "updated"
	ActionSubmitted LifecycleAction = "submitted"
	ActionDeleted   LifecycleAction = "deleted"
)

// LifecycleEvent records a single menu lifecycle transition for the audit trail.
type LifecycleEvent struct {
	MenuID    int64           `json:"menu_id"`
	OwnerID   *int64          `json:"owner_id,omitempty"`
	Action    LifecycleAction `json:"action"`
	Status    MenuStatus      `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}
