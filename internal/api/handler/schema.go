package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for mutation acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
}

type selfResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type updateEmailRequest struct {
	Email string `json:"email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

// --- Menus ---

// dishRequest carries the sensory payload for one composed dish. Taste
// intensities are bounded 0..10; at most three color slots are stored.
type dishRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description"`
	Section     string   `json:"section"`
	Bitter      *int     `json:"bitter,omitempty"      validate:"omitempty,min=0,max=10"`
	Salty       *int     `json:"salty,omitempty"       validate:"omitempty,min=0,max=10"`
	Sour        *int     `json:"sour,omitempty"        validate:"omitempty,min=0,max=10"`
	Sweet       *int     `json:"sweet,omitempty"       validate:"omitempty,min=0,max=10"`
	Umami       *int     `json:"umami,omitempty"       validate:"omitempty,min=0,max=10"`
	Fat         *int     `json:"fat,omitempty"         validate:"omitempty,min=0,max=10"`
	Piquant     *int     `json:"piquant,omitempty"     validate:"omitempty,min=0,max=10"`
	Temperature *int     `json:"temperature,omitempty" validate:"omitempty,min=0,max=10"`
	Colors      []string `json:"colors,omitempty"      validate:"omitempty,max=3"`
	EmotionIDs  []int64  `json:"emotion_ids,omitempty"`
	TextureIDs  []int64  `json:"texture_ids,omitempty"`
	ShapeIDs    []int64  `json:"shape_ids,omitempty"`
}

type createMenuRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Dishes      []dishRequest `json:"dishes,omitempty" validate:"omitempty,dive"`
}

type createMenuResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type updateMenuRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type menuResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	OwnerID     *int64 `json:"owner_id,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type dishResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Section     string   `json:"section"`
	Bitter      *int     `json:"bitter,omitempty"`
	Salty       *int     `json:"salty,omitempty"`
	Sour        *int     `json:"sour,omitempty"`
	Sweet       *int     `json:"sweet,omitempty"`
	Umami       *int     `json:"umami,omitempty"`
	Fat         *int     `json:"fat,omitempty"`
	Piquant     *int     `json:"piquant,omitempty"`
	Temperature *int     `json:"temperature,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	EmotionIDs  []int64  `json:"emotion_ids,omitempty"`
	TextureIDs  []int64  `json:"texture_ids,omitempty"`
	ShapeIDs    []int64  `json:"shape_ids,omitempty"`
}

type menuDetailResponse struct {
	menuResponse
	Dishes []dishResponse `json:"dishes"`
}
