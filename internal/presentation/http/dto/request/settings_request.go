package request

// UpdateSettingsRequest represents a store profile update
type UpdateSettingsRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Tagline    *string `json:"tagline" binding:"omitempty,max=255"`
	Address    *string `json:"address"`
	Services   *string `json:"services"`
	ThankYou   *string `json:"thank_you" binding:"omitempty,max=100"`
	Notice     *string `json:"notice"`
	PaperWidth *int    `json:"paper_width"`
}

// PrintRequest picks the paper width for one print job; zero uses the
// store default.
type PrintRequest struct {
	Width int `json:"width" form:"width"`
}
