package request

import "github.com/sangkips/autoquote-api/pkg/document"

// ProfileRequest is a customization profile write. The layout parameters
// sit next to the name at the top level of the body.
type ProfileRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	IsDefault *bool  `json:"is_default"`
	document.Profile
}
