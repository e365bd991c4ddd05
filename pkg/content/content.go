// Package content holds the user supplied payloads of a custom update
package content

// MediaType is the kind of media attached to an update.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaGIF   MediaType = "gif"
	MediaVideo MediaType = "video"
)

// Valid .
func (t MediaType) Valid() bool {
	switch t {
	case MediaPhoto, MediaGIF, MediaVideo:
		return true
	}

	return false
}

// URLMedia is media hosted somewhere the server can fetch it from.
type URLMedia struct {
	URL  string
	Type MediaType
}

// Content is either a *ContentMedia or a *ContentImage.
type Content interface {
	isContent()
}

type common struct {
	ContextTokenID      string
	Message             string
	CTAText             *string
	Payload             *string
	MessageLocalization map[string]string
	CTALocalization     map[string]string
}

// ContentMedia is an update which points to media by URL.
type ContentMedia struct {
	common
	Media *URLMedia
}

// ContentImage is an update carrying the image bytes inline.
type ContentImage struct {
	common
	Image []byte
}

func (*ContentMedia) isContent() {}
func (*ContentImage) isContent() {}

// Option sets an optional field on either content kind.
type Option func(*common)

// WithCTA sets the text of the action button.
func WithCTA(text string) Option {
	return func(c *common) {
		c.CTAText = &text
	}
}

// WithPayload sets the string handed back when the receiver interacts with the update.
func WithPayload(payload string) Option {
	return func(c *common) {
		c.Payload = &payload
	}
}

// WithMessageLocalization .
func WithMessageLocalization(l map[string]string) Option {
	return func(c *common) {
		if l != nil {
			c.MessageLocalization = l
		}
	}
}

// WithCTALocalization .
func WithCTALocalization(l map[string]string) Option {
	return func(c *common) {
		if l != nil {
			c.CTALocalization = l
		}
	}
}

func newCommon(contextTokenID, message string, opts []Option) common {
	c := common{
		ContextTokenID:      contextTokenID,
		Message:             message,
		MessageLocalization: make(map[string]string),
		CTALocalization:     make(map[string]string),
	}
	for _, o := range opts {
		o(&c)
	}

	return c
}

// NewMedia .
func NewMedia(contextTokenID, message string, media URLMedia, opts ...Option) *ContentMedia {
	return &ContentMedia{
		common: newCommon(contextTokenID, message, opts),
		Media:  &media,
	}
}

// NewImage .
func NewImage(contextTokenID, message string, image []byte, opts ...Option) *ContentImage {
	return &ContentImage{
		common: newCommon(contextTokenID, message, opts),
		Image:  image,
	}
}
