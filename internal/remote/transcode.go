package remote

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"maps"
	"net/http"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	_ "golang.org/x/image/webp"

	"custom-updater/pkg/content"
)

// Transcode builds the remote form of c.
func Transcode(c content.Content) (*RemoteContent, error) {
	switch v := c.(type) {
	case *content.ContentMedia:
		return fromMedia(v)
	case *content.ContentImage:
		return fromImage(v)
	case nil:
		return nil, fmt.Errorf("%w: no content", ErrContentParsing)
	default:
		return nil, fmt.Errorf("%w: unsupported content %T", ErrContentParsing, c)
	}
}

func fromMedia(c *content.ContentMedia) (*RemoteContent, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: no content", ErrContentParsing)
	}
	if c.Media == nil {
		return nil, fmt.Errorf("%w: media is missing", ErrContentParsing)
	}

	err := validation.Errors{
		"url":  validation.Validate(c.Media.URL, validation.Required, is.RequestURL, is.URL),
		"type": validation.Validate(c.Media.Type, validation.Required, validation.In(content.MediaPhoto, content.MediaGIF, content.MediaVideo)),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: media: %v", ErrContentParsing, err)
	}

	rc, err := base(c.ContextTokenID, c.Message, c.CTAText, c.Payload, c.MessageLocalization, c.CTALocalization)
	if err != nil {
		return nil, err
	}
	rc.Media = &Media{URL: c.Media.URL, Type: c.Media.Type}

	return rc, nil
}

func fromImage(c *content.ContentImage) (*RemoteContent, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: no content", ErrContentParsing)
	}

	img, err := pngData(c.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: image: %v", ErrContentParsing, err)
	}

	rc, err := base(c.ContextTokenID, c.Message, c.CTAText, c.Payload, c.MessageLocalization, c.CTALocalization)
	if err != nil {
		return nil, err
	}
	rc.Image = img

	return rc, nil
}

func base(contextTokenID, message string, cta, payload *string, messageL10n, ctaL10n map[string]string) (*RemoteContent, error) {
	errs := validation.Errors{
		"context_token_id":     validation.Validate(contextTokenID, validation.By(validUTF8)),
		"message":              validation.Validate(message, validation.Required, validation.By(validUTF8)),
		"message_localization": validation.Validate(messageL10n, validation.By(validLocalizations)),
		"payload":              validation.Validate(payload, validation.By(validUTF8)),
	}
	if cta != nil {
		errs["cta"] = validation.Validate(*cta, validation.By(validUTF8))
		errs["cta_localization"] = validation.Validate(ctaL10n, validation.By(validLocalizations))
	}
	if err := errs.Filter(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentParsing, err)
	}

	rc := &RemoteContent{
		ContextTokenID: contextTokenID,
		Payload:        payload,
		Text:           Text{Default: message, Localizations: localizations(messageL10n)},
	}
	if cta != nil {
		rc.CTA = &Text{Default: *cta, Localizations: localizations(ctaL10n)}
	}

	return rc, nil
}

// validUTF8 accepts a string or a *string, nil is fine.
func validUTF8(value any) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	}

	if !utf8.ValidString(s) {
		return errors.New("must be valid UTF-8")
	}

	return nil
}

// validLocalizations checks both the locales and the texts.
func validLocalizations(value any) error {
	l, _ := value.(map[string]string)
	for locale, text := range l {
		if !utf8.ValidString(locale) {
			return fmt.Errorf("locale %q must be valid UTF-8", locale)
		}
		if !utf8.ValidString(text) {
			return fmt.Errorf("text of %q must be valid UTF-8", locale)
		}
	}

	return nil
}

func localizations(l map[string]string) map[string]string {
	if l == nil {
		return make(map[string]string)
	}

	return maps.Clone(l)
}

// pngData returns b as PNG, re-encoding any other decodable format.
func pngData(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, errors.New("empty image")
	}

	if http.DetectContentType(b) == "image/png" {
		if _, err := png.DecodeConfig(bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("failed to read png header: %w", err)
		}

		return b, nil
	}

	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return buf.Bytes(), nil
}
