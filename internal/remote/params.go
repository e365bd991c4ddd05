package remote

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// ImageDataURIPrefix is prepended to the base64 encoded image parameter.
const ImageDataURIPrefix = "data:image/png;base64,"

// Parameters are the flat, string valued parameters of the Graph request.
type Parameters map[string]string

// Encode flattens rc, nested values are sent as JSON text.
func Encode(rc *RemoteContent) (Parameters, error) {
	if rc == nil {
		return nil, fmt.Errorf("%w: no content", ErrContentParsing)
	}

	params, err := baseParameters(rc)
	if err != nil {
		return nil, err
	}

	if params["text"], err = jsonText(rc.Text); err != nil {
		return nil, fmt.Errorf("%w: text: %v", ErrContentParsing, err)
	}

	if rc.CTA != nil {
		if params["cta"], err = jsonText(rc.CTA); err != nil {
			return nil, fmt.Errorf("%w: cta: %v", ErrContentParsing, err)
		}
	}

	if rc.Media != nil {
		if params["media"], err = jsonText(rc.Media); err != nil {
			return nil, fmt.Errorf("%w: media: %v", ErrContentParsing, err)
		}
	}

	if rc.Image != nil {
		params["image"] = ImageDataURIPrefix + base64.StdEncoding.EncodeToString(rc.Image)
	}

	return params, nil
}

// baseParameters round trips the flat fields through JSON so the struct tags decide the keys.
func baseParameters(rc *RemoteContent) (Parameters, error) {
	b, err := json.Marshal(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentParsing, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: content is not an object", ErrContentParsing)
	}

	params := make(Parameters, len(fields)+4)
	for k, v := range fields {
		if s, ok := v.(string); ok {
			params[k] = s

			continue
		}
		if params[k], err = jsonText(v); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrContentParsing, k, err)
		}
	}

	return params, nil
}

func jsonText(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
