// Package patch applies RFC 6902 JSON-Patch documents to update payloads.
//
// A patch is applied to the JSON form of the current full-update
// representation, then decoded back strictly so operations cannot smuggle in
// unknown fields. Callers run the same validation they use for full updates
// on the decoded result.
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ErrInvalidPatch indicates the patch document is malformed or one of its
// operations could not be applied.
var ErrInvalidPatch = errors.New("patch: invalid patch document")

// ErrInvalidResult indicates the patched document no longer matches the
// shape of the target representation.
var ErrInvalidResult = errors.New("patch: patched document has invalid shape")

// Apply patches doc with the RFC 6902 document in ops and decodes the result
// into out. doc and out are typically the same struct type.
func Apply(ops []byte, doc interface{}, out interface{}) error {
	p, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	original, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	patched, err := p.Apply(original)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	return nil
}
