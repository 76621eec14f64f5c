package payload

import (
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// ErrMissingFileRef is returned when a file-backed codec is asked to encode
// before the upload collaborator has issued a file id. This is a caller bug:
// the save action must stay blocked until the upload completes.
var ErrMissingFileRef = errors.New("payload: file content requires an uploaded file reference")

// encodeFile builds the deterministic asset URL for an uploaded file id.
func (c Codec) encodeFile(f FileForm) (string, error) {
	if f.FileID == "" {
		return "", ErrMissingFileRef
	}
	return c.AssetURL(f.FileID), nil
}

// AssetURL returns the public URL for a stored file id. An unconfigured
// storage base degrades to a relative path with a logged warning rather than
// failing.
func (c Codec) AssetURL(fileID string) string {
	if c.AssetBase == "" {
		if c.Logger != nil {
			c.Logger.Warn("storage base URL not configured, falling back to relative asset path",
				zap.String("fileId", fileID))
		}
		return "/files/" + fileID
	}
	return strings.TrimSuffix(c.AssetBase, "/") + "/files/" + fileID
}

// decodeFile is inherently partial: any syntactically valid absolute URL is
// treated as the file URL, everything else yields an empty record. The
// original file id is not recoverable from the payload.
func decodeFile(payload string) FileForm {
	u, err := url.ParseRequestURI(strings.TrimSpace(payload))
	if err != nil || u.Host == "" || u.Scheme == "" {
		return FileForm{}
	}
	return FileForm{FileURL: u.String()}
}
