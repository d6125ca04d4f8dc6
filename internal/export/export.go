// Package export hands rendered receipts to their export and share
// collaborators. Rasterizing a receipt to an image and drawing the
// CODE128 symbol are external concerns behind the narrow interfaces
// here; this package prepares payloads, suggested filenames, and
// destinations.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName returns the suggested export filename for the given day:
// stackslip_<yyyy-mm-dd>.<ext>.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("stackslip_%s.%s", now.Format("2006-01-02"), ext)
}

// BarcodePayload builds the string a CODE128 renderer encodes for a
// profile: <host>/users/<id>.
func BarcodePayload(host string, userID int) string {
	return fmt.Sprintf("%s/users/%d", host, userID)
}

// Surface is a rendered receipt ready to leave the process.
type Surface struct {
	Name string
	Data []byte
}

// Sink receives an exported surface and reports where it ended up.
type Sink interface {
	Put(s Surface) (string, error)
}

// Sharer hands a surface to a platform share target.
type Sharer interface {
	Share(s Surface) error
}

// Barcoder renders a linear barcode symbol for a payload string.
// Implementations are external collaborators; none ships here.
type Barcoder interface {
	Render(payload string) ([]byte, error)
}

// DirSink writes surfaces into a directory, creating it on demand.
// An empty Dir means the current working directory.
type DirSink struct {
	Dir string
}

func (d DirSink) Put(s Surface) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, s.Name)
	if err := os.WriteFile(path, s.Data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", s.Name, err)
	}
	return path, nil
}

// Share hands the surface to sharer, falling back to sink when no
// sharer is wired or sharing fails. A non-empty return path means the
// fallback ran and the surface was saved instead.
func Share(sharer Sharer, sink Sink, s Surface) (string, error) {
	if sharer != nil {
		if err := sharer.Share(s); err == nil {
			return "", nil
		}
	}
	return sink.Put(s)
}
