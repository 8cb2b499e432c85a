package image

import (
	"fmt"
	"path/filepath"
	"strings"

	"stockroom/internal/model"

	"github.com/gabriel-vasile/mimetype"
)

const csvMIME = "text/csv"

// CheckImage rejects empty, oversized and non-image uploads. It returns the
// sniffed content type and its usual extension.
func CheckImage(data []byte, maxBytes int64) (contentType, ext string, err error) {
	if err := checkSize(data, maxBytes, "Image"); err != nil {
		return "", "", err
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", "", model.NewDomainError(model.ErrCodeInvalidUpload, "Only image files are allowed")
	}
	return mt.String(), mt.Extension(), nil
}

// CheckCSV accepts a file named *.csv, declared as text/csv, or whose content
// sniffs as CSV, within maxBytes.
func CheckCSV(filename, declaredType string, data []byte, maxBytes int64) error {
	if err := checkSize(data, maxBytes, "CSV file"); err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil
	}
	if mt, _, _ := strings.Cut(declaredType, ";"); strings.TrimSpace(mt) == csvMIME {
		return nil
	}
	if mimetype.Detect(data).Is(csvMIME) {
		return nil
	}
	return model.NewDomainError(model.ErrCodeInvalidUpload, "Only CSV files are allowed")
}

func checkSize(data []byte, maxBytes int64, label string) error {
	if len(data) == 0 {
		return model.NewDomainError(model.ErrCodeInvalidUpload, label+" is empty")
	}
	if int64(len(data)) > maxBytes {
		return model.NewDomainError(model.ErrCodeInvalidUpload,
			fmt.Sprintf("%s exceeds the %s limit", label, formatSize(maxBytes)))
	}
	return nil
}

func formatSize(n int64) string {
	const mb = 1 << 20
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
