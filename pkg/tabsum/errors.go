package tabsum

import (
	"errors"
	"strings"

	"github.com/ukaji3/tabsum-go/pkg/tabsum/models"
	"github.com/ukaji3/tabsum-go/pkg/tabsum/parser"
)

// describeLoadError converts a loader failure into an ErrorDescriptor.
func describeLoadError(path string, err error) *models.ErrorDescriptor {
	switch {
	case errors.Is(err, parser.ErrFileNotFound):
		return notFoundError(path)
	case errors.Is(err, parser.ErrEmpty):
		return emptyError(path)
	default:
		return unexpectedError(err)
	}
}

func notFoundError(path string) *models.ErrorDescriptor {
	return &models.ErrorDescriptor{
		Kind:    models.KindNotFound,
		Message: "File not found: " + path,
	}
}

func emptyError(path string) *models.ErrorDescriptor {
	return &models.ErrorDescriptor{
		Kind:    models.KindEmpty,
		Message: "No data found in file: " + path,
	}
}

// missingColumnsError reports absent required fields along with the header
// that was found and a preview of the first rows.
func missingColumnsError(table *models.Table, missing []string, previewRows int) *models.ErrorDescriptor {
	columns := table.Header
	if columns == nil {
		columns = []string{}
	}
	return &models.ErrorDescriptor{
		Kind:    models.KindMissingColumns,
		Message: "Missing required columns: " + strings.Join(missing, ", "),
		Columns: columns,
		Missing: missing,
		Preview: table.Preview(previewRows),
	}
}

func unexpectedError(err error) *models.ErrorDescriptor {
	return &models.ErrorDescriptor{
		Kind:    models.KindUnexpected,
		Message: "Unexpected error: " + err.Error(),
	}
}
