package export

import (
	"fmt"

	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/pkg/utils"
)

// ReportFilename names a downloaded HTML report after the home's address.
func ReportFilename(home models.Home) string {
	return utils.Slugify(home.Address) + "_Home_Report.html"
}

// RawFilename names a single-home raw dump after the home's id.
func RawFilename(home models.Home, format Format) string {
	return fmt.Sprintf("%s_raw.%s", home.ID, format.Extension())
}

// CollectionFilename names an export of n homes.
func CollectionFilename(n int, format Format) string {
	return fmt.Sprintf("homes_%d.%s", n, format.Extension())
}
