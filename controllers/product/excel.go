package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ImportProductsFromExcel bulk-loads catalog rows from an uploaded xlsx file.
// Rows with an existing ID update that product; rows without one create a new
// product. Malformed rows are skipped, not fatal.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			id := get(0)
			name := get(1)
			price, priceErr := strconv.ParseFloat(get(2), 64)
			image := get(7)

			if name == "" || priceErr != nil || price <= 0 || image == "" {
				skippedCount++
				continue
			}

			product := models.Product{
				Name:        name,
				Price:       price,
				Description: get(6),
				Image:       image,
			}
			if v, err := strconv.ParseFloat(get(3), 64); err == nil {
				product.OriginalPrice = &v
			}
			if get(4) != "" && get(4) != "unlimited" {
				if v, err := strconv.Atoi(get(4)); err == nil {
					product.Stock = &v
				}
			}
			if v, err := strconv.Atoi(get(5)); err == nil {
				product.SoldCount = v
			}

			if id != "" {
				var existing models.Product
				if err := db.First(&existing, "id = ?", id).Error; err == nil {
					product.ID = existing.ID
					product.CreatedAt = existing.CreatedAt
					if err := db.Save(&product).Error; err == nil {
						updatedCount++
					} else {
						skippedCount++
					}
					continue
				}
			}

			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"updated": updatedCount,
			"skipped": skippedCount,
		})
	}
}
