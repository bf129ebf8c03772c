package utils

// PageMetadata holds the derived page fields returned with every list response
type PageMetadata struct {
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// CalculatePageMetadata calculates page metadata for a 1-indexed page
func CalculatePageMetadata(total, pageNumber, pageSize int) PageMetadata {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return PageMetadata{
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasNextPage:     pageNumber < totalPages,
		HasPreviousPage: pageNumber > 1,
	}
}

// Offset returns the row offset of a 1-indexed page
func Offset(pageNumber, pageSize int) int {
	if pageNumber < 1 {
		return 0
	}
	return (pageNumber - 1) * pageSize
}
