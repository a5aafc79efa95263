package models

// Page is one server-ordered slice of the catalog plus pagination metadata.
type Page struct {
	Content       []Airport `json:"content"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int       `json:"totalElements"`
}

// TotalPagesFor computes the page count for a total and page size.
func TotalPagesFor(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
