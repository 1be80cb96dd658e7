package domain

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageNumber     = 99999
	MaxPageSize       = 100
)

type Page struct {
	Number int
	Size   int
}

// NewPage fills unset values with defaults.
func NewPage(number, size *int) Page {
	p := Page{Number: DefaultPageNumber, Size: DefaultPageSize}
	if number != nil {
		p.Number = *number
	}
	if size != nil {
		p.Size = *size
	}
	return p
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

type PageInfo struct {
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
	PageSize   int   `json:"pageSize"`
	PageNumber int   `json:"pageNumber"`
}

func NewPageInfo(p Page, total int64) PageInfo {
	info := PageInfo{TotalItems: total, PageSize: p.Size, PageNumber: p.Number}
	if p.Size > 0 {
		info.TotalPages = (total + int64(p.Size) - 1) / int64(p.Size)
	}
	return info
}
