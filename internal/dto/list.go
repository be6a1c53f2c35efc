package dto

// ListParams holds the query parameters shared by every list endpoint.
type ListParams struct {
	Search string `form:"search"`
	// Cursor is the opaque token returned by the previous page of the same list.
	Cursor string `form:"cursor"`
	// LoadNext appends the next page to the pages already loaded by Cursor.
	LoadNext bool   `form:"loadNext"`
	Sort     string `form:"sort" binding:"omitempty,oneof=createdAt_desc"`
}

// PageMeta describes the loaded window of a list.
type PageMeta struct {
	IsSearching bool   `json:"isSearching"`
	TotalCount  int    `json:"totalCount"`
	TotalPages  int    `json:"totalPages"`
	HasNextPage bool   `json:"hasNextPage"`
	LoadedCount int    `json:"loadedCount"`
	NextCursor  string `json:"nextCursor"`
}
